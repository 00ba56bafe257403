package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/handlers"
	"github.com/yungbote/storefront-backend/internal/middleware"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/repos/testutil"
	"github.com/yungbote/storefront-backend/internal/services"
	"github.com/yungbote/storefront-backend/internal/types"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	userTokenRepo := repos.NewUserTokenRepo(db, log)
	productRepo := repos.NewProductRepo(db, log)
	cartItemRepo := repos.NewCartItemRepo(db, log)
	wishlistItemRepo := repos.NewWishlistItemRepo(db, log)
	activityEventRepo := repos.NewActivityEventRepo(db, log)

	activityService := services.NewActivityService(db, log, activityEventRepo)
	authService := services.NewAuthService(db, log, userRepo, userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
	catalogService := services.NewCatalogService(db, log, productRepo, nil, activityService)
	cartService := services.NewCartService(db, log, cartItemRepo, productRepo, activityService)
	wishlistService := services.NewWishlistService(db, log, wishlistItemRepo, productRepo, activityService)

	router := NewRouter(RouterConfig{
		AuthHandler:     handlers.NewAuthHandler(authService),
		AuthMiddleware:  middleware.NewAuthMiddleware(log, authService),
		ProductHandler:  handlers.NewProductHandler(catalogService),
		CartHandler:     handlers.NewCartHandler(cartService),
		WishlistHandler: handlers.NewWishlistHandler(wishlistService),
		ActivityHandler: handlers.NewActivityHandler(activityService),
		ServiceName:     "storefront-backend-test",
	})
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// registerAndLogin runs the real register and login endpoints and
// returns the access token for the new user.
func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":     email,
		"password":  "hunter22",
		"firstName": "Test",
		"lastName":  "User",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "hunter22",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var pair services.TokenPair
	decodeBody(t, rec, &pair)
	if pair.AccessToken == "" {
		t.Fatalf("login returned empty access token")
	}
	return pair.AccessToken
}

func TestHealthcheck(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthcheck", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthcheck status = %d", rec.Code)
	}
}

func TestCartRoutesRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/cart", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated GET /api/cart status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/api/cart", "not-a-token", gin.H{"productId": "x"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token POST /api/cart status = %d", rec.Code)
	}
}

func TestCartFlow(t *testing.T) {
	router, db := newTestRouter(t)
	ctx := context.Background()
	token := registerAndLogin(t, router, "shopper@example.com")
	product := testutil.SeedProduct(t, ctx, db, "Desk Lamp", 30, true)

	rec := doJSON(t, router, http.MethodPost, "/api/cart", token, gin.H{
		"productId": product.ID,
		"quantity":  2,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add to cart status = %d, body %s", rec.Code, rec.Body.String())
	}
	var summary types.CartSummary
	decodeBody(t, rec, &summary)
	if summary.Count != 2 || summary.Total != 60 {
		t.Fatalf("summary after add = count %d total %v", summary.Count, summary.Total)
	}

	// Adding the same product again merges into the existing line.
	rec = doJSON(t, router, http.MethodPost, "/api/cart", token, gin.H{"productId": product.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("second add status = %d", rec.Code)
	}
	decodeBody(t, rec, &summary)
	if len(summary.Items) != 1 || summary.Count != 3 {
		t.Fatalf("summary after merge = %d items, count %d", len(summary.Items), summary.Count)
	}

	itemID := summary.Items[0].ID
	rec = doJSON(t, router, http.MethodPatch, "/api/cart/"+itemID, token, gin.H{"quantity": 0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("zero quantity update status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPatch, "/api/cart/"+types.NewID(), token, gin.H{"quantity": 2})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown item update status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/cart/"+itemID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove item status = %d", rec.Code)
	}
	decodeBody(t, rec, &summary)
	if summary.Count != 0 || summary.Total != 0 {
		t.Fatalf("summary after remove = count %d total %v", summary.Count, summary.Total)
	}
}

func TestAddUnknownProductToCart(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerAndLogin(t, router, "shopper@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/cart", token, gin.H{"productId": types.NewID()})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown product add status = %d, body %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, "/api/cart", token, gin.H{"productId": "short"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed product id add status = %d", rec.Code)
	}
}

func TestAdminProductGate(t *testing.T) {
	router, db := newTestRouter(t)
	token := registerAndLogin(t, router, "user@example.com")

	body := gin.H{
		"name":     "Monitor",
		"category": "electronics",
		"type":     "display",
		"price":    199.99,
	}
	rec := doJSON(t, router, http.MethodPost, "/api/products", token, body)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin create status = %d, body %s", rec.Code, rec.Body.String())
	}

	// Role is read from the user row on every request, so promoting the
	// user takes effect without reissuing the token.
	if err := db.Model(&types.User{}).Where("email = ?", "user@example.com").
		Update("role", types.RoleAdmin.String()).Error; err != nil {
		t.Fatalf("promote user: %v", err)
	}
	rec = doJSON(t, router, http.MethodPost, "/api/products", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created types.Product
	decodeBody(t, rec, &created)
	if created.ID == "" || created.Name != "Monitor" {
		t.Fatalf("created product = %+v", created)
	}

	// The new product is publicly listable without a token.
	rec = doJSON(t, router, http.MethodGet, "/api/products", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public list status = %d", rec.Code)
	}
	var page types.ProductPage
	decodeBody(t, rec, &page)
	if page.Total != 1 {
		t.Fatalf("public list total = %d", page.Total)
	}
}

func TestWishlistRoutes(t *testing.T) {
	router, db := newTestRouter(t)
	ctx := context.Background()
	token := registerAndLogin(t, router, "shopper@example.com")
	product := testutil.SeedProduct(t, ctx, db, "Headphones", 80, true)

	rec := doJSON(t, router, http.MethodPost, "/api/wishlist", token, gin.H{"productId": product.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("wishlist add status = %d, body %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, "/api/wishlist", token, gin.H{"productId": product.ID})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate wishlist add status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/wishlist/"+product.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("wishlist remove status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/wishlist/"+product.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second wishlist remove status = %d", rec.Code)
	}
}
