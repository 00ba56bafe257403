package testutil

import (
	"context"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a fresh in-memory sqlite database per test, migrated to the
// full schema, with the same TranslateError setting the runtime store
// uses so duplicate-key behavior matches.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Product{},
		&types.CartItem{},
		&types.WishlistItem{},
		&types.ActivityEvent{},
	); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func SeedUser(tb testing.TB, ctx context.Context, db *gorm.DB, email, role string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        types.NewID(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Role:      role,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProduct(tb testing.TB, ctx context.Context, db *gorm.DB, name string, price float64, active bool) *types.Product {
	tb.Helper()
	p := &types.Product{
		ID:       types.NewID(),
		Name:     name,
		Category: "general",
		Type:     "basic",
		Price:    price,
		IsActive: active,
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedCartItem(tb testing.TB, ctx context.Context, db *gorm.DB, userID, productID string, quantity int) *types.CartItem {
	tb.Helper()
	item := &types.CartItem{
		ID:        types.NewID(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := db.WithContext(ctx).Create(item).Error; err != nil {
		tb.Fatalf("seed cart item: %v", err)
	}
	return item
}

func SeedWishlistItem(tb testing.TB, ctx context.Context, db *gorm.DB, userID, productID string) *types.WishlistItem {
	tb.Helper()
	item := &types.WishlistItem{
		ID:        types.NewID(),
		UserID:    userID,
		ProductID: productID,
	}
	if err := db.WithContext(ctx).Create(item).Error; err != nil {
		tb.Fatalf("seed wishlist item: %v", err)
	}
	return item
}
