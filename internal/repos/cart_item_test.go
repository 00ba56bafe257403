package repos

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/repos/testutil"
	"github.com/yungbote/storefront-backend/internal/types"
)

func TestCartItemRepoUniquePair(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewCartItemRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db, "cart@example.com", "user")
	product := testutil.SeedProduct(t, ctx, db, "Mug", 12, true)

	first := &types.CartItem{ID: types.NewID(), UserID: user.ID, ProductID: product.ID, Quantity: 1}
	if _, err := repo.Create(ctx, nil, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := &types.CartItem{ID: types.NewID(), UserID: user.ID, ProductID: product.ID, Quantity: 2}
	if _, err := repo.Create(ctx, nil, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate pair err=%v, want gorm.ErrDuplicatedKey", err)
	}

	// same product in another user's cart is fine
	other := testutil.SeedUser(t, ctx, db, "other@example.com", "user")
	ok := &types.CartItem{ID: types.NewID(), UserID: other.ID, ProductID: product.ID, Quantity: 1}
	if _, err := repo.Create(ctx, nil, ok); err != nil {
		t.Fatalf("Create for other user: %v", err)
	}
}

func TestCartItemRepoScopedOps(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewCartItemRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db, "a@example.com", "user")
	intruder := testutil.SeedUser(t, ctx, db, "b@example.com", "user")
	p1 := testutil.SeedProduct(t, ctx, db, "P1", 10, true)
	p2 := testutil.SeedProduct(t, ctx, db, "P2", 5, true)

	i1 := testutil.SeedCartItem(t, ctx, db, user.ID, p1.ID, 2)
	testutil.SeedCartItem(t, ctx, db, user.ID, p2.ID, 1)

	items, err := repo.GetByUserID(ctx, nil, user.ID)
	if err != nil || len(items) != 2 {
		t.Fatalf("GetByUserID len=%d err=%v", len(items), err)
	}

	if _, err := repo.GetByIDForUser(ctx, nil, i1.ID, intruder.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("cross-user fetch err=%v, want ErrRecordNotFound", err)
	}

	got, err := repo.GetByUserAndProduct(ctx, nil, user.ID, p1.ID)
	if err != nil || got.ID != i1.ID {
		t.Fatalf("GetByUserAndProduct got=%v err=%v", got, err)
	}

	if err := repo.UpdateQuantity(ctx, nil, i1.ID, 7); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	got, err = repo.GetByIDForUser(ctx, nil, i1.ID, user.ID)
	if err != nil || got.Quantity != 7 {
		t.Fatalf("quantity=%d err=%v, want 7", got.Quantity, err)
	}

	rows, err := repo.DeleteByIDForUser(ctx, nil, i1.ID, intruder.ID)
	if err != nil || rows != 0 {
		t.Fatalf("cross-user delete rows=%d err=%v, want 0", rows, err)
	}
	rows, err = repo.DeleteByIDForUser(ctx, nil, i1.ID, user.ID)
	if err != nil || rows != 1 {
		t.Fatalf("owner delete rows=%d err=%v, want 1", rows, err)
	}

	if err := repo.DeleteByUserID(ctx, nil, user.ID); err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}
	// clearing an already-empty cart is not an error
	if err := repo.DeleteByUserID(ctx, nil, user.ID); err != nil {
		t.Fatalf("DeleteByUserID on empty: %v", err)
	}
}
