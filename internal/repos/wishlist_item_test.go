package repos

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/repos/testutil"
	"github.com/yungbote/storefront-backend/internal/types"
)

func TestWishlistItemRepoUniquePair(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewWishlistItemRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db, "wish@example.com", "user")
	product := testutil.SeedProduct(t, ctx, db, "Poster", 15, true)

	if _, err := repo.Create(ctx, nil, &types.WishlistItem{ID: types.NewID(), UserID: user.ID, ProductID: product.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := repo.Create(ctx, nil, &types.WishlistItem{ID: types.NewID(), UserID: user.ID, ProductID: product.ID})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate pair err=%v, want gorm.ErrDuplicatedKey", err)
	}

	items, err := repo.GetByUserID(ctx, nil, user.ID)
	if err != nil || len(items) != 1 {
		t.Fatalf("GetByUserID len=%d err=%v, want original untouched", len(items), err)
	}
}

func TestWishlistItemRepoDeletes(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewWishlistItemRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db, "w2@example.com", "user")
	p1 := testutil.SeedProduct(t, ctx, db, "P1", 10, true)
	p2 := testutil.SeedProduct(t, ctx, db, "P2", 20, true)
	testutil.SeedWishlistItem(t, ctx, db, user.ID, p1.ID)
	testutil.SeedWishlistItem(t, ctx, db, user.ID, p2.ID)

	rows, err := repo.DeleteByUserAndProduct(ctx, nil, user.ID, p1.ID)
	if err != nil || rows != 1 {
		t.Fatalf("DeleteByUserAndProduct rows=%d err=%v", rows, err)
	}
	rows, err = repo.DeleteByUserAndProduct(ctx, nil, user.ID, p1.ID)
	if err != nil || rows != 0 {
		t.Fatalf("repeat delete rows=%d err=%v, want 0", rows, err)
	}

	if err := repo.DeleteByUserID(ctx, nil, user.ID); err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}
	items, err := repo.GetByUserID(ctx, nil, user.ID)
	if err != nil || len(items) != 0 {
		t.Fatalf("after clear len=%d err=%v", len(items), err)
	}
}
