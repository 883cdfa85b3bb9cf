//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"realestate-marketplace/internal/domain"
	"realestate-marketplace/internal/domain/model"
	"realestate-marketplace/internal/usecase"
)

func seedOwner(t *testing.T, users *memUserRepo, id string, listings, badges int) {
	t.Helper()
	u := &model.User{
		ID: id, Name: "Asha", Email: id + "@example.com", Role: model.RoleUser,
		Listings: listings, PremiumBadging: badges,
	}
	if err := users.Save(context.Background(), u); err != nil {
		t.Fatalf("seed owner: %v", err)
	}
}

func listing(title string) *model.Property {
	return &model.Property{Title: title, Type: "flat", City: "Pune", Price: 6500000}
}

func TestPropertyUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("enforces the plan listing quota", func(t *testing.T) {
		// --- Arrange ---
		props := newMemPropertyRepo()
		users := newMemUserRepo()
		seedOwner(t, users, "user-1", 2, 0)
		uc := usecase.NewPropertyUseCase(props, users, newTestLogger())

		// --- Act / Assert ---
		for i := 0; i < 2; i++ {
			if _, err := uc.Create(ctx, "user-1", listing("Flat")); err != nil {
				t.Fatalf("listing %d: %v", i+1, err)
			}
		}
		_, err := uc.Create(ctx, "user-1", listing("One too many"))
		if !errors.Is(err, domain.ErrListingQuotaExceeded) {
			t.Fatalf("expected ErrListingQuotaExceeded, got %v", err)
		}
	})

	t.Run("premium badge requires badge quota", func(t *testing.T) {
		props := newMemPropertyRepo()
		users := newMemUserRepo()
		seedOwner(t, users, "user-1", 5, 0)
		uc := usecase.NewPropertyUseCase(props, users, newTestLogger())

		p := listing("Flat")
		p.Premium = true
		created, err := uc.Create(ctx, "user-1", p)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.Premium {
			t.Error("expected premium flag to be dropped without badge quota")
		}
	})

	t.Run("sold listings free up quota", func(t *testing.T) {
		props := newMemPropertyRepo()
		users := newMemUserRepo()
		seedOwner(t, users, "user-1", 1, 0)
		uc := usecase.NewPropertyUseCase(props, users, newTestLogger())

		created, err := uc.Create(ctx, "user-1", listing("Flat"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		created.Status = model.PropertyStatusSold
		if err := uc.Update(ctx, "user-1", created); err != nil {
			t.Fatalf("mark sold: %v", err)
		}

		if _, err := uc.Create(ctx, "user-1", listing("Next flat")); err != nil {
			t.Fatalf("expected quota freed after sale, got %v", err)
		}
	})
}

func TestPropertyUseCase_Ownership(t *testing.T) {
	ctx := context.Background()

	props := newMemPropertyRepo()
	users := newMemUserRepo()
	seedOwner(t, users, "user-1", 5, 0)
	seedOwner(t, users, "user-2", 5, 0)
	uc := usecase.NewPropertyUseCase(props, users, newTestLogger())

	created, err := uc.Create(ctx, "user-1", listing("Flat"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("a stranger cannot update", func(t *testing.T) {
		cp := *created
		cp.Title = "Hijacked"
		if err := uc.Update(ctx, "user-2", &cp); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("a stranger cannot delete", func(t *testing.T) {
		if err := uc.Delete(ctx, "user-2", created.ID); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("the owner can delete", func(t *testing.T) {
		if err := uc.Delete(ctx, "user-1", created.ID); err != nil {
			t.Fatalf("expected delete to succeed, got %v", err)
		}
	})
}
