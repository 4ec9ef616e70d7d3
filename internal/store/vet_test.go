package store_test

import (
	"errors"
	"testing"

	"github.com/crawlfrontier/frontier/internal/store"
)

func TestVetOK(t *testing.T) {
	t.Parallel()

	got := store.Result{Inserted: 1}
	err := store.Vet("new_site", got, store.Counts{Inserted: store.Exactly(1)})
	if err != nil {
		t.Fatalf("Vet() = %v, want nil", err)
	}
}

func TestVetIgnoresNilFields(t *testing.T) {
	t.Parallel()

	got := store.Result{Inserted: 1, Replaced: 7}
	err := store.Vet("new_site", got, store.Counts{Inserted: store.Exactly(1)})
	if err != nil {
		t.Fatalf("Vet() = %v, want nil (Replaced unchecked)", err)
	}
}

func TestVetMismatch(t *testing.T) {
	t.Parallel()

	got := store.Result{Replaced: 0}
	err := store.Vet("update_page", got, store.Counts{Replaced: store.AnyOf(1)})

	var unexpected *store.UnexpectedResultError
	if !errors.As(err, &unexpected) {
		t.Fatalf("Vet() = %v, want *UnexpectedResultError", err)
	}
	if unexpected.Field != "replaced" || unexpected.Got != 0 {
		t.Errorf("got %+v", unexpected)
	}
}

func TestVetAnyOfAcceptsEitherValue(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1} {
		got := store.Result{Replaced: n}
		if err := store.Vet("complete_page", got, store.Counts{Replaced: store.AnyOf(0, 1)}); err != nil {
			t.Errorf("Vet() with Replaced=%d = %v, want nil", n, err)
		}
	}
}
