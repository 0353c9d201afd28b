package repository

import (
	"testing"
	"time"
)

func TestNewCatalogRejectsEmpty(t *testing.T) {
	if _, err := NewCatalog(nil); err == nil {
		t.Fatal("expected error for empty property list")
	}
}

func TestNewCatalogRejectsBadIDs(t *testing.T) {
	props := DefaultFixture().Generate(time.Now())
	props[1].ID = props[0].ID
	if _, err := NewCatalog(props); err == nil {
		t.Fatal("expected error for duplicate id")
	}

	props = DefaultFixture().Generate(time.Now())
	props[2].ID = ""
	if _, err := NewCatalog(props); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestCatalogLookup(t *testing.T) {
	props := DefaultFixture().Generate(time.Now())
	catalog, err := NewCatalog(props)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	if catalog.Size() != len(props) {
		t.Errorf("Size() = %d, want %d", catalog.Size(), len(props))
	}

	got, ok := catalog.GetByID("prop-special-001")
	if !ok {
		t.Fatal("GetByID(prop-special-001) not found")
	}
	if got.ID != "prop-special-001" {
		t.Errorf("GetByID returned id %q", got.ID)
	}

	if _, ok := catalog.GetByID("no-such-id"); ok {
		t.Error("GetByID(no-such-id) unexpectedly found")
	}
}

func TestCatalogAllPreservesOrder(t *testing.T) {
	props := DefaultFixture().Generate(time.Now())
	catalog, err := NewCatalog(props)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	all := catalog.All()
	if len(all) != len(props) {
		t.Fatalf("All() returned %d properties, want %d", len(all), len(props))
	}
	for i := range all {
		if all[i].ID != props[i].ID {
			t.Fatalf("All()[%d].ID = %q, want %q", i, all[i].ID, props[i].ID)
		}
	}
}
