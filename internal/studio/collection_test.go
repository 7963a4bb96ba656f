package studio

import (
	"fmt"
	"testing"

	"lumina/internal/domain"
)

func TestCollectionCapacity(t *testing.T) {
	c := NewCollection()
	for i := 0; i < MaxAssets; i++ {
		if _, err := c.Add(fmt.Sprintf("jewel-%d.png", i), "image/png", []byte("data")); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}
	if c.Count() != MaxAssets {
		t.Fatalf("expected %d assets, got %d", MaxAssets, c.Count())
	}

	_, err := c.Add("overflow.png", "image/png", []byte("data"))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error at capacity, got %v", err)
	}
	if c.Count() != MaxAssets {
		t.Fatalf("expected collection unchanged, got %d", c.Count())
	}
}

func TestCollectionRejectsEmptyData(t *testing.T) {
	c := NewCollection()
	if _, err := c.Add("empty.png", "image/png", nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCollectionRemoveFreesCapacity(t *testing.T) {
	c := NewCollection()
	var ids []string
	for i := 0; i < MaxAssets; i++ {
		asset, err := c.Add(fmt.Sprintf("jewel-%d.png", i), "image/png", []byte("data"))
		if err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
		ids = append(ids, asset.ID)
	}

	if err := c.Remove(ids[1]); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := c.Add("replacement.png", "image/png", []byte("data")); err != nil {
		t.Fatalf("expected capacity after removal, got %v", err)
	}

	if err := c.Remove("missing"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown id, got %v", err)
	}
}

func TestCollectionClassification(t *testing.T) {
	c := NewCollection()
	asset, err := c.Add("jewel.png", "image/png", []byte("data"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := c.SetClassification(asset.ID, domain.Classification("Coroa")); !domain.IsValidation(err) {
		t.Fatalf("expected rejection of unknown classification, got %v", err)
	}
	if err := c.SetClassification(asset.ID, domain.ClassificationNecklace); err != nil {
		t.Fatalf("SetClassification: %v", err)
	}

	items := c.Items()
	if len(items) != 1 || items[0].Classification != domain.ClassificationNecklace {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestCollectionItemsReturnsCopy(t *testing.T) {
	c := NewCollection()
	if _, err := c.Add("jewel.png", "image/png", []byte("data")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	items := c.Items()
	items[0].Classification = domain.ClassificationRing
	if c.Items()[0].Classification != domain.ClassificationNone {
		t.Fatal("expected internal state to be isolated from returned slice")
	}
}
