package studio

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"lumina/internal/domain"
)

// MaxAssets is the capacity ceiling of a session's asset collection.
const MaxAssets = 4

// Collection holds the uploaded source images of one session. Additions
// beyond the capacity ceiling are rejected without mutation.
type Collection struct {
	mu    sync.Mutex
	items []domain.SourceAsset
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add registers a new source asset with an empty classification and a
// locally-unique identifier.
func (c *Collection) Add(filename, mime string, data []byte) (domain.SourceAsset, error) {
	if len(data) == 0 {
		return domain.SourceAsset{}, domain.ValidationError("asset data is empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) >= MaxAssets {
		return domain.SourceAsset{}, domain.ValidationError(fmt.Sprintf("asset limit of %d reached", MaxAssets))
	}
	asset := domain.SourceAsset{
		ID:             uuid.NewString(),
		Filename:       filename,
		MIME:           mime,
		Data:           data,
		Classification: domain.ClassificationNone,
		CreatedAt:      time.Now(),
	}
	c.items = append(c.items, asset)
	return asset, nil
}

// Remove deletes the asset with the given id.
func (c *Collection) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return domain.ValidationError("asset not found")
}

// SetClassification assigns a classification from the closed set.
func (c *Collection) SetClassification(id string, tag domain.Classification) error {
	if !domain.KnownClassification(tag) {
		return domain.ValidationError("unknown classification")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Classification = tag
			return nil
		}
	}
	return domain.ValidationError("asset not found")
}

// Items returns a copy of the current assets in insertion order.
func (c *Collection) Items() []domain.SourceAsset {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.SourceAsset, len(c.items))
	copy(out, c.items)
	return out
}

// Count reports the number of held assets.
func (c *Collection) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes every asset.
func (c *Collection) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
