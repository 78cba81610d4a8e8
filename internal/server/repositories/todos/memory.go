package todos

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository used by tests and by the
// server when no database DSN is configured. Documents keep insertion
// order, which matches the (created_at, id) ordering of the Postgres
// implementation.
type MemoryRepository struct {
	mu    sync.Mutex
	items []models.Todo

	// now is a seam for tests that need deterministic timestamps.
	now func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []models.Todo
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *MemoryRepository) Create(ctx context.Context, ownerID, text string, completed bool) (models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := models.Todo{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Text:      text,
		Completed: completed,
		CreatedAt: r.now().UTC(),
	}
	r.items = append(r.items, item)
	return item, nil
}

func (r *MemoryRepository) SetCompleted(ctx context.Context, id string, completed bool) (models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Completed = completed
			return r.items[i], nil
		}
	}
	return models.Todo{}, common.ErrorNotFound
}

func (r *MemoryRepository) Toggle(ctx context.Context, id string) (models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Completed = !r.items[i].Completed
			return r.items[i], nil
		}
	}
	return models.Todo{}, common.ErrorNotFound
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}
