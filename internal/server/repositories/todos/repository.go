package todos

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Repository is the persistence contract for todo documents. Each method is
// a single, isolated store operation; there are no cross-document
// transactions.
//
// ListByOwner is scoped by owner. SetCompleted, Toggle and Delete look a
// document up by id alone, matching the historical wire contract.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error)
	Create(ctx context.Context, ownerID, text string, completed bool) (models.Todo, error)
	SetCompleted(ctx context.Context, id string, completed bool) (models.Todo, error)
	Toggle(ctx context.Context, id string) (models.Todo, error)
	Delete(ctx context.Context, id string) error
}
