// Package services holds the application services of the todo server.
// Services validate input, delegate to repositories and map failures onto
// the shared sentinel errors.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
)

// TodoService exposes the four operations over the persisted todo
// collection. List is owner-scoped; SetCompleted, Toggle and Delete look the
// document up by id alone. That unscoped lookup reproduces the historical
// wire contract and means any authenticated caller holding an id can mutate
// the document — a known weakness of the contract, kept for compatibility.
type TodoService struct {
	repo todos.Repository
}

func NewTodoService(repo todos.Repository) *TodoService {
	return &TodoService{repo: repo}
}

// List returns every todo owned by ownerID in creation order.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]models.Todo, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("owner id is required: %w", common.ErrorValidation)
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create persists a new todo and returns the stored document including its
// store-assigned id. Text and owner id must be non-blank.
func (s *TodoService) Create(ctx context.Context, ownerID, text string, completed bool) (models.Todo, error) {
	if strings.TrimSpace(ownerID) == "" {
		return models.Todo{}, fmt.Errorf("owner id is required: %w", common.ErrorValidation)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Todo{}, fmt.Errorf("text is required: %w", common.ErrorValidation)
	}
	return s.repo.Create(ctx, ownerID, text, completed)
}

// SetCompleted sets the completed flag of the todo with the given id.
func (s *TodoService) SetCompleted(ctx context.Context, id string, completed bool) (models.Todo, error) {
	return s.repo.SetCompleted(ctx, id, completed)
}

// Toggle flips the completed flag of the todo with the given id.
func (s *TodoService) Toggle(ctx context.Context, id string) (models.Todo, error) {
	return s.repo.Toggle(ctx, id)
}

// Delete removes the todo with the given id. The removal is a hard delete;
// a second call for the same id reports ErrorNotFound.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
