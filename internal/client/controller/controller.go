// Package controller holds the client's view of the todo list and keeps it
// reconciled with the server. Mutations follow two disciplines: toggles and
// deletes apply optimistically and roll back when the server disagrees,
// while creates wait for the server's stored document before the item
// appears at all.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/todokeeper/internal/client/api"
	"github.com/dmitrijs2005/todokeeper/internal/client/models"
	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// Controller owns the in-memory item list for one signed-in owner.
//
// The mutex guards only the local list, never a network round trip, so
// intents on different items may overlap freely. Each reconciliation step
// re-locates its item by id: by the time a response arrives another intent
// may have moved or removed the item, and a rollback must not resurrect
// what a concurrent delete already took out.
type Controller struct {
	mu      sync.Mutex
	api     api.Client
	ownerID string
	items   []models.Todo
}

func New(client api.Client) *Controller {
	return &Controller{api: client}
}

// Initialize binds the controller to ownerID and fetches that owner's
// items. On failure the list is left empty so the caller never renders
// another session's data; the error is returned for display.
func (c *Controller) Initialize(ctx context.Context, ownerID string) error {
	c.mu.Lock()
	c.ownerID = ownerID
	c.items = nil
	c.mu.Unlock()

	items, err := c.api.List(ctx, ownerID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ownerID != ownerID {
		// another session took over while the fetch was in flight
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading todos: %w", err)
	}
	c.items = items
	return nil
}

// SignOut drops the bound owner and all local items.
func (c *Controller) SignOut() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ownerID = ""
	c.items = nil
}

// Items returns a snapshot of the current list. Callers own the returned
// slice; later mutations do not write through it.
func (c *Controller) Items() []models.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Todo, len(c.items))
	copy(out, c.items)
	return out
}

// Refresh replaces the local list with the server's copy.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	ownerID := c.ownerID
	c.mu.Unlock()

	items, err := c.api.List(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("refreshing todos: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ownerID != ownerID {
		return nil
	}
	c.items = items
	return nil
}

// Create submits a new item and appends the stored document once the
// server confirms it. Blank text is rejected locally without a request.
func (c *Controller) Create(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("text must not be empty: %w", common.ErrorValidation)
	}

	c.mu.Lock()
	ownerID := c.ownerID
	c.mu.Unlock()

	item, err := c.api.Create(ctx, ownerID, text)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ownerID != ownerID {
		return nil
	}
	c.items = append(c.items, item)
	return nil
}

// ToggleCompletion flips an item's completion state locally, then asks the
// server for the same flip. On success the local copy is replaced with the
// server document. If the server no longer knows the item, the local copy
// is pruned; any other failure reverts the flip.
func (c *Controller) ToggleCompletion(ctx context.Context, id string) error {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("todo not found: %w", common.ErrorNotFound)
	}
	c.items[idx].Completed = !c.items[idx].Completed
	desired := c.items[idx].Completed
	c.mu.Unlock()

	item, err := c.api.SetCompleted(ctx, id, desired)

	c.mu.Lock()
	defer c.mu.Unlock()
	idx = c.indexOf(id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			if idx >= 0 {
				c.items = append(c.items[:idx], c.items[idx+1:]...)
			}
		} else if idx >= 0 {
			c.items[idx].Completed = !desired
		}
		return err
	}
	if idx >= 0 {
		c.items[idx] = item
	}
	return nil
}

// Delete removes an item locally, then asks the server to delete it. A
// not-found answer means the item was already gone, so the removal stands;
// any other failure reinserts the item at its original position.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("todo not found: %w", common.ErrorNotFound)
	}
	removed := c.items[idx]
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.mu.Unlock()

	err := c.api.Delete(ctx, id)
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(id) < 0 {
		if idx > len(c.items) {
			idx = len(c.items)
		}
		c.items = append(c.items[:idx], append([]models.Todo{removed}, c.items[idx:]...)...)
	}
	return err
}

// indexOf assumes c.mu is held.
func (c *Controller) indexOf(id string) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
