// Package api implements the HTTP client for the todo service. It speaks
// the JSON contract of the server and maps HTTP failures onto the shared
// sentinel errors so callers can reconcile state with errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/client/models"
	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// Client is the transport contract the state controller depends on.
type Client interface {
	List(ctx context.Context, ownerID string) ([]models.Todo, error)
	Create(ctx context.Context, ownerID, text string) (models.Todo, error)
	SetCompleted(ctx context.Context, id string, completed bool) (models.Todo, error)
	Delete(ctx context.Context, id string) error
}

type createRequest struct {
	Text    string `json:"text"`
	OwnerID string `json:"ownerId"`
}

type updateRequest struct {
	Completed bool `json:"completed"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// HTTPClient is the production Client implementation.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient constructs a client for the API at baseURL. Every request
// is bounded by timeout; a timed-out request surfaces as a store error.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) List(ctx context.Context, ownerID string) ([]models.Todo, error) {
	var items []models.Todo
	err := c.do(ctx, http.MethodGet, "/api/todos/"+url.PathEscape(ownerID), nil, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) Create(ctx context.Context, ownerID, text string) (models.Todo, error) {
	var item models.Todo
	err := c.do(ctx, http.MethodPost, "/api/todos", createRequest{Text: text, OwnerID: ownerID}, &item)
	if err != nil {
		return models.Todo{}, err
	}
	return item, nil
}

func (c *HTTPClient) SetCompleted(ctx context.Context, id string, completed bool) (models.Todo, error) {
	var item models.Todo
	err := c.do(ctx, http.MethodPut, "/api/todos/"+url.PathEscape(id), updateRequest{Completed: completed}, &item)
	if err != nil {
		return models.Todo{}, err
	}
	return item, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+url.PathEscape(id), nil, nil)
}

// do sends one JSON request and decodes the response into out (when out is
// non-nil). Non-2xx statuses become sentinel errors carrying the server's
// message: 400 validation, 404 not-found, anything else a store error.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var msg messageResponse
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		if msg.Message == "" {
			msg.Message = resp.Status
		}
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", msg.Message, common.ErrorNotFound)
		case http.StatusBadRequest:
			return fmt.Errorf("%s: %w", msg.Message, common.ErrorValidation)
		default:
			return fmt.Errorf("%s: %w", msg.Message, common.ErrorStore)
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
