package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type createTodoRequest struct {
	Text      string `json:"text"`
	OwnerID   string `json:"ownerId"`
	Completed bool   `json:"completed"`
}

// updateTodoRequest carries the desired completed value. When the field is
// omitted the stored value is flipped, which serves older client
// generations that sent a bare toggle.
type updateTodoRequest struct {
	Completed *bool `json:"completed"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/todos", func(r chi.Router) {
		r.Post("/", s.handleCreateTodo)
		r.Get("/{ownerID}", s.handleListTodos)
		r.Put("/{id}", s.handleUpdateTodo)
		r.Delete("/{id}", s.handleDeleteTodo)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	items, err := s.todos.List(r.Context(), ownerID)
	if err != nil {
		s.writeError(w, r, err, "error fetching todos")
		return
	}
	if items == nil {
		// an empty collection is an empty array on the wire, never null
		items = []models.Todo{}
	}
	s.writeJSON(w, r, http.StatusOK, items)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var input createTodoRequest
	if err := s.decodeJSON(w, r, &input); err != nil {
		s.writeMessage(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.todos.Create(r.Context(), input.OwnerID, input.Text, input.Completed)
	if err != nil {
		s.writeError(w, r, err, "error creating todo")
		return
	}

	s.writeJSON(w, r, http.StatusCreated, item)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input updateTodoRequest
	if err := s.decodeJSONTolerant(w, r, &input); err != nil {
		s.writeMessage(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var item models.Todo
	var err error
	if input.Completed != nil {
		item, err = s.todos.SetCompleted(r.Context(), id, *input.Completed)
	} else {
		item, err = s.todos.Toggle(r.Context(), id)
	}
	if err != nil {
		s.writeError(w, r, err, "error updating todo")
		return
	}

	s.writeJSON(w, r, http.StatusOK, item)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.todos.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "error deleting todo")
		return
	}

	s.writeJSON(w, r, http.StatusOK, messageResponse{Message: "todo deleted"})
}

// decodeJSON limits the request body size and parses it strictly: a single
// JSON object with no unknown fields.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return s.decodeBody(w, r, dst, false)
}

// decodeJSONTolerant parses like decodeJSON but ignores unknown fields.
// Older clients PUT the entire todo document rather than just the completed
// flag, so the update path must not reject extra keys.
func (s *Server) decodeJSONTolerant(w http.ResponseWriter, r *http.Request, dst any) error {
	return s.decodeBody(w, r, dst, true)
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any, allowUnknown bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	if !allowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// writeError maps service failures onto the wire: validation errors are the
// caller's fault, missing documents are 404, everything else is a store
// failure reported with the given fallback message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		s.writeMessage(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		s.writeMessage(w, r, http.StatusNotFound, "todo not found")
	default:
		s.logger.Error(r.Context(), fallback, "error", err)
		s.writeMessage(w, r, http.StatusInternalServerError, fallback)
	}
}

func (s *Server) writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, r, status, messageResponse{Message: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(r.Context(), "json encode error", "error", err)
	}
}
