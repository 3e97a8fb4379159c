package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"securities/src/api/controllers"
	"securities/src/config"
	"securities/src/sessions"
	"securities/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	Controller *controllers.Controller
	Logger     *logrus.Logger
}

func NewHandler(db *gorm.DB, store sessions.Store, cfg *config.Config, logger *logrus.Logger) *Handler {
	return &Handler{
		Controller: controllers.NewController(db, store, cfg),
		Logger:     logger,
	}
}

// LoggerToContext makes the service logger reachable from every request
// context, so controllers and repositories can log without holding a
// reference themselves.
func (h *Handler) LoggerToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(utils.WithLogger(r.Context(), h.Logger)))
	})
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors maps the error taxonomy onto HTTP statuses and renders a
// single JSON error object. Unauthorized stays detail-free.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var (
		validationErr  *utils.ValidationError
		referentialErr *utils.ReferentialError
		notFoundErr    *utils.NotFoundError
		storageErr     *utils.StorageError
		httpErr        *utils.HTTPError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	case errors.Is(err, utils.ErrUnauthorized):
		h.respond(w, nil, map[string]string{"error": "Unauthorized"}, http.StatusUnauthorized)
	case errors.As(err, &validationErr):
		h.respond(w, nil, map[string]string{
			"error": validationErr.Message,
			"field": validationErr.Field,
		}, http.StatusUnprocessableEntity)
	case errors.As(err, &referentialErr):
		h.respond(w, nil, map[string]string{"error": referentialErr.Error()}, http.StatusUnprocessableEntity)
	case errors.As(err, &notFoundErr):
		h.respond(w, nil, map[string]string{"error": notFoundErr.Error()}, http.StatusNotFound)
	case errors.As(err, &storageErr):
		// Transactional, nothing partial persisted, the client may retry.
		h.respond(w, nil, map[string]string{"error": "Internal Server Error"}, http.StatusInternalServerError)
	case errors.As(err, &httpErr):
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	case err != nil:
		h.respond(w, nil, map[string]string{"error": "Internal Server Error"}, http.StatusInternalServerError)
	default:
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

// uintParam parses a numeric id from the route.
func uintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, utils.BadRequest("invalid " + name + " parameter")
	}
	return uint(id), nil
}

// decodeOneOrMany accepts either a single JSON object or a JSON array of
// objects, so time-series rows can be appended one at a time or in bulk.
func decodeOneOrMany[T any](body io.Reader) ([]T, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, utils.BadRequest("could not read request body")
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return nil, utils.BadRequest("invalid request body")
		}
		return many, nil
	}

	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, utils.BadRequest("invalid request body")
	}
	return []T{one}, nil
}

func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
