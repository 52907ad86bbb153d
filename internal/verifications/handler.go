package verifications

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/celestina-app/celestina/pkg/handlers"
	"github.com/celestina-app/celestina/pkg/pagination"
	"github.com/celestina-app/celestina/pkg/routes"
)

// maxBatchSize caps how many messages a single batch request may carry.
const maxBatchSize = 100

// Handler provides HTTP endpoints for verification operations.
type Handler struct {
	sys          System
	logger       *slog.Logger
	pagination   pagination.Config
	historyLimit int
}

// SearchRequest combines pagination and filter criteria for the search
// endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// BatchRequest carries the commands for a batch verification.
type BatchRequest struct {
	Messages []VerifyCommand `json:"messages"`
}

// NewHandler creates a Handler with the given system, logger, pagination
// config, and history limit applied when a history request supplies none.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	historyLimit int,
) *Handler {
	if historyLimit < 1 {
		historyLimit = DefaultHistoryLimit
	}
	return &Handler{
		sys:          sys,
		logger:       logger.With("handler", "verifications"),
		pagination:   pagination,
		historyLimit: historyLimit,
	}
}

// Routes returns the route group definition for verification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/verifications",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Verify},
			{Method: "POST", Pattern: "/batch", Handler: h.VerifyBatch},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/history/{userId}", Handler: h.History},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
		},
	}
}

// Verify classifies a message before sending and returns the recorded
// decision. The caller uses requires_confirmation and verified to decide
// whether to deliver, hold, or block the message.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var cmd VerifyCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := validateCommand(cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	v := h.sys.VerifyBeforeSend(r.Context(), cmd)
	handlers.RespondJSON(w, http.StatusCreated, v)
}

// VerifyBatch classifies up to maxBatchSize messages in one request.
// Each message is verified independently; result order matches input order.
func (h *Handler) VerifyBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if len(req.Messages) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			errors.New("messages cannot be empty"))
		return
	}
	if len(req.Messages) > maxBatchSize {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			errors.New("batch size exceeds limit"))
		return
	}

	for _, cmd := range req.Messages {
		if err := validateCommand(cmd); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
	}

	results := h.sys.VerifyBatch(r.Context(), req.Messages)
	handlers.RespondJSON(w, http.StatusCreated, results)
}

// History returns the most recent verification records for a user, newest
// first. An unknown user yields an empty list, never an error.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			errors.New("userId is required"))
		return
	}

	limit := h.historyLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	records := h.sys.History(r.Context(), userID, limit)
	handlers.RespondJSON(w, http.StatusOK, records)
}

// List returns a paginated list of verifications with optional query
// parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Search accepts a JSON body with pagination and filter criteria and returns
// matching verifications.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single verification by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	v, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// validateCommand enforces API-level requirements. The engine itself
// classifies any message, including empty ones, but a record without
// sender and recipient identities is not auditable.
func validateCommand(cmd VerifyCommand) error {
	if cmd.SenderID == "" {
		return errors.New("sender_id is required")
	}
	if cmd.RecipientID == "" {
		return errors.New("recipient_id is required")
	}
	return nil
}
