package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/docsync/internal/server/relay"
	"github.com/iudanet/docsync/pkg/api"
)

//go:generate moq -out syncer_mock.go . Syncer

// maxSyncBody ограничение размера тела sync запроса
const maxSyncBody = 16 << 20

// Syncer обрабатывает sync запрос
type Syncer interface {
	Sync(ctx context.Context, req api.SyncRequest) (*api.SyncResponse, error)
}

// SyncHandler handles synchronization requests
type SyncHandler struct {
	logger *slog.Logger
	syncer Syncer
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, syncer Syncer) *SyncHandler {
	return &SyncHandler{
		logger: logger,
		syncer: syncer,
	}
}

// HandleSync обрабатывает POST /api/v1/sync.
// Принимает записи клиента по всем его комнатам и возвращает чужие записи.
func (h *SyncHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	var req api.SyncRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSyncBody))
	if err := dec.Decode(&req); err != nil {
		h.logger.Warn("Failed to decode sync request", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	resp, err := h.syncer.Sync(r.Context(), req)
	if err != nil {
		if errors.Is(err, relay.ErrInvalidRequest) {
			h.logger.Warn("Rejected sync request", "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "invalid sync request", err.Error())
			return
		}
		h.logger.Error("Failed to process sync request", "rooms", len(req.Rooms), "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error", "")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, resp)

	h.logger.Debug("Sync completed", "rooms", len(req.Rooms))
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg, detail string) {
	writeJSON(w, logger, status, api.ErrorResponse{Error: msg, Message: detail})
}
