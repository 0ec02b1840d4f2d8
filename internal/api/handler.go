package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RichardoC/chatbot-core/internal/chat"
	"github.com/RichardoC/chatbot-core/internal/models"
	"go.uber.org/zap"
)

type Handler struct {
	registry *chat.Registry
	logger   *zap.Logger
}

func NewHandler(registry *chat.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

type MessageRequest struct {
	Content string `json:"content"`
}

type MessageResponse struct {
	UserID chat.UserID `json:"user_id"`
	Reply  string      `json:"reply"`
}

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/message", h.HandleMessage)
	mux.HandleFunc("/api/messages", h.GetMessages)
	mux.HandleFunc("/api/sessions", h.Sessions)
	mux.HandleFunc("/api/sessions/clear", h.ClearSession)
	mux.HandleFunc("/api/models", h.GetModels)
}

func userID(r *http.Request) (chat.UserID, bool) {
	id := r.URL.Query().Get("user_id")
	return chat.UserID(id), id != ""
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := userID(r)
	if !ok {
		http.Error(w, "Missing user_id", http.StatusBadRequest)
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reply := h.registry.Connect(id).RequestTurn(r.Context(), req.Content)

	h.writeJSON(w, MessageResponse{UserID: id, Reply: reply})
}

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := userID(r)
	if !ok {
		http.Error(w, "Missing user_id", http.StatusBadRequest)
		return
	}

	session, ok := h.registry.GetSession(id)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, session.Snapshot())
}

// Sessions lists user ids on GET and removes one on DELETE.
func (h *Handler) Sessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ids := h.registry.UserIDs()
		h.logger.Debug("Retrieved sessions",
			zap.Int("count", len(ids)),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path))
		h.writeJSON(w, ids)

	case http.MethodDelete:
		id, ok := userID(r)
		if !ok {
			http.Error(w, "Missing user_id", http.StatusBadRequest)
			return
		}
		if err := h.registry.RemoveSession(id); err != nil {
			if errors.Is(err, chat.ErrSessionNotFound) {
				http.Error(w, "Session not found", http.StatusNotFound)
				return
			}
			h.logger.Error("Failed to remove session", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := userID(r)
	if !ok {
		http.Error(w, "Missing user_id", http.StatusBadRequest)
		return
	}

	session, ok := h.registry.GetSession(id)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	session.ClearHistory()

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, models.Models())
}
