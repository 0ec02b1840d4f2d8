// Package chat keeps per-user conversation state with a remote model.
//
// A Registry hands out one Session per user id. Each Session owns a linear
// history that always starts with a system message, and allows a single
// in-flight turn at a time.
package chat

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/RichardoC/chatbot-core/internal/llm"
	"github.com/RichardoC/chatbot-core/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorReply is returned to the caller whenever the remote exchange fails.
const ErrorReply = "An error occurred while processing your request."

// UserID identifies the owner of a session.
type UserID string

func IntUserID(id int64) UserID {
	return UserID(strconv.FormatInt(id, 10))
}

const defaultUserID UserID = "1"

// Session holds one user's linear conversation with a remote model.
type Session struct {
	userID         UserID
	apiKey         string
	model          models.Model
	historyEnabled bool
	client         llm.Completer
	logger         *zap.Logger

	// turnMu serializes mutations of a session, network call included.
	turnMu sync.Mutex

	mu      sync.RWMutex
	history []models.Message
}

type SessionOption func(*Session)

func WithUserID(id UserID) SessionOption {
	return func(s *Session) { s.userID = id }
}

// WithStartMessage sets the system persona; empty keeps the default.
func WithStartMessage(content string) SessionOption {
	return func(s *Session) { s.history = []models.Message{models.NewStartMessage(content)} }
}

func WithModel(model models.Model) SessionOption {
	return func(s *Session) { s.model = model }
}

// WithHistory controls whether assistant replies are kept in the history.
func WithHistory(enabled bool) SessionOption {
	return func(s *Session) { s.historyEnabled = enabled }
}

func WithCompleter(client llm.Completer) SessionOption {
	return func(s *Session) { s.client = client }
}

func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

func NewSession(apiKey string, opts ...SessionOption) *Session {
	s := &Session{
		userID:         defaultUserID,
		apiKey:         apiKey,
		model:          models.DefaultModel,
		historyEnabled: true,
		history:        []models.Message{models.NewStartMessage("")},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = llm.NewHTTPClient()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

func (s *Session) UserID() UserID { return s.userID }
func (s *Session) Model() models.Model { return s.model }
func (s *Session) HistoryEnabled() bool { return s.historyEnabled }

// Len returns the number of messages in the history.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// Messages returns a copy of the history.
func (s *Session) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Snapshot returns the wire form of the history, in conversation order.
func (s *Session) Snapshot() []models.Payload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Payload, len(s.history))
	for i, m := range s.history {
		out[i] = m.Payload()
	}
	return out
}

func (s *Session) AppendMessage(role models.Role, content string) {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()
	s.append(models.NewMessage(role, content))
}

func (s *Session) append(msg models.Message) {
	s.mu.Lock()
	s.history = append(s.history, msg)
	s.mu.Unlock()
}

// ClearHistory resets the history to a single default start message. A
// custom start message given at construction is not restored.
func (s *Session) ClearHistory() {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()

	s.mu.Lock()
	s.history = []models.Message{models.NewStartMessage("")}
	s.mu.Unlock()
}

// RequestTurn sends userText with the full history and returns the cleaned
// assistant reply. Failures never surface as errors: they are logged and
// ErrorReply is returned. The user message stays in the history either way.
func (s *Session) RequestTurn(ctx context.Context, userText string) string {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()

	logger := s.logger.With(
		zap.String("user_id", string(s.userID)),
		zap.String("turn_id", uuid.NewString()),
		zap.String("model", s.model.String()),
	)

	s.append(models.UserMessage(userText))

	reply, err := s.client.Complete(ctx, s.apiKey, s.model, s.Snapshot())
	if err != nil {
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) {
			logger.Error("completion request rejected",
				zap.Int("status_code", statusErr.StatusCode),
				zap.String("body", statusErr.Body))
		} else {
			logger.Error("completion request failed", zap.Error(err))
		}
		return ErrorReply
	}

	content, err := llm.StripThink(reply.Content)
	if err != nil {
		logger.Error("failed to clean completion", zap.Error(err))
		return ErrorReply
	}

	if s.historyEnabled {
		s.append(models.NewMessage(reply.Role, content))
	}
	logger.Debug("turn completed", zap.Int("history_len", s.Len()))
	return content
}

// Equal compares s with a *Session or a raw user identifier. ok is false
// when other is of a type that cannot be compared with a session.
func (s *Session) Equal(other any) (equal, ok bool) {
	switch v := other.(type) {
	case *Session:
		if v == nil {
			return false, false
		}
		return s.userID == v.userID, true
	case UserID:
		return s.userID == v, true
	case string:
		return s.userID == UserID(v), true
	case int:
		return s.userID == IntUserID(int64(v)), true
	case int64:
		return s.userID == IntUserID(v), true
	default:
		return false, false
	}
}
