package chat

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/RichardoC/chatbot-core/internal/llm"
	"github.com/RichardoC/chatbot-core/internal/models"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// Defaults is the configuration every lazily created session starts from.
type Defaults struct {
	APIKey         string
	Model          models.Model
	StartMessage   string
	HistoryEnabled bool
	Client         llm.Completer
	Logger         *zap.Logger
}

// Registry maps user identifiers to their sessions.
type Registry struct {
	defaults Defaults

	mu       sync.RWMutex
	sessions map[UserID]*Session
}

type RegistryOption func(*Defaults)

func WithDefaultModel(model models.Model) RegistryOption {
	return func(d *Defaults) { d.Model = model }
}

func WithDefaultStartMessage(content string) RegistryOption {
	return func(d *Defaults) { d.StartMessage = content }
}

func WithDefaultHistory(enabled bool) RegistryOption {
	return func(d *Defaults) { d.HistoryEnabled = enabled }
}

func WithRegistryCompleter(client llm.Completer) RegistryOption {
	return func(d *Defaults) { d.Client = client }
}

func WithRegistryLogger(logger *zap.Logger) RegistryOption {
	return func(d *Defaults) { d.Logger = logger }
}

func NewRegistry(apiKey string, opts ...RegistryOption) *Registry {
	d := Defaults{
		APIKey:         apiKey,
		Model:          models.DefaultModel,
		HistoryEnabled: true,
	}
	for _, opt := range opts {
		opt(&d)
	}
	if d.StartMessage == "" {
		d.StartMessage = models.DefaultStartMessage
	}
	if d.Client == nil {
		d.Client = llm.NewHTTPClient()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Registry{
		defaults: d,
		sessions: make(map[UserID]*Session),
	}
}

// Defaults returns the shared session configuration.
func (r *Registry) Defaults() Defaults {
	return r.defaults
}

// createSession must be called with r.mu held for writing.
func (r *Registry) createSession(id UserID) *Session {
	s := NewSession(r.defaults.APIKey,
		WithUserID(id),
		WithStartMessage(r.defaults.StartMessage),
		WithModel(r.defaults.Model),
		WithHistory(r.defaults.HistoryEnabled),
		WithCompleter(r.defaults.Client),
		WithLogger(r.defaults.Logger),
	)
	r.sessions[id] = s
	r.defaults.Logger.Debug("session created", zap.String("user_id", string(id)))
	return s
}

// Connect returns the session for id, creating it on first contact.
func (r *Registry) Connect(id UserID) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		return s
	}
	return r.createSession(id)
}

func (r *Registry) GetSession(id UserID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	return s, ok
}

// AddSession registers s, replacing any session with the same user id.
func (r *Registry) AddSession(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.UserID()] = s
}

func (r *Registry) RemoveSession(id UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("remove %q: %w", id, ErrSessionNotFound)
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// UserIDs returns the registered identifiers in sorted order.
func (r *Registry) UserIDs() []UserID {
	r.mu.RLock()
	ids := make([]UserID, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
