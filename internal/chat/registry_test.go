package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/RichardoC/chatbot-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(opts ...RegistryOption) *Registry {
	opts = append([]RegistryOption{WithRegistryCompleter(orderedCompleter{})}, opts...)
	return NewRegistry(testAPIKey, opts...)
}

func TestConnectCreatesWithDefaults(t *testing.T) {
	r := newTestRegistry(WithDefaultModel(models.QwenQwQ32B), WithDefaultStartMessage("Test start message"))

	s := r.Connect(IntUserID(1))
	require.NotNil(t, s)
	assert.Equal(t, UserID("1"), s.UserID())
	assert.Equal(t, models.QwenQwQ32B, s.Model())
	assert.Equal(t, "Test start message", s.Messages()[0].Content())
	assert.Equal(t, testAPIKey, s.apiKey)

	_, ok := r.GetSession(IntUserID(1))
	assert.True(t, ok)
}

func TestRegistryDefaults(t *testing.T) {
	r := NewRegistry(testAPIKey)
	d := r.Defaults()
	assert.Equal(t, models.DeepSeekR1, d.Model)
	assert.Equal(t, models.DefaultStartMessage, d.StartMessage)
	assert.True(t, d.HistoryEnabled)

	s := r.Connect("u")
	assert.Equal(t, models.DefaultStartMessage, s.Messages()[0].Content())
}

func TestConnectReusesSession(t *testing.T) {
	r := newTestRegistry()
	a := r.Connect("3")
	b := r.Connect("3")
	c := r.Connect("4")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, r.Len())
}

func TestGetSessionNeverCreates(t *testing.T) {
	r := newTestRegistry()
	s, ok := r.GetSession("5")
	assert.Nil(t, s)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestAddSessionOverwrites(t *testing.T) {
	r := newTestRegistry()
	first := r.Connect("6")
	replacement := NewSession(testAPIKey, WithUserID("6"), WithStartMessage("other"))
	r.AddSession(replacement)

	got, ok := r.GetSession("6")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.NotSame(t, first, got)
}

func TestRemoveSession(t *testing.T) {
	r := newTestRegistry()
	r.Connect("7")
	require.NoError(t, r.RemoveSession("7"))

	_, ok := r.GetSession("7")
	assert.False(t, ok)

	err := r.RemoveSession("7")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUserIDsSorted(t *testing.T) {
	r := newTestRegistry()
	for _, id := range []UserID{"c", "a", "b"} {
		r.Connect(id)
	}
	assert.Equal(t, []UserID{"a", "b", "c"}, r.UserIDs())
}

func TestConnectConcurrentSameUser(t *testing.T) {
	r := newTestRegistry()

	const n = 100
	got := make([]*Session, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = r.Connect("same")
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
	assert.Equal(t, 1, r.Len())
}

// blockingCompleter holds turns for one user until released.
type blockingCompleter struct {
	blockFor string
	entered  chan struct{}
	release  chan struct{}
}

func (b *blockingCompleter) Complete(ctx context.Context, apiKey string, model models.Model, messages []models.Payload) (models.Payload, error) {
	if messages[len(messages)-1].Content == b.blockFor {
		close(b.entered)
		<-b.release
	}
	return orderedCompleter{}.Complete(ctx, apiKey, model, messages)
}

func TestTurnsForDifferentUsersDoNotBlock(t *testing.T) {
	bc := &blockingCompleter{blockFor: "slow", entered: make(chan struct{}), release: make(chan struct{})}
	r := NewRegistry(testAPIKey, WithRegistryCompleter(bc))

	slowDone := make(chan string)
	go func() { slowDone <- r.Connect("slow-user").RequestTurn(context.Background(), "slow") }()
	<-bc.entered

	fastDone := make(chan string)
	go func() { fastDone <- r.Connect("fast-user").RequestTurn(context.Background(), "fast") }()

	select {
	case reply := <-fastDone:
		assert.Equal(t, "re: fast", reply)
	case <-time.After(2 * time.Second):
		t.Fatal("turn for another user was blocked")
	}

	close(bc.release)
	assert.Equal(t, "re: slow", <-slowDone)
}
