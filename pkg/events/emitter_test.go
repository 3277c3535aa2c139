package events

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu       sync.Mutex
	failures int
	subjects []string
	payloads [][]byte
	closed   bool
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("nats: connection closed")
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func (f *fakePublisher) Close() { f.closed = true }

var fastRetry = Options{MaxAttempts: 3, InitialInterval: time.Millisecond}

func TestEmitter_PublishesRunEvents(t *testing.T) {
	pub := &fakePublisher{}
	e := NewEmitter(pub, "kenobase", fastRetry)

	require.NoError(t, e.EmitRunStarted("hot6-1700000000", map[string]int{"k": 6}))
	require.NoError(t, e.EmitUnevaluated("hot6-1700000000", 4))

	require.Len(t, pub.payloads, 2)
	assert.Equal(t, []string{"kenobase.run", "kenobase.run"}, pub.subjects)

	var ev RunEvent
	require.NoError(t, json.Unmarshal(pub.payloads[1], &ev))
	assert.Equal(t, TypeUnevaluated, ev.Type)
	assert.Equal(t, "hot6-1700000000", ev.Run)
	assert.Equal(t, map[string]any{"count": float64(4)}, ev.Data)
	assert.Positive(t, ev.Timestamp)

	e.Close()
	assert.True(t, pub.closed)
}

func TestEmitter_RetriesTransientFailures(t *testing.T) {
	pub := &fakePublisher{failures: 2}
	e := NewEmitter(pub, "kb", fastRetry)

	require.NoError(t, e.EmitRunCompleted("r", map[string]string{"covered": "1"}))
	assert.Len(t, pub.payloads, 1)
}

func TestEmitter_GivesUpAfterMaxAttempts(t *testing.T) {
	pub := &fakePublisher{failures: 10}
	e := NewEmitter(pub, "kb", fastRetry)

	assert.Error(t, e.EmitRunStarted("r", nil))
	assert.Equal(t, 7, pub.failures)
}

func TestNoopEmitter(t *testing.T) {
	e := NewNoopEmitter()
	assert.NoError(t, e.EmitRunStarted("r", nil))
	assert.NoError(t, e.EmitRunCompleted("r", nil))
	assert.NoError(t, e.EmitUnevaluated("r", 1))
	e.Close()
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(subject string, data []byte) error {
	return m.Called(subject, data).Error(0)
}

func (m *mockPublisher) Close() { m.Called() }

func TestEmitter_RetryWithMock(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("Publish", "kb.run", mock.Anything).Return(errors.New("timeout")).Once()
	pub.On("Publish", "kb.run", mock.MatchedBy(func(data []byte) bool {
		var ev RunEvent
		return json.Unmarshal(data, &ev) == nil && ev.Type == TypeRunCompleted && ev.Run == "r1"
	})).Return(nil).Once()
	pub.On("Close").Return().Once()

	e := NewEmitter(pub, "kb", fastRetry)
	require.NoError(t, e.EmitRunCompleted("r1", nil))
	e.Close()

	pub.AssertExpectations(t)
}
