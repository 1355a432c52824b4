package upi

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedVerifier struct {
	results []Status
	calls   int
}

func (v *scriptedVerifier) Verify(ctx context.Context, transactionID string) (VerifyResult, error) {
	status := StatusPending
	if v.calls < len(v.results) {
		status = v.results[v.calls]
	}
	v.calls++
	return VerifyResult{TransactionID: transactionID, Status: status, Timestamp: time.Now()}, nil
}

func newTestManager(v Verifier) *Manager {
	return NewManager(v, 5*time.Millisecond, 200*time.Millisecond, time.Minute)
}

func TestOpenCreatesFreshSession(t *testing.T) {
	m := newTestManager(&scriptedVerifier{})

	a := m.Open(decimal.RequireFromString("9.75"))
	b := m.Open(decimal.RequireFromString("9.75"))

	assert.NotEqual(t, a.TransactionID, b.TransactionID)
	assert.Equal(t, StatusPending, a.Status)
	assert.True(t, a.ExpiresAt.After(a.CreatedAt))
}

func TestPollSuccess(t *testing.T) {
	v := &scriptedVerifier{results: []Status{StatusPending, StatusPending, StatusSuccess}}
	m := newTestManager(v)
	s := m.Open(decimal.RequireFromString("9.75"))

	status, err := m.Poll(context.Background(), s.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)

	// a settled session is discarded, not retained
	_, err = m.Get(s.TransactionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPollFailure(t *testing.T) {
	v := &scriptedVerifier{results: []Status{StatusFailed}}
	m := newTestManager(v)
	s := m.Open(decimal.RequireFromString("4.50"))

	status, err := m.Poll(context.Background(), s.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, status)

	_, err = m.Get(s.TransactionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// The poll cap elapsing without a verdict ends the session as expired.
func TestPollCapExpires(t *testing.T) {
	m := NewManager(&scriptedVerifier{}, 5*time.Millisecond, 30*time.Millisecond, time.Minute)
	s := m.Open(decimal.RequireFromString("4.50"))

	status, err := m.Poll(context.Background(), s.TransactionID)
	assert.Error(t, err)
	assert.Equal(t, StatusExpired, status)

	_, err = m.Get(s.TransactionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// Once the session countdown elapses, further polls for that transaction
// ID are rejected regardless of what the gateway would say.
func TestExpiredSessionRejectsPolls(t *testing.T) {
	v := &scriptedVerifier{results: []Status{StatusSuccess}}
	m := NewManager(v, 5*time.Millisecond, 200*time.Millisecond, 10*time.Millisecond)
	s := m.Open(decimal.RequireFromString("9.75"))

	time.Sleep(20 * time.Millisecond)

	status, err := m.Poll(context.Background(), s.TransactionID)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Equal(t, StatusExpired, status)
	assert.Equal(t, 0, v.calls)

	_, err = m.Get(s.TransactionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// Reading an expired session reports it expired exactly once, then the
// discarded entry is gone.
func TestGetExpiredSessionReportsOnceThenDiscards(t *testing.T) {
	m := NewManager(&scriptedVerifier{}, 5*time.Millisecond, 200*time.Millisecond, 10*time.Millisecond)
	s := m.Open(decimal.RequireFromString("9.75"))

	time.Sleep(20 * time.Millisecond)

	got, err := m.Get(s.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, got.Status)

	_, err = m.Get(s.TransactionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// No terminal outcome may leave an entry behind in the manager.
func TestTerminalSessionsAreNotRetained(t *testing.T) {
	v := &scriptedVerifier{results: []Status{StatusFailed}}
	m := newTestManager(v)
	s := m.Open(decimal.RequireFromString("4.50"))

	_, err := m.Poll(context.Background(), s.TransactionID)
	require.NoError(t, err)

	m.mu.Lock()
	remaining := len(m.sessions)
	m.mu.Unlock()
	assert.Equal(t, 0, remaining)
}

func TestPollCancellation(t *testing.T) {
	m := newTestManager(&scriptedVerifier{})
	s := m.Open(decimal.RequireFromString("3.75"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Poll(ctx, s.TransactionID)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poll did not stop after cancellation")
	}
}

func TestCancelDiscardsSession(t *testing.T) {
	m := newTestManager(&scriptedVerifier{})
	s := m.Open(decimal.RequireFromString("3.75"))

	m.Cancel(s.TransactionID)

	_, err := m.Get(s.TransactionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = m.Poll(context.Background(), s.TransactionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
