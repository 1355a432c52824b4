package upi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/brewandbean/cafe/utils"
)

// Status is the payment session state. Distinct from the record-level
// payment status: a session can expire while the order's payment simply
// stays pending.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusExpired Status = "expired"
)

var (
	ErrSessionNotFound = errors.New("payment session not found")
	ErrSessionClosed   = errors.New("payment session is no longer accepting payment")
)

type Session struct {
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
}

// VerifyResult is the payment gateway's answer for one transaction.
type VerifyResult struct {
	TransactionID string          `json:"transactionId"`
	Status        Status          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Timestamp     time.Time       `json:"timestamp"`
}

type Verifier interface {
	Verify(ctx context.Context, transactionID string) (VerifyResult, error)
}

// HTTPVerifier queries the configured verification endpoint.
type HTTPVerifier struct {
	endpoint string
	client   *http.Client
}

func NewHTTPVerifier(endpoint string) *HTTPVerifier {
	return &HTTPVerifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, transactionID string) (VerifyResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?transactionId=%s", v.endpoint, transactionID), nil)
	if err != nil {
		return VerifyResult{}, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verification endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	var result VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return VerifyResult{}, fmt.Errorf("failed to decode verification response: %w", err)
	}
	return result, nil
}

// Manager owns every open payment session. One session per checkout
// attempt: a session is discarded the moment it succeeds, fails, expires
// or is cancelled, so the map only ever holds open ones. A retry means a
// brand new transaction ID.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	verifier Verifier
	interval time.Duration
	pollCap  time.Duration
	ttl      time.Duration
}

func NewManager(verifier Verifier, interval, pollCap, ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		verifier: verifier,
		interval: interval,
		pollCap:  pollCap,
		ttl:      ttl,
	}
}

// Open creates a fresh session with a new transaction ID and starts its
// expiry countdown.
func (m *Manager) Open(amount decimal.Decimal) *Session {
	now := time.Now()
	s := &Session{
		TransactionID: utils.GenerateTransactionID(),
		Amount:        amount,
		Status:        StatusPending,
		CreatedAt:     now,
		ExpiresAt:     now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[s.TransactionID] = s
	m.mu.Unlock()
	return s
}

// Get returns a snapshot of the session. A session whose countdown has
// elapsed is reported expired once and discarded.
func (m *Manager) Get(transactionID string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[transactionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, transactionID)
		snap := *s
		snap.Status = StatusExpired
		return snap, nil
	}
	return *s, nil
}

// Cancel discards a session. Closing the payment dialog lands here.
func (m *Manager) Cancel(transactionID string) {
	m.mu.Lock()
	delete(m.sessions, transactionID)
	m.mu.Unlock()
}

// Poll repeatedly queries the verifier until the payment succeeds, fails,
// the poll cap elapses (treated as expired), or ctx is cancelled. A session
// whose countdown has run out rejects the poll outright; no further payment
// action is accepted for that transaction ID.
func (m *Manager) Poll(ctx context.Context, transactionID string) (Status, error) {
	if err := m.checkOpen(transactionID); err != nil {
		return StatusExpired, err
	}

	ctx, cancel := context.WithTimeout(ctx, m.pollCap)
	defer cancel()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// poll cap or caller cancellation: the session is done
			m.discard(transactionID)
			return StatusExpired, ctx.Err()
		case <-ticker.C:
			if err := m.checkOpen(transactionID); err != nil {
				return StatusExpired, err
			}

			result, err := m.verifier.Verify(ctx, transactionID)
			if err != nil {
				logrus.WithError(err).Warnf("payment verification attempt failed for %s", transactionID)
				continue
			}

			switch result.Status {
			case StatusSuccess:
				m.discard(transactionID)
				return StatusSuccess, nil
			case StatusFailed:
				m.discard(transactionID)
				return StatusFailed, nil
			}
		}
	}
}

// checkOpen rejects polls against missing or expired sessions; an expired
// one is discarded on the spot.
func (m *Manager) checkOpen(transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[transactionID]
	if !ok {
		return ErrSessionNotFound
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, transactionID)
		return ErrSessionClosed
	}
	return nil
}

func (m *Manager) discard(transactionID string) {
	m.mu.Lock()
	delete(m.sessions, transactionID)
	m.mu.Unlock()
}
