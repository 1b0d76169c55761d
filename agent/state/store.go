package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	contractx "github.com/iquotehq/iquote/agent/contract"
)

var (
	ErrRequestNotFound = errors.New("pending request not found")
	ErrNilRequest      = errors.New("pending request is nil")
	ErrEmptyRequestID  = errors.New("request id is empty")
	ErrAlreadyTerminal = errors.New("pending request already terminal")
)

// Store is the pending-request table contract used by the coordinator.
type Store interface {
	Create(req *PendingRequest) error
	Advance(id string, st RequestState, now time.Time) error
	Complete(id string, st RequestState, result *contractx.ProposalResponse, now time.Time) error
	// Get returns a copy of the record. A record observed in a terminal state
	// is freed by the lookup; in-flight records stay retrievable.
	Get(id string) (*PendingRequest, bool)
}

// MemoryStore keeps pending requests in a single mutex-guarded map. Each
// entry is owned by the request that created it until handed to the caller,
// so one lock is enough at the write rates involved.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*PendingRequest
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*PendingRequest),
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Create(req *PendingRequest) error {
	if req == nil {
		return ErrNilRequest
	}
	if req.ID == "" {
		return ErrEmptyRequestID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[req.ID]; exists {
		return fmt.Errorf("duplicate request id %s", req.ID)
	}
	s.entries[req.ID] = req
	return nil
}

func (s *MemoryStore) Advance(id string, st RequestState, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRequestNotFound, id)
	}
	if req.State.Terminal() {
		return fmt.Errorf("%w: %s", ErrAlreadyTerminal, id)
	}
	req.State = st
	req.UpdatedAt = now.UTC()
	return nil
}

func (s *MemoryStore) Complete(id string, st RequestState, result *contractx.ProposalResponse, now time.Time) error {
	if !st.Terminal() {
		return fmt.Errorf("complete requires a terminal state, got %s", st)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRequestNotFound, id)
	}
	if req.State.Terminal() {
		return fmt.Errorf("%w: %s", ErrAlreadyTerminal, id)
	}
	req.State = st
	req.Result = result
	req.UpdatedAt = now.UTC()
	return nil
}

func (s *MemoryStore) Get(id string) (*PendingRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.entries[id]
	if !ok {
		return nil, false
	}

	snapshot := *req
	if req.State.Terminal() {
		delete(s.entries, id)
	}
	return &snapshot, true
}

// Len reports the number of tracked requests.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
