package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/alexanderramin/horae/internal/artifact"
)

// MemStore is an in-memory artifact.Store for tests. It applies the
// same token precondition rules as the real stores and supports error
// injection at precise points so save-failure paths can be exercised
// without a network.
type MemStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	versions map[string]int64

	// GetErr/PutErr, when set, fail the next matching call once.
	GetErr error
	PutErr error

	// PutCount counts successful writes.
	PutCount int

	// OnPut, when set, runs at the start of each Put, before the
	// precondition check. Used to interleave work mid round trip.
	OnPut func()
}

func NewMemStore() *MemStore {
	return &MemStore{
		data:     make(map[string][]byte),
		versions: make(map[string]int64),
	}
}

// Seed stores content under key without precondition checks and returns
// the resulting token.
func (s *MemStore) Seed(key string, data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), data...)
	s.versions[key]++
	return strconv.FormatInt(s.versions[key], 10)
}

// Bump advances the version under key without changing content,
// simulating a concurrent writer invalidating outstanding tokens.
func (s *MemStore) Bump(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[key]++
}

func (s *MemStore) Get(ctx context.Context, key string) (*artifact.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		err := s.GetErr
		s.GetErr = nil
		return nil, err
	}
	data, ok := s.data[key]
	if !ok {
		return nil, artifact.ErrNotFound
	}
	return &artifact.Document{
		Data:  append([]byte(nil), data...),
		Token: strconv.FormatInt(s.versions[key], 10),
	}, nil
}

func (s *MemStore) Put(ctx context.Context, key string, data []byte, precondition string) (string, error) {
	if s.OnPut != nil {
		s.OnPut()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		err := s.PutErr
		s.PutErr = nil
		return "", err
	}

	version := s.versions[key]
	_, exists := s.data[key]
	if !exists {
		if precondition != "" {
			return "", fmt.Errorf("%w: artifact %q no longer exists", artifact.ErrConflict, key)
		}
	} else if precondition != strconv.FormatInt(version, 10) {
		return "", fmt.Errorf("%w: expected version %d", artifact.ErrConflict, version)
	}

	s.data[key] = append([]byte(nil), data...)
	s.versions[key] = version + 1
	s.PutCount++
	return strconv.FormatInt(version+1, 10), nil
}

var _ artifact.Store = (*MemStore)(nil)
