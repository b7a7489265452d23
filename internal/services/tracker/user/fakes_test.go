package user

import (
	"context"
	"sort"
	"sync"

	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
)

type fakeStore struct {
	mu     sync.Mutex
	users  map[string]User
	putErr error
	getErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]User{}}
}

func (s *fakeStore) PutUser(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return storage.ErrAlreadyExists
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *fakeStore) GetUser(_ context.Context, userID string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return User{}, s.getErr
	}
	u, ok := s.users[userID]
	if !ok {
		return User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *fakeStore) GetUserByUsername(_ context.Context, username string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return User{}, s.getErr
	}
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, storage.ErrNotFound
}

func (s *fakeStore) ListUsers(context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

type countingHasher struct {
	inner    Hasher
	compares int
}

func (h *countingHasher) Hash(raw string) (string, error) { return h.inner.Hash(raw) }

func (h *countingHasher) Compare(hash, raw string) error {
	h.compares++
	return h.inner.Compare(hash, raw)
}
