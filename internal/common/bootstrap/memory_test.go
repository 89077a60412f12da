package bootstrap_test

import (
	"context"
	"sort"
	"sync"

	newsdomain "github.com/waitlist-site/backend/internal/news/domain"
	userdomain "github.com/waitlist-site/backend/internal/user/domain"
	visitdomain "github.com/waitlist-site/backend/internal/visit/domain"
	visitrepo "github.com/waitlist-site/backend/internal/visit/repository"
)

type memoryUsers struct {
	mu    sync.Mutex
	users []userdomain.User
}

func (m *memoryUsers) Create(ctx context.Context, user userdomain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, user)
	return nil
}

func (m *memoryUsers) ListNewestFirst(ctx context.Context) ([]userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]userdomain.User{}, m.users...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type memoryVisits struct {
	mu      sync.Mutex
	counter *visitdomain.Counter
}

func (m *memoryVisits) Increment(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counter == nil {
		m.counter = &visitdomain.Counter{ID: "site"}
	}
	m.counter.Count++
	return m.counter.Count, nil
}

func (m *memoryVisits) Get(ctx context.Context) (visitdomain.Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counter == nil {
		return visitdomain.Counter{}, visitrepo.ErrCounterNotFound
	}
	return *m.counter, nil
}

type memoryNews struct {
	mu    sync.Mutex
	posts []newsdomain.Post
}

func (m *memoryNews) Create(ctx context.Context, post newsdomain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append(m.posts, post)
	return nil
}

func (m *memoryNews) ListNewestFirst(ctx context.Context) ([]newsdomain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]newsdomain.Post{}, m.posts...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
