package users

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is an in-memory credential store keyed by username.
type InMemoryRepo struct {
	mu      sync.RWMutex
	users   map[string]*User
	nowTime func() time.Time
}

// InMemoryRepoOption defines a function type to modify the InMemoryRepo instance.
type InMemoryRepoOption func(*InMemoryRepo)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) InMemoryRepoOption {
	return func(r *InMemoryRepo) {
		r.nowTime = nowFunc
	}
}

func NewInMemoryRepo(options ...InMemoryRepoOption) *InMemoryRepo {
	repo := &InMemoryRepo{
		users:   make(map[string]*User),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(repo)
	}
	return repo
}

func (r *InMemoryRepo) Register(username, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; ok {
		return errors.Wrap(ErrDuplicateUser, "[InMemoryRepo.Register]")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return errors.Wrap(err, "[InMemoryRepo.Register] HashPassword")
	}

	r.users[username] = &User{
		Username:     username,
		PasswordHash: hash,
		DateJoined:   r.nowTime(),
	}
	return nil
}

func (r *InMemoryRepo) Verify(username, password string) bool {
	r.mu.RLock()
	user, ok := r.users[username]
	r.mu.RUnlock()

	if !ok {
		return false
	}
	return CheckPasswordHash(password, user.PasswordHash)
}

func (r *InMemoryRepo) Exists(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[username]
	return ok
}

func (r *InMemoryRepo) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]*User)
}
