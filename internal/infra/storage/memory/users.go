package memory

import (
	"context"
	"strings"
	"sync"

	domainuser "roomfinder/internal/domain/user"
)

// UserRepository stores demo accounts in memory.
type UserRepository struct {
	mu      sync.RWMutex
	order   []domainuser.ID
	byID    map[domainuser.ID]*domainuser.User
	byEmail map[string]domainuser.ID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[domainuser.ID]*domainuser.User),
		byEmail: make(map[string]domainuser.ID),
	}
}

func (r *UserRepository) ByID(ctx context.Context, id domainuser.ID) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if account, ok := r.byID[id]; ok {
		return cloneUser(account), nil
	}
	return nil, domainuser.ErrNotFound
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[domainuser.NormalizeEmail(email)]
	if !ok {
		return nil, domainuser.ErrNotFound
	}
	if account, ok := r.byID[id]; ok {
		return cloneUser(account), nil
	}
	return nil, domainuser.ErrNotFound
}

func (r *UserRepository) Save(ctx context.Context, account *domainuser.User) error {
	if account == nil || strings.TrimSpace(string(account.ID)) == "" {
		return domainuser.ErrIDRequired
	}
	emailKey := domainuser.NormalizeEmail(account.Email)
	if emailKey == "" {
		return domainuser.ErrEmailRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, ok := r.byEmail[emailKey]; ok && existingID != account.ID {
		return domainuser.ErrEmailAlreadyUsed
	}
	if _, ok := r.byID[account.ID]; !ok {
		r.order = append(r.order, account.ID)
	}
	r.byEmail[emailKey] = account.ID
	r.byID[account.ID] = cloneUser(account)
	return nil
}

// List returns every account in insertion order.
func (r *UserRepository) List(ctx context.Context) ([]*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domainuser.User, 0, len(r.order))
	for _, id := range r.order {
		if account, ok := r.byID[id]; ok {
			result = append(result, cloneUser(account))
		}
	}
	return result, nil
}

// ReplaceAll swaps the directory content wholesale, as snapshot restores do.
func (r *UserRepository) ReplaceAll(ctx context.Context, users []*domainuser.User) error {
	order := make([]domainuser.ID, 0, len(users))
	byID := make(map[domainuser.ID]*domainuser.User, len(users))
	byEmail := make(map[string]domainuser.ID, len(users))
	for _, account := range users {
		if account == nil || strings.TrimSpace(string(account.ID)) == "" {
			return domainuser.ErrIDRequired
		}
		emailKey := domainuser.NormalizeEmail(account.Email)
		if emailKey == "" {
			return domainuser.ErrEmailRequired
		}
		if existingID, ok := byEmail[emailKey]; ok && existingID != account.ID {
			return domainuser.ErrEmailAlreadyUsed
		}
		if _, ok := byID[account.ID]; !ok {
			order = append(order, account.ID)
		}
		byEmail[emailKey] = account.ID
		byID[account.ID] = cloneUser(account)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = order
	r.byID = byID
	r.byEmail = byEmail
	return nil
}

func cloneUser(u *domainuser.User) *domainuser.User {
	if u == nil {
		return nil
	}
	copied := *u
	return &copied
}

var _ domainuser.Repository = (*UserRepository)(nil)
