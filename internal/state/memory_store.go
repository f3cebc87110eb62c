package state

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps users and reminders in process memory. Reminders are held
// in insertion order per user so list results are deterministic.
type MemoryStore struct {
	mu        sync.Mutex
	users     map[string]UserRecord
	reminders map[string][]ReminderRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]UserRecord),
		reminders: make(map[string][]ReminderRecord),
	}
}

func (m *MemoryStore) CreateReminder(_ context.Context, rec ReminderRecord) (ReminderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	m.reminders[rec.UserID] = append(m.reminders[rec.UserID], rec)
	return rec, nil
}

func (m *MemoryStore) ListReminders(_ context.Context, userID string) ([]ReminderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ReminderRecord, len(m.reminders[userID]))
	copy(out, m.reminders[userID])
	return out, nil
}

func (m *MemoryStore) ListUncompleted(_ context.Context, userID string) ([]ReminderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ReminderRecord, 0, len(m.reminders[userID]))
	for _, rec := range m.reminders[userID] {
		if !rec.Completed {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *MemoryStore) DeleteReminder(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := m.reminders[userID]
	for i, rec := range recs {
		if rec.ID == id {
			m.reminders[userID] = append(recs[:i:i], recs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) SetCompleted(_ context.Context, userID, id string, completed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := m.reminders[userID]
	for i := range recs {
		if recs[i].ID == id {
			recs[i].Completed = completed
			recs[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) CreateUser(_ context.Context, user UserRecord) (UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range m.users {
		if u.Email == email {
			return UserRecord{}, ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = email
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (UserRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return UserRecord{}, false, nil
}

func (m *MemoryStore) GetUser(_ context.Context, id string) (UserRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	return u, ok, nil
}
