package state

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("user already exists")
)

type ReminderStore interface {
	CreateReminder(ctx context.Context, rec ReminderRecord) (ReminderRecord, error)
	ListReminders(ctx context.Context, userID string) ([]ReminderRecord, error)
	ListUncompleted(ctx context.Context, userID string) ([]ReminderRecord, error)
	DeleteReminder(ctx context.Context, userID, id string) error
	SetCompleted(ctx context.Context, userID, id string, completed bool) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user UserRecord) (UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (UserRecord, bool, error)
	GetUser(ctx context.Context, id string) (UserRecord, bool, error)
}

type Store interface {
	ReminderStore
	UserStore
}
