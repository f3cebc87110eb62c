package state

import "time"

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ReminderRecord is the stored shape of a reminder. ID is assigned by the
// store on create and is immutable afterwards.
type ReminderRecord struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Title     string    `bson:"title" json:"title"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	URL       string    `bson:"url,omitempty" json:"url,omitempty"`
	Date      string    `bson:"date,omitempty" json:"date,omitempty"`
	Time      string    `bson:"time,omitempty" json:"time,omitempty"`
	Priority  string    `bson:"priority" json:"priority"`
	Tag       string    `bson:"tag,omitempty" json:"tag,omitempty"`
	List      string    `bson:"list,omitempty" json:"list,omitempty"`
	Completed bool      `bson:"completed" json:"completed"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type UserRecord struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// ValidPriority reports whether p is one of the three stored priority levels.
func ValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}
