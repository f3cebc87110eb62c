// Package dynamicdoapi holds the JSON wire types of the DynamicDo HTTP API,
// shared by the server and CLI clients.
package dynamicdoapi

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MeResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type CreateReminderRequest struct {
	Title    string `json:"title"`
	Notes    string `json:"notes,omitempty"`
	URL      string `json:"url,omitempty"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Priority string `json:"priority,omitempty"`
	List     string `json:"list,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

type Reminder struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Notes     string `json:"notes,omitempty"`
	URL       string `json:"url,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Priority  string `json:"priority"`
	Tag       string `json:"tag,omitempty"`
	List      string `json:"list,omitempty"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ListRemindersResponse struct {
	Reminders []Reminder `json:"reminders"`
}

type DeleteReminderRequest struct {
	ID string `json:"id"`
}

type CompleteReminderRequest struct {
	ID        string `json:"id"`
	Completed *bool  `json:"completed,omitempty"`
}

type RankRequest struct {
	Context string `json:"context,omitempty"`
	Debug   bool   `json:"debug,omitempty"`
}

type RankedReminder struct {
	Reminder
	Rank      float64 `json:"rank"`
	Reasoning string  `json:"reasoning,omitempty"`
}

type RankResponse struct {
	Reminders []RankedReminder `json:"reminders"`
	Count     int              `json:"count"`
	Message   string           `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
