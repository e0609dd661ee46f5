package todo

import "time"

// Status is the lifecycle state of a Todo. Deleted rows stay in the table;
// every default read path filters them out.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}

type Todo struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle,omitempty"`
	Status   Status  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Loaded on demand; nil when the relation was not requested.
	Items []Item `json:"items,omitempty"`
}

func (t *Todo) Deleted() bool {
	return t.Status == StatusDeleted
}

type Item struct {
	ID          int64      `json:"id"`
	Content     string     `json:"content"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TodoID int64 `json:"todoId"`
}
