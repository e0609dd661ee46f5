package todo

import "time"

type CreateTodoInput struct {
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle"`
	Status   *Status `json:"status"`
}

type UpdateTodoInput struct {
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	Status   *Status `json:"status"`
}

type ReplaceTodoInput struct {
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle"`
	Status   Status  `json:"status"`
}

type CreateItemInput struct {
	Content     string     `json:"content"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
}

type UpdateItemInput struct {
	Content     *string    `json:"content"`
	IsCompleted *bool      `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
}

type ReplaceItemInput struct {
	Content     string     `json:"content"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
}

// CreateTodoWithItemsInput is the POST /todos body: a todo plus an optional
// initial batch of items.
type CreateTodoWithItemsInput struct {
	Todo  CreateTodoInput   `json:"todo"`
	Items []CreateItemInput `json:"items"`
}

type ListTodosQuery struct {
	Title *string
	Limit int
	Skip  int
}

type CountTodosQuery struct {
	Title *string
}

type ListTodosResult struct {
	Data  []Todo `json:"data"`
	Total int64  `json:"total"`
	Limit int    `json:"limit"`
	Skip  int    `json:"skip"`
}

type ListItemsQuery struct {
	Content *string
	Limit   int
	Skip    int
}

type CountResult struct {
	Count int64 `json:"count"`
}
