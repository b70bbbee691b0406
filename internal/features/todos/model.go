// ================== internal/features/todos/model.go ==================
package todos

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the lifecycle state of a todo
type Status string

const (
	StatusNotDone Status = "NOT_DONE"
	StatusDone    Status = "DONE"
	StatusPastDue Status = "PAST_DUE"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotDone, StatusDone, StatusPastDue:
		return true
	}
	return false
}

// Todo represents a todo item
// @Description Todo item with its lifecycle status
type Todo struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id" example:"507f1f77bcf86cd799439011"`
	Description      string             `bson:"description" json:"description" example:"Buy groceries"`
	Status           Status             `bson:"status" json:"status" example:"NOT_DONE" enums:"NOT_DONE,DONE,PAST_DUE"`
	CreationDatetime time.Time          `bson:"creationDatetime" json:"creationDatetime" example:"2025-01-01T00:00:00Z"`
	DueDatetime      time.Time          `bson:"dueDatetime" json:"dueDatetime" example:"2025-01-02T00:00:00Z"`
	DoneDatetime     *time.Time         `bson:"doneDatetime" json:"doneDatetime" example:"2025-01-01T12:00:00Z"`
}

// CreateTodoRequest represents todo creation data
// @Description Data required to create a new todo
type CreateTodoRequest struct {
	Description string `json:"description" binding:"required" example:"Buy groceries"`
	DueDatetime string `json:"dueDatetime" binding:"required" example:"2025-12-31T23:59:59Z"`
}

// UpdateDescriptionRequest represents a description change
// @Description New description for an existing todo
type UpdateDescriptionRequest struct {
	Description string `json:"description" binding:"required" example:"Buy groceries and fruit"`
}

// ListQuery holds the query parameters of GET /todos
type ListQuery struct {
	All string `form:"all"`
}

// Filter selects todos from the store. Zero fields match everything.
type Filter struct {
	Status    Status
	DueBefore *time.Time
}
