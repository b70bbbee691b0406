// ================== internal/features/todos/handler.go ==================
package todos

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/duetodo/internal/pkg/response"
	apperrors "github.com/xyz-asif/duetodo/pkg/errors"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create godoc
// @Summary Create a new todo
// @Description Create a todo in NOT_DONE status with the given due date-time
// @Tags todos
// @Accept json
// @Produce json
// @Param request body CreateTodoRequest true "Todo creation data"
// @Success 201 {object} Todo
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /todos [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	due, err := ValidateCreateTodo(&req)
	if err != nil {
		response.ValidationFailed(c, apperrors.Message(err))
		return
	}

	todo, err := h.svc.Create(c.Request.Context(), req.Description, due)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, todo)
}

// List godoc
// @Summary List todos
// @Description List NOT_DONE todos, or every todo when all=true
// @Tags todos
// @Produce json
// @Param all query bool false "Return todos of every status (default: only NOT_DONE)"
// @Success 200 {array} Todo
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /todos [get]
func (h *Handler) List(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}

	includeAll, err := ValidateListQuery(&query)
	if err != nil {
		response.ValidationFailed(c, apperrors.Message(err))
		return
	}

	todos, err := h.svc.List(c.Request.Context(), includeAll)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, todos)
}

// Get godoc
// @Summary Get a todo by ID
// @Description Get a todo; a NOT_DONE todo past its due date-time is reported (and stored) as PAST_DUE
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} Todo
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /todos/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	todo, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, todo)
}

// UpdateDescription godoc
// @Summary Update a todo's description
// @Description Replace the description; rejected when the todo is past due
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body UpdateDescriptionRequest true "New description"
// @Success 200 {object} Todo
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /todos/{id}/description [patch]
func (h *Handler) UpdateDescription(c *gin.Context) {
	var req UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateUpdateDescription(&req); err != nil {
		response.ValidationFailed(c, apperrors.Message(err))
		return
	}

	todo, err := h.svc.UpdateDescription(c.Request.Context(), c.Param("id"), req.Description)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, todo)
}

// MarkDone godoc
// @Summary Mark a todo as done
// @Description Set status DONE and record the done date-time; rejected when the todo is past due
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} Todo
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /todos/{id}/mark-done [patch]
func (h *Handler) MarkDone(c *gin.Context) {
	todo, err := h.svc.MarkDone(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, todo)
}

// MarkNotDone godoc
// @Summary Mark a todo as not done
// @Description Set status NOT_DONE and clear the done date-time; rejected when the todo is past due
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} Todo
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /todos/{id}/mark-not-done [patch]
func (h *Handler) MarkNotDone(c *gin.Context) {
	todo, err := h.svc.MarkNotDone(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, todo)
}
