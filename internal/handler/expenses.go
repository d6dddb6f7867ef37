package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phuoclv264/katrina-one-sub004/internal/dto"
	"github.com/phuoclv264/katrina-one-sub004/internal/service"
)

type ExpensesHandler struct{ svc service.ExpenseService }

func NewExpensesHandler(svc service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{svc: svc}
}

// Create godoc
// @Summary Records an expense slip for a business day
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Business date (YYYY-MM-DD)"
// @Param body body dto.ExpenseSlipRequest true "Expense slip"
// @Success 201 {object} dto.ExpenseSlipResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/shifts/{date}/expenses [post]
func (h *ExpensesHandler) Create(c *gin.Context) {
	period, ok := periodParam(c)
	if !ok {
		return
	}
	var req dto.ExpenseSlipRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), period, actorFromClaims(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ExpensesHandler) List(c *gin.Context) {
	period, ok := periodParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), period)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExpensesHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.ExpenseSlipRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, actorFromClaims(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExpensesHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, actorFromClaims(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
