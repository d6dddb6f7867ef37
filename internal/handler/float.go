package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phuoclv264/katrina-one-sub004/internal/dto"
	"github.com/phuoclv264/katrina-one-sub004/internal/service"
)

type FloatHandler struct{ svc service.FloatService }

func NewFloatHandler(svc service.FloatService) *FloatHandler {
	return &FloatHandler{svc: svc}
}

// Get godoc
// @Summary Returns the effective start-of-day cash for this device and date
// @Tags float
// @Produce json
// @Security BearerAuth
// @Param date path string true "Business date (YYYY-MM-DD)"
// @Param X-Device-ID header string false "POS device identifier"
// @Success 200 {object} dto.FloatResponse
// @Router /v1/shifts/{date}/float [get]
func (h *FloatHandler) Get(c *gin.Context) {
	period, ok := periodParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), deviceID(c), period)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Set godoc
// @Summary Overrides the start-of-day cash for this device and date
// @Tags float
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Business date (YYYY-MM-DD)"
// @Param X-Device-ID header string false "POS device identifier"
// @Param body body dto.SetFloatRequest true "Float override"
// @Success 200 {object} dto.FloatResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/shifts/{date}/float [put]
func (h *FloatHandler) Set(c *gin.Context) {
	period, ok := periodParam(c)
	if !ok {
		return
	}
	var req dto.SetFloatRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Set(c.Request.Context(), deviceID(c), period, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
