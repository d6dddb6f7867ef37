package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phuoclv264/katrina-one-sub004/internal/dto"
	"github.com/phuoclv264/katrina-one-sub004/internal/service"
)

type IncidentsHandler struct{ svc service.IncidentService }

func NewIncidentsHandler(svc service.IncidentService) *IncidentsHandler {
	return &IncidentsHandler{svc: svc}
}

func (h *IncidentsHandler) Create(c *gin.Context) {
	period, ok := periodParam(c)
	if !ok {
		return
	}
	var req dto.IncidentRequest
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

func (h *IncidentsHandler) List(c *gin.Context) {
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

func (h *IncidentsHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.IncidentRequest
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

func (h *IncidentsHandler) Delete(c *gin.Context) {
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
