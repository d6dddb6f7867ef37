package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phuoclv264/katrina-one-sub004/internal/apierror"
	"github.com/phuoclv264/katrina-one-sub004/internal/dto"
	"github.com/phuoclv264/katrina-one-sub004/internal/infra"
	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/service"
)

type HandoverHandler struct {
	svc       service.HandoverService
	ocrClient *infra.OCRClient
	cb        *infra.CircuitBreaker
}

func NewHandoverHandler(svc service.HandoverService, ocrClient *infra.OCRClient, cb *infra.CircuitBreaker) *HandoverHandler {
	return &HandoverHandler{svc: svc, ocrClient: ocrClient, cb: cb}
}

// DailySummary godoc
// @Summary Returns the day's derived cash figures
// @Tags handover
// @Produce json
// @Security BearerAuth
// @Param date path string true "Business date (YYYY-MM-DD)"
// @Success 200 {object} dto.DailySummaryResponse
// @Router /v1/shifts/{date}/summary [get]
func (h *HandoverHandler) DailySummary(c *gin.Context) {
	period, ok := periodParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.DailySummary(c.Request.Context(), period, deviceID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HandoverHandler) Status(c *gin.Context) {
	period, ok := periodParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Status(c.Request.Context(), period)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HandoverHandler) ListCounts(c *gin.Context) {
	period, ok := periodParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListCounts(c.Request.Context(), period)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCount godoc
// @Summary Records a physical cash count against the live expectation
// @Tags handover
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Business date (YYYY-MM-DD)"
// @Param body body dto.CashCountRequest true "Counted cash"
// @Success 201 {object} dto.CashCountResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/shifts/{date}/counts [post]
func (h *HandoverHandler) CreateCount(c *gin.Context) {
	period, ok := periodParam(c)
	if !ok {
		return
	}
	var req dto.CashCountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateCount(c.Request.Context(), period, deviceID(c), actorFromClaims(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HandoverHandler) UpdateCount(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.CashCountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateCount(c.Request.Context(), id, actorFromClaims(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HandoverHandler) DeleteCount(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCount(c.Request.Context(), id, actorFromClaims(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Compare godoc
// @Summary Compares live figures against the printed receipt
// @Tags handover
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Business date (YYYY-MM-DD)"
// @Param body body dto.CompareRequest true "Receipt figures"
// @Success 200 {object} dto.ComparisonResponse
// @Router /v1/shifts/{date}/handover/compare [post]
func (h *HandoverHandler) Compare(c *gin.Context) {
	period, ok := periodParam(c)
	if !ok {
		return
	}
	var req dto.CompareRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Compare(c.Request.Context(), period, deviceID(c), req.Receipt.ToModel())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Finalize godoc
// @Summary Finalizes the day's handover and locks the business date
// @Tags handover
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Business date (YYYY-MM-DD)"
// @Param body body dto.FinalizeRequest true "Receipt figures"
// @Success 200 {object} dto.CashCountResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/shifts/{date}/handover/finalize [post]
func (h *HandoverHandler) Finalize(c *gin.Context) {
	period, ok := periodParam(c)
	if !ok {
		return
	}
	var req dto.FinalizeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Finalize(c.Request.Context(), period, deviceID(c), actorFromClaims(c), req.Receipt.ToModel())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ParseReceipt godoc
// @Summary Extracts receipt figures from a photo via the OCR sidecar
// @Tags handover
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Business date (YYYY-MM-DD)"
// @Param body body dto.ParseReceiptRequest true "Photo reference"
// @Success 200 {object} dto.ParseReceiptResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/shifts/{date}/handover/receipt/parse [post]
func (h *HandoverHandler) ParseReceipt(c *gin.Context) {
	period, ok := periodParam(c)
	if !ok {
		return
	}
	var req dto.ParseReceiptRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var result *infra.OCRResponse
	cbErr := h.cb.Execute(func() error {
		resp, err := h.ocrClient.ParseReceipt(c.Request.Context(), infra.OCRRequest{
			PhotoID:      req.PhotoID,
			BusinessDate: period.String(),
		})
		if err != nil {
			return err
		}
		result = resp
		return nil
	})
	if cbErr != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("receipt parsing is temporarily unavailable"))
		return
	}

	c.JSON(http.StatusOK, dto.ParseReceiptResponse{
		Reading:    readingToRequest(result.Reading),
		Confidence: result.Confidence,
		Warnings:   result.Warnings,
	})
}

// readingToRequest echoes the parsed figures in the same shape the compare
// and finalize endpoints accept, so clients can pass them straight back.
func readingToRequest(r model.ReceiptReading) dto.ReceiptReadingRequest {
	return dto.ReceiptReadingRequest{
		ExpectedCash:          r.ExpectedCash,
		StartOfDayCash:        r.StartOfDayCash,
		CashExpense:           r.CashExpense,
		CashRevenue:           r.CashRevenue,
		CashRefund:            r.CashRefund,
		DeliveryPartnerPayout: r.DeliveryPartnerPayout,
		RevenueBankTransfer:   r.RevenueBankTransfer,
		RevenueShopeeFood:     r.RevenueShopeeFood,
		RevenueGrabFood:       r.RevenueGrabFood,
		RevenueOther:          r.RevenueOther,
		OtherRefund:           r.OtherRefund,
	}
}
