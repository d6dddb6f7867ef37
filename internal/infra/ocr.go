package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phuoclv264/katrina-one-sub004/internal/model"
)

// OCRRequest is sent to the OCR sidecar, which extracts the end-of-day
// figures from a photographed POS printout. PhotoID references an already
// uploaded image in object storage — the backend never handles raw bytes.
type OCRRequest struct {
	PhotoID      string `json:"photo_id"`
	BusinessDate string `json:"business_date"`
}

// OCRResponse is the sidecar's parse result. Confidence below ~0.8 usually
// means the cashier should re-photograph the receipt.
type OCRResponse struct {
	Reading    model.ReceiptReading `json:"reading"`
	Confidence float64              `json:"confidence"`
	Warnings   []string             `json:"warnings"`
}

// OCRClient is an HTTP client that delegates receipt parsing to the OCR
// sidecar. The decoupling isolates vision-model failures from the core
// backend; callers wrap calls in the shared circuit breaker.
type OCRClient struct {
	sidecarURL string
	httpClient *http.Client
}

func NewOCRClient(sidecarURL string) *OCRClient {
	return &OCRClient{
		sidecarURL: sidecarURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ParseReceipt sends a POST to the sidecar and returns the parsed reading.
func (c *OCRClient) ParseReceipt(ctx context.Context, payload OCRRequest) (*OCRResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ocr: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sidecarURL+"/parse", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ocr: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr: sidecar returned %d", resp.StatusCode)
	}

	var result OCRResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("ocr: decode response: %w", err)
	}
	return &result, nil
}
