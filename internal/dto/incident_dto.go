package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type IncidentRequest struct {
	Title       string   `json:"title"       validate:"required,min=3"`
	Description string   `json:"description" validate:"required"`
	Severity    string   `json:"severity"    validate:"required,oneof=low medium high"`
	PhotoIDs    []string `json:"photo_ids"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IncidentResponse struct {
	ID            string   `json:"id"`
	BusinessDate  string   `json:"business_date"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Severity      string   `json:"severity"`
	PhotoIDs      []string `json:"photo_ids,omitempty"`
	CreatedBy     string   `json:"created_by"`
	CreatedByName string   `json:"created_by_name"`
	CreatedAt     string   `json:"created_at"`
}
