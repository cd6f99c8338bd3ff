package domain

import "github.com/google/uuid"

// GeneratedRecord is one normalized unit of generated copy. IDs are a dense
// 1..N sequence assigned in the order the parser encountered the records.
type GeneratedRecord struct {
	ID   int    `json:"id"`
	Tone string `json:"tone"`
	Text string `json:"text"`
}

// ProductInfo is the product the copy is written for. Price and attributes
// are free text exactly as staff typed them.
type ProductInfo struct {
	ProductName      string `json:"productName"`
	Price            string `json:"price"`
	ProductAttribute string `json:"productAttribute"`
}

// Emphasis holds the optional emphasis fields staff can fill in. Empty
// fields substitute as empty strings in the prompt.
type Emphasis struct {
	Event   string `json:"event"`
	Card    string `json:"card"`
	Coupon  string `json:"coupon"`
	Keyword string `json:"keyword"`
	Etc     string `json:"etc"`
}

// GenerationRequest is the ephemeral value object for one generation call.
// Reason and PreviousContents are set only on the regeneration path.
type GenerationRequest struct {
	Product   ProductInfo `json:"product_info"`
	Community string      `json:"community"`
	Emphasis  Emphasis    `json:"emphasis"`
	BestCase  string      `json:"best_case"`

	Reason           string            `json:"reason,omitempty"`
	PreviousContents []GeneratedRecord `json:"previous_contents,omitempty"`
}

// Result is what the outward-facing generation entrypoint always returns.
// On failure Success is false, Error explains why, and GeneratedContents
// still holds exactly one sentinel record, so callers never branch on an
// empty list and never need exception handling.
type Result struct {
	Success           bool              `json:"success"`
	Content           string            `json:"content"`
	GeneratedContents []GeneratedRecord `json:"generated_contents"`
	Model             string            `json:"model"`
	Error             string            `json:"error,omitempty"`
}

// Outcome pairs a persisted generation's id with the result handed back to
// the caller, so follow-up actions (regenerate, copy) can reference the run.
type Outcome struct {
	GenerateID uuid.UUID `json:"generate_id"`
	Result
}
