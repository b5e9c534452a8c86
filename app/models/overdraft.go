package models

import "github.com/shopspring/decimal"

// Overdraft represents an externally tracked liability, either auto-created
// when an outflow exceeds its source pot or logged manually as an ad-hoc
// debt. Amount is the outstanding debt and decreases toward zero as the
// liability is settled; a fully settled overdraft keeps amount = 0 as a
// visual clearance instead of being deleted.
type Overdraft struct {
	ID                  string          `json:"id"`
	Date                string          `json:"date"` // YYYY-MM-DD
	Purpose             string          `json:"purpose"`
	Amount              decimal.Decimal `json:"amount"`
	Seller              string          `json:"seller"`
	IsSettled           bool            `json:"isSettled"`
	SettledWithInflowID string          `json:"settledWithInflowId,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	CreatedAt           string          `json:"createdAt,omitempty"` // RFC3339, used for sorting
}
