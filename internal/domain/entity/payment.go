package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a manually recorded amount received from a team.
type Payment struct {
	ID            string          `json:"id"`
	TeamID        string          `json:"teamId"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	Team          *TeamSnapshot   `json:"team,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TeamPaymentSummary is one row of the per-team payment aggregation.
type TeamPaymentSummary struct {
	Team         *TeamSnapshot   `json:"team"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PaymentCount int             `json:"paymentCount"`
	Methods      []PaymentMethod `json:"methods"`
}

// PaymentSummary is the full aggregation with a grand total.
type PaymentSummary struct {
	Teams        []*TeamPaymentSummary `json:"teams"`
	GrandTotal   decimal.Decimal       `json:"grandTotal"`
	PaymentCount int                   `json:"paymentCount"`
}
