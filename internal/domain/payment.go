package domain

import "time"

// PaymentRecord is one append-only payment towards a recurring booking's
// month. A month may carry several partial records; status is always derived
// by summing them, never by mutating rows.
type PaymentRecord struct {
	ID          int64      `json:"id"`
	RecurringID int64      `json:"recurring_id"`
	Month       time.Month `json:"month"`
	Year        int        `json:"year"`
	Amount      float64    `json:"amount"`
	Method      string     `json:"method,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type BillingStatus string

const (
	BillingPaid    BillingStatus = "paid"
	BillingPartial BillingStatus = "partial"
	BillingUnpaid  BillingStatus = "unpaid"
	BillingOverdue BillingStatus = "overdue"
)
