package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is a read-only, point-in-time projection of an invoice owned by
// the remote invoice service. It is never persisted locally.
type Snapshot struct {
	ID          string           `json:"id"`
	IssueDate   time.Time        `json:"issueDate"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
	Description string           `json:"description"`
	Customer    CustomerSnapshot `json:"customer"`
}

// CustomerSnapshot is the customer projection nested in an invoice snapshot
type CustomerSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
