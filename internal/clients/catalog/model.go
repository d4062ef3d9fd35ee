package catalog

import (
	"github.com/shopspring/decimal"
)

// Snapshot is a read-only, point-in-time projection of a catalog item owned
// by the remote catalog service. The price is whatever the catalog says right
// now; callers snapshot it at write time.
type Snapshot struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}
