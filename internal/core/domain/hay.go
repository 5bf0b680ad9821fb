package domain

import (
	"github.com/shopspring/decimal"
)

// HayRecord is an immutable log entry of harvested hay attributed to a
// worker. Records are never updated, only aggregated.
type HayRecord struct {
	RecordID     int64           `json:"recordID"`
	WorkerID     int64           `json:"workerID"` // FK -> users
	QuantityKg   decimal.Decimal `json:"quantityKg"`
	Date         string          `json:"date"` // YYYY-MM-DD, server-assigned
	Time         string          `json:"time"` // HH:MM:SS, server-assigned
	LocationName *string         `json:"locationName"` // worker's assigned location, if any
}
