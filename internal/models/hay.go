package models

import (
	"github.com/shopspring/decimal"
)

// HayRecord mirrors the hay_records table.
type HayRecord struct {
	RecordID   int64           `db:"record_id"`
	WorkerID   int64           `db:"worker_id"`
	QuantityKg decimal.Decimal `db:"quantity_kg"`
	Date       string          `db:"record_date"`
	Time       string          `db:"record_time"`
}
