package domain

import (
	"github.com/shopspring/decimal"
)

// CombinedDailyRecord is one row of the daily combined report consumed by the
// spreadsheet export collaborator: a finalized worker activity joined with a
// best-effort hay quantity matched on the same day and start time.
type CombinedDailyRecord struct {
	ActivityRecordID int64           `json:"activityRecordID"`
	Date             string          `json:"date"`
	StartTime        string          `json:"startTime"`
	EndTime          *string         `json:"endTime"`
	ActivityTypeID   int64           `json:"activityTypeID"`
	ActivityName     string          `json:"activityName"`
	WorkerID         int64           `json:"workerID"`
	WorkerFirstName  string          `json:"workerFirstName"`
	WorkerLastName   string          `json:"workerLastName"`
	LocationID       int64           `json:"locationID"`
	LocationName     string          `json:"locationName"`
	RowsRaked        int             `json:"rowsRaked"`
	BalesProduced    int             `json:"balesProduced"`
	HayQuantityKg    decimal.Decimal `json:"hayQuantityKg"`
}
