package domain

import (
	"github.com/shopspring/decimal"
)

// ActivityState defines the lifecycle state of an activity record.
// Cancellation is a stored terminal state so that cancelled work keeps an
// audit trail instead of disappearing.
type ActivityState string

const (
	ActivityInProgress ActivityState = "in_progress"
	ActivityFinalized  ActivityState = "finalized"
	ActivityCancelled  ActivityState = "cancelled"
)

// IsValid reports whether the state is one of the persisted lifecycle states.
func (s ActivityState) IsValid() bool {
	return s == ActivityInProgress || s == ActivityFinalized || s == ActivityCancelled
}

// Terminal reports whether no further transition is permitted from the state.
func (s ActivityState) Terminal() bool {
	return s == ActivityFinalized || s == ActivityCancelled
}

// Fixed activity type catalog. Types 3 and 4 carry activity-specific derived
// counters (rows raked, bales produced) populated at finalize time.
const (
	ActivityTypeCutting         int64 = 1
	ActivityTypeAeratorRake     int64 = 2
	ActivityTypeWindrowRake     int64 = 3
	ActivityTypeBaling          int64 = 4
	ActivityTypeLoading         int64 = 5
	ActivityTypeLandPreparation int64 = 6
)

// ActivityType is a catalog entry for a kind of farm task.
type ActivityType struct {
	ActivityTypeID int64  `json:"activityTypeID"`
	Name           string `json:"name"`
}

// ActivityRecord is one logged instance of a worker performing a task at a
// location. EndTime stays nil until the record is finalized.
type ActivityRecord struct {
	RecordID       int64         `json:"recordID"`
	ActivityTypeID int64         `json:"activityTypeID"` // FK -> activity_types
	WorkerID       int64         `json:"workerID"`       // FK -> users
	LocationID     int64         `json:"locationID"`     // FK -> locations
	Date           string        `json:"date"`           // YYYY-MM-DD
	StartTime      string        `json:"startTime"`      // HH:MM:SS
	EndTime        *string       `json:"endTime"`        // HH:MM:SS, nil until finalized
	State          ActivityState `json:"state"`
	RowsRaked      int           `json:"rowsRaked"`     // meaningful for windrow-rake only
	BalesProduced  int           `json:"balesProduced"` // meaningful for baling only
}

// ActivityDetail is the joined view of an activity record: type name,
// location, machine and worker names resolved.
type ActivityDetail struct {
	RecordID       int64           `json:"recordID"`
	ActivityTypeID int64           `json:"activityTypeID"`
	ActivityName   string          `json:"activityName"`
	WorkerID       int64           `json:"workerID"`
	WorkerName     string          `json:"workerName"`
	LocationID     int64           `json:"locationID"`
	LocationName   string          `json:"locationName"`
	MachineID      int64           `json:"machineID"`
	MachineName    string          `json:"machineName"`
	Area           decimal.Decimal `json:"area"`
	Date           string          `json:"date"`
	StartTime      string          `json:"startTime"`
	EndTime        *string         `json:"endTime"`
	State          ActivityState   `json:"state"`
	RowsRaked      int             `json:"rowsRaked"`
	BalesProduced  int             `json:"balesProduced"`
}
