package models

// ActivityRecord mirrors the activity_records table. Date and time columns
// are selected as formatted strings (YYYY-MM-DD, HH:MM:SS); the duration
// calculator and the clients consume them as-is.
type ActivityRecord struct {
	RecordID       int64   `db:"record_id"`
	ActivityTypeID int64   `db:"activity_type_id"`
	WorkerID       int64   `db:"worker_id"`
	LocationID     int64   `db:"location_id"`
	Date           string  `db:"activity_date"`
	StartTime      string  `db:"start_time"`
	EndTime        *string `db:"end_time"`
	State          string  `db:"state"`
	RowsRaked      int     `db:"rows_raked"`
	BalesProduced  int     `db:"bales_produced"`
}
