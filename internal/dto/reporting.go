package dto

import (
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
)

// CombinedDailyRecordResponse is one exportable row of the daily combined
// report.
type CombinedDailyRecordResponse struct {
	ActivityRecordID int64   `json:"activityRecordID"`
	Date             string  `json:"date"`
	StartTime        string  `json:"startTime"`
	EndTime          *string `json:"endTime"`
	ActivityTypeID   int64   `json:"activityTypeID"`
	ActivityName     string  `json:"activityName"`
	WorkerID         int64   `json:"workerID"`
	WorkerFirstName  string  `json:"workerFirstName"`
	WorkerLastName   string  `json:"workerLastName"`
	LocationID       int64   `json:"locationID"`
	LocationName     string  `json:"locationName"`
	RowsRaked        int     `json:"rowsRaked"`
	BalesProduced    int     `json:"balesProduced"`
	HayQuantityKg    string  `json:"hayQuantityKg"`
}

// DailyCombinedReportResponse wraps the report rows.
type DailyCombinedReportResponse struct {
	Records []CombinedDailyRecordResponse `json:"records"`
}

// ToDailyCombinedReportResponse converts report rows to the response DTO.
func ToDailyCombinedReportResponse(records []domain.CombinedDailyRecord) DailyCombinedReportResponse {
	rows := make([]CombinedDailyRecordResponse, len(records))
	for i, r := range records {
		rows[i] = CombinedDailyRecordResponse{
			ActivityRecordID: r.ActivityRecordID,
			Date:             r.Date,
			StartTime:        r.StartTime,
			EndTime:          r.EndTime,
			ActivityTypeID:   r.ActivityTypeID,
			ActivityName:     r.ActivityName,
			WorkerID:         r.WorkerID,
			WorkerFirstName:  r.WorkerFirstName,
			WorkerLastName:   r.WorkerLastName,
			LocationID:       r.LocationID,
			LocationName:     r.LocationName,
			RowsRaked:        r.RowsRaked,
			BalesProduced:    r.BalesProduced,
			HayQuantityKg:    r.HayQuantityKg.String(),
		}
	}
	return DailyCombinedReportResponse{Records: rows}
}
