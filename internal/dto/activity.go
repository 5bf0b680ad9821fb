package dto

import (
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	"github.com/ecocomercial/farmops_backend/internal/utils/timespan"
)

// StartActivityRequest defines the data needed to start an activity.
type StartActivityRequest struct {
	ActivityTypeID int64  `json:"activityTypeID" binding:"required"`
	LocationID     int64  `json:"locationID" binding:"required"`
	Date           string `json:"date" binding:"required,datetime=2006-01-02"`
	Time           string `json:"time" binding:"required,datetime=15:04:05"`
}

// StartActivityResponse returns the id of the newly created record.
type StartActivityResponse struct {
	RecordID int64 `json:"recordID"`
}

// FinalizeActivityRequest carries the derived counters captured at finalize
// time. Both default to zero for activity types they do not apply to.
type FinalizeActivityRequest struct {
	RowsRaked     int `json:"rowsRaked" binding:"omitempty,min=0"`
	BalesProduced int `json:"balesProduced" binding:"omitempty,min=0"`
}

// ActivityResponse is the joined outward shape of an activity record,
// including the formatted duration the screens display.
type ActivityResponse struct {
	RecordID       int64   `json:"recordID"`
	ActivityTypeID int64   `json:"activityTypeID"`
	ActivityName   string  `json:"activityName"`
	WorkerID       int64   `json:"workerID"`
	WorkerName     string  `json:"workerName"`
	LocationID     int64   `json:"locationID"`
	LocationName   string  `json:"locationName"`
	MachineID      int64   `json:"machineID"`
	MachineName    string  `json:"machineName"`
	Area           string  `json:"area"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	EndTime        *string `json:"endTime"`
	State          string  `json:"state"`
	RowsRaked      int     `json:"rowsRaked"`
	BalesProduced  int     `json:"balesProduced"`
	Duration       string  `json:"duration"`
}

// ToActivityResponse converts a joined activity row to its response DTO.
// Finalized records report the completed span; anything without a usable
// span reports the "not available" marker.
func ToActivityResponse(a *domain.ActivityDetail) ActivityResponse {
	end := ""
	if a.EndTime != nil {
		end = *a.EndTime
	}
	return ActivityResponse{
		RecordID:       a.RecordID,
		ActivityTypeID: a.ActivityTypeID,
		ActivityName:   a.ActivityName,
		WorkerID:       a.WorkerID,
		WorkerName:     a.WorkerName,
		LocationID:     a.LocationID,
		LocationName:   a.LocationName,
		MachineID:      a.MachineID,
		MachineName:    a.MachineName,
		Area:           a.Area.String(),
		Date:           a.Date,
		StartTime:      a.StartTime,
		EndTime:        a.EndTime,
		State:          string(a.State),
		RowsRaked:      a.RowsRaked,
		BalesProduced:  a.BalesProduced,
		Duration:       timespan.Completed(a.StartTime, end),
	}
}

// ListActivitiesResponse wraps an activity listing.
type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

// ToListActivitiesResponse converts joined activity rows to the listing DTO.
func ToListActivitiesResponse(activities []domain.ActivityDetail) ListActivitiesResponse {
	rows := make([]ActivityResponse, len(activities))
	for i := range activities {
		rows[i] = ToActivityResponse(&activities[i])
	}
	return ListActivitiesResponse{Activities: rows}
}
