package dto

import (
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
)

// CreateHayRecordRequest defines the data needed to log harvested hay.
// Quantity is accepted as a string and parsed to a decimal by the service;
// date and time are assigned server-side.
type CreateHayRecordRequest struct {
	QuantityKg string `json:"quantityKg" binding:"required"`
}

// HayRecordResponse is the outward shape of a hay record.
type HayRecordResponse struct {
	RecordID     int64   `json:"recordID"`
	WorkerID     int64   `json:"workerID"`
	QuantityKg   string  `json:"quantityKg"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	LocationName *string `json:"locationName"`
}

// ListHayRecordsResponse wraps a hay record listing.
type ListHayRecordsResponse struct {
	Records []HayRecordResponse `json:"records"`
}

// ToListHayRecordsResponse converts domain hay records to the listing DTO.
func ToListHayRecordsResponse(records []domain.HayRecord) ListHayRecordsResponse {
	rows := make([]HayRecordResponse, len(records))
	for i, r := range records {
		rows[i] = HayRecordResponse{
			RecordID:     r.RecordID,
			WorkerID:     r.WorkerID,
			QuantityKg:   r.QuantityKg.String(),
			Date:         r.Date,
			Time:         r.Time,
			LocationName: r.LocationName,
		}
	}
	return ListHayRecordsResponse{Records: rows}
}
