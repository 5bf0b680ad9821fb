package dto

import (
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
)

// CreateLocationRequest defines the data needed to add a location.
// Area is accepted as a string and parsed to a decimal by the service.
type CreateLocationRequest struct {
	Name      string `json:"name" binding:"required"`
	MachineID int64  `json:"machineID" binding:"required"`
	Area      string `json:"area" binding:"required"`
}

// LocationResponse is the outward shape of a location with its machine.
type LocationResponse struct {
	LocationID  int64  `json:"locationID"`
	Name        string `json:"name"`
	MachineID   int64  `json:"machineID"`
	MachineName string `json:"machineName"`
	Area        string `json:"area"`
}

// ToLocationResponse converts a domain.Location to its response DTO.
func ToLocationResponse(loc *domain.Location) LocationResponse {
	return LocationResponse{
		LocationID:  loc.LocationID,
		Name:        loc.Name,
		MachineID:   loc.MachineID,
		MachineName: loc.MachineName,
		Area:        loc.Area.String(),
	}
}

// ListLocationsResponse wraps the location listing.
type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}

// ToListLocationsResponse converts domain locations to the listing DTO.
func ToListLocationsResponse(locs []domain.Location) ListLocationsResponse {
	rows := make([]LocationResponse, len(locs))
	for i := range locs {
		rows[i] = ToLocationResponse(&locs[i])
	}
	return ListLocationsResponse{Locations: rows}
}

// MachineResponse is the outward shape of a machine.
type MachineResponse struct {
	MachineID int64  `json:"machineID"`
	Name      string `json:"name"`
}

// ListMachinesResponse wraps the machine listing.
type ListMachinesResponse struct {
	Machines []MachineResponse `json:"machines"`
}

// ToListMachinesResponse converts domain machines to the listing DTO.
func ToListMachinesResponse(machines []domain.Machine) ListMachinesResponse {
	rows := make([]MachineResponse, len(machines))
	for i, m := range machines {
		rows[i] = MachineResponse{MachineID: m.MachineID, Name: m.Name}
	}
	return ListMachinesResponse{Machines: rows}
}
