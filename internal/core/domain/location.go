package domain

import (
	"github.com/shopspring/decimal"
)

// Machine is read-only reference data: the machine assigned to a location.
type Machine struct {
	MachineID int64  `json:"machineID"`
	Name      string `json:"name"`
}

// Location represents a work site with an assigned machine and an area in
// hectares. Every read joins the machine, so the machine name travels with
// the location.
type Location struct {
	LocationID  int64           `json:"locationID"`
	Name        string          `json:"name"`
	MachineID   int64           `json:"machineID"` // FK -> machines.machine_id
	MachineName string          `json:"machineName"`
	Area        decimal.Decimal `json:"area"` // >= 0
}
