package models

import (
	"github.com/shopspring/decimal"
)

// Location mirrors the locations table, plus the machine name every read
// joins in.
type Location struct {
	LocationID  int64           `db:"location_id"`
	Name        string          `db:"name"`
	MachineID   int64           `db:"machine_id"`
	MachineName string          `db:"machine_name"`
	Area        decimal.Decimal `db:"area"`
}

// Machine mirrors the machines table.
type Machine struct {
	MachineID int64  `db:"machine_id"`
	Name      string `db:"name"`
}
