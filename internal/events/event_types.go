package events

import "time"

// Table identifies one of the mirrored store tables.
type Table string

const (
	TableDepartments Table = "departments"
	TableLocations   Table = "locations"
	TableInspections Table = "inspections"
	TableAppUsers    Table = "app_users"
)

// Op describes the row-level change kind. Consumers refetch whole
// tables, so Op is informational only.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event is a table-change notification emitted after a successful write.
// It carries no row data; subscribers are expected to refetch.
type Event struct {
	ID        string    `json:"id"`
	Table     Table     `json:"table"`
	Op        Op        `json:"op"`
	RowID     string    `json:"row_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
