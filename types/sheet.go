package types

import "time"

// SheetData is the mirrored content of the configured spreadsheet.
// The first spreadsheet row provides the keys for every record.
type SheetData struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Data        []map[string]string `json:"data"`
	LastUpdated time.Time           `json:"last_updated"`
}

// SheetInfo describes the configured spreadsheet without its rows.
type SheetInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	LastUpdated time.Time `json:"last_updated"`
}
