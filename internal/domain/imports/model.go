package imports

import "time"

// Batch records one completed spreadsheet import. Immutable once written.
type Batch struct {
	ID          int64     `json:"id"`
	FileName    string    `json:"fileName"`
	RecordCount int       `json:"recordCount"`
	ImportedAt  time.Time `json:"importedAt"`
}
