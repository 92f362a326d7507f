package models

// Versioned is embedded by every persisted entity that uses
// optimistic concurrency via a row_version column.
type Versioned struct {
	RowVersion int64 `json:"row_version"`
}

func (v *Versioned) GetRowVersion() int64 {
	return v.RowVersion
}

func (v *Versioned) SetRowVersion(rv int64) {
	v.RowVersion = rv
}
