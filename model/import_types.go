package model

// MappingNone marks a card field that has no source column in the
// uploaded file.
const MappingNone = "none"

// ColumnMapping maps each logical card field name to a column header
// of the uploaded file, or to MappingNone.
type ColumnMapping map[string]string

// ImportRowResult is the per-row outcome of a bulk import. Data holds
// the stored card on success and the original row values on failure so
// the caller can offer a retry with corrections.
type ImportRowResult struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data"`
}
