package rules

// Location identifies where a violation occurred.
type Location struct {
	// File is the path to the source file.
	File string `json:"file"`
	// Line is the 1-based line; 0 or less means the whole file.
	Line int `json:"line"`
	// Column is the 1-based column; 0 means no column.
	Column int `json:"column,omitempty"`
}

// NewFileLocation creates a location for file-level issues (no specific line).
func NewFileLocation(file string) Location {
	return Location{File: file}
}

// NewLineLocation creates a location for a specific 1-based line.
func NewLineLocation(file string, line int) Location {
	return Location{File: file, Line: line}
}

// NewColumnLocation creates a location with both line and column.
func NewColumnLocation(file string, line, column int) Location {
	return Location{File: file, Line: line, Column: column}
}

// IsFileLevel returns true if this is a file-level location (no specific line).
func (l Location) IsFileLevel() bool {
	return l.Line <= 0
}

// HasColumn reports whether a column was recorded.
func (l Location) HasColumn() bool {
	return l.Column > 0
}
