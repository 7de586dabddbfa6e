package ui

// ExportedMsg reports the outcome of an export started from the viewer.
type ExportedMsg struct {
	Paths []string
	Err   error
}
