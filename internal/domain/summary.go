package domain

// ErrorOutput is the machine-readable form of a command failure
type ErrorOutput struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// NewErrorOutput creates a new error output
// Note: SchemaVersion should be set by the caller (output package)
func NewErrorOutput(code, message string) *ErrorOutput {
	return &ErrorOutput{
		Type:    "error",
		Code:    code,
		Message: message,
	}
}

// RunSummary is emitted by commands that report a finished forwarding run
type RunSummary struct {
	Type          string `json:"type"` // Always "summary"
	SchemaVersion int    `json:"schemaVersion"`
	Dataset       string `json:"dataset"`
	RunStats
}
