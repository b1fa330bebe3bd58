package domain

// Failure messages carried in ErrorRecord.Error.Message
const (
	MessageParseFailed = "Failed to parse line into JSON"
	MessageSendFailed  = "Failed to send to Axiom"
)

// ErrorDetail is the machine-oriented part of an ErrorRecord
type ErrorDetail struct {
	Message string `json:"message"`
}

// ErrorRecord reports a line that could not be forwarded. It is always
// written immediately before the original line.
type ErrorRecord struct {
	Error ErrorDetail `json:"error"`
	Cause string      `json:"cause"`
	Log   string      `json:"log"`
}

// NewParseErrorRecord builds the record for a line that is not valid JSON.
// cause is the decoder diagnostic.
func NewParseErrorRecord(line, cause string) *ErrorRecord {
	return &ErrorRecord{
		Error: ErrorDetail{Message: MessageParseFailed},
		Cause: cause,
		Log:   line,
	}
}

// NewSendErrorRecord builds the record for a line the ingest endpoint did not accept.
func NewSendErrorRecord(line, cause string) *ErrorRecord {
	return &ErrorRecord{
		Error: ErrorDetail{Message: MessageSendFailed},
		Cause: cause,
		Log:   line,
	}
}
