package domain

import "time"

// Outcome is what happened to a single input line
type Outcome int

const (
	OutcomeIngested Outcome = iota
	OutcomeParseFailed
	OutcomeSendFailed
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIngested:
		return "ingested"
	case OutcomeParseFailed:
		return "parse_failed"
	case OutcomeSendFailed:
		return "send_failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// RunStats counts line outcomes for one forwarding run
type RunStats struct {
	Lines          int           `json:"lines"`
	Ingested       int           `json:"ingested"`
	ParseFailures  int           `json:"parse_failures"`
	SubmitFailures int           `json:"submit_failures"`
	Skipped        int           `json:"skipped"`
	Elapsed        time.Duration `json:"elapsed"`
}

// Record adds one outcome to the counters. Skipped lines are not counted
// as read lines.
func (s *RunStats) Record(o Outcome) {
	switch o {
	case OutcomeIngested:
		s.Lines++
		s.Ingested++
	case OutcomeParseFailed:
		s.Lines++
		s.ParseFailures++
	case OutcomeSendFailed:
		s.Lines++
		s.SubmitFailures++
	case OutcomeSkipped:
		s.Skipped++
	}
}

// Failures returns the number of lines re-emitted with an ErrorRecord
func (s RunStats) Failures() int {
	return s.ParseFailures + s.SubmitFailures
}
