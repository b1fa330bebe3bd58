package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorRecord_JSON(t *testing.T) {
	data, err := json.Marshal(NewParseErrorRecord("not json", "invalid character"))
	require.NoError(t, err)
	assert.Equal(t, `{"error":{"message":"Failed to parse line into JSON"},"cause":"invalid character","log":"not json"}`, string(data))

	data, err = json.Marshal(NewSendErrorRecord(`{"a":1}`, "dataset not found"))
	require.NoError(t, err)
	assert.Equal(t, `{"error":{"message":"Failed to send to Axiom"},"cause":"dataset not found","log":"{\"a\":1}"}`, string(data))
}

func TestRunStats_Record(t *testing.T) {
	var s RunStats
	for _, o := range []Outcome{OutcomeIngested, OutcomeIngested, OutcomeParseFailed, OutcomeSendFailed, OutcomeSkipped} {
		s.Record(o)
	}

	assert.Equal(t, 4, s.Lines)
	assert.Equal(t, 2, s.Ingested)
	assert.Equal(t, 1, s.ParseFailures)
	assert.Equal(t, 1, s.SubmitFailures)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 2, s.Failures())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "ingested", OutcomeIngested.String())
	assert.Equal(t, "parse_failed", OutcomeParseFailed.String())
	assert.Equal(t, "send_failed", OutcomeSendFailed.String())
	assert.Equal(t, "skipped", OutcomeSkipped.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
