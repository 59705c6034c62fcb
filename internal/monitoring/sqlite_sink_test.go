package monitoring_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremesh/triage-gateway/internal/monitoring"
)

func TestSQLiteSink_AppendAndCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.db")
	sink, err := monitoring.NewSQLiteSink(path)
	require.NoError(t, err)
	defer sink.Close()

	records := []*monitoring.Record{
		{RecordID: "01A", RequestID: "req-1", Timestamp: time.Now().UTC(), Intent: "clinical", SafetyVerdict: "safe", Mode: "balanced", TotalTokens: 120},
		{RecordID: "01B", RequestID: "req-2", Timestamp: time.Now().UTC(), Intent: "clinical", SafetyVerdict: "emergency", Mode: "quality"},
		{RecordID: "01C", RequestID: "req-3", Timestamp: time.Now().UTC(), Intent: "admin", SafetyVerdict: "safe", Mode: "cost"},
	}
	for _, rec := range records {
		require.NoError(t, sink.Append(rec))
	}

	clinical, err := sink.Count("clinical")
	require.NoError(t, err)
	assert.Equal(t, 2, clinical)

	admin, err := sink.Count("admin")
	require.NoError(t, err)
	assert.Equal(t, 1, admin)
}

func TestSQLiteSink_DuplicateRecordIDRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.db")
	sink, err := monitoring.NewSQLiteSink(path)
	require.NoError(t, err)
	defer sink.Close()

	rec := &monitoring.Record{RecordID: "01A", RequestID: "req-1", Timestamp: time.Now().UTC(), Intent: "admin", SafetyVerdict: "safe", Mode: "balanced"}
	require.NoError(t, sink.Append(rec))
	assert.Error(t, sink.Append(rec), "record_id is the primary key")
}
