// Package monitoring - telemetry.go records triage decisions to a sink.
//
// DESIGN: Recorder owns the sink lifecycle (open at process start, flushed
// per record, closed at shutdown). Record() never returns an error to the
// caller: a sink write failure is logged and, if a fallback sink is
// configured, retried there. A telemetry failure must never abort an
// otherwise-successful request.
//
// Sink is injectable so tests substitute MemorySink and production wires
// FileSink (JSONL) and/or SQLiteSink.
package monitoring

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

// Sink is an append-only destination for telemetry records.
// Append must write the whole record atomically with respect to concurrent
// appends; it must not interleave partial records.
type Sink interface {
	Append(rec *Record) error
	Close() error
}

// Recorder assembles and persists telemetry records.
type Recorder struct {
	config   TelemetryConfig
	primary  Sink
	fallback Sink
	entropy  *ulid.MonotonicEntropy
	count    int
	mu       sync.Mutex
}

// NewRecorder creates a Recorder writing to primary, with an optional
// fallback sink used when the primary append fails. Either may be nil.
func NewRecorder(cfg TelemetryConfig, primary, fallback Sink) *Recorder {
	return &Recorder{
		config:   cfg,
		primary:  primary,
		fallback: fallback,
		entropy:  ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// Record persists a telemetry record. Never returns an error: sink failures
// are logged and swallowed. Assigns RecordID and Timestamp if unset.
func (r *Recorder) Record(rec *Record) {
	if !r.config.Enabled || rec == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.RecordID == "" {
		rec.RecordID = ulid.MustNew(ulid.Timestamp(time.Now()), r.entropy).String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	if r.config.LogToStdout {
		reqID := rec.RequestID
		if len(reqID) > 8 {
			reqID = reqID[:8]
		}
		log.Info().
			Str("request_id", reqID).
			Str("intent", rec.Intent).
			Str("verdict", rec.SafetyVerdict).
			Str("model", rec.Model).
			Int("total_tokens", rec.TotalTokens).
			Bool("failed", rec.Failed).
			Msg("telemetry")
	}

	if r.primary != nil {
		if err := r.primary.Append(rec); err == nil {
			r.count++
			return
		} else {
			log.Error().Err(err).Msg("telemetry: primary sink append failed")
		}
	}
	if r.fallback != nil {
		if err := r.fallback.Append(rec); err != nil {
			log.Error().Err(err).Msg("telemetry: fallback sink append failed")
		} else {
			r.count++
		}
	}
}

// Close closes both sinks.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count > 0 {
		log.Info().Int("records", r.count).Msg("telemetry: session complete")
	}

	var firstErr error
	for _, s := range []Sink{r.primary, r.fallback} {
		if s == nil {
			continue
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// =============================================================================
// FILE SINK - JSONL, one record per line
// =============================================================================

// FileSink appends records as JSONL to a file. Each Append is a single
// write of a full line, so concurrent appends never interleave.
type FileSink struct {
	path string
	mu   sync.Mutex
}

// NewFileSink creates the parent directory and an empty file if absent.
func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if f, err := os.Create(path); err == nil {
			f.Close()
		}
	}
	return &FileSink{path: path}, nil
}

// Append writes the record as one JSON line.
func (s *FileSink) Append(rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}

// Close is a no-op; the file is opened per append.
func (s *FileSink) Close() error { return nil }

// =============================================================================
// MEMORY SINK - for tests and the websocket live tail
// =============================================================================

// MemorySink keeps records in memory. Used by tests and as a fallback.
type MemorySink struct {
	mu      sync.Mutex
	records []*Record
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

// Append stores a copy of the record.
func (s *MemorySink) Append(rec *Record) error {
	cp := *rec
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, &cp)
	return nil
}

// Records returns a snapshot of appended records.
func (s *MemorySink) Records() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out
}

// Close is a no-op.
func (s *MemorySink) Close() error { return nil }

// =============================================================================
// TEE SINK - fan out to multiple sinks
// =============================================================================

// TeeSink appends to every child sink; the first error wins but all
// children are attempted.
type TeeSink struct {
	sinks []Sink
}

// NewTeeSink wraps the given sinks. Nil children are skipped.
func NewTeeSink(sinks ...Sink) *TeeSink {
	t := &TeeSink{}
	for _, s := range sinks {
		if s != nil {
			t.sinks = append(t.sinks, s)
		}
	}
	return t
}

// Append fans the record out to every child.
func (t *TeeSink) Append(rec *Record) error {
	var firstErr error
	for _, s := range t.sinks {
		if err := s.Append(rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes every child.
func (t *TeeSink) Close() error {
	var firstErr error
	for _, s := range t.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
