package eidglue

import (
	"encoding/json"
	"io"
	"sync"

	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/kaondix/DependencyCheck/pkg/eid"
)

// MemorySink accumulates Evidence in a slice. It is safe for concurrent
// use by the batch runner's worker pool.
type MemorySink struct {
	mu       sync.Mutex
	evidence []eid.Evidence
}

// Emit implements eid.Sink.
func (s *MemorySink) Emit(e eid.Evidence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evidence = append(s.evidence, e)
}

// Evidence returns a copy of everything emitted so far.
func (s *MemorySink) Evidence() []eid.Evidence {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]eid.Evidence, len(s.evidence))
	copy(out, s.evidence)
	return out
}

// LoggingSink wraps another Sink and additionally logs every emission
// through log15, the way cmd/server/shared.go configures logging for the
// rest of this pack's teacher.
type LoggingSink struct {
	Next eid.Sink
	Log  log15.Logger
}

// NewLoggingSink wraps next with a log15.Root()-based LoggingSink.
func NewLoggingSink(next eid.Sink) *LoggingSink {
	return &LoggingSink{Next: next, Log: log15.Root()}
}

// Emit implements eid.Sink.
func (s *LoggingSink) Emit(e eid.Evidence) {
	log := s.Log
	if log == nil {
		log = log15.Root()
	}
	log.Info("eid: evidence emitted",
		"kind", string(e.Kind),
		"source", e.SourceTag,
		"field", e.FieldName,
		"value", e.Value,
		"confidence", e.Confidence.String(),
	)
	if s.Next != nil {
		s.Next.Emit(e)
	}
}

// JSONSink streams each Evidence as a line-delimited JSON object to w,
// for hand-off to the out-of-scope reporting subsystem (spec §1).
type JSONSink struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

// NewJSONSink wraps w in a JSONSink.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Emit implements eid.Sink. Encoding failures are recorded and surfaced
// through Err; emission never panics or blocks the scan.
func (s *JSONSink) Emit(e eid.Evidence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	s.err = s.enc.Encode(e)
}

// Err returns the first encoding error JSONSink encountered, if any.
func (s *JSONSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
