package eid

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func mustPattern(t *testing.T, lit string) *Pattern {
	t.Helper()
	p, err := NewPattern(lit)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func searchBytes(t *testing.T, lit, haystack string) MatchResult {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.bin")
	if err := os.WriteFile(path, []byte(haystack), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	scanner, err := NewScanner(mustPattern(t, lit))
	if err != nil {
		t.Fatal(err)
	}
	result, err := scanner.Search(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestScannerFindsLiteralAtStart(t *testing.T) {
	got := searchBytes(t, "ABC", "ABCABC")
	if !got.Found || got.Offset != 0 {
		t.Fatalf("got %+v, want Found at offset 0", got)
	}
}

func TestScannerNotFound(t *testing.T) {
	got := searchBytes(t, MAGIC, "no header here, just text")
	if got.Found {
		t.Fatalf("got %+v, want NotFound", got)
	}
}

func TestScannerFileEndingInsideMagic(t *testing.T) {
	truncated := MAGIC[:len(MAGIC)-3]
	got := searchBytes(t, MAGIC, truncated)
	if got.Found {
		t.Fatalf("got %+v, want NotFound for a file ending inside MAGIC", got)
	}
}

func TestScannerMagicAtOffsetZero(t *testing.T) {
	got := searchBytes(t, MAGIC, MAGIC+"trailing")
	if !got.Found || got.Offset != 0 {
		t.Fatalf("got %+v, want Found at offset 0", got)
	}
}

func TestScannerMagicSplitAcrossBufferBoundary(t *testing.T) {
	prefix := make([]byte, bufferSize-5)
	for i := range prefix {
		prefix[i] = 0x01
	}
	haystack := string(prefix) + MAGIC
	got := searchBytes(t, MAGIC, haystack)
	if !got.Found || got.Offset != int64(len(prefix)) {
		t.Fatalf("got %+v, want Found at offset %d", got, len(prefix))
	}
}

func TestScannerAlteredMagicNotFound(t *testing.T) {
	altered := "EID:50CA347F-88EF4066:vendor=V;product=P;version=X;"
	got := searchBytes(t, MAGIC, altered)
	if got.Found {
		t.Fatalf("got %+v, want NotFound for altered magic", got)
	}
}

func TestScannerBacktrackingPattern(t *testing.T) {
	// Searches with the KMP spot-check pattern and checks only the reported
	// offset; the n+m probe bound is asserted in
	// TestScannerProbesAreNonDecreasing.
	got := searchBytes(t, "participate in parachute", "participate in parachute, and again participate in parachute")
	if !got.Found || got.Offset != 0 {
		t.Fatalf("got %+v, want Found at offset 0", got)
	}
}

func TestNewScannerRejectsShortPattern(t *testing.T) {
	p := &Pattern{bytes: []byte{'A'}, table: []int{-1}}
	if _, err := NewScanner(p); err == nil {
		t.Fatal("expected InvalidUsage for pattern of length 1")
	}
}

// probeRecorder wraps a Cursor and records every offset probed, so tests
// can assert the non-decreasing invariant directly instead of relying on
// Cursor's own InvalidUsage check to catch a violation indirectly.
type probeRecorder struct {
	*Cursor
	probes []int64
}

func (r *probeRecorder) ByteAt(offset int64) (int, error) {
	r.probes = append(r.probes, offset)
	return r.Cursor.ByteAt(offset)
}

func TestScannerProbesAreNonDecreasing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.bin")
	data := make([]byte, 1<<16)
	for i := range data {
		data[i] = 0x01
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	scanner, err := NewScanner(mustPattern(t, "ABABC"))
	if err != nil {
		t.Fatal(err)
	}

	recorder := &probeRecorder{Cursor: c}
	result, err := scanner.search(context.Background(), recorder)
	if err != nil {
		t.Fatal(err)
	}
	if result.Found {
		t.Fatalf("did not expect a match in filler data")
	}
	for i := 1; i < len(recorder.probes); i++ {
		if recorder.probes[i] < recorder.probes[i-1] {
			t.Fatalf("probe sequence decreased at index %d: %v -> %v", i, recorder.probes[i-1], recorder.probes[i])
		}
	}
	maxProbes := len(data) + mustPattern(t, "ABABC").Len()
	if len(recorder.probes) > maxProbes {
		t.Fatalf("probed %d times, want at most n+m = %d", len(recorder.probes), maxProbes)
	}
}
