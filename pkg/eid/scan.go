package eid

import (
	"context"
	"errors"

	log15 "gopkg.in/inconshreveable/log15.v2"
)

// Result summarizes one completed file scan: whether the Pattern was
// found, where, and how many Evidence records the Extractor emitted.
type Result struct {
	Path          string
	Found         bool
	Offset        int64
	EvidenceCount int
}

// ScanFile runs a single-pass scan of path for pattern: it opens a fresh
// Cursor, searches it with a fresh Scanner, and — on a match — hands a
// fresh Extractor the tail of the file. A Scanner instance, per spec §5,
// is inherently single-threaded for one file; ScanFile is the unit of
// work a caller fans out across goroutines, one Cursor per file.
//
// Per spec §7's propagation policy: InvalidUsage (a programmer error,
// e.g. a malformed Pattern) is returned and must not be swallowed.
// ReadError is logged with path via log and swallowed — the caller sees
// a Result with only Path set and a nil error, the same as a file that
// simply lacks the header.
func ScanFile(ctx context.Context, path string, pattern *Pattern, sink Sink, log log15.Logger) (Result, error) {
	if log == nil {
		log = log15.Root()
	}

	c, err := Open(path)
	if err != nil {
		return logOrPropagate(log, path, err)
	}
	defer c.Close()

	scanner, err := NewScanner(pattern)
	if err != nil {
		return Result{Path: path}, err
	}

	match, err := scanner.Search(ctx, c)
	if err != nil {
		return logOrPropagate(log, path, err)
	}
	if !match.Found {
		return Result{Path: path}, nil
	}

	extractor := NewExtractor(pattern, sink, path)
	extractor.SetLogger(log)
	n, err := extractor.Run(ctx, c, match.Offset)
	if err != nil {
		// Extractor.Run only returns a non-nil error on context
		// cancellation; ReadErrors during the walk are already logged and
		// swallowed inside Run.
		return Result{Path: path, Found: true, Offset: match.Offset, EvidenceCount: n}, err
	}
	return Result{Path: path, Found: true, Offset: match.Offset, EvidenceCount: n}, nil
}

func logOrPropagate(log log15.Logger, path string, err error) (Result, error) {
	var invalid *InvalidUsage
	if errors.As(err, &invalid) {
		return Result{Path: path}, err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Result{Path: path}, err
	}
	log.Warn("eid: scan aborted by read error", "path", path, "err", err)
	return Result{Path: path}, nil
}
