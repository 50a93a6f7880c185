package eidglue

import (
	"context"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/kaondix/DependencyCheck/pkg/eid"
)

// numWorkers bounds the errgroup the same way garbagecollect.go's
// g.SetLimit(opts.MaxConcurrency) does: a small fixed ceiling rather
// than GOMAXPROCS, since each worker is I/O-bound on its own file's
// Cursor reads.
const numWorkers = 8

// BatchResult summarizes one ScanFiles call: the per-file Result for
// every path that was actually scanned (in no particular order), and the
// number of paths Filter rejected before scanning.
type BatchResult struct {
	Results []eid.Result
	Skipped int
}

// ScanFiles scans paths concurrently against pattern, sending every
// Evidence record to sink and feeding m (which may be nil). filter may
// be nil, in which case every path is scanned regardless of size or
// extension.
//
// One goroutine is spawned per path through an errgroup.Group bounded
// by SetLimit(numWorkers), the way garbagecollect.go and tagstore.go
// fan an errgroup out across their own work items: the group's context
// is cancelled for every other in-flight file as soon as one returns a
// fatal error, and Wait reports it back here.
//
// sink must be safe for concurrent use by multiple goroutines; the
// three Sink implementations in this package are.
//
// A per-file InvalidUsage (a programmer error — a malformed Pattern)
// aborts the whole batch immediately. Per-file ReadErrors are logged and
// swallowed inside eid.ScanFile, so such a file appears in Results as not
// found: it never aborts the batch, is not included in the returned
// error, and is not counted in Metrics.FilesErrored. Any other per-file
// error (a cancelled or expired context) is counted in FilesErrored and
// collected into the returned multierror without aborting the batch.
func ScanFiles(ctx context.Context, paths []string, pattern *eid.Pattern, sink eid.Sink, filter *Filter, m *Metrics, log log15.Logger) (BatchResult, error) {
	if log == nil {
		log = log15.Root()
	}

	span, ctx, cancel := startBatchSpan(ctx, len(paths))
	defer cancel()

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)

	var (
		resultsMu sync.Mutex
		results   []eid.Result
		skipped   int

		merrMu sync.Mutex
		merr   *multierror.Error
	)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if filter != nil {
				if info, statErr := os.Stat(path); statErr != nil || !filter.Eligible(path, info.Size()) {
					resultsMu.Lock()
					skipped++
					resultsMu.Unlock()
					return nil
				}
			}

			m.observeScanned()
			result, err := eid.ScanFile(groupCtx, path, pattern, countingSink{Sink: sink, m: m}, log)
			if err != nil {
				if _, ok := err.(*eid.InvalidUsage); ok {
					return err
				}
				merrMu.Lock()
				merr = multierror.Append(merr, err)
				merrMu.Unlock()
				m.observeErrored()
				return nil
			}
			if result.Found {
				m.observeMatched()
			}
			resultsMu.Lock()
			results = append(results, result)
			resultsMu.Unlock()
			return nil
		})
	}

	fatal := g.Wait()
	finishBatchSpan(span, fatal)
	if fatal != nil {
		return BatchResult{Results: results, Skipped: skipped}, fatal
	}
	return BatchResult{Results: results, Skipped: skipped}, merr.ErrorOrNil()
}

// countingSink wraps a caller's Sink to drive per-kind evidence metrics
// without requiring every Sink implementation to know about Metrics.
type countingSink struct {
	eid.Sink
	m *Metrics
}

func (s countingSink) Emit(e eid.Evidence) {
	s.m.observeEvidence(string(e.Kind))
	s.Sink.Emit(e)
}
