package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/kaondix/DependencyCheck/internal/eidglue"
	"github.com/kaondix/DependencyCheck/pkg/eid"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	fieldColor  = color.New(color.FgGreen)
	dimColor    = color.New(color.FgHiBlack)
)

// printReport renders a colorized, human-readable summary of one batch
// scan to w: which files matched, and the vendor/product/version
// evidence extracted from each.
func printReport(w io.Writer, batch eidglue.BatchResult, evidence []eid.Evidence) {
	byPath := make(map[string][]eid.Evidence, len(evidence))
	for _, e := range evidence {
		byPath[e.SourcePath] = append(byPath[e.SourcePath], e)
	}

	matched := 0
	for _, r := range batch.Results {
		if !r.Found {
			continue
		}
		matched++
		headerColor.Fprintf(w, "%s\n", r.Path)
		fmt.Fprintf(w, "  offset=%d evidence=%d\n", r.Offset, r.EvidenceCount)
		for _, e := range byPath[r.Path] {
			fieldColor.Fprintf(w, "    %-8s", string(e.Kind))
			fmt.Fprintf(w, " %s", e.Value)
			if e.Kind == eid.Version && e.NormalizedVersion != "" {
				dimColor.Fprintf(w, " (normalized %s)", e.NormalizedVersion)
			}
			fmt.Fprintln(w)
		}
	}

	dimColor.Fprintf(w, "scanned=%d matched=%d skipped=%d\n", len(batch.Results), matched, batch.Skipped)
}
