// Package eidglue provides the collaborator-side glue around the
// Embedded Product Identifier Scanner: deciding which files are worth
// scanning, concrete evidence sinks, and a bounded concurrent batch
// runner. None of it is part of the scanner's documented boundary
// (spec §1); it is the "surrounding analyzer pipeline" stand-in.
package eidglue

import "path/filepath"

// DefaultMaxFileSize bounds how large a file Filter will accept, so a
// single oversized binary can't force the whole identifier walk to hold
// an unbounded amount of memory.
const DefaultMaxFileSize = 256 << 20 // 256 MiB

// Filter decides whether a candidate file is worth handing to the
// scanner at all, the way the teacher's readerGrep gates files through a
// pathmatch.PathMatcher before running its regexp pass.
type Filter struct {
	MaxFileSize int64
	// ExcludeExt is a set of lowercase extensions (with leading dot) the
	// filter rejects outright: formats the extractor cannot see inside
	// per spec's Non-goals (no decompression, no archive unpacking).
	ExcludeExt map[string]bool
}

// NewFilter returns a Filter with DefaultMaxFileSize and a reasonable
// default exclusion set for compressed/archive containers.
func NewFilter() *Filter {
	return &Filter{
		MaxFileSize: DefaultMaxFileSize,
		ExcludeExt: map[string]bool{
			".zip": true, ".gz": true, ".tgz": true, ".bz2": true,
			".xz": true, ".7z": true, ".rar": true, ".jar": true,
		},
	}
}

// Eligible reports whether path (of the given size in bytes) should be
// scanned.
func (f *Filter) Eligible(path string, size int64) bool {
	if f == nil {
		return true
	}
	if f.MaxFileSize > 0 && size > f.MaxFileSize {
		return false
	}
	ext := filepath.Ext(path)
	for i := range ext {
		if ext[i] >= 'A' && ext[i] <= 'Z' {
			ext = toLowerASCII(ext)
			break
		}
	}
	return !f.ExcludeExt[ext]
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
