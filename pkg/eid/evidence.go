package eid

// Kind classifies an Evidence record by what it asserts about the file.
type Kind string

const (
	Vendor  Kind = "VENDOR"
	Product Kind = "PRODUCT"
	Version Kind = "VERSION"
)

// Confidence records how strongly an Evidence record should be trusted by
// downstream consumers. The Identifier Extractor only ever emits Highest,
// since both recognized grammars are unambiguous once matched; the scale
// exists so this package's Evidence type matches the shape other,
// out-of-scope analyzers in the surrounding pipeline also populate.
type Confidence int

const (
	Lowest Confidence = iota
	Low
	Medium
	High
	Highest
)

func (c Confidence) String() string {
	switch c {
	case Lowest:
		return "LOWEST"
	case Low:
		return "LOW"
	case Medium:
		return "MEDIUM"
	case High:
		return "HIGH"
	case Highest:
		return "HIGHEST"
	default:
		return "UNKNOWN"
	}
}

// Evidence is a single typed fact the Identifier Extractor produced about
// a scanned file: a vendor, product, or version value, tagged with where
// it came from and how strongly to trust it.
type Evidence struct {
	Kind      Kind
	SourceTag string
	// SourcePath is the file the Identifier Extractor was scanning when it
	// produced this record; callers fanning a Sink out across many files
	// (internal/eidglue.ScanFiles) use it to attribute evidence back to
	// its origin.
	SourcePath string
	FieldName  string
	Value      string
	Confidence Confidence

	// NormalizedVersion holds Value run through semantic-version
	// normalization when Kind == Version and Value parses as one; it is
	// empty otherwise. See version.go.
	NormalizedVersion string
}

// Sink is the boundary to the surrounding analyzer pipeline (spec §6):
// the Identifier Extractor hands every Evidence record it produces to an
// injected Sink and has no further opinion about storage or reporting.
type Sink interface {
	Emit(e Evidence)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(e Evidence)

// Emit implements Sink.
func (f SinkFunc) Emit(e Evidence) { f(e) }
