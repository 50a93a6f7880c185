package eid

import (
	"context"
	"regexp"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
	otlog "github.com/opentracing/opentracing-go/log"
	log15 "gopkg.in/inconshreveable/log15.v2"
)

// Source tags stamped onto Evidence by the two recognized identifier
// grammars (spec §4.3, §6).
const (
	TagKeyValue = "Embedded ID"
	TagCPE      = "Embedded CPE"
)

// keyNames is the set of field names the key-value grammar recognizes,
// matched case-insensitively and captured so the matched name itself can
// be read back out of a submatch.
const keyNames = `(vendor|product|version)`

var (
	// keyValueRe captures up to three (name, value) pairs from a candidate
	// string of the form "MAGICname=value;(name=value;(name=value;)?)?".
	// Trailing pairs beyond the third are ignored, per spec §4.3.
	keyValueRe = regexp.MustCompile(
		`(?i:` + regexp.QuoteMeta(MAGIC) +
			keyNames + `=([^;]*);(?:` +
			keyNames + `=([^;]*);(?:` +
			keyNames + `=([^;]*);)?)?)`,
	)

	// cpeRe captures vendor, product, and version from a CPE 2.3 "a"
	// (application) binding. Non-goals bound this to capturing the first
	// nine colon-separated fields, not validating CPE syntax beyond that;
	// the six fields after version are matched but not captured.
	cpeRe = regexp.MustCompile(
		regexp.QuoteMeta(MAGIC) +
			`(?i:cpe:2\.3:a:)([^:]*):([^:]*):([^:]*):[^:]*:[^:]*:[^:]*:[^:]*:[^:]*:[^:]*`,
	)
)

// Extractor walks forward from a known Pattern occurrence, cuts the file
// into maximal printable-ASCII runs, and parses each run that is at least
// as long as the pattern against the two recognized identifier grammars,
// emitting one Evidence record per recognized field (spec §4.3).
//
// Extractor owns nothing but its Pattern, Sink, and source path; it holds
// no reference to any Cursor beyond the single Run call, per spec §9's
// ownership guidance.
//
// Note: the spec promises "at most one valid embedded product identifier
// per file" on the producer side, but this Extractor follows the
// documented source behavior and walks the entire tail after the first
// header hit, emitting evidence for every recognized run it finds, not
// just the first. Callers that want single-identifier semantics must
// de-duplicate.
type Extractor struct {
	pattern    *Pattern
	sink       Sink
	sourcePath string
	log        log15.Logger
}

// NewExtractor builds an Extractor that emits Evidence built from runs at
// least pattern.Len() bytes long to sink, stamping sourcePath into its
// tracing spans and log lines.
func NewExtractor(pattern *Pattern, sink Sink, sourcePath string) *Extractor {
	return &Extractor{
		pattern:    pattern,
		sink:       sink,
		sourcePath: sourcePath,
		log:        log15.Root(),
	}
}

// SetLogger overrides the Extractor's logger, used for the single
// outward-visible failure mode the spec permits: a warning with the file
// path on I/O faults during the forward walk (spec §7).
func (e *Extractor) SetLogger(l log15.Logger) { e.log = l }

// Run seeks c to offset (the byte index reported by a prior Scanner.Search
// Found result) and walks forward to end of file, emitting Evidence to
// the Extractor's Sink as recognized identifier runs are encountered. It
// returns the number of Evidence records emitted.
//
// I/O faults during the walk are logged and stop the walk; evidence
// already emitted is retained and no error is returned, matching spec
// §7's propagation policy for ReadError encountered past the initial
// KMP search.
func (e *Extractor) Run(ctx context.Context, c *Cursor, offset int64) (int, error) {
	if err := c.Seek(offset); err != nil {
		return 0, err
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "eid.Extractor.Run")
	defer span.Finish()
	span.SetTag("eid.path", e.sourcePath)
	span.SetTag("eid.offset", offset)

	m := e.pattern.Len()
	var run []byte
	emitted := 0

	flush := func() {
		if len(run) >= m {
			emitted += e.parseCandidate(string(run))
		}
		run = run[:0]
	}

	for {
		if err := ctx.Err(); err != nil {
			span.LogFields(otlog.String("event", "cancelled"))
			span.SetTag("eid.evidence_count", emitted)
			return emitted, err
		}

		b, err := c.NextByte()
		if err != nil {
			e.log.Warn("eid: read error during identifier extraction", "path", e.sourcePath, "err", err)
			span.LogFields(otlog.String("event", "read-error"), otlog.String("error", err.Error()))
			flush()
			span.SetTag("eid.evidence_count", emitted)
			return emitted, nil
		}
		if b == EOF {
			flush()
			break
		}
		if b >= 0x20 && b <= 0x7E {
			run = append(run, byte(b))
		} else {
			flush()
		}
	}

	span.SetTag("eid.evidence_count", emitted)
	return emitted, nil
}

// parseCandidate tests s against both recognized grammars and emits
// whatever they find. Both are tried on every candidate; a candidate
// satisfying both forms emits both sets of Evidence. A candidate
// satisfying neither is discarded silently (spec §4.3, §7).
func (e *Extractor) parseCandidate(s string) int {
	emitted := 0
	emitted += e.parseKeyValue(s)
	emitted += e.parseCPE(s)
	return emitted
}

func (e *Extractor) parseKeyValue(s string) int {
	m := keyValueRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	emitted := 0
	pairs := [][2]string{{m[1], m[2]}, {m[3], m[4]}, {m[5], m[6]}}
	for _, pair := range pairs {
		name, value := pair[0], pair[1]
		if name == "" {
			continue
		}
		e.emit(kindForFieldName(name), TagKeyValue, strings.ToLower(name), value)
		emitted++
	}
	return emitted
}

func (e *Extractor) parseCPE(s string) int {
	m := cpeRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	vendor, product, version := underscoreToSpace(m[1]), underscoreToSpace(m[2]), underscoreToSpace(m[3])
	e.emit(Vendor, TagCPE, "vendor", vendor)
	e.emit(Product, TagCPE, "product", product)
	e.emit(Version, TagCPE, "version", version)
	return 3
}

func (e *Extractor) emit(kind Kind, sourceTag, fieldName, value string) {
	ev := Evidence{
		Kind:       kind,
		SourceTag:  sourceTag,
		SourcePath: e.sourcePath,
		FieldName:  fieldName,
		Value:      value,
		Confidence: Highest,
	}
	if kind == Version {
		if norm, ok := normalizeVersion(value); ok {
			ev.NormalizedVersion = norm
		}
	}
	e.sink.Emit(ev)
}

func kindForFieldName(name string) Kind {
	switch strings.ToLower(name) {
	case "vendor":
		return Vendor
	case "product":
		return Product
	default:
		return Version
	}
}

func underscoreToSpace(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
