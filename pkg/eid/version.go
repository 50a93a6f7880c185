package eid

import "github.com/coreos/go-semver/semver"

// normalizeVersion attempts to parse raw as a semantic version and, if it
// parses, returns its canonical MAJOR.MINOR.PATCH form. A two-component
// value such as "0.2" is first padded with a zero patch ("0.2.0"). Values
// that still do not parse (e.g. vendor-specific build strings) return
// false, leaving the caller with the raw value; this never errors and
// never changes which Evidence gets emitted,
// it only populates Evidence.NormalizedVersion as an enrichment.
func normalizeVersion(raw string) (string, bool) {
	padded := raw
	if dots := countByte(raw, '.'); dots == 1 {
		// go-semver requires a full MAJOR.MINOR.PATCH triple; a common
		// embedded-identifier shape is "0.2" with an implied zero patch.
		padded = raw + ".0"
	}
	v, err := semver.NewVersion(padded)
	if err != nil {
		return "", false
	}
	return v.String(), true
}

func countByte(s string, b byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			n++
		}
	}
	return n
}
