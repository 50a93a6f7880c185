package eid

import "context"

// MatchResult is the outcome of a Scanner search: either NotFound, or
// Found at Offset. A MatchResult is a result, not an error (spec §7).
type MatchResult struct {
	Found  bool
	Offset int64
}

// NotFound is the MatchResult reported when the pattern does not occur
// anywhere in the cursor's byte stream.
var NotFound = MatchResult{}

// byteSource is the read side of Cursor that the KMP search loop needs.
// Scanner depends on this interface rather than the concrete Cursor type
// so the loop can be driven against a probe-recording wrapper in tests.
type byteSource interface {
	ByteAt(offset int64) (int, error)
}

// Scanner locates the first occurrence of a Pattern in a Cursor's byte
// stream in Θ(n+m) comparisons using Knuth-Morris-Pratt, per spec §4.2.
// A Scanner holds no reference to any Cursor; the same Scanner may be
// reused to search any number of Cursors, one at a time, since it owns
// nothing but the immutable Pattern.
type Scanner struct {
	pattern *Pattern
}

// NewScanner builds a Scanner over pattern. pattern must have length >= 2
// and a table of equal length, which NewPattern already guarantees;
// NewScanner re-validates the invariant defensively since a Pattern could
// in principle be zero-valued by a caller bypassing NewPattern.
func NewScanner(pattern *Pattern) (*Scanner, error) {
	if pattern == nil || pattern.Len() < 2 {
		return nil, invalidUsage("eid: scanner: pattern length must be >= 2")
	}
	if len(pattern.Table()) != pattern.Len() {
		return nil, invalidUsage("eid: scanner: pattern/table length mismatch (%d vs %d)", pattern.Len(), len(pattern.Table()))
	}
	return &Scanner{pattern: pattern}, nil
}

// Search finds the first occurrence of the Scanner's Pattern in c,
// returning NotFound if it never occurs. The sequence of offsets probed
// on c is strictly non-decreasing, satisfying Cursor's contract.
func (s *Scanner) Search(ctx context.Context, c *Cursor) (MatchResult, error) {
	return s.search(ctx, c)
}

// search is the probe loop itself, taking a byteSource so tests can
// observe the exact sequence of probed offsets.
func (s *Scanner) search(ctx context.Context, c byteSource) (MatchResult, error) {
	p := s.pattern
	t := p.Table()
	m := p.Len()

	var matchOffset, patternIndex int64
	for {
		if err := ctx.Err(); err != nil {
			return NotFound, err
		}
		b, err := c.ByteAt(matchOffset + patternIndex)
		if err != nil {
			return NotFound, err
		}
		if b == EOF {
			return NotFound, nil
		}
		if p.At(int(patternIndex)) == byte(b) {
			if patternIndex == int64(m-1) {
				return MatchResult{Found: true, Offset: matchOffset}, nil
			}
			patternIndex++
			continue
		}
		if tv := t[patternIndex]; tv > -1 {
			matchOffset += patternIndex - int64(tv)
			patternIndex = int64(tv)
		} else {
			patternIndex = 0
			matchOffset++
		}
	}
}
