package eid

import "testing"

func TestNewPatternRejectsShortAndNonASCII(t *testing.T) {
	cases := []struct {
		name string
		lit  string
	}{
		{"empty", ""},
		{"single byte", "A"},
		{"non-ascii", "AB\xff"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewPattern(tc.lit); err == nil {
				t.Fatalf("NewPattern(%q): expected error, got none", tc.lit)
			} else if _, ok := err.(*InvalidUsage); !ok {
				t.Fatalf("NewPattern(%q): expected *InvalidUsage, got %T: %v", tc.lit, err, err)
			}
		})
	}
}

func TestPartialMatchTableSpotCheck(t *testing.T) {
	// spec §8 KMP-table spot check.
	p, err := NewPattern("participate in parachute")
	if err != nil {
		t.Fatal(err)
	}
	want := []int{-1, 0, 0, 0, 0, 0, 0, 0, 1, 2, 0, 0, 0, 0, 0, 0, 1, 2, 3, 0, 0, 0, 0, 0}
	got := p.Table()
	if len(got) != len(want) {
		t.Fatalf("table length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("table[%d] = %d, want %d (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestPartialMatchTableUniversalInvariant(t *testing.T) {
	patterns := []string{"AA", "AB", "ABAB", "ABCABCA", "aaaaaa", MAGIC}
	for _, lit := range patterns {
		p, err := NewPattern(lit)
		if err != nil {
			t.Fatal(err)
		}
		t0 := p.Table()
		if len(t0) != p.Len() {
			t.Fatalf("%q: table length %d != pattern length %d", lit, len(t0), p.Len())
		}
		if t0[0] != -1 || t0[1] != 0 {
			t.Fatalf("%q: t[0]=%d t[1]=%d, want -1, 0", lit, t0[0], t0[1])
		}
		for i := 2; i < p.Len(); i++ {
			k := t0[i]
			if k < 0 || k >= i {
				t.Fatalf("%q: t[%d] = %d out of range", lit, i, k)
			}
			prefix := lit[:k]
			suffix := lit[i-k : i]
			if prefix != suffix {
				t.Fatalf("%q: t[%d]=%d, prefix %q != suffix %q", lit, i, k, prefix, suffix)
			}
			// no longer proper prefix/suffix should exist
			if k+1 < i {
				longer := lit[:k+1]
				longerSuffix := lit[i-k-1 : i]
				if longer == longerSuffix {
					t.Fatalf("%q: t[%d]=%d is not maximal, %q == %q also matches", lit, i, k, longer, longerSuffix)
				}
			}
		}
	}
}

func TestDefaultPatternIsMagic(t *testing.T) {
	p := DefaultPattern()
	if p.String() != MAGIC {
		t.Fatalf("DefaultPattern() = %q, want %q", p.String(), MAGIC)
	}
	if p2 := DefaultPattern(); p2 != p {
		t.Fatalf("DefaultPattern() returned a different instance on second call")
	}
}
