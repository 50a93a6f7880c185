package eidglue

import "testing"

func TestFilterRejectsOversizedFiles(t *testing.T) {
	f := NewFilter()
	f.MaxFileSize = 1024
	if f.Eligible("plain.bin", 2048) {
		t.Fatal("expected oversized file to be rejected")
	}
	if !f.Eligible("plain.bin", 512) {
		t.Fatal("expected undersized file to be accepted")
	}
}

func TestFilterRejectsExcludedExtensionsCaseInsensitively(t *testing.T) {
	f := NewFilter()
	cases := []string{"archive.ZIP", "archive.zip", "bundle.Jar"}
	for _, name := range cases {
		if f.Eligible(name, 10) {
			t.Fatalf("%q: expected exclusion, got eligible", name)
		}
	}
	if !f.Eligible("binary.exe", 10) {
		t.Fatal("expected .exe to be eligible")
	}
}

func TestNilFilterAcceptsEverything(t *testing.T) {
	var f *Filter
	if !f.Eligible("anything", 1<<40) {
		t.Fatal("nil filter should accept everything")
	}
}
