package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/kaondix/DependencyCheck/internal/eidglue"
	"github.com/kaondix/DependencyCheck/pkg/eid"
)

func TestHealthzOK(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := newRouter(nil, eidglue.NewMetrics("test_healthz", reg), reg, log15.New())
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestScanEndpointReturnsEvidence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.bin")
	body := eid.MAGIC + "vendor=Acme;product=Widget;version=1.0.0;"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	router := newRouter(eidglue.NewFilter(), eidglue.NewMetrics("test_scan", reg), reg, log15.New())
	srv := httptest.NewServer(router)
	defer srv.Close()

	reqBody, err := json.Marshal(scanRequest{Paths: []string{path}})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+"/scan", "application/json", bytes.NewReader(reqBody))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got scanResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got.Results) != 1 || !got.Results[0].Found {
		t.Fatalf("Results = %+v, want one Found result", got.Results)
	}
	if len(got.Evidence) != 3 {
		t.Fatalf("Evidence = %+v, want 3 records", got.Evidence)
	}
}
