package main

import (
	"encoding/json"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/kaondix/DependencyCheck/internal/eidglue"
	"github.com/kaondix/DependencyCheck/pkg/eid"
)

// scanRequest is the body of POST /scan: a list of absolute paths on the
// server's own filesystem to scan. This stands in for the "surrounding
// analyzer pipeline" collaborator spec §1 leaves out of scope — a real
// deployment would receive file content, not paths, over the wire.
type scanRequest struct {
	Paths []string `json:"paths"`
}

type scanResponse struct {
	Results  []eid.Result   `json:"results"`
	Evidence []eid.Evidence `json:"evidence"`
	Skipped  int            `json:"skipped"`
}

// newRouter builds the HTTP debug/status surface: /healthz, /metrics,
// and POST /scan. Split from serve so tests can exercise it with
// httptest without binding a socket.
func newRouter(filter *eidglue.Filter, metrics *eidglue.Metrics, reg *prometheus.Registry, log log15.Logger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	r.HandleFunc("/scan", func(w http.ResponseWriter, req *http.Request) {
		var body scanRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		mem := &eidglue.MemorySink{}
		batch, err := eidglue.ScanFiles(req.Context(), body.Paths, eid.DefaultPattern(), mem, filter, metrics, log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scanResponse{
			Results:  batch.Results,
			Evidence: mem.Evidence(),
			Skipped:  batch.Skipped,
		})
	}).Methods(http.MethodPost)

	return gziphandler.GzipHandler(r)
}

// serve runs the HTTP debug/status surface on addr. It is grounded on
// cmd/server/shared.go's service-wiring idiom (bring up a multiplexed
// HTTP server, never exits on its own) and matcher.go's use of
// opentracing spans per unit of work.
func serve(addr string, filter *eidglue.Filter, log log15.Logger) error {
	reg := prometheus.NewRegistry()
	metrics := eidglue.NewMetrics("eidscan", reg)

	srv := &http.Server{
		Addr:    addr,
		Handler: newRouter(filter, metrics, reg, log),
	}
	log.Info("eidscan: serving", "addr", addr)
	return srv.ListenAndServe()
}
