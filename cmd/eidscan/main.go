// Command eidscan scans files for the embedded product identifier
// header and reports any vendor/product/version evidence it finds. It
// is a thin CLI/service shell around pkg/eid and internal/eidglue,
// structured the way cmd/server/shared.Main bootstraps a Sourcegraph
// service: flag parsing, an optional .env file, log15 setup, then
// dispatch.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/kaondix/DependencyCheck/internal/eidglue"
	"github.com/kaondix/DependencyCheck/pkg/eid"
)

func main() {
	var (
		dir        = flag.String("dir", "", "recursively scan every file under this directory")
		envFile    = flag.String("envfile", "", "optional .env file to load before reading EIDSCAN_* environment variables")
		jsonOut    = flag.Bool("json", false, "emit line-delimited JSON evidence instead of a colorized report")
		serveAddr  = flag.String("serve", "", "if set, run an HTTP debug/status server on this address instead of scanning argv")
		maxSizeArg = flag.Int64("max-size", eidglue.DefaultMaxFileSize, "skip files larger than this many bytes")
	)
	flag.Parse()
	log.SetFlags(0)

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
			log.Fatalf("eidscan: failed to load %s: %s", *envFile, err)
		}
	}

	logger := log15.New()
	logger.SetHandler(log15.LvlFilterHandler(levelFromEnv(), log15.StreamHandler(os.Stderr, log15.LogfmtFormat())))

	filter := eidglue.NewFilter()
	filter.MaxFileSize = *maxSizeArg

	if *serveAddr != "" {
		if err := serve(*serveAddr, filter, logger); err != nil {
			logger.Crit("eidscan: server exited", "err", err)
			os.Exit(1)
		}
		return
	}

	paths := flag.Args()
	if *dir != "" {
		walked, err := walkDir(*dir)
		if err != nil {
			logger.Crit("eidscan: failed to walk directory", "dir", *dir, "err", err)
			os.Exit(1)
		}
		paths = append(paths, walked...)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: eidscan [-dir DIR] [-json] [-serve ADDR] [file ...]")
		os.Exit(2)
	}

	var sink eid.Sink
	mem := &eidglue.MemorySink{}
	if *jsonOut {
		sink = eidglue.NewJSONSink(os.Stdout)
	} else {
		sink = mem
	}

	metrics := eidglue.NewMetrics("eidscan", nil)
	batch, err := eidglue.ScanFiles(context.Background(), paths, eid.DefaultPattern(), sink, filter, metrics, logger)
	if err != nil {
		logger.Crit("eidscan: batch scan aborted", "err", err)
		os.Exit(1)
	}

	if !*jsonOut {
		printReport(os.Stdout, batch, mem.Evidence())
	}
}

func levelFromEnv() log15.Lvl {
	switch os.Getenv("EIDSCAN_LOG_LEVEL") {
	case "debug", "dbug":
		return log15.LvlDebug
	case "warn":
		return log15.LvlWarn
	case "error", "crit":
		return log15.LvlCrit
	default:
		return log15.LvlInfo
	}
}
