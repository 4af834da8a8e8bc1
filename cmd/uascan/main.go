package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/uascan/uascan/detect"
	"github.com/uascan/uascan/logging"
	"github.com/uascan/uascan/ruleload"
)

// uascan classifies user-agent strings read from stdin, one per line, and
// writes one JSON result per line to stdout.

func main() {
	ruleDir := flag.String("rules", envOr("UASCAN_RULE_DIR", "./rules"), "rule corpus directory")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "parallel classification workers")
	batch := flag.Int("batch", 4096, "lines classified per dispatch batch")
	flag.Parse()

	logging.Init("uascan")

	t0 := time.Now()
	bundle, err := ruleload.FromDir(*ruleDir)
	if err != nil {
		slog.Error("rule load failed", "dir", *ruleDir, "error", err)
		os.Exit(1)
	}
	db, err := detect.Load(bundle.Records)
	if err != nil {
		slog.Error("rule compile failed", "error", err)
		os.Exit(1)
	}
	slog.Info("rules loaded",
		"dir", *ruleDir,
		"files", bundle.Files,
		"rules", bundle.Rules,
		"sha256", bundle.SHA256[:12],
		"duration", time.Since(t0).Round(time.Millisecond))

	det, err := detect.New(db, detect.WithWorkers(*workers))
	if err != nil {
		slog.Error("detector init failed", "error", err)
		os.Exit(1)
	}

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	enc := json.NewEncoder(out)

	total := 0
	start := time.Now()
	lines := make([]string, 0, *batch)
	flush := func() error {
		if len(lines) == 0 {
			return nil
		}
		for _, res := range det.ClassifyAll(lines) {
			if err := enc.Encode(res); err != nil {
				return err
			}
		}
		total += len(lines)
		lines = lines[:0]
		return nil
	}

	for in.Scan() {
		lines = append(lines, in.Text())
		if len(lines) >= *batch {
			if err := flush(); err != nil {
				slog.Error("write failed", "error", err)
				os.Exit(1)
			}
		}
	}
	if err := in.Err(); err != nil {
		slog.Error("read failed", "error", err)
		os.Exit(1)
	}
	if err := flush(); err != nil {
		slog.Error("write failed", "error", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(total) / elapsed.Seconds()
	}
	slog.Info("done", "inputs", total, "duration", elapsed.Round(time.Millisecond), "per_second", fmt.Sprintf("%.0f", rate))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
