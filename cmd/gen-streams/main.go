package main

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"github.com/okian/recency/internal/adapters/source"
	"github.com/okian/recency/pkg/logger"
)

// Default generator constants.
const (
	defaultStreams = 5
	defaultEvents  = 5
	defaultMaxGap  = 5
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("gen-streams", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		output  = fs.String("output", "", "Output YAML file (default: streams_TIMESTAMP.yaml)")
		streams = fs.Int("streams", defaultStreams, "Number of input streams")
		events  = fs.Int("events", defaultEvents, "Events per stream")
		maxGap  = fs.Int64("max-gap", defaultMaxGap, "Largest timestamp step between consecutive events")
		seed    = fs.Uint64("seed", uint64(time.Now().UnixNano()), "PRNG seed")
		prefix  = fs.String("prefix", "", "Payload prefix; uuid payloads when empty")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return 1
	}
	log := logger.Get()

	if *output == "" {
		*output = "streams_" + time.Now().Format("20060102_150405") + ".yaml"
	}

	set, err := source.Generate(source.GenerateConfig{
		Streams:         *streams,
		EventsPerStream: *events,
		MaxGap:          *maxGap,
		Seed:            *seed,
		PayloadPrefix:   *prefix,
	})
	if err != nil {
		log.Error(ctx, "failed to generate streams", logger.Error(err))
		return 1
	}
	if err := source.WriteFile(ctx, *output, set); err != nil {
		log.Error(ctx, "failed to write streams", logger.Error(err))
		return 1
	}

	log.Info(ctx, "generated streams",
		logger.String("output", *output),
		logger.Int("streams", len(set)),
		logger.Int("events", set.Total()),
		logger.Any("seed", *seed),
	)
	return 0
}
