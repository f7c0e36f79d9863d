// Command mdist computes pairwise distances between coordinate sets stored as
// CSV files (one x,y,z row per point).
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/nozzle/mdist"
	"github.com/nozzle/mdist/internal/rand"
)

func main() {
	// Parse command-line flags
	refFile := flag.String("ref", "", "Reference coordinates CSV file")
	confFile := flag.String("conf", "", "Configuration coordinates CSV file (omit for self distances)")
	boxFlag := flag.String("box", "", "Orthogonal box edges as Lx,Ly,Lz (omit for no periodicity)")
	cutoff := flag.Float64("cutoff", 0, "Report only pairs within this distance, using a cell list")
	outputFile := flag.String("output", "distances.csv", "Output CSV file")
	workers := flag.Int("workers", 0, "Number of workers (0 = auto)")
	random := flag.Int("random", 0, "Generate this many random reference points instead of reading -ref")
	seed := flag.Uint("seed", 42, "Random seed for -random")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	var logger *slog.Logger
	switch *logFormat {
	case "json":
		logger = mdist.NewJSONLogger(os.Stderr, level)
	case "text":
		logger = mdist.NewTextLogger(os.Stderr, level)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown -log-format %q\n", *logFormat)
		os.Exit(1)
	}

	if err := run(options{
		refFile:    *refFile,
		confFile:   *confFile,
		box:        *boxFlag,
		cutoff:     *cutoff,
		outputFile: *outputFile,
		workers:    *workers,
		random:     *random,
		seed:       uint32(*seed),
	}, logger); err != nil {
		logger.Error("mdist failed", "error", err)
		if errors.Is(err, errUsage) {
			flag.Usage()
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("either -ref or -random is required")

type options struct {
	refFile    string
	confFile   string
	box        string
	cutoff     float64
	outputFile string
	workers    int
	random     int
	seed       uint32
}

func run(opts options, logger *slog.Logger) error {
	box, err := parseBox(opts.box)
	if err != nil {
		return err
	}

	var ref []float32
	switch {
	case opts.random > 0:
		ref = randomCoordinates(opts.random, opts.seed, box)
	case opts.refFile != "":
		if ref, err = loadCoordinates(opts.refFile); err != nil {
			return fmt.Errorf("loading %s: %w", opts.refFile, err)
		}
	default:
		return errUsage
	}

	var conf []float32
	if opts.confFile != "" {
		if conf, err = loadCoordinates(opts.confFile); err != nil {
			return fmt.Errorf("loading %s: %w", opts.confFile, err)
		}
	}
	logger.Info("loaded coordinates", "reference", len(ref)/3, "configuration", len(conf)/3, "periodic", box != nil)

	calc := mdist.New(mdist.Config{NumWorkers: opts.workers, Logger: logger})

	file, err := os.Create(opts.outputFile)
	if err != nil {
		return err
	}
	defer file.Close()

	if opts.cutoff > 0 {
		var pairs []mdist.Pair
		if conf != nil {
			pairs, err = calc.CappedDistance(ref, conf, box, opts.cutoff)
		} else {
			pairs, err = calc.SelfCappedDistance(ref, box, opts.cutoff)
		}
		if err != nil {
			return err
		}
		if err := writePairs(file, pairs); err != nil {
			return err
		}
		logger.Info("saved pairs", "file", opts.outputFile, "pairs", len(pairs), "cutoff", opts.cutoff)
		return nil
	}

	var d []float64
	cols := 1
	if conf != nil {
		d, err = calc.DistanceArray(ref, conf, box, nil)
		cols = len(conf) / 3
	} else {
		d, err = calc.SelfDistanceArray(ref, box, nil)
	}
	if err != nil {
		return err
	}
	if err := writeMatrix(file, d, cols); err != nil {
		return err
	}

	attrs := []any{"file", opts.outputFile, "distances", len(d)}
	if len(d) > 0 {
		attrs = append(attrs, "min", floats.Min(d), "max", floats.Max(d))
	}
	logger.Info("saved distances", attrs...)
	return nil
}

// parseBox parses "Lx,Ly,Lz". An empty string means no box.
func parseBox(s string) ([]float32, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("box %q: want Lx,Ly,Lz: %w", s, mdist.ErrDimension)
	}
	box := make([]float32, 3)
	for k, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("box %q: %w", s, err)
		}
		box[k] = float32(v)
	}
	return box, nil
}

// randomCoordinates draws n points uniformly inside box, or inside a unit
// cube when there is no box.
func randomCoordinates(n int, seed uint32, box []float32) []float32 {
	extent := [3]float32{1, 1, 1}
	for k := range box {
		if box[k] > 0 {
			extent[k] = box[k]
		}
	}
	return rand.NewMT19937(seed).PointsInBox(n, extent)
}

// loadCoordinates loads x,y,z rows from a CSV file (no header).
func loadCoordinates(filename string) ([]float32, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	coords := make([]float32, 0, 3*len(records))
	for i, record := range records {
		for j, val := range record {
			f, err := strconv.ParseFloat(val, 32)
			if err != nil {
				return nil, fmt.Errorf("row %d, col %d: %v", i, j, err)
			}
			coords = append(coords, float32(f))
		}
	}

	return coords, nil
}

// writeMatrix writes d as rows of cols values.
func writeMatrix(w io.Writer, d []float64, cols int) error {
	writer := csv.NewWriter(w)
	if cols <= 0 {
		writer.Flush()
		return writer.Error()
	}
	record := make([]string, cols)
	for start := 0; start < len(d); start += cols {
		for j, val := range d[start : start+cols] {
			record[j] = strconv.FormatFloat(val, 'f', 6, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// writePairs writes i,j,distance rows.
func writePairs(w io.Writer, pairs []mdist.Pair) error {
	writer := csv.NewWriter(w)
	for _, p := range pairs {
		record := []string{
			strconv.Itoa(p.I),
			strconv.Itoa(p.J),
			strconv.FormatFloat(p.Distance, 'f', 6, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
