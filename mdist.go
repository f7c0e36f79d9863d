// Package mdist computes pairwise Euclidean distances between sets of 3-D
// coordinates, as used in molecular-simulation analysis (contact maps, radial
// distribution functions, clustering).
//
// Distances may be corrected for an orthogonal periodic box with the
// minimum-image convention. Coordinates are single precision and results are
// double precision.
//
// Basic usage:
//
//	d, err := mdist.DistanceArray(reference, configuration, box, nil)
//	// d[i*M+j] is the distance between reference point i and configuration point j
//
// Callers that process many frames pass the previous result back in to avoid
// allocating a new buffer per frame.
package mdist

import (
	"context"
	"log/slog"

	"github.com/nozzle/mdist/celllist"
	"github.com/nozzle/mdist/distance"
	"github.com/nozzle/mdist/internal/parallel"
)

// Errors returned by the distance operations. Match them with errors.Is.
var (
	ErrShape     = distance.ErrShape
	ErrDimension = distance.ErrDimension
	ErrCutoff    = celllist.ErrCutoff
)

// Pair is a pair of point indices within a cutoff and their distance.
type Pair = celllist.Pair

// Config configures a Calculator.
type Config struct {
	// NumWorkers for parallel processing of large inputs.
	// 0 = auto-detect based on CPU cores, 1 = always serial.
	// Default: 0
	NumWorkers int

	// Logger receives debug records for each call and warnings for rejected
	// inputs.
	// Default: discards everything
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		NumWorkers: 0,
		Logger:     NoopLogger(),
	}
}

// Calculator runs the distance kernels with a fixed configuration. It holds
// no mutable state and is safe for concurrent use as long as concurrent
// calls do not share a result buffer.
type Calculator struct {
	Config Config

	workers int
	log     *slog.Logger
}

// New creates a Calculator with the given configuration.
func New(config Config) *Calculator {
	log := config.Logger
	if log == nil {
		log = NoopLogger()
	}
	return &Calculator{
		Config:  config,
		workers: parallel.Resolve(config.NumWorkers),
		log:     log,
	}
}

// DistanceArray returns the distance between every reference point i and
// every configuration point j as a row-major N×M matrix.
//
// box is nil or empty for no periodicity, otherwise exactly three edge
// lengths; an edge <= 0 leaves that axis non-periodic. result is nil to
// allocate, or a buffer of exactly N*M elements that is filled and returned.
func (c *Calculator) DistanceArray(reference, configuration, box []float32, result []float64) ([]float64, error) {
	ctx := context.Background()
	b, err := distance.NewBox(box)
	if err != nil {
		c.logRejected(ctx, "distance_array", err)
		return nil, err
	}
	d, err := distance.CrossDistance(reference, configuration, b, result, c.workers)
	if err != nil {
		c.logRejected(ctx, "distance_array", err)
		return nil, err
	}
	c.log.DebugContext(ctx, "distance_array completed",
		"reference", len(reference)/3,
		"configuration", len(configuration)/3,
		"periodic", b != nil,
		"reused_buffer", result != nil,
		"workers", c.workers,
	)
	return d, nil
}

// SelfDistanceArray returns the distance of every pair i < j of coordinates
// as a condensed vector of N*(N-1)/2 elements, ordered by i then j.
//
// box and result follow the rules of DistanceArray.
func (c *Calculator) SelfDistanceArray(coordinates, box []float32, result []float64) ([]float64, error) {
	ctx := context.Background()
	b, err := distance.NewBox(box)
	if err != nil {
		c.logRejected(ctx, "self_distance_array", err)
		return nil, err
	}
	d, err := distance.SelfDistance(coordinates, b, result, c.workers)
	if err != nil {
		c.logRejected(ctx, "self_distance_array", err)
		return nil, err
	}
	c.log.DebugContext(ctx, "self_distance_array completed",
		"coordinates", len(coordinates)/3,
		"pairs", len(d),
		"periodic", b != nil,
		"reused_buffer", result != nil,
		"workers", c.workers,
	)
	return d, nil
}

// CappedDistance returns every reference/configuration pair no further
// apart than cutoff, found with a cell list. Distances equal the
// corresponding DistanceArray entries exactly.
func (c *Calculator) CappedDistance(reference, configuration, box []float32, cutoff float64) ([]Pair, error) {
	ctx := context.Background()
	b, err := distance.NewBox(box)
	if err != nil {
		c.logRejected(ctx, "capped_distance", err)
		return nil, err
	}
	pairs, err := celllist.CappedDistance(reference, configuration, cutoff, b)
	if err != nil {
		c.logRejected(ctx, "capped_distance", err)
		return nil, err
	}
	c.log.DebugContext(ctx, "capped_distance completed",
		"reference", len(reference)/3,
		"configuration", len(configuration)/3,
		"cutoff", cutoff,
		"pairs", len(pairs),
		"periodic", b != nil,
	)
	return pairs, nil
}

// SelfCappedDistance returns every pair i < j of coordinates no further
// apart than cutoff, found with a cell list.
func (c *Calculator) SelfCappedDistance(coordinates, box []float32, cutoff float64) ([]Pair, error) {
	ctx := context.Background()
	b, err := distance.NewBox(box)
	if err != nil {
		c.logRejected(ctx, "self_capped_distance", err)
		return nil, err
	}
	pairs, err := celllist.SelfCappedDistance(coordinates, cutoff, b)
	if err != nil {
		c.logRejected(ctx, "self_capped_distance", err)
		return nil, err
	}
	c.log.DebugContext(ctx, "self_capped_distance completed",
		"coordinates", len(coordinates)/3,
		"cutoff", cutoff,
		"pairs", len(pairs),
		"periodic", b != nil,
	)
	return pairs, nil
}

func (c *Calculator) logRejected(ctx context.Context, op string, err error) {
	c.log.WarnContext(ctx, op+" rejected input", "error", err)
}

// DistanceArray computes the N×M distance matrix with DefaultConfig.
// See Calculator.DistanceArray.
func DistanceArray(reference, configuration, box []float32, result []float64) ([]float64, error) {
	return New(DefaultConfig()).DistanceArray(reference, configuration, box, result)
}

// SelfDistanceArray computes the condensed self-distance vector with
// DefaultConfig. See Calculator.SelfDistanceArray.
func SelfDistanceArray(coordinates, box []float32, result []float64) ([]float64, error) {
	return New(DefaultConfig()).SelfDistanceArray(coordinates, box, result)
}
