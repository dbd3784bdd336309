package transform

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/pspoerri/gctp/proj"
)

// Coord is a single coordinate pair. For geographic coordinates X is the
// longitude and Y the latitude.
type Coord struct {
	X, Y float64
}

// BatchConfig holds batch transform configuration.
type BatchConfig struct {
	Concurrency int // worker goroutines; defaults to GOMAXPROCS
	ChunkSize   int // points per job; defaults to 4096
	MaxErrors   int // point errors kept in the returned error; 0 keeps all
	Verbose     bool
	Progress    io.Writer // renders a progress bar when set
}

// Stats holds batch statistics.
type Stats struct {
	Points  int64
	Failed  int64
	InBreak int64
}

type pointFunc func(a, b float64) (float64, float64, error)

// Forward projects geographic coordinates with t.
func Forward(ctx context.Context, cfg BatchConfig, t proj.Transformer, in []Coord) ([]Coord, Stats, error) {
	return run(ctx, cfg, in, t.Forward)
}

// Inverse takes projected coordinates of t back to geographic ones.
func Inverse(ctx context.Context, cfg BatchConfig, t proj.Transformer, in []Coord) ([]Coord, Stats, error) {
	return run(ctx, cfg, in, t.Inverse)
}

// Run sends every point through the pipeline.
//
// Points that fail are set to NaN and their errors are collected into a
// *multierror.Error. Points in an interruption gap keep their coordinates
// and are only counted in Stats.InBreak. Cancelling ctx stops the batch and
// returns the context error.
func Run(ctx context.Context, cfg BatchConfig, p *Pipeline, in []Coord) ([]Coord, Stats, error) {
	return run(ctx, cfg, in, p.Transform)
}

func run(ctx context.Context, cfg BatchConfig, in []Coord, fn pointFunc) ([]Coord, Stats, error) {
	workers := cfg.Concurrency
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := cfg.ChunkSize
	if chunk <= 0 {
		chunk = 4096
	}
	jobs := (len(in) + chunk - 1) / chunk
	if cfg.Verbose {
		log.Printf("Transforming %d points in %d chunks with %d workers", len(in), jobs, workers)
	}

	var pb *progressBar
	if cfg.Progress != nil {
		pb = newProgressBar(cfg.Progress, int64(len(in)))
	}

	out := make([]Coord, len(in))
	var failed, inBreak atomic.Int64
	var mu sync.Mutex
	var merr *multierror.Error
	kept := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(in); start += chunk {
		end := min(start+chunk, len(in))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var errs []error
			for i := start; i < end; i++ {
				x, y, err := fn(in[i].X, in[i].Y)
				switch proj.StatusOf(err) {
				case proj.StatusOK:
					out[i] = Coord{x, y}
				case proj.StatusInBreak:
					out[i] = Coord{x, y}
					inBreak.Add(1)
				default:
					out[i] = Coord{math.NaN(), math.NaN()}
					failed.Add(1)
					errs = append(errs, fmt.Errorf("point %d: %w", i, err))
				}
			}
			if len(errs) > 0 {
				mu.Lock()
				for _, err := range errs {
					if cfg.MaxErrors > 0 && kept >= cfg.MaxErrors {
						break
					}
					merr = multierror.Append(merr, err)
					kept++
				}
				mu.Unlock()
			}
			if pb != nil {
				pb.Add(end - start)
			}
			return nil
		})
	}
	err := g.Wait()
	if pb != nil {
		pb.Finish()
	}
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{Points: int64(len(in)), Failed: failed.Load(), InBreak: inBreak.Load()}
	if cfg.Verbose {
		log.Printf("Transformed %d points (%d failed, %d in break)", stats.Points, stats.Failed, stats.InBreak)
	}
	return out, stats, merr.ErrorOrNil()
}
