package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pavanmanishd/temparena"
)

var (
	runCapacity int
	runFrames   int
	runAllocs   int
	runMaxSize  int
	runSeed     uint64
	runMmap     bool
	runTrack    bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVar(&runCapacity, "capacity", 1<<20, "Base page capacity in bytes (0 = 64 MiB default)")
	cmd.Flags().IntVar(&runFrames, "frames", 10, "Number of frames to simulate")
	cmd.Flags().IntVar(&runAllocs, "allocs", 1000, "Scratch allocations per frame")
	cmd.Flags().IntVar(&runMaxSize, "max-size", 512, "Largest scratch allocation in bytes")
	cmd.Flags().Uint64Var(&runSeed, "seed", 1, "Random seed for allocation sizes")
	cmd.Flags().BoolVar(&runMmap, "mmap", false, "Back pages with anonymous mappings instead of the Go heap")
	cmd.Flags().BoolVar(&runTrack, "track", true, "Enable the allocation tracker")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the frame loop",
		Long: `The run command simulates a frame loop on a single arena.

Example:
  framesim run --frames 60 --allocs 5000
  framesim run --capacity 65536 --json
  framesim run --mmap -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := simConfig{
				Capacity: runCapacity,
				Frames:   runFrames,
				Allocs:   runAllocs,
				MaxSize:  runMaxSize,
				Seed:     runSeed,
				Mmap:     runMmap,
				Track:    runTrack,
			}
			rep, err := simulate(cfg, logger)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), rep)
		},
	}
}

type simConfig struct {
	Capacity int
	Frames   int
	Allocs   int
	MaxSize  int
	Seed     uint64
	Mmap     bool
	Track    bool
}

// frameStats is what one frame cost, captured just before its reset.
type frameStats struct {
	Frame   int                    `json:"frame"`
	Label   string                 `json:"label"`
	Info    temparena.Info         `json:"info"`
	Metrics temparena.ArenaMetrics `json:"metrics"`
}

type simReport struct {
	Capacity int          `json:"capacity"`
	Frames   []frameStats `json:"frames"`
}

// simulate runs cfg.Frames frames on one arena. Each frame allocates
// scratch buffers, formats strings, builds a vector and a map, checks the
// container contents and then resets the arena.
func simulate(cfg simConfig, log *slog.Logger) (simReport, error) {
	if cfg.Frames < 0 || cfg.Allocs < 0 || cfg.MaxSize < 0 {
		return simReport{}, fmt.Errorf("frames, allocs and max-size must be non-negative")
	}
	opts := []temparena.Option{
		temparena.WithTracking(cfg.Track),
		temparena.WithLogger(log),
	}
	if cfg.Mmap {
		opts = append(opts, temparena.WithProcs(temparena.MmapProcs{}))
	}
	a, err := temparena.TryNewArena(cfg.Capacity, opts...)
	if err != nil {
		return simReport{}, fmt.Errorf("create arena: %w", err)
	}
	defer a.Release()

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	printer := message.NewPrinter(language.English)
	rep := simReport{Capacity: a.PageSize()}

	for f := range cfg.Frames {
		for i := range cfg.Allocs {
			b, err := a.TryAllocBytes(rng.IntN(cfg.MaxSize + 1))
			if err != nil {
				return rep, fmt.Errorf("frame %d alloc %d: %w", f, i, err)
			}
			for j := range b {
				b[j] = byte(i)
			}
		}

		label := a.SprintfLocalized(printer, "frame %d: %d allocations", f, cfg.Allocs)
		if err := checkContainers(a, cfg.Allocs); err != nil {
			return rep, fmt.Errorf("frame %d: %w", f, err)
		}

		log.Debug("frame done", "frame", f, "label", label)
		rep.Frames = append(rep.Frames, frameStats{
			Frame:   f,
			Label:   strings.Clone(label), // outlives the reset below
			Info:    a.Info(),
			Metrics: a.Metrics(),
		})

		// Containers from checkContainers are gone; reset is safe.
		a.Reset()
	}
	return rep, nil
}

// checkContainers fills an arena-backed vector and map and verifies them.
// Both are dropped before it returns.
func checkContainers(a *temparena.Arena, n int) error {
	al := temparena.NewAllocator[int64](a)
	vec := temparena.NewVector[int64](al, 4)
	m := temparena.NewMap[uint32, int64](al, 4)
	for i := range n {
		vec.Append(int64(i) * 3)
		m.Put(uint32(i), int64(i)*7)
	}
	for i := range n {
		if got := vec.At(i); got != int64(i)*3 {
			return fmt.Errorf("vector[%d] = %d, want %d", i, got, int64(i)*3)
		}
		if got, ok := m.Get(uint32(i)); !ok || got != int64(i)*7 {
			return fmt.Errorf("map[%d] = %d (present %v), want %d", i, got, ok, int64(i)*7)
		}
	}
	return nil
}

func printReport(w io.Writer, rep simReport) error {
	if jsonOut {
		return printJSON(w, rep)
	}
	printInfo(w, "capacity: %d bytes\n", rep.Capacity)
	printInfo(w, "%-6s %-10s %-10s %-12s %-10s %-9s %s\n",
		"FRAME", "ALLOCS", "MAX", "TOTAL", "AVERAGE", "OVERFLOW", "UTIL")
	for _, fs := range rep.Frames {
		printInfo(w, "%-6d %-10d %-10d %-12d %-10d %-9d %.1f%%\n",
			fs.Frame,
			fs.Info.AllocationCount,
			fs.Info.MaxAllocation,
			fs.Info.TotalAllocatedBytes,
			fs.Info.AverageAllocation,
			fs.Info.OverflowPagesAllocated,
			fs.Metrics.Utilization*100,
		)
	}
	return nil
}
