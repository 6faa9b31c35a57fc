package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/emu"
)

type batchResult struct {
	path string
	res  emu.Result
	err  error
}

func (r batchResult) passed() bool {
	return r.err == nil && r.res.Outcome == emu.Passed
}

// findImages recursively collects .gb files under dir.
func findImages(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".gb") {
			out = append(out, path)
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

// runBatch runs every image under dir, each on its own machine, and prints a
// summary line per image. It returns the exit code for the whole batch.
func runBatch(dir string, jobs int, cfg emu.Config, opts options) int {
	images, err := findImages(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "batch: %v\n", err)
		return exitFail
	}
	if len(images) == 0 {
		fmt.Fprintf(os.Stderr, "batch: no images found in %s\n", dir)
		return exitFail
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]batchResult, len(images))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(jobs)
	for i, path := range images {
		g.Go(func() error {
			results[i] = runBatchImage(ctx, path, cfg, opts)
			return nil
		})
	}
	_ = g.Wait()

	failures := 0
	for _, r := range results {
		status := "PASS"
		if !r.passed() {
			status = "FAIL"
			failures++
		}
		rel, err := filepath.Rel(dir, r.path)
		if err != nil {
			rel = r.path
		}
		if r.err != nil {
			fmt.Printf("%s  %-40s %v\n", status, rel, r.err)
		} else {
			fmt.Printf("%s  %-40s %s\n", status, rel, r.res)
		}
	}
	fmt.Printf("\n%d/%d passed\n", len(results)-failures, len(results))

	if failures > 0 {
		return exitFail
	}
	return exitPass
}

func runBatchImage(ctx context.Context, path string, cfg emu.Config, opts options) batchResult {
	m := emu.New(cfg)
	if err := m.LoadImageFromFile(path); err != nil {
		return batchResult{path: path, err: err}
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	res, err := m.Run(ctx, emu.Limits{
		Steps:  opts.steps,
		Cycles: opts.cycles,
		Auto:   true,
	})
	return batchResult{path: path, res: res, err: err}
}
