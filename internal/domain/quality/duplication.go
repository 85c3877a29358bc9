package quality

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/openkraft/lowgen/internal/domain"
)

// DuplicateThreshold is the run length a shared block must exceed.
const DuplicateThreshold = 5

// Limits bound the quadratic duplication scan.
type Limits struct {
	MaxFiles int
	MaxPairs int
	Workers  int
}

// DefaultLimits returns the default caps with one worker per CPU.
func DefaultLimits() Limits {
	return Limits{
		MaxFiles: domain.DefaultMaxDuplicationFiles,
		MaxPairs: domain.DefaultMaxPairComparisons,
		Workers:  runtime.GOMAXPROCS(0),
	}
}

// NormalizedLines returns the trimmed, non-empty lines of content.
func NormalizedLines(content string) []string {
	raw := strings.Split(content, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// LongestRun returns the length of the longest run of identical consecutive
// lines shared by a and b.
func LongestRun(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	best := 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > best {
					best = cur[j]
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return best
}

type pair struct{ i, j int }

// DetectDuplication compares every pair of files, in parallel, and reports
// a block for each pair sharing more than DuplicateThreshold identical
// lines. Blocks are sorted by (file1, file2). When the file set or pair
// count exceeds the limits, the scan is truncated and a warning returned.
// The percentage is duplicated lines over total lines of all files.
func DetectDuplication(ctx context.Context, files []domain.SourceFile, limits Limits) (domain.DuplicationMetrics, []string, error) {
	result := domain.DuplicationMetrics{Blocks: []domain.DuplicateBlock{}}
	var warnings []string

	totalLines := 0
	for _, f := range files {
		totalLines += strings.Count(f.Content, "\n") + 1
	}

	// 1. Order files so truncation is deterministic
	sorted := append([]domain.SourceFile(nil), files...)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Path < sorted[b].Path })
	if limits.MaxFiles > 0 && len(sorted) > limits.MaxFiles {
		warnings = append(warnings, fmt.Sprintf("duplication scan limited to %d of %d files", limits.MaxFiles, len(sorted)))
		sorted = sorted[:limits.MaxFiles]
	}

	// 2. Enumerate pairs up to the comparison cap
	var pairs []pair
	total := len(sorted) * (len(sorted) - 1) / 2
collect:
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if limits.MaxPairs > 0 && len(pairs) >= limits.MaxPairs {
				warnings = append(warnings, fmt.Sprintf("duplication scan limited to %d of %d file pairs", limits.MaxPairs, total))
				break collect
			}
			pairs = append(pairs, pair{i, j})
		}
	}

	// 3. Compare pairs in parallel into fixed slots
	lines := make([][]string, len(sorted))
	for i, f := range sorted {
		lines[i] = NormalizedLines(f.Content)
	}
	runs := make([]int, len(pairs))

	workers := limits.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			runs[k] = LongestRun(lines[p.i], lines[p.j])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, warnings, fmt.Errorf("detecting duplication: %w", err)
	}

	// 4. Merge in pair order
	dupLines := 0
	for k, p := range pairs {
		if runs[k] > DuplicateThreshold {
			result.Blocks = append(result.Blocks, domain.DuplicateBlock{
				File1: sorted[p.i].Path,
				File2: sorted[p.j].Path,
				Lines: runs[k],
			})
			dupLines += runs[k]
		}
	}
	if totalLines > 0 {
		result.Percentage = float64(dupLines) / float64(totalLines) * 100
	}
	return result, warnings, nil
}
