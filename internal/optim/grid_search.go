package optim

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/san-kum/meshmodel/internal/sim"
)

// ErrNoCandidate is returned when no parameter combination produced a
// usable run.
var ErrNoCandidate = errors.New("no parameter combination could be evaluated")

// GridSearch tries every combination of the given parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Combinations is the number of runs Search performs.
func (g *GridSearch) Combinations() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search builds a session for every combination, advances it ticks frames
// and returns the combination with the smallest value of metricName.
// Combinations that fail to build, or whose fields or metric end up
// non-finite, are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(params map[string]float64) (*sim.Session, error),
	ticks int,
	metricName string,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d parameter names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), build, ticks, metricName, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoCandidate
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build func(map[string]float64) (*sim.Session, error),
	ticks int,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		s, err := build(current)
		if err != nil {
			return nil
		}
		s.Run(ticks)
		if !s.State().IsValid() {
			return nil
		}

		val, ok := s.Metrics()[metricName]
		if !ok {
			return fmt.Errorf("unknown metric: %s", metricName)
		}
		if val < *best {
			*best = val
			*bestParams = maps.Clone(current)
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := maps.Clone(current)
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, build, ticks, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
