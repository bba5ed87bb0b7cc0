package model

import (
	"slices"

	"github.com/samber/lo"
)

// block is a [start, end) interval of slots within a day
type block struct {
	start, end int
}

// dayBlocks collects the intervals of the events meeting on the given week and day, sorted by start
func dayBlocks(times []Time, week, day int) []block {
	blocks := lo.FilterMap(times, func(time Time, _ int) (block, bool) {
		return block{time.Start(), time.End()}, time.MeetsOn(week, day)
	})
	slices.SortStableFunc(blocks, func(a, b block) int { return a.start - b.start })
	return blocks
}

// mergeBlocks sweeps the sorted intervals from left to right, merging the next interval into the current block
// whenever the gap between them is at most breakLength slots. onMerge is called with the block after every merge
// step; the merged blocks are returned
func mergeBlocks(blocks []block, breakLength int, onMerge func(merged block)) []block {
	if len(blocks) == 0 {
		return nil
	}

	merged := []block{blocks[0]}
	for _, next := range blocks[1:] {
		current := &merged[len(merged)-1]
		if current.end+breakLength < next.start {
			merged = append(merged, next)
			continue
		}
		current.end = max(current.end, next.end)
		if onMerge != nil {
			onMerge(*current)
		}
	}
	return merged
}
