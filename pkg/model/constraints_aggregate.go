package model

import (
	"log"

	"github.com/samber/lo"
)

// aggregateViolations evaluates the kinds that look at the whole class list at once. When stopEarly is set it returns
// as soon as any violation is found, which is enough to answer IsSatisfied
func (constraint Constraint) aggregateViolations(timetable *Timetable, stopEarly bool) int {
	times := lo.Map(constraint.events(timetable), func(event *Event, _ int) Time { return event.mustTime() })
	if len(times) == 0 {
		return 0
	}

	switch constraint.Kind {
	case MaxDays:
		return maxDaysViolations(times, constraint.Limit)
	case MaxDayLoad:
		return constraint.perCell(times, stopEarly, func(blocks []block) int {
			load := lo.SumBy(blocks, func(b block) int { return b.end - b.start })
			return max(0, load-constraint.Limit)
		})
	case MaxBlock:
		return constraint.perCell(times, stopEarly, func(blocks []block) int {
			if len(blocks) < 2 {
				return 0
			}
			overflows := 0
			mergeBlocks(blocks, constraint.Break, func(merged block) {
				if merged.end-merged.start > constraint.Limit {
					overflows++
				}
			})
			return overflows
		})
	case MaxBreaks:
		return constraint.perCell(times, stopEarly, func(blocks []block) int {
			if len(blocks) < 2 {
				return 0
			}
			merged := mergeBlocks(blocks, constraint.Break, nil)
			return max(0, len(merged)-(constraint.Limit+1))
		})
	}

	log.Panicf("%v is not an aggregate constraint", constraint.Kind)
	return 0
}

// perCell applies violations to the meetings of every (week, day) cell of the semester and sums the results
func (constraint Constraint) perCell(times []Time, stopEarly bool, violations func(blocks []block) int) int {
	weeks, days := len(times[0].weeks), len(times[0].days)
	total := 0
	for week := range weeks {
		for day := range days {
			total += violations(dayBlocks(times, week, day))
			if stopEarly && total > 0 {
				return total
			}
		}
	}
	return total
}

// maxDaysViolations counts the days of the week (over any week) with at least one meeting beyond the allowed ones
func maxDaysViolations(times []Time, maxDays int) int {
	days := lo.CountBy(lo.Range(len(times[0].days)), func(day int) bool {
		return lo.SomeBy(times, func(time Time) bool { return time.days[day] })
	})
	return max(0, days-maxDays)
}
