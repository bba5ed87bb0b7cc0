package model

import "slices"

// SlotsPerDay is the number of 5-minute slots covering a whole day, from midnight to midnight
const SlotsPerDay = 288

// Time is an immutable meeting pattern: the weeks and days a class meets, its starting slot and its duration in slots
type Time struct {
	weeks    Set
	days     Set
	start    int
	duration int
}

// NewTime builds a Time whose weeks and days vectors must match the instance's number of weeks and days
func NewTime(nrWeeks, nrDays int, weeks, days Set, start, duration int) (Time, error) {
	if len(weeks) != nrWeeks {
		return Time{}, invalidArgument("weeks %v must have length %d", weeks, nrWeeks)
	} else if len(days) != nrDays {
		return Time{}, invalidArgument("days %v must have length %d", days, nrDays)
	} else if start < 0 || duration <= 0 || start+duration > SlotsPerDay {
		return Time{}, invalidArgument("start %d and duration %d do not fit in a day", start, duration)
	}

	return Time{
		weeks:    append(Set(nil), weeks...),
		days:     append(Set(nil), days...),
		start:    start,
		duration: duration,
	}, nil
}

// Weeks and Days return copies, a Time never changes once built
func (time Time) Weeks() Set    { return slices.Clone(time.weeks) }
func (time Time) Days() Set     { return slices.Clone(time.days) }
func (time Time) Start() int    { return time.start }
func (time Time) Duration() int { return time.duration }
func (time Time) End() int      { return time.start + time.duration }

// MeetsOn checks whether the time takes place on the given week and day
func (time Time) MeetsOn(week, day int) bool {
	return time.weeks[week] && time.days[day]
}

// Overlaps checks whether both times overlap in time of day, share a day and share a week
func (time Time) Overlaps(other Time) bool {
	return other.start < time.End() &&
		time.start < other.End() &&
		!Exclusive(time.days, other.days) &&
		!Exclusive(time.weeks, other.weeks)
}

// Apart checks whether both times can never meet simultaneously because they are on exclusive days or weeks
func (time Time) Apart(other Time) bool {
	return Exclusive(time.days, other.days) || Exclusive(time.weeks, other.weeks)
}

func (time Time) Equal(other Time) bool {
	return time.start == other.start &&
		time.duration == other.duration &&
		time.weeks.String() == other.weeks.String() &&
		time.days.String() == other.days.String()
}
