package model

import "log"

func (constraint Constraint) pairwiseSatisfied(timetable *Timetable) bool {
	events := constraint.events(timetable)
	for i := range len(events) - 1 {
		for j := i + 1; j < len(events); j++ {
			if !constraint.check(events[i], events[j]) {
				return false
			}
		}
	}
	return true
}

func (constraint Constraint) pairwiseViolations(timetable *Timetable) int {
	events := constraint.events(timetable)
	count := 0
	for i := range len(events) - 1 {
		for j := i + 1; j < len(events); j++ {
			if !constraint.check(events[i], events[j]) {
				count++
			}
		}
	}
	return count
}

// check evaluates the constraint's predicate over two events; event1 precedes event2 in the class list
func (constraint Constraint) check(event1, event2 *Event) bool {
	time1, time2 := event1.mustTime(), event2.mustTime()

	switch constraint.Kind {
	case DifferentDays:
		// (Ci.days and Cj.days) = 0
		return Exclusive(time1.days, time2.days)
	case DifferentWeeks:
		// (Ci.weeks and Cj.weeks) = 0
		return Exclusive(time1.weeks, time2.weeks)
	case DifferentTime:
		// (Ci.end ≤ Cj.start) ∨ (Cj.end ≤ Ci.start)
		return time1.End() <= time2.Start() || time2.End() <= time1.Start()
	case DifferentRoom:
		room1, room2, ok := rooms(event1, event2)
		return !ok || room1 != room2
	case SameRoom:
		room1, room2, ok := rooms(event1, event2)
		return !ok || room1 == room2
	case SameStart:
		return time1.Start() == time2.Start()
	case SameTime:
		// (Ci.start ≤ Cj.start ∧ Cj.end ≤ Ci.end) ∨ (Cj.start ≤ Ci.start ∧ Ci.end ≤ Cj.end)
		return (time1.Start() <= time2.Start() && time2.End() <= time1.End()) ||
			(time2.Start() <= time1.Start() && time1.End() <= time2.End())
	case SameDays:
		return SubsetEither(time1.days, time2.days)
	case SameWeeks:
		return SubsetEither(time1.weeks, time2.weeks)
	case Overlap:
		return time1.Overlaps(time2)
	case NotOverlap:
		return !time1.Overlaps(time2)
	case Precedence:
		return precedes(time1, time2)
	case MinGap:
		// Apart ∨ (Ci.end + G ≤ Cj.start) ∨ (Cj.end + G ≤ Ci.start)
		return time1.Apart(time2) ||
			time1.End()+constraint.Limit <= time2.Start() ||
			time2.End()+constraint.Limit <= time1.Start()
	case WorkDay:
		// Apart ∨ (max(Ci.end, Cj.end) − min(Ci.start, Cj.start) ≤ S)
		return time1.Apart(time2) ||
			max(time1.End(), time2.End())-min(time1.Start(), time2.Start()) <= constraint.Limit
	case SameAttendees:
		travel := 0
		if room1, room2, ok := rooms(event1, event2); ok {
			travel = constraint.travel.Travel(room1, room2)
		}
		return reachable(time1, time2, travel)
	}

	log.Panicf("%v is not a pairwise constraint", constraint.Kind)
	return false
}

// precedes checks whether time1 takes place entirely before time2, comparing first weeks, then first days and finally
// the slots of the day
func precedes(time1, time2 Time) bool {
	week1, week2 := mustFirst(time1.weeks), mustFirst(time2.weeks)
	if week1 != week2 {
		return week1 < week2
	}
	day1, day2 := mustFirst(time1.days), mustFirst(time2.days)
	if day1 != day2 {
		return day1 < day2
	}
	return time1.End() <= time2.Start()
}

// reachable checks whether someone attending both times can make it from one to the other given the travel time
func reachable(time1, time2 Time, travel int) bool {
	return time1.End()+travel <= time2.Start() ||
		time2.End()+travel <= time1.Start() ||
		time1.Apart(time2)
}

// rooms returns the rooms of both events; ok is false when one of the classes does not need a room
func rooms(event1, event2 *Event) (room1, room2 *Room, ok bool) {
	if !event1.class.NeedsRoom() || !event2.class.NeedsRoom() {
		return nil, nil, false
	}
	return event1.mustRoom(), event2.mustRoom(), true
}

func mustFirst(set Set) int {
	index, err := FirstTrueIndex(set)
	if err != nil {
		log.Panicf("a scheduled time must meet at least once: %v", err)
	}
	return index
}
