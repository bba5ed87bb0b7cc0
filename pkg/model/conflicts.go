package model

import (
	"slices"

	"github.com/samber/lo"
)

// StudentConflict is a pair of classes a student attends but cannot attend both of: they overlap, or they follow one
// another in rooms too far apart
type StudentConflict struct {
	Student        *Student
	Class1, Class2 *Class
}

// RoomConflict is either two classes sharing a room at overlapping times or, when Class2 is nil, a class placed in a
// room while the room is unavailable
type RoomConflict struct {
	Room           *Room
	Class1, Class2 *Class
}

// StudentConflicts lists one conflict per student and per unordered pair of conflicting classes, regardless of how many
// of their meetings actually collide
func StudentConflicts(timetable *Timetable, travel *TravelMatrix) []StudentConflict {
	conflicts := make([]StudentConflict, 0)
	enrollments := timetable.Enrollments()

	students := lo.Keys(enrollments)
	slices.SortFunc(students, func(a, b *Student) int { return a.Id - b.Id })

	for _, student := range students {
		classes := enrollments[student]
		for i := range len(classes) - 1 {
			for j := i + 1; j < len(classes); j++ {
				event1, event2 := timetable.Event(classes[i]), timetable.Event(classes[j])
				slack := 0
				if room1, room2, ok := rooms(event1, event2); ok {
					slack = travel.Travel(room1, room2)
				}
				if !reachable(event1.mustTime(), event2.mustTime(), slack) {
					conflicts = append(conflicts, StudentConflict{student, classes[i], classes[j]})
				}
			}
		}
	}

	return conflicts
}

// RoomConflicts lists the room clashes of the timetable. Both kinds of clash make a timetable infeasible
func RoomConflicts(timetable *Timetable) []RoomConflict {
	conflicts := make([]RoomConflict, 0)

	placed := lo.Filter(timetable.Events(), func(event *Event, _ int) bool {
		return event.class.NeedsRoom() && event.room != nil
	})

	for _, event := range placed {
		room := event.room.Room
		if lo.SomeBy(room.Unavailable, func(unavailable Time) bool { return event.mustTime().Overlaps(unavailable) }) {
			conflicts = append(conflicts, RoomConflict{Room: room, Class1: event.class})
		}
	}

	byRoom := lo.GroupBy(placed, func(event *Event) int { return event.room.Room.Id })
	roomIds := lo.Keys(byRoom)
	slices.Sort(roomIds)

	for _, roomId := range roomIds {
		events := byRoom[roomId]
		for i := range len(events) - 1 {
			for j := i + 1; j < len(events); j++ {
				if events[i].mustTime().Overlaps(events[j].mustTime()) {
					conflicts = append(conflicts, RoomConflict{events[i].room.Room, events[i].class, events[j].class})
				}
			}
		}
	}

	return conflicts
}
