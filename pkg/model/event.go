package model

import "slices"

// Event is the scheduling state of one class: its chosen time, its chosen room (if the class needs one) and its
// enrolled students. Events are only mutated by whoever builds the candidate timetable, never by the constraints
type Event struct {
	class    *Class
	time     *TimeOption
	room     *RoomOption
	students []*Student
}

func newEvent(class *Class) *Event {
	return &Event{
		class:    class,
		students: make([]*Student, 0),
	}
}

func (event *Event) Class() *Class         { return event.class }
func (event *Event) Time() *TimeOption     { return event.time }
func (event *Event) Room() *RoomOption     { return event.room }
func (event *Event) Students() []*Student { return event.students }

// SetTime assigns one of the class's own possible times
func (event *Event) SetTime(option *TimeOption) error {
	if validating {
		if event.time != nil {
			return contractViolation("%v already has a time", event.class)
		} else if !slices.Contains(event.class.Times, option) {
			return contractViolation("time is not one of the possible times of %v", event.class)
		}
	}
	event.time = option
	return nil
}

// SetRoom assigns one of the class's own possible rooms
func (event *Event) SetRoom(option *RoomOption) error {
	if validating {
		if !event.class.NeedsRoom() {
			return contractViolation("%v does not need a room", event.class)
		} else if event.room != nil {
			return contractViolation("%v already has a room", event.class)
		} else if !slices.Contains(event.class.Rooms, option) {
			return contractViolation("room is not one of the possible rooms of %v", event.class)
		} else if len(event.students) > option.Room.Capacity {
			return contractViolation("room %d cannot hold the %d students of %v", option.Room.Id, len(event.students), event.class)
		}
	}
	event.room = option
	return nil
}

// AddStudent enrolls the student. The timetable is used to verify the student already attends the parent class.
// Whether the student demanded the class is not verified here (see Student.NeedsClass)
func (event *Event) AddStudent(student *Student, timetable *Timetable) error {
	if validating {
		if slices.Contains(event.students, student) {
			return contractViolation("student %d is already enrolled in %v", student.Id, event.class)
		} else if len(event.students) >= event.class.Limit {
			return contractViolation("%v has reached its limit of %d students", event.class, event.class.Limit)
		} else if event.room != nil && len(event.students) >= event.room.Room.Capacity {
			return contractViolation("room %d of %v has reached its capacity", event.room.Room.Id, event.class)
		} else if parent := event.class.Parent; parent != nil && !timetable.Event(parent).Enrolled(student) {
			return contractViolation("student %d must attend parent %v before %v", student.Id, parent, event.class)
		}
	}
	event.students = append(event.students, student)
	return nil
}

// Enrolled checks whether the student attends the event
func (event *Event) Enrolled(student *Student) bool {
	return slices.Contains(event.students, student)
}

// Scheduled checks whether the event carries everything a constraint may read: a time and, if needed, a room
func (event *Event) Scheduled() bool {
	return event.time != nil && (event.room != nil || !event.class.NeedsRoom())
}

func (event *Event) clone() *Event {
	return &Event{
		class:    event.class,
		time:     event.time,
		room:     event.room,
		students: slices.Clone(event.students),
	}
}

// time and room accessors used by the constraints; an unscheduled event is a caller error
func (event *Event) mustTime() Time {
	if event.time == nil {
		panic(PreconditionError{Class: event.class.Id, Reason: "no time assigned"})
	}
	return event.time.Time
}

func (event *Event) mustRoom() *Room {
	if event.room == nil {
		panic(PreconditionError{Class: event.class.Id, Reason: "no room assigned"})
	}
	return event.room.Room
}
