package model

import (
	"log"

	"github.com/samber/lo"
)

// Timetable is a candidate solution: exactly one event per class of the instance, addressed by class id
type Timetable struct {
	events  map[int]*Event
	classes []*Class
}

func NewTimetable(classes []*Class) (*Timetable, error) {
	timetable := &Timetable{
		events:  make(map[int]*Event, len(classes)),
		classes: classes,
	}
	for _, class := range classes {
		if _, ok := timetable.events[class.Id]; ok {
			return nil, invalidArgument("class %d is defined more than once", class.Id)
		}
		timetable.events[class.Id] = newEvent(class)
	}
	return timetable, nil
}

// Event returns the event of the class
func (timetable *Timetable) Event(class *Class) *Event {
	return timetable.EventById(class.Id)
}

func (timetable *Timetable) EventById(classId int) *Event {
	event, ok := timetable.events[classId]
	if !ok {
		log.Panicf("class %d does not belong to the timetable", classId)
	}
	return event
}

// Events returns the events in the order their classes were given
func (timetable *Timetable) Events() []*Event {
	return lo.Map(timetable.classes, func(class *Class, _ int) *Event { return timetable.events[class.Id] })
}

func (timetable *Timetable) Len() int {
	return len(timetable.events)
}

// Complete checks whether every event is scheduled
func (timetable *Timetable) Complete() bool {
	return lo.EveryBy(timetable.Events(), func(event *Event) bool { return event.Scheduled() })
}

// Clone copies the scheduling state of every event; the entity graph is shared
func (timetable *Timetable) Clone() *Timetable {
	return &Timetable{
		events:  lo.MapValues(timetable.events, func(event *Event, _ int) *Event { return event.clone() }),
		classes: timetable.classes,
	}
}

// Enrollments returns, for every student, the classes the student attends in class order
func (timetable *Timetable) Enrollments() map[*Student][]*Class {
	enrollments := make(map[*Student][]*Class)
	for _, event := range timetable.Events() {
		for _, student := range event.students {
			enrollments[student] = append(enrollments[student], event.class)
		}
	}
	return enrollments
}
