package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Weights of the four penalty components of a timetable
type Weights struct {
	Time         int `validate:"gte=1"`
	Room         int `validate:"gte=1"`
	Distribution int `validate:"gte=1"`
	Student      int `validate:"gte=1"`
}

// Instance is a whole problem: its dimensions, its entity graph, its distribution constraints and its travel times
type Instance struct {
	Name        string
	NrDays      int `validate:"gte=0,lte=7"`
	NrWeeks     int `validate:"gte=0"`
	SlotsPerDay int `validate:"gte=0,lte=288"`
	Weights     Weights
	Rooms       []*Room          `validate:"-"`
	Courses     []*Course        `validate:"-"`
	Classes     []*Class         `validate:"-"` // Every class of every course, filled by NewInstance
	Students    []*Student       `validate:"-"`
	Hard        []HardConstraint `validate:"-"`
	Soft        []SoftConstraint `validate:"-"`
	Travel      *TravelMatrix    `validate:"-"`
}

// Score is the weighted penalty of a timetable broken down by component; components are reported unweighted
type Score struct {
	Time         int
	Room         int
	Distribution int
	Student      int
	Total        int
}

// NewInstance validates the instance and collects its classes
func NewInstance(instance Instance) (*Instance, error) {
	if err := validateEntity("instance", &instance); err != nil {
		return nil, err
	} else if instance.Travel == nil || instance.Travel.Rows() != len(instance.Rooms) {
		return nil, invalidArgument("travel matrix must cover the %d rooms of the instance", len(instance.Rooms))
	}

	roomIds := make(map[int]*Room, len(instance.Rooms))
	for _, room := range instance.Rooms {
		if !instance.Travel.Covers(room) {
			return nil, invalidArgument("travel matrix does not cover room %d", room.Id)
		}
		roomIds[room.Id] = room
		for _, unavailable := range room.Unavailable {
			if err := instance.checkDimensions(unavailable); err != nil {
				return nil, fmt.Errorf("room %d: %w", room.Id, err)
			}
		}
	}

	instance.Classes = lo.FlatMap(instance.Courses, func(course *Course, _ int) []*Class { return course.Classes() })
	for _, class := range instance.Classes {
		for _, option := range class.Times {
			if err := instance.checkDimensions(option.Time); err != nil {
				return nil, fmt.Errorf("class %d: %w", class.Id, err)
			}
		}
		for _, option := range class.Rooms {
			if roomIds[option.Room.Id] != option.Room {
				return nil, invalidArgument("class %d may be placed in room %d which is not part of the instance", class.Id, option.Room.Id)
			}
		}
	}

	classIds := make(map[int]*Class, len(instance.Classes))
	for _, class := range instance.Classes {
		if _, ok := classIds[class.Id]; ok {
			return nil, invalidArgument("class %d is defined more than once", class.Id)
		}
		classIds[class.Id] = class
	}

	constraints := append(
		lo.Map(instance.Hard, func(hard HardConstraint, _ int) Constraint { return hard.Constraint }),
		lo.Map(instance.Soft, func(soft SoftConstraint, _ int) Constraint { return soft.Constraint })...,
	)
	for _, constraint := range constraints {
		for _, class := range constraint.Classes {
			if classIds[class.Id] != class {
				return nil, invalidArgument("%v references class %d which is not part of the instance", constraint.Kind, class.Id)
			}
		}
	}

	return &instance, nil
}

// checkDimensions verifies the time spans as many weeks and days as the instance
func (instance *Instance) checkDimensions(time Time) error {
	if len(time.weeks) != instance.NrWeeks || len(time.days) != instance.NrDays {
		return invalidArgument("time %v %v does not match %d weeks and %d days", time.weeks, time.days, instance.NrWeeks, instance.NrDays)
	}
	return nil
}

// NewTimetable creates an empty timetable with one event per class of the instance
func (instance *Instance) NewTimetable() *Timetable {
	timetable, err := NewTimetable(instance.Classes)
	if err != nil {
		panic(err) // Classes are unique once the instance is validated
	}
	return timetable
}

// Feasible checks whether the timetable satisfies every hard constraint and has no room clashes. It stops at the
// first failure
func (instance *Instance) Feasible(timetable *Timetable) bool {
	return lo.EveryBy(instance.Hard, func(hard HardConstraint) bool { return hard.IsSatisfied(timetable) }) &&
		len(RoomConflicts(timetable)) == 0
}

// Score computes the penalty of a complete timetable
func (instance *Instance) Score(timetable *Timetable) Score {
	time, room := PlacementPenalties(timetable)
	return instance.Weigh(Score{
		Time:         time,
		Room:         room,
		Distribution: lo.SumBy(instance.Soft, func(soft SoftConstraint) int { return soft.Penalty(timetable) }),
		Student:      len(StudentConflicts(timetable, instance.Travel)),
	})
}

// Weigh fills the total of a score from its components and the instance weights
func (instance *Instance) Weigh(score Score) Score {
	score.Total = instance.Weights.Time*score.Time +
		instance.Weights.Room*score.Room +
		instance.Weights.Distribution*score.Distribution +
		instance.Weights.Student*score.Student
	return score
}

// PlacementPenalties sums the penalties of the chosen times and rooms of every event
func PlacementPenalties(timetable *Timetable) (time, room int) {
	for _, event := range timetable.Events() {
		event.mustTime()
		time += event.time.Penalty
		if event.room != nil {
			room += event.room.Penalty
		}
	}
	return time, room
}
