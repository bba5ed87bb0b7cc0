package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// RawAssignment is the placement of one class in a solution: its time (days, weeks and start), its room (0 when the
// class does not need one) and its students
type RawAssignment struct {
	Id       int
	Days     string
	Weeks    string
	Start    int
	Room     int
	Students []int
}

type RawSolution struct {
	Name    string
	Classes []RawAssignment
}

func SolutionFromJson(file string, instance *Instance) (*Timetable, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var solutionJson map[string]any
	if err := json.Unmarshal(bytes, &solutionJson); err != nil {
		return nil, err
	}

	var rawSolution RawSolution
	if err := mapstructure.Decode(solutionJson, &rawSolution); err != nil {
		return nil, fmt.Errorf("cannot decode solution: %w", err)
	}
	return ProcessRawSolution(rawSolution, instance)
}

// ProcessRawSolution fills a new timetable of the instance with the given assignments. Students are enrolled in parent
// classes before their children
func ProcessRawSolution(rawSolution RawSolution, instance *Instance) (*Timetable, error) {
	timetable := instance.NewTimetable()
	classesById := lo.KeyBy(instance.Classes, func(class *Class) int { return class.Id })
	studentsById := lo.KeyBy(instance.Students, func(student *Student) int { return student.Id })

	//** Assign times and rooms
	assigned := make([]*Event, 0, len(rawSolution.Classes))
	assignments := make(map[*Event]RawAssignment)
	for _, assignment := range rawSolution.Classes {
		class, ok := classesById[assignment.Id]
		if !ok {
			return nil, fmt.Errorf("%w: class %d", ErrNotFound, assignment.Id)
		}
		event := timetable.Event(class)

		timeOption, ok := lo.Find(class.Times, func(option *TimeOption) bool {
			return option.Time.Start() == assignment.Start &&
				option.Time.days.String() == assignment.Days &&
				option.Time.weeks.String() == assignment.Weeks
		})
		if !ok {
			return nil, fmt.Errorf("%w: time %s %s %d of class %d", ErrNotFound, assignment.Days, assignment.Weeks, assignment.Start, class.Id)
		}
		if err := event.SetTime(timeOption); err != nil {
			return nil, err
		}

		if class.NeedsRoom() {
			roomOption, ok := lo.Find(class.Rooms, func(option *RoomOption) bool { return option.Room.Id == assignment.Room })
			if !ok {
				return nil, fmt.Errorf("%w: room %d of class %d", ErrNotFound, assignment.Room, class.Id)
			}
			if err := event.SetRoom(roomOption); err != nil {
				return nil, err
			}
		}

		assigned = append(assigned, event)
		assignments[event] = assignment
	}

	//** Enroll students, parents first
	slices.SortStableFunc(assigned, func(a, b *Event) int {
		return len(a.class.Ancestors()) - len(b.class.Ancestors())
	})
	for _, event := range assigned {
		for _, studentId := range assignments[event].Students {
			student, ok := studentsById[studentId]
			if !ok {
				return nil, fmt.Errorf("%w: student %d of class %d", ErrNotFound, studentId, event.class.Id)
			}
			if err := event.AddStudent(student, timetable); err != nil {
				return nil, err
			}
		}
	}

	return timetable, nil
}
