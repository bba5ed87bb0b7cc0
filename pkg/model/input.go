package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

type RawTime struct {
	Days    string
	Weeks   string
	Start   int
	Length  int
	Penalty int
}

type RawTravel struct {
	Room  int
	Value int
}

type RawRoom struct {
	Id          int
	Capacity    int
	Unavailable []RawTime
	Travel      []RawTravel
}

type RawRoomOption struct {
	Id      int
	Penalty int
}

type RawClass struct {
	Id        int
	Limit     int
	Parent    int   // 0 when the class has no parent
	NeedsRoom *bool `mapstructure:"room"` // Missing means true
	Rooms     []RawRoomOption
	Times     []RawTime
}

type RawSubpart struct {
	Id      int
	Classes []RawClass
}

type RawConfig struct {
	Id       int
	Subparts []RawSubpart
}

type RawCourse struct {
	Id      int
	Configs []RawConfig
}

type RawDistribution struct {
	Type     string
	Required bool
	Penalty  int
	Classes  []int
}

type RawStudent struct {
	Id      int
	Courses []int
}

type RawOptimization struct {
	Time         int
	Room         int
	Distribution int
	Student      int
}

type RawInstance struct {
	Name          string
	NrDays        int
	NrWeeks       int
	SlotsPerDay   int
	Optimization  RawOptimization
	Rooms         []RawRoom
	Courses       []RawCourse
	Distributions []RawDistribution
	Students      []RawStudent
}

func InstanceFromJson(file string) (*Instance, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, err
	}

	var rawInput RawInstance
	if err := mapstructure.Decode(inputJson, &rawInput); err != nil {
		return nil, fmt.Errorf("cannot decode instance: %w", err)
	}
	return ProcessRawInput(rawInput)
}

// ProcessRawInput turns raw records into a linked entity graph. Classes are staged first and linked to their parents
// afterwards, so parents may be declared after their children
func ProcessRawInput(rawInput RawInstance) (*Instance, error) {
	parseTime := func(raw RawTime) (Time, error) {
		weeks, err := ParseSet(raw.Weeks)
		if err != nil {
			return Time{}, err
		}
		days, err := ParseSet(raw.Days)
		if err != nil {
			return Time{}, err
		}
		return NewTime(rawInput.NrWeeks, rawInput.NrDays, weeks, days, raw.Start, raw.Length)
	}

	//** Manage rooms
	rooms := make([]*Room, 0, len(rawInput.Rooms))
	roomsById := make(map[int]*Room)
	for _, rawRoom := range rawInput.Rooms {
		unavailable := make([]Time, 0, len(rawRoom.Unavailable))
		for _, rawTime := range rawRoom.Unavailable {
			time, err := parseTime(rawTime)
			if err != nil {
				return nil, fmt.Errorf("room %d: %w", rawRoom.Id, err)
			}
			unavailable = append(unavailable, time)
		}

		room, err := NewRoom(rawRoom.Id, rawRoom.Capacity, unavailable)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
		roomsById[room.Id] = room
	}

	//** Manage travel times
	builder, err := NewTravelMatrixBuilder(rooms)
	if err != nil {
		return nil, err
	}
	for _, rawRoom := range rawInput.Rooms {
		for _, rawTravel := range rawRoom.Travel {
			to, ok := roomsById[rawTravel.Room]
			if !ok {
				return nil, fmt.Errorf("%w: room %d travels to undefined room %d", ErrNotFound, rawRoom.Id, rawTravel.Room)
			}
			if err := builder.Set(roomsById[rawRoom.Id], to, rawTravel.Value); err != nil {
				return nil, err
			}
		}
	}
	travel := builder.Build()

	//** Manage courses (first pass: stage classes)
	classesById := make(map[int]*Class)
	parents := make(map[*Class]int)
	courses := make([]*Course, 0, len(rawInput.Courses))
	coursesById := make(map[int]*Course)
	for _, rawCourse := range rawInput.Courses {
		configs := make([]*Config, 0, len(rawCourse.Configs))
		for _, rawConfig := range rawCourse.Configs {
			subparts := make([]*Subpart, 0, len(rawConfig.Subparts))
			for _, rawSubpart := range rawConfig.Subparts {
				classes := make([]*Class, 0, len(rawSubpart.Classes))
				for _, rawClass := range rawSubpart.Classes {
					class, err := stageClass(rawClass, parseTime, roomsById)
					if err != nil {
						return nil, err
					}
					if _, ok := classesById[class.Id]; ok {
						return nil, fmt.Errorf("%w: class %d is defined more than once", ErrInvalidArgument, class.Id)
					}
					classesById[class.Id] = class
					if rawClass.Parent != 0 {
						parents[class] = rawClass.Parent
					}
					classes = append(classes, class)
				}

				subpart, err := NewSubpart(rawSubpart.Id, classes)
				if err != nil {
					return nil, err
				}
				subparts = append(subparts, subpart)
			}

			config, err := NewConfig(rawConfig.Id, subparts)
			if err != nil {
				return nil, err
			}
			configs = append(configs, config)
		}

		course, err := NewCourse(rawCourse.Id, configs)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
		coursesById[course.Id] = course
	}

	//** Link parents (second pass)
	for class, parentId := range parents {
		parent, ok := classesById[parentId]
		if !ok {
			return nil, fmt.Errorf("%w: parent %d of class %d", ErrNotFound, parentId, class.Id)
		}
		if err := class.LinkParent(parent); err != nil {
			return nil, err
		}
	}

	//** Manage students
	students := make([]*Student, 0, len(rawInput.Students))
	for _, rawStudent := range rawInput.Students {
		demanded := make([]*Course, 0, len(rawStudent.Courses))
		for _, courseId := range rawStudent.Courses {
			course, ok := coursesById[courseId]
			if !ok {
				return nil, fmt.Errorf("%w: course %d demanded by student %d", ErrNotFound, courseId, rawStudent.Id)
			}
			demanded = append(demanded, course)
		}

		student, err := NewStudent(rawStudent.Id, demanded)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	//** Manage distributions
	hard, soft := make([]HardConstraint, 0), make([]SoftConstraint, 0)
	for i, rawDistribution := range rawInput.Distributions {
		classes := make([]*Class, 0, len(rawDistribution.Classes))
		for _, classId := range rawDistribution.Classes {
			class, ok := classesById[classId]
			if !ok {
				return nil, fmt.Errorf("%w: class %d referenced by distribution %d", ErrNotFound, classId, i)
			}
			classes = append(classes, class)
		}

		constraint, err := ParseConstraint(rawDistribution.Type, classes, travel)
		if err != nil {
			return nil, fmt.Errorf("distribution %d: %w", i, err)
		}

		if rawDistribution.Required {
			hard = append(hard, HardConstraint{Constraint: constraint})
			continue
		}
		softConstraint, err := NewSoftConstraint(constraint, rawDistribution.Penalty, rawInput.NrWeeks)
		if err != nil {
			return nil, fmt.Errorf("distribution %d: %w", i, err)
		}
		soft = append(soft, softConstraint)
	}

	return NewInstance(Instance{
		Name:        rawInput.Name,
		NrDays:      rawInput.NrDays,
		NrWeeks:     rawInput.NrWeeks,
		SlotsPerDay: rawInput.SlotsPerDay,
		Weights: Weights{
			Time:         rawInput.Optimization.Time,
			Room:         rawInput.Optimization.Room,
			Distribution: rawInput.Optimization.Distribution,
			Student:      rawInput.Optimization.Student,
		},
		Rooms:    rooms,
		Courses:  courses,
		Students: students,
		Hard:     hard,
		Soft:     soft,
		Travel:   travel,
	})
}

func stageClass(rawClass RawClass, parseTime func(RawTime) (Time, error), roomsById map[int]*Room) (*Class, error) {
	times := make([]*TimeOption, 0, len(rawClass.Times))
	for _, rawTime := range rawClass.Times {
		time, err := parseTime(rawTime)
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", rawClass.Id, err)
		}
		option, err := NewTimeOption(time, rawTime.Penalty)
		if err != nil {
			return nil, err
		}
		times = append(times, option)
	}

	var rooms []*RoomOption // Stays empty when the class does not need a room
	needsRoom := (rawClass.NeedsRoom == nil || *rawClass.NeedsRoom) && len(rawClass.Rooms) > 0
	if needsRoom {
		rooms = make([]*RoomOption, 0, len(rawClass.Rooms))
		for _, rawRoom := range rawClass.Rooms {
			room, ok := roomsById[rawRoom.Id]
			if !ok {
				return nil, fmt.Errorf("%w: room %d of class %d", ErrNotFound, rawRoom.Id, rawClass.Id)
			}
			option, err := NewRoomOption(room, rawRoom.Penalty)
			if err != nil {
				return nil, err
			}
			rooms = append(rooms, option)
		}
	}

	return NewClass(rawClass.Id, rawClass.Limit, times, rooms, nil)
}
