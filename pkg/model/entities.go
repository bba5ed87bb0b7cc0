package model

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Times are only well-formed when built through NewTime, a zero Time has no vectors and no duration
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		time := sl.Current().Interface().(Time)
		if time.weeks == nil || time.days == nil {
			sl.ReportError(time.days, "days", "days", "required", "")
		}
		if time.start < 0 || time.duration <= 0 || time.End() > SlotsPerDay {
			sl.ReportError(time.duration, "duration", "duration", "timewindow", "")
		}
	}, Time{})
	return v
}

type Room struct {
	Id          int    `validate:"gte=1"`
	Capacity    int    `validate:"gte=0"`
	Unavailable []Time `validate:"dive"`
}

// TimeOption is one of the possible times of a class together with the penalty of choosing it
type TimeOption struct {
	Time    Time
	Penalty int `validate:"gte=0"`
}

// RoomOption is one of the possible rooms of a class together with the penalty of choosing it
type RoomOption struct {
	Room    *Room `validate:"required"`
	Penalty int   `validate:"gte=0"`
}

type Class struct {
	Id     int           `validate:"gte=1"`
	Limit  int           `validate:"gte=0"`
	Times  []*TimeOption `validate:"dive,required"`
	Rooms  []*RoomOption `validate:"dive,required"` // An empty list means the class does not need a room
	Parent *Class        `validate:"-"`
}

type Subpart struct {
	Id      int      `validate:"gte=1"`
	Classes []*Class `validate:"-"`
}

type Config struct {
	Id       int        `validate:"gte=1"`
	Subparts []*Subpart `validate:"-"`
}

type Course struct {
	Id      int       `validate:"gte=1"`
	Configs []*Config `validate:"-"`
}

type Student struct {
	Id      int       `validate:"gte=1"`
	Courses []*Course `validate:"-"`
}

func NewRoom(id, capacity int, unavailable []Time) (*Room, error) {
	room := &Room{Id: id, Capacity: capacity, Unavailable: unavailable}
	return room, validateEntity("room", room)
}

func NewTimeOption(time Time, penalty int) (*TimeOption, error) {
	option := &TimeOption{Time: time, Penalty: penalty}
	return option, validateEntity("time option", option)
}

func NewRoomOption(room *Room, penalty int) (*RoomOption, error) {
	option := &RoomOption{Room: room, Penalty: penalty}
	return option, validateEntity("room option", option)
}

// NewClass builds a class; pass an empty rooms list when the class does not need a room and a nil parent when it does not
// belong to a parent-child relationship. Parents may also be linked afterwards through LinkParent
func NewClass(id, limit int, times []*TimeOption, rooms []*RoomOption, parent *Class) (*Class, error) {
	class := &Class{Id: id, Limit: limit, Times: times, Rooms: rooms}
	if err := validateEntity("class", class); err != nil {
		return nil, err
	}
	if parent != nil {
		if err := class.LinkParent(parent); err != nil {
			return nil, err
		}
	}
	return class, nil
}

func NewSubpart(id int, classes []*Class) (*Subpart, error) {
	subpart := &Subpart{Id: id, Classes: classes}
	return subpart, validateEntity("subpart", subpart)
}

func NewConfig(id int, subparts []*Subpart) (*Config, error) {
	config := &Config{Id: id, Subparts: subparts}
	return config, validateEntity("config", config)
}

func NewCourse(id int, configs []*Config) (*Course, error) {
	course := &Course{Id: id, Configs: configs}
	return course, validateEntity("course", course)
}

func NewStudent(id int, courses []*Course) (*Student, error) {
	student := &Student{Id: id, Courses: courses}
	return student, validateEntity("student", student)
}

// NeedsRoom checks whether the class has to be placed in a room
func (class *Class) NeedsRoom() bool {
	return len(class.Rooms) > 0
}

// LinkParent sets the parent of the class, rejecting links that would turn the parent forest into a cycle
func (class *Class) LinkParent(parent *Class) error {
	for ancestor := parent; ancestor != nil; ancestor = ancestor.Parent {
		if ancestor == class {
			return invalidArgument("linking class %d to parent %d creates a cycle", class.Id, parent.Id)
		}
	}
	class.Parent = parent
	return nil
}

// Ancestors returns the parent chain of the class, closest parent first
func (class *Class) Ancestors() []*Class {
	ancestors := make([]*Class, 0)
	for ancestor := class.Parent; ancestor != nil; ancestor = ancestor.Parent {
		ancestors = append(ancestors, ancestor)
	}
	return ancestors
}

func (class *Class) String() string {
	return fmt.Sprintf("class %d", class.Id)
}

// Classes returns every class of the course in declaration order
func (course *Course) Classes() []*Class {
	return lo.FlatMap(course.Configs, func(config *Config, _ int) []*Class {
		return lo.FlatMap(config.Subparts, func(subpart *Subpart, _ int) []*Class {
			return subpart.Classes
		})
	})
}

// NeedsClass checks whether the class belongs to one of the courses demanded by the student. Its cost grows with the
// whole course tree, prefer searching the demanded courses directly when enrolling many students
func (student *Student) NeedsClass(class *Class) bool {
	return lo.SomeBy(student.Courses, func(course *Course) bool {
		return slices.Contains(course.Classes(), class)
	})
}

func validateEntity(name string, entity any) error {
	if err := validate.Struct(entity); err != nil {
		return fmt.Errorf("%w: malformed %s: %v", ErrInvalidArgument, name, err)
	}
	return nil
}
