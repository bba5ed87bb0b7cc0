package model

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Elements of the competition XML format. Nested records are repeated elements without a wrapper, except for the
// top-level lists of the problem

type xmlTime struct {
	Days    string `xml:"days,attr"`
	Weeks   string `xml:"weeks,attr"`
	Start   int    `xml:"start,attr"`
	Length  int    `xml:"length,attr"`
	Penalty int    `xml:"penalty,attr"`
}

type xmlTravel struct {
	Room  int `xml:"room,attr"`
	Value int `xml:"value,attr"`
}

type xmlRoom struct {
	Id          int         `xml:"id,attr"`
	Capacity    int         `xml:"capacity,attr"`
	Travel      []xmlTravel `xml:"travel"`
	Unavailable []xmlTime   `xml:"unavailable"`
}

type xmlRoomOption struct {
	Id      int `xml:"id,attr"`
	Penalty int `xml:"penalty,attr"`
}

type xmlClass struct {
	Id        int             `xml:"id,attr"`
	Limit     int             `xml:"limit,attr"`
	Parent    int             `xml:"parent,attr"`
	NeedsRoom *bool           `xml:"room,attr"`
	Rooms     []xmlRoomOption `xml:"room"`
	Times     []xmlTime       `xml:"time"`
}

type xmlSubpart struct {
	Id      int        `xml:"id,attr"`
	Classes []xmlClass `xml:"class"`
}

type xmlConfig struct {
	Id       int          `xml:"id,attr"`
	Subparts []xmlSubpart `xml:"subpart"`
}

type xmlCourse struct {
	Id      int         `xml:"id,attr"`
	Configs []xmlConfig `xml:"config"`
}

type xmlReference struct {
	Id int `xml:"id,attr"`
}

type xmlDistribution struct {
	Type     string         `xml:"type,attr"`
	Required bool           `xml:"required,attr"`
	Penalty  int            `xml:"penalty,attr"`
	Classes  []xmlReference `xml:"class"`
}

type xmlStudent struct {
	Id      int            `xml:"id,attr"`
	Courses []xmlReference `xml:"course"`
}

type xmlOptimization struct {
	Time         int `xml:"time,attr"`
	Room         int `xml:"room,attr"`
	Distribution int `xml:"distribution,attr"`
	Student      int `xml:"student,attr"`
}

type xmlProblem struct {
	XMLName       xml.Name          `xml:"problem"`
	Name          string            `xml:"name,attr"`
	NrDays        int               `xml:"nrDays,attr"`
	NrWeeks       int               `xml:"nrWeeks,attr"`
	SlotsPerDay   int               `xml:"slotsPerDay,attr"`
	Optimization  xmlOptimization   `xml:"optimization"`
	Rooms         []xmlRoom         `xml:"rooms>room"`
	Courses       []xmlCourse       `xml:"courses>course"`
	Distributions []xmlDistribution `xml:"distributions>distribution"`
	Students      []xmlStudent      `xml:"students>student"`
}

type xmlAssignment struct {
	Id       int            `xml:"id,attr"`
	Days     string         `xml:"days,attr"`
	Weeks    string         `xml:"weeks,attr"`
	Start    int            `xml:"start,attr"`
	Room     int            `xml:"room,attr"`
	Students []xmlReference `xml:"student"`
}

type xmlSolution struct {
	XMLName xml.Name        `xml:"solution"`
	Name    string          `xml:"name,attr"`
	Classes []xmlAssignment `xml:"class"`
}

func InstanceFromXml(file string) (*Instance, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var problem xmlProblem
	if err := xml.Unmarshal(bytes, &problem); err != nil {
		return nil, fmt.Errorf("cannot decode instance: %w", err)
	}
	return ProcessRawInput(problem.raw())
}

func SolutionFromXml(file string, instance *Instance) (*Timetable, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var solution xmlSolution
	if err := xml.Unmarshal(bytes, &solution); err != nil {
		return nil, fmt.Errorf("cannot decode solution: %w", err)
	}
	return ProcessRawSolution(solution.raw(), instance)
}

// LoadInstance reads an instance in the format given by the file extension, XML for ".xml" and JSON otherwise
func LoadInstance(file string) (*Instance, error) {
	if isXml(file) {
		return InstanceFromXml(file)
	}
	return InstanceFromJson(file)
}

// LoadSolution reads a solution in the format given by the file extension, XML for ".xml" and JSON otherwise
func LoadSolution(file string, instance *Instance) (*Timetable, error) {
	if isXml(file) {
		return SolutionFromXml(file, instance)
	}
	return SolutionFromJson(file, instance)
}

func isXml(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".xml")
}

func ids(references []xmlReference) []int {
	return lo.Map(references, func(reference xmlReference, _ int) int { return reference.Id })
}

func (time xmlTime) raw() RawTime {
	return RawTime(time)
}

func (problem xmlProblem) raw() RawInstance {
	rawTimes := func(times []xmlTime) []RawTime {
		return lo.Map(times, func(time xmlTime, _ int) RawTime { return time.raw() })
	}

	return RawInstance{
		Name:         problem.Name,
		NrDays:       problem.NrDays,
		NrWeeks:      problem.NrWeeks,
		SlotsPerDay:  problem.SlotsPerDay,
		Optimization: RawOptimization(problem.Optimization),
		Rooms: lo.Map(problem.Rooms, func(room xmlRoom, _ int) RawRoom {
			return RawRoom{
				Id:          room.Id,
				Capacity:    room.Capacity,
				Unavailable: rawTimes(room.Unavailable),
				Travel:      lo.Map(room.Travel, func(travel xmlTravel, _ int) RawTravel { return RawTravel(travel) }),
			}
		}),
		Courses: lo.Map(problem.Courses, func(course xmlCourse, _ int) RawCourse {
			return RawCourse{Id: course.Id, Configs: lo.Map(course.Configs, func(config xmlConfig, _ int) RawConfig {
				return RawConfig{Id: config.Id, Subparts: lo.Map(config.Subparts, func(subpart xmlSubpart, _ int) RawSubpart {
					return RawSubpart{Id: subpart.Id, Classes: lo.Map(subpart.Classes, func(class xmlClass, _ int) RawClass {
						return RawClass{
							Id:        class.Id,
							Limit:     class.Limit,
							Parent:    class.Parent,
							NeedsRoom: class.NeedsRoom,
							Rooms:     lo.Map(class.Rooms, func(room xmlRoomOption, _ int) RawRoomOption { return RawRoomOption(room) }),
							Times:     rawTimes(class.Times),
						}
					})}
				})}
			})}
		}),
		Distributions: lo.Map(problem.Distributions, func(distribution xmlDistribution, _ int) RawDistribution {
			return RawDistribution{
				Type:     distribution.Type,
				Required: distribution.Required,
				Penalty:  distribution.Penalty,
				Classes:  ids(distribution.Classes),
			}
		}),
		Students: lo.Map(problem.Students, func(student xmlStudent, _ int) RawStudent {
			return RawStudent{Id: student.Id, Courses: ids(student.Courses)}
		}),
	}
}

func (solution xmlSolution) raw() RawSolution {
	return RawSolution{
		Name: solution.Name,
		Classes: lo.Map(solution.Classes, func(class xmlAssignment, _ int) RawAssignment {
			return RawAssignment{
				Id:       class.Id,
				Days:     class.Days,
				Weeks:    class.Weeks,
				Start:    class.Start,
				Room:     class.Room,
				Students: ids(class.Students),
			}
		}),
	}
}
