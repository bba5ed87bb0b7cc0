package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Kind identifies a distribution constraint
type Kind int

const (
	DifferentDays Kind = iota
	DifferentWeeks
	DifferentTime
	DifferentRoom
	SameRoom
	SameStart
	SameTime
	SameDays
	SameWeeks
	Overlap
	NotOverlap
	Precedence
	MinGap
	WorkDay
	SameAttendees
	MaxDays
	MaxDayLoad
	MaxBlock
	MaxBreaks
)

var kindNames = map[Kind]string{
	DifferentDays:  "DifferentDays",
	DifferentWeeks: "DifferentWeeks",
	DifferentTime:  "DifferentTime",
	DifferentRoom:  "DifferentRoom",
	SameRoom:       "SameRoom",
	SameStart:      "SameStart",
	SameTime:       "SameTime",
	SameDays:       "SameDays",
	SameWeeks:      "SameWeeks",
	Overlap:        "Overlap",
	NotOverlap:     "NotOverlap",
	Precedence:     "Precedence",
	MinGap:         "MinGap",
	WorkDay:        "WorkDay",
	SameAttendees:  "SameAttendees",
	MaxDays:        "MaxDays",
	MaxDayLoad:     "MaxDayLoad",
	MaxBlock:       "MaxBlock",
	MaxBreaks:      "MaxBreaks",
}

// Number of integer parameters each kind takes
var kindArities = map[Kind]int{
	MinGap:     1,
	WorkDay:    1,
	MaxDays:    1,
	MaxDayLoad: 1,
	MaxBlock:   2,
	MaxBreaks:  2,
}

func (kind Kind) String() string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(kind))
}

// Pairwise checks whether the kind is evaluated over every unordered pair of its classes. The remaining kinds evaluate
// the whole class list jointly
func (kind Kind) Pairwise() bool {
	return kind < MaxDays
}

// PerWeek checks whether the soft penalty of the kind is averaged over the weeks of the semester
func (kind Kind) PerWeek() bool {
	return kind == MaxDayLoad || kind == MaxBlock || kind == MaxBreaks
}

// Constraint is a distribution constraint over a list of classes. Limit holds the kind's main parameter (G for MinGap,
// S for WorkDay and MaxDayLoad, D for MaxDays, M for MaxBlock and R for MaxBreaks) and Break holds the extended break
// length S of MaxBlock and MaxBreaks
type Constraint struct {
	Kind    Kind
	Classes []*Class
	Limit   int
	Break   int
	travel  *TravelMatrix
}

// NewConstraint builds a constraint of the given kind; params must match the kind's arity. SameAttendees needs the
// travel matrix of the instance, other kinds ignore it
func NewConstraint(kind Kind, classes []*Class, travel *TravelMatrix, params ...int) (Constraint, error) {
	if _, ok := kindNames[kind]; !ok {
		return Constraint{}, invalidArgument("unknown constraint kind %d", int(kind))
	} else if len(params) != kindArities[kind] {
		return Constraint{}, invalidArgument("%v takes %d parameters, got %d", kind, kindArities[kind], len(params))
	} else if lo.SomeBy(params, func(param int) bool { return param < 0 }) {
		return Constraint{}, invalidArgument("%v parameters cannot be negative: %v", kind, params)
	} else if kind == MaxDays && params[0] > 7 {
		return Constraint{}, invalidArgument("MaxDays cannot exceed 7 days: %d", params[0])
	} else if kind == SameAttendees && travel == nil {
		return Constraint{}, invalidArgument("SameAttendees needs a travel matrix")
	} else if lo.SomeBy(classes, func(class *Class) bool { return class == nil }) {
		return Constraint{}, invalidArgument("%v references an undefined class", kind)
	}

	constraint := Constraint{Kind: kind, Classes: classes, travel: travel}
	if len(params) > 0 {
		constraint.Limit = params[0]
	}
	if len(params) > 1 {
		constraint.Break = params[1]
	}
	return constraint, nil
}

// ParseConstraint builds a constraint from its competition type string, e.g. "SameRoom" or "MaxBlock(60,10)"
func ParseConstraint(typ string, classes []*Class, travel *TravelMatrix) (Constraint, error) {
	name, params := typ, []int{}
	if open := strings.Index(typ, "("); open >= 0 {
		if !strings.HasSuffix(typ, ")") {
			return Constraint{}, invalidArgument("malformed constraint type %q", typ)
		}
		name = typ[:open]
		for _, param := range strings.Split(typ[open+1:len(typ)-1], ",") {
			value, err := strconv.Atoi(strings.TrimSpace(param))
			if err != nil {
				return Constraint{}, invalidArgument("malformed parameter in constraint type %q", typ)
			}
			params = append(params, value)
		}
	}

	kind, ok := lo.FindKey(kindNames, name)
	if !ok {
		return Constraint{}, invalidArgument("unknown constraint type %q", typ)
	}
	return NewConstraint(kind, classes, travel, params...)
}

func (constraint Constraint) String() string {
	var builder strings.Builder
	builder.WriteString(constraint.Kind.String())
	switch kindArities[constraint.Kind] {
	case 1:
		fmt.Fprintf(&builder, "(%d)", constraint.Limit)
	case 2:
		fmt.Fprintf(&builder, "(%d,%d)", constraint.Limit, constraint.Break)
	}
	fmt.Fprintf(&builder, "%v", lo.Map(constraint.Classes, func(class *Class, _ int) int { return class.Id }))
	return builder.String()
}

// IsSatisfied checks whether the timetable fully satisfies the constraint, stopping at the first violation
func (constraint Constraint) IsSatisfied(timetable *Timetable) bool {
	if constraint.Kind.Pairwise() {
		return constraint.pairwiseSatisfied(timetable)
	}
	return constraint.aggregateViolations(timetable, true) == 0
}

// ViolationCount counts the violations of the constraint in the timetable
func (constraint Constraint) ViolationCount(timetable *Timetable) int {
	if constraint.Kind.Pairwise() {
		return constraint.pairwiseViolations(timetable)
	}
	return constraint.aggregateViolations(timetable, false)
}

func (constraint Constraint) events(timetable *Timetable) []*Event {
	return lo.Map(constraint.Classes, func(class *Class, _ int) *Event { return timetable.Event(class) })
}
