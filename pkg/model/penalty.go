package model

// HardConstraint must be satisfied by every feasible timetable
type HardConstraint struct {
	Constraint Constraint
}

// SoftConstraint penalizes each violation of its constraint with its weight
type SoftConstraint struct {
	Constraint Constraint
	Weight     int
	weeks      int
}

// NewSoftConstraint wraps the constraint; nrWeeks is the number of weeks of the instance and is used to average the
// penalty of MaxDayLoad, MaxBreaks and MaxBlock over the semester
func NewSoftConstraint(constraint Constraint, weight, nrWeeks int) (SoftConstraint, error) {
	if weight < 0 {
		return SoftConstraint{}, invalidArgument("constraint penalty cannot be negative: %d", weight)
	} else if nrWeeks < 1 && constraint.Kind.PerWeek() {
		return SoftConstraint{}, invalidArgument("%v needs a positive number of weeks: %d", constraint.Kind, nrWeeks)
	}
	return SoftConstraint{Constraint: constraint, Weight: weight, weeks: nrWeeks}, nil
}

func (hard HardConstraint) IsSatisfied(timetable *Timetable) bool {
	return hard.Constraint.IsSatisfied(timetable)
}

func (hard HardConstraint) ViolationCount(timetable *Timetable) int {
	return hard.Constraint.ViolationCount(timetable)
}

// Penalty returns weight × violations; for per-week kinds the product is divided by the number of weeks once, at the
// very end
func (soft SoftConstraint) Penalty(timetable *Timetable) int {
	return soft.PenaltyOf(soft.Constraint.ViolationCount(timetable))
}

// PenaltyOf turns an already computed violation count into the constraint's penalty
func (soft SoftConstraint) PenaltyOf(violations int) int {
	penalty := soft.Weight * violations
	if soft.Constraint.Kind.PerWeek() {
		if soft.weeks < 1 {
			panic(contractViolation("%v must be built through NewSoftConstraint to know the number of weeks", soft.Constraint.Kind))
		}
		penalty /= soft.weeks
	}
	return penalty
}
