package evaluation

import (
	"errors"
	"fmt"
	"slices"

	"github.com/limaJavier/itc2019/pkg/model"
	"github.com/samber/lo"
)

// ConstraintResult is the outcome of one hard or soft constraint. Err is set when the constraint could not be evaluated
// (e.g. one of its classes is not scheduled); the other fields are then meaningless
type ConstraintResult struct {
	Index      int
	Required   bool
	Constraint model.Constraint
	Weight     int
	Satisfied  bool
	Violations int
	Penalty    int
	Err        error
}

// Report holds the outcome of every constraint in instance order, the room and student conflicts and the score
type Report struct {
	Instance         string
	Feasible         bool
	Hard             []ConstraintResult
	Soft             []ConstraintResult
	RoomConflicts    []model.RoomConflict
	StudentConflicts []model.StudentConflict
	Score            model.Score
}

type Evaluator struct {
	config Config
}

func NewEvaluator(config Config) *Evaluator {
	return &Evaluator{config: config}
}

type job struct {
	index int
	hard  bool
}

// Evaluate scores the timetable against every constraint of the instance. Constraints are evaluated concurrently over a
// timetable that must not be mutated meanwhile. A constraint that cannot be evaluated does not abort the others: its
// result carries the error and the joined errors are returned along with the report.
// Without FullReport constraints are evaluated sequentially
func (evaluator *Evaluator) Evaluate(instance *model.Instance, timetable *model.Timetable) (Report, error) {
	report := Report{
		Instance: instance.Name,
		Hard:     make([]ConstraintResult, len(instance.Hard)),
		Soft:     make([]ConstraintResult, len(instance.Soft)),
	}

	if !evaluator.config.FullReport {
		// Stop at the first failed hard constraint; conflicts and score are left empty
		for i, hard := range instance.Hard {
			report.Hard[i] = evaluateHard(i, hard, timetable)
			if report.Hard[i].Err != nil || !report.Hard[i].Satisfied {
				report.Hard = report.Hard[:i+1]
				report.Soft = nil
				return report, report.Hard[i].Err
			}
		}
		for i, soft := range instance.Soft {
			report.Soft[i] = evaluateSoft(i, soft, timetable)
		}
	} else {
		evaluator.evaluateAll(instance, timetable, &report)
	}

	var roomErr, studentErr error
	report.RoomConflicts, roomErr = guard(func() []model.RoomConflict { return model.RoomConflicts(timetable) })
	report.StudentConflicts, studentErr = guard(func() []model.StudentConflict {
		return model.StudentConflicts(timetable, instance.Travel)
	})

	report.Feasible = roomErr == nil && len(report.RoomConflicts) == 0 &&
		lo.EveryBy(report.Hard, func(result ConstraintResult) bool { return result.Err == nil && result.Satisfied })

	placement, placementErr := guard(func() [2]int {
		time, room := model.PlacementPenalties(timetable)
		return [2]int{time, room}
	})
	report.Score = instance.Weigh(model.Score{
		Time:         placement[0],
		Room:         placement[1],
		Distribution: lo.SumBy(report.Soft, func(result ConstraintResult) int { return result.Penalty }),
		Student:      len(report.StudentConflicts),
	})

	errs := lo.FilterMap(slices.Concat(report.Hard, report.Soft), func(result ConstraintResult, _ int) (error, bool) {
		return result.Err, result.Err != nil
	})
	return report, errors.Join(append(errs, roomErr, studentErr, placementErr)...)
}

func (evaluator *Evaluator) evaluateAll(instance *model.Instance, timetable *model.Timetable, report *Report) {
	jobs := make(chan job)
	results := make(chan ConstraintResult)

	// Constraints share no mutable state, so workers read the timetable without locking
	workers := max(1, evaluator.config.Workers)
	for range workers {
		go func() {
			for job := range jobs {
				if job.hard {
					results <- evaluateHard(job.index, instance.Hard[job.index], timetable)
				} else {
					results <- evaluateSoft(job.index, instance.Soft[job.index], timetable)
				}
			}
		}()
	}

	go func() {
		for i := range instance.Hard {
			jobs <- job{index: i, hard: true}
		}
		for i := range instance.Soft {
			jobs <- job{index: i}
		}
		close(jobs)
	}()

	// Collect results
	for range len(instance.Hard) + len(instance.Soft) {
		result := <-results
		if result.Required {
			report.Hard[result.Index] = result
		} else {
			report.Soft[result.Index] = result
		}
	}
}

func evaluateHard(index int, hard model.HardConstraint, timetable *model.Timetable) ConstraintResult {
	result := ConstraintResult{Index: index, Required: true, Constraint: hard.Constraint}
	result.Violations, result.Err = guard(func() int { return hard.ViolationCount(timetable) })
	result.Satisfied = result.Err == nil && result.Violations == 0
	return result
}

func evaluateSoft(index int, soft model.SoftConstraint, timetable *model.Timetable) ConstraintResult {
	result := ConstraintResult{Index: index, Constraint: soft.Constraint, Weight: soft.Weight}
	var outcome [2]int
	outcome, result.Err = guard(func() [2]int {
		violations := soft.Constraint.ViolationCount(timetable)
		return [2]int{violations, soft.PenaltyOf(violations)}
	})
	if result.Err == nil {
		result.Violations, result.Penalty = outcome[0], outcome[1]
		result.Satisfied = result.Violations == 0
	}
	return result
}

// guard runs an evaluation, turning a broken precondition (which panics) into an error local to that evaluation
func guard[T any](evaluate func() T) (value T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			if recoveredErr, ok := recovered.(error); ok {
				err = recoveredErr
			} else {
				err = fmt.Errorf("%v", recovered)
			}
		}
	}()
	return evaluate(), nil
}
