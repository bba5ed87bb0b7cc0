package evaluation

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/itc2019/pkg/model"
	"github.com/samber/lo"
)

// ReportRow is one line of the csv report: a constraint, a room conflict or a student conflict
type ReportRow struct {
	Section    string `csv:"section"`
	Index      int    `csv:"index"`
	Subject    string `csv:"subject"`
	Classes    string `csv:"classes"`
	Satisfied  bool   `csv:"satisfied"`
	Violations int    `csv:"violations"`
	Penalty    int    `csv:"penalty"`
	Error      string `csv:"error"`
}

// Rows flattens the report: hard constraints first, then soft constraints, room conflicts and student conflicts
func (report Report) Rows() []ReportRow {
	rows := make([]ReportRow, 0, len(report.Hard)+len(report.Soft)+len(report.RoomConflicts)+len(report.StudentConflicts))
	for _, result := range report.Hard {
		rows = append(rows, constraintRow("hard", result))
	}
	for _, result := range report.Soft {
		rows = append(rows, constraintRow("soft", result))
	}
	for i, conflict := range report.RoomConflicts {
		rows = append(rows, ReportRow{
			Section: "room",
			Index:   i,
			Subject: strconv.Itoa(conflict.Room.Id),
			Classes: classIds(conflict.Class1, conflict.Class2),
		})
	}
	for i, conflict := range report.StudentConflicts {
		rows = append(rows, ReportRow{
			Section: "student",
			Index:   i,
			Subject: strconv.Itoa(conflict.Student.Id),
			Classes: classIds(conflict.Class1, conflict.Class2),
		})
	}
	return rows
}

func constraintRow(section string, result ConstraintResult) ReportRow {
	row := ReportRow{
		Section:    section,
		Index:      result.Index,
		Subject:    result.Constraint.String(),
		Classes:    classIds(result.Constraint.Classes...),
		Satisfied:  result.Satisfied,
		Violations: result.Violations,
		Penalty:    result.Penalty,
	}
	if result.Err != nil {
		row.Error = result.Err.Error()
	}
	return row
}

// classIds joins the ids of the non-nil classes with spaces
func classIds(classes ...*model.Class) string {
	ids := lo.FilterMap(classes, func(class *model.Class, _ int) (string, bool) {
		if class == nil {
			return "", false
		}
		return strconv.Itoa(class.Id), true
	})
	return strings.Join(ids, " ")
}

func WriteCsv(writer io.Writer, report Report) error {
	return gocsv.Marshal(report.Rows(), writer)
}

type summary struct {
	Instance         string      `json:"instance"`
	Feasible         bool        `json:"feasible"`
	Score            model.Score `json:"score"`
	HardViolated     int         `json:"hardViolated"`
	SoftViolated     int         `json:"softViolated"`
	RoomConflicts    int         `json:"roomConflicts"`
	StudentConflicts int         `json:"studentConflicts"`
	Rows             []ReportRow `json:"rows,omitempty"`
}

// WriteJson writes the totals of the report and, if detailed, every row
func WriteJson(writer io.Writer, report Report, detailed bool) error {
	violated := func(result ConstraintResult) bool { return result.Err != nil || !result.Satisfied }
	out := summary{
		Instance:         report.Instance,
		Feasible:         report.Feasible,
		Score:            report.Score,
		HardViolated:     lo.CountBy(report.Hard, violated),
		SoftViolated:     lo.CountBy(report.Soft, violated),
		RoomConflicts:    len(report.RoomConflicts),
		StudentConflicts: len(report.StudentConflicts),
	}
	if detailed {
		out.Rows = report.Rows()
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
