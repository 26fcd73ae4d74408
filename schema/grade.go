package schema

import (
	"time"

	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/table"
)

// Grade is one recorded mark for a student. The recorded timestamp is a
// clustering column; grades are immutable once written.
type Grade struct {
	SchoolID     int
	StudentToken string
	Recorded     time.Time
	Course       string
	Value        int
}

// GradeKey is the full primary key of a grade row.
type GradeKey struct {
	SchoolID     int
	StudentToken string
	Recorded     time.Time
}

// GradeDefinition returns the grades table definition.
func GradeDefinition() table.Definition[Grade, GradeKey] {
	return table.Definition[Grade, GradeKey]{
		Name:             "grades",
		Columns:          []string{"school_id", "student_token", "recorded", "course", "value"},
		KeyColumns:       []string{"school_id", "student_token", "recorded"},
		PartitionColumns: []string{"school_id", "student_token"},
		Schema: "(school_id int, student_token text, recorded timestamp, course text, value int, " +
			"PRIMARY KEY ((school_id, student_token), recorded))",
		Bind: func(e *Grade) []any {
			return []any{e.SchoolID, e.StudentToken, e.Recorded, e.Course, e.Value}
		},
		BindKey: func(k GradeKey) []any { return []any{k.SchoolID, k.StudentToken, k.Recorded} },
		Scan: func(row store.Row, e *Grade) error {
			return row.Scan(&e.SchoolID, &e.StudentToken, &e.Recorded, &e.Course, &e.Value)
		},
	}
}
