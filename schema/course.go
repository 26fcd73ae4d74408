package schema

import (
	"time"

	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/table"
)

// Course is a school-scoped course. Questions, answers, and lectures hang
// off it.
type Course struct {
	SchoolID int
	ID       gocql.UUID
	Name     string
	Teacher  string
}

// CourseKey is the full primary key of a course row.
type CourseKey struct {
	SchoolID int
	ID       gocql.UUID
}

// CourseDefinition returns the courses table definition.
func CourseDefinition() table.Definition[Course, CourseKey] {
	return table.Definition[Course, CourseKey]{
		Name:             "courses",
		Columns:          []string{"school_id", "id", "name", "teacher"},
		KeyColumns:       []string{"school_id", "id"},
		PartitionColumns: []string{"school_id"},
		UpdateColumns:    []string{"name", "teacher"},
		Schema:           "(school_id int, id uuid, name text, teacher text, PRIMARY KEY (school_id, id))",
		Bind:             func(e *Course) []any { return []any{e.SchoolID, e.ID, e.Name, e.Teacher} },
		BindKey:          func(k CourseKey) []any { return []any{k.SchoolID, k.ID} },
		BindUpdate:       func(e *Course) []any { return []any{e.Name, e.Teacher, e.SchoolID, e.ID} },
		Scan: func(row store.Row, e *Course) error {
			return row.Scan(&e.SchoolID, &e.ID, &e.Name, &e.Teacher)
		},
	}
}

// Question is a school-scoped question belonging to a course, indexed per
// course through questions_by_course.
type Question struct {
	SchoolID int
	ID       gocql.UUID
	CourseID gocql.UUID
	Text     string
}

// QuestionKey is the full primary key of a question row.
type QuestionKey struct {
	SchoolID int
	ID       gocql.UUID
}

// QuestionDefinition returns the questions table definition.
func QuestionDefinition() table.Definition[Question, QuestionKey] {
	return table.Definition[Question, QuestionKey]{
		Name:             "questions",
		Columns:          []string{"school_id", "id", "course_id", "text"},
		KeyColumns:       []string{"school_id", "id"},
		PartitionColumns: []string{"school_id"},
		UpdateColumns:    []string{"text"},
		Schema:           "(school_id int, id uuid, course_id uuid, text text, PRIMARY KEY (school_id, id))",
		Bind:             func(e *Question) []any { return []any{e.SchoolID, e.ID, e.CourseID, e.Text} },
		BindKey:          func(k QuestionKey) []any { return []any{k.SchoolID, k.ID} },
		BindUpdate:       func(e *Question) []any { return []any{e.Text, e.SchoolID, e.ID} },
		Scan: func(row store.Row, e *Question) error {
			return row.Scan(&e.SchoolID, &e.ID, &e.CourseID, &e.Text)
		},
	}
}

// Answer is one reply to a question. The created timeuuid is a clustering
// column providing natural ordering; answers are immutable once written.
type Answer struct {
	SchoolID    int
	QuestionID  gocql.UUID
	Created     gocql.UUID
	AuthorToken string
	Text        string
}

// AnswerKey is the full primary key of an answer row.
type AnswerKey struct {
	SchoolID   int
	QuestionID gocql.UUID
	Created    gocql.UUID
}

// AnswerDefinition returns the answers table definition.
func AnswerDefinition() table.Definition[Answer, AnswerKey] {
	return table.Definition[Answer, AnswerKey]{
		Name:             "answers",
		Columns:          []string{"school_id", "question_id", "created", "author_token", "text"},
		KeyColumns:       []string{"school_id", "question_id", "created"},
		PartitionColumns: []string{"school_id", "question_id"},
		Schema: "(school_id int, question_id uuid, created timeuuid, author_token text, text text, " +
			"PRIMARY KEY ((school_id, question_id), created))",
		Bind: func(e *Answer) []any {
			return []any{e.SchoolID, e.QuestionID, e.Created, e.AuthorToken, e.Text}
		},
		BindKey: func(k AnswerKey) []any { return []any{k.SchoolID, k.QuestionID, k.Created} },
		Scan: func(row store.Row, e *Answer) error {
			return row.Scan(&e.SchoolID, &e.QuestionID, &e.Created, &e.AuthorToken, &e.Text)
		},
	}
}

// Lecture is a scheduled session of a course. The start time is a
// clustering column; rescheduling is a delete-then-insert owned by the
// course manager.
type Lecture struct {
	SchoolID int
	CourseID gocql.UUID
	Start    time.Time
	Title    string
	Room     string
}

// LectureKey is the full primary key of a lecture row.
type LectureKey struct {
	SchoolID int
	CourseID gocql.UUID
	Start    time.Time
}

// LectureDefinition returns the lectures table definition.
func LectureDefinition() table.Definition[Lecture, LectureKey] {
	return table.Definition[Lecture, LectureKey]{
		Name:             "lectures",
		Columns:          []string{"school_id", "course_id", "start", "title", "room"},
		KeyColumns:       []string{"school_id", "course_id", "start"},
		PartitionColumns: []string{"school_id", "course_id"},
		Schema: "(school_id int, course_id uuid, start timestamp, title text, room text, " +
			"PRIMARY KEY ((school_id, course_id), start))",
		Bind: func(e *Lecture) []any {
			return []any{e.SchoolID, e.CourseID, e.Start, e.Title, e.Room}
		},
		BindKey: func(k LectureKey) []any { return []any{k.SchoolID, k.CourseID, k.Start} },
		Scan: func(row store.Row, e *Lecture) error {
			return row.Scan(&e.SchoolID, &e.CourseID, &e.Start, &e.Title, &e.Room)
		},
	}
}
