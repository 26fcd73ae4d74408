package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/registrar/mail"
	"github.com/arloliu/registrar/schema"
	"github.com/arloliu/registrar/types"
)

// GradeManager owns student enrollment and recorded marks, and notifies
// students by mail when a grade lands.
type GradeManager struct {
	grades   EntityStore[schema.Grade, schema.GradeKey]
	students EntityStore[schema.Student, schema.StudentKey]
	mailer   mail.Sender
	logger   types.Logger

	// now is replaceable for tests.
	now func() time.Time
}

// NewGradeManager wires the grade aggregate.
func NewGradeManager(
	grades EntityStore[schema.Grade, schema.GradeKey],
	students EntityStore[schema.Student, schema.StudentKey],
	mailer mail.Sender,
	logger types.Logger,
) *GradeManager {
	return &GradeManager{
		grades:   grades,
		students: students,
		mailer:   mailer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// EnrollStudentInput is the validated input for EnrollStudent.
type EnrollStudentInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

// EnrollStudent registers a student with a fresh token.
func (m *GradeManager) EnrollStudent(ctx context.Context, schoolID int, in EnrollStudentInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	student := schema.Student{
		SchoolID: schoolID,
		Token:    uuid.NewString(),
		Name:     in.Name,
		Email:    in.Email,
	}
	res := m.students.Insert(ctx, &student)
	switch {
	case res.IsNotApplied():
		return conflict("student token collision, retry")
	case !res.IsOK():
		return internal(m.logger, "enroll student", res)
	}

	return created(student)
}

// GetStudent reads one student by token.
func (m *GradeManager) GetStudent(ctx context.Context, schoolID int, token string) Response {
	student, res := m.students.Get(ctx, schema.StudentKey{SchoolID: schoolID, Token: token})
	switch {
	case res.IsNotFound():
		return notFound("student not found")
	case !res.IsOK():
		return internal(m.logger, "get student", res)
	}

	return ok(student)
}

// ListStudents lists a school's students.
func (m *GradeManager) ListStudents(ctx context.Context, schoolID int) Response {
	students, res := m.students.List(ctx, schoolID)
	if !res.IsOK() {
		return internal(m.logger, "list students", res)
	}

	return ok(students)
}

// RemoveStudent deletes a student and their recorded grades.
func (m *GradeManager) RemoveStudent(ctx context.Context, schoolID int, token string) Response {
	if res := m.grades.DeleteAll(ctx, schoolID, token); !res.IsOK() {
		return internal(m.logger, "remove student grades", res)
	}

	res := m.students.Delete(ctx, schema.StudentKey{SchoolID: schoolID, Token: token})
	switch {
	case res.IsNotApplied():
		return notFound("student not found")
	case !res.IsOK():
		return internal(m.logger, "remove student", res)
	}

	return ok(nil)
}

// GradeInput is the validated input for RecordGrade.
type GradeInput struct {
	Course string `validate:"required"`
	Value  int    `validate:"required,gte=1,lte=10"`
}

// RecordGrade validates the student, appends the grade at the current
// time, and sends a notification mail as a side effect.
func (m *GradeManager) RecordGrade(ctx context.Context, schoolID int, studentToken string, in GradeInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	student, res := m.students.Get(ctx, schema.StudentKey{SchoolID: schoolID, Token: studentToken})
	switch {
	case res.IsNotFound():
		return notFound("student not found")
	case !res.IsOK():
		return internal(m.logger, "record grade", res)
	}

	grade := schema.Grade{
		SchoolID:     schoolID,
		StudentToken: studentToken,
		Recorded:     m.now(),
		Course:       in.Course,
		Value:        in.Value,
	}
	res = m.grades.Insert(ctx, &grade)
	switch {
	case res.IsNotApplied():
		return conflict("grade already recorded at that instant, retry")
	case !res.IsOK():
		return internal(m.logger, "record grade", res)
	}

	msg := mail.Message{
		To:      student.Email,
		Subject: "New grade recorded",
		Body:    fmt.Sprintf("%s: you received %d in %s", student.Name, grade.Value, grade.Course),
	}
	if err := m.mailer.Send(ctx, msg); err != nil {
		m.logger.Warnw("grade mail not sent",
			"student_token", studentToken,
			"error", err.Error(),
		)
	}

	return created(grade)
}

// ListGrades lists a student's grades in recording order; an empty list is
// OK.
func (m *GradeManager) ListGrades(ctx context.Context, schoolID int, studentToken string) Response {
	grades, res := m.grades.List(ctx, schoolID, studentToken)
	if !res.IsOK() {
		return internal(m.logger, "list grades", res)
	}

	return ok(grades)
}
