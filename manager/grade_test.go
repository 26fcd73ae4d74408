package manager

import (
	"context"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/registrar/internal/logging"
	"github.com/arloliu/registrar/schema"
	"github.com/arloliu/registrar/types"
)

type gradeFixture struct {
	manager  *GradeManager
	grades   *fakeStore[schema.Grade, schema.GradeKey]
	students *fakeStore[schema.Student, schema.StudentKey]
	mailer   *fakeMailer
}

func newGradeFixture() *gradeFixture {
	grades := newFakeStore[schema.Grade, schema.GradeKey](
		func(e *schema.Grade) schema.GradeKey {
			return schema.GradeKey{SchoolID: e.SchoolID, StudentToken: e.StudentToken, Recorded: e.Recorded}
		},
		func(e *schema.Grade, partition []any) bool {
			return e.SchoolID == partition[0].(int) && e.StudentToken == partition[1].(string)
		})
	students := newFakeStore[schema.Student, schema.StudentKey](
		func(e *schema.Student) schema.StudentKey {
			return schema.StudentKey{SchoolID: e.SchoolID, Token: e.Token}
		}, nil)
	mailer := &fakeMailer{}

	f := &gradeFixture{
		manager:  NewGradeManager(grades, students, mailer, logging.NewNopLogger()),
		grades:   grades,
		students: students,
		mailer:   mailer,
	}
	f.students.put(schema.Student{SchoolID: 1, Token: "stu", Name: "Mihai", Email: "mihai@example.com"})

	return f
}

func TestEnrollStudent(t *testing.T) {
	f := newGradeFixture()

	resp := f.manager.EnrollStudent(context.Background(), 1, EnrollStudentInput{Name: "Ana", Email: "ana@example.com"})
	require.Equal(t, StatusCreated, resp.Status)

	student := resp.Body.(schema.Student)
	require.NotEmpty(t, student.Token)
	require.Len(t, f.students.rows, 2)
}

func TestEnrollStudentValidation(t *testing.T) {
	f := newGradeFixture()

	resp := f.manager.EnrollStudent(context.Background(), 1, EnrollStudentInput{Name: "Ana", Email: "not-an-email"})
	require.Equal(t, StatusBadRequest, resp.Status)
}

func TestListStudents(t *testing.T) {
	f := newGradeFixture()

	resp := f.manager.ListStudents(context.Background(), 1)
	require.Equal(t, StatusOK, resp.Status)
	require.Len(t, resp.Body.([]schema.Student), 1)
}

func TestRemoveStudentDeletesGrades(t *testing.T) {
	f := newGradeFixture()
	f.grades.put(schema.Grade{
		SchoolID: 1, StudentToken: "stu",
		Recorded: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
		Course:   "Algebra", Value: 9,
	})

	resp := f.manager.RemoveStudent(context.Background(), 1, "stu")
	require.Equal(t, StatusOK, resp.Status)
	require.Empty(t, f.students.rows)
	require.Empty(t, f.grades.rows)
}

func TestRemoveStudentMissing(t *testing.T) {
	f := newGradeFixture()

	resp := f.manager.RemoveStudent(context.Background(), 1, "absent")
	require.Equal(t, StatusNotFound, resp.Status)
}

func TestRecordGrade(t *testing.T) {
	f := newGradeFixture()
	f.manager.now = func() time.Time {
		return time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	}

	resp := f.manager.RecordGrade(context.Background(), 1, "stu", GradeInput{Course: "Algebra", Value: 9})
	require.Equal(t, StatusCreated, resp.Status)

	grade := resp.Body.(schema.Grade)
	require.Equal(t, 9, grade.Value)
	require.Len(t, f.grades.rows, 1)

	msgs := f.mailer.messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "mihai@example.com", msgs[0].To)
}

func TestRecordGradeMissingStudent(t *testing.T) {
	f := newGradeFixture()

	resp := f.manager.RecordGrade(context.Background(), 1, "absent", GradeInput{Course: "Algebra", Value: 9})
	require.Equal(t, StatusNotFound, resp.Status)
	require.Empty(t, f.mailer.messages())
}

func TestRecordGradeValidation(t *testing.T) {
	f := newGradeFixture()

	resp := f.manager.RecordGrade(context.Background(), 1, "stu", GradeInput{Course: "Algebra", Value: 11})
	require.Equal(t, StatusBadRequest, resp.Status)
}

func TestRecordGradeDuplicateInstant(t *testing.T) {
	f := newGradeFixture()
	f.grades.failInsert = types.NotAppliedResult()

	resp := f.manager.RecordGrade(context.Background(), 1, "stu", GradeInput{Course: "Algebra", Value: 9})
	require.Equal(t, StatusConflict, resp.Status)
}

func TestListGrades(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()

	resp := f.manager.ListGrades(ctx, 1, "stu")
	require.Equal(t, StatusOK, resp.Status)
	require.Empty(t, resp.Body.([]schema.Grade))

	f.grades.put(schema.Grade{
		SchoolID: 1, StudentToken: "stu",
		Recorded: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
		Course:   "Algebra", Value: 9,
	})

	resp = f.manager.ListGrades(ctx, 1, "stu")
	require.Equal(t, StatusOK, resp.Status)
	require.Len(t, resp.Body.([]schema.Grade), 1)
}

func TestFileFlow(t *testing.T) {
	files := newFakeStore[schema.File, schema.FileKey](
		func(e *schema.File) schema.FileKey {
			return schema.FileKey{SchoolID: e.SchoolID, ID: e.ID}
		},
		func(e *schema.File, partition []any) bool {
			return e.SchoolID == partition[0].(int)
		})
	userFiles := newFakeLink[string, gocql.UUID]()
	m := NewFileManager(files, userFiles, logging.NewNopLogger())
	ctx := context.Background()

	resp := m.RegisterFile(ctx, 1, "tok", FileInput{Name: "essay.pdf", Path: "/uploads/essay.pdf", Size: 2048})
	require.Equal(t, StatusCreated, resp.Status)
	file := resp.Body.(schema.File)
	require.Len(t, userFiles.rows, 1)

	resp = m.ListFiles(ctx, 1, "tok")
	require.Equal(t, StatusOK, resp.Status)
	require.Len(t, resp.Body.([]schema.File), 1)

	resp = m.RenameFile(ctx, 1, file.ID, RenameFileInput{Name: "final.pdf", Path: "/uploads/final.pdf"})
	require.Equal(t, StatusOK, resp.Status)
	require.Equal(t, "final.pdf", files.rows[schema.FileKey{SchoolID: 1, ID: file.ID}].Name)

	resp = m.DeleteFile(ctx, 1, "tok", file.ID)
	require.Equal(t, StatusOK, resp.Status)
	require.Empty(t, files.rows)
	require.Empty(t, userFiles.rows)
}
