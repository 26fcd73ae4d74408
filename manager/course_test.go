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

type courseFixture struct {
	manager         *CourseManager
	courses         *fakeStore[schema.Course, schema.CourseKey]
	questions       *fakeStore[schema.Question, schema.QuestionKey]
	answers         *fakeStore[schema.Answer, schema.AnswerKey]
	lectures        *fakeStore[schema.Lecture, schema.LectureKey]
	courseQuestions *fakeLink[gocql.UUID, gocql.UUID]
}

func newCourseFixture() *courseFixture {
	courses := newFakeStore[schema.Course, schema.CourseKey](
		func(e *schema.Course) schema.CourseKey {
			return schema.CourseKey{SchoolID: e.SchoolID, ID: e.ID}
		},
		func(e *schema.Course, partition []any) bool {
			return e.SchoolID == partition[0].(int)
		})
	questions := newFakeStore[schema.Question, schema.QuestionKey](
		func(e *schema.Question) schema.QuestionKey {
			return schema.QuestionKey{SchoolID: e.SchoolID, ID: e.ID}
		},
		func(e *schema.Question, partition []any) bool {
			return e.SchoolID == partition[0].(int)
		})
	answers := newFakeStore[schema.Answer, schema.AnswerKey](
		func(e *schema.Answer) schema.AnswerKey {
			return schema.AnswerKey{SchoolID: e.SchoolID, QuestionID: e.QuestionID, Created: e.Created}
		},
		func(e *schema.Answer, partition []any) bool {
			return e.SchoolID == partition[0].(int) && e.QuestionID == partition[1].(gocql.UUID)
		})
	lectures := newFakeStore[schema.Lecture, schema.LectureKey](
		func(e *schema.Lecture) schema.LectureKey {
			return schema.LectureKey{SchoolID: e.SchoolID, CourseID: e.CourseID, Start: e.Start}
		},
		func(e *schema.Lecture, partition []any) bool {
			return e.SchoolID == partition[0].(int) && e.CourseID == partition[1].(gocql.UUID)
		})
	courseQuestions := newFakeLink[gocql.UUID, gocql.UUID]()

	return &courseFixture{
		manager: NewCourseManager(courses, questions, answers, lectures, courseQuestions,
			logging.NewNopLogger()),
		courses:         courses,
		questions:       questions,
		answers:         answers,
		lectures:        lectures,
		courseQuestions: courseQuestions,
	}
}

func (f *courseFixture) seedCourse() schema.Course {
	course := schema.Course{SchoolID: 1, ID: gocql.TimeUUID(), Name: "Algebra", Teacher: "Ionescu"}
	f.courses.put(course)

	return course
}

func TestCreateQuestionIndexesByCourse(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	course := f.seedCourse()

	resp := f.manager.CreateQuestion(ctx, 1, course.ID, QuestionInput{Text: "What is x?"})
	require.Equal(t, StatusCreated, resp.Status)

	question := resp.Body.(schema.Question)
	require.Equal(t, course.ID, question.CourseID)
	require.Equal(t,
		[]linkRow[gocql.UUID, gocql.UUID]{{tenant: 1, owner: course.ID, member: question.ID}},
		f.courseQuestions.rows)
}

func TestCreateQuestionMissingCourse(t *testing.T) {
	f := newCourseFixture()

	resp := f.manager.CreateQuestion(context.Background(), 1, gocql.TimeUUID(), QuestionInput{Text: "x"})
	require.Equal(t, StatusNotFound, resp.Status)
}

func TestCreateAnswerMissingQuestion(t *testing.T) {
	f := newCourseFixture()

	resp := f.manager.CreateAnswer(context.Background(), 1, gocql.TimeUUID(),
		AnswerInput{AuthorToken: "tok", Text: "42"})
	require.Equal(t, StatusNotFound, resp.Status)
}

func TestAnswerFlow(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	course := f.seedCourse()

	resp := f.manager.CreateQuestion(ctx, 1, course.ID, QuestionInput{Text: "What is x?"})
	require.Equal(t, StatusCreated, resp.Status)
	question := resp.Body.(schema.Question)

	resp = f.manager.ListAnswers(ctx, 1, question.ID)
	require.Equal(t, StatusOK, resp.Status)
	require.Empty(t, resp.Body.([]schema.Answer))

	resp = f.manager.CreateAnswer(ctx, 1, question.ID, AnswerInput{AuthorToken: "tok", Text: "42"})
	require.Equal(t, StatusCreated, resp.Status)

	resp = f.manager.ListAnswers(ctx, 1, question.ID)
	require.Equal(t, StatusOK, resp.Status)
	require.Len(t, resp.Body.([]schema.Answer), 1)
}

func TestDeleteCourseCascades(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	course := f.seedCourse()

	resp := f.manager.CreateQuestion(ctx, 1, course.ID, QuestionInput{Text: "What is x?"})
	require.Equal(t, StatusCreated, resp.Status)
	question := resp.Body.(schema.Question)

	resp = f.manager.CreateAnswer(ctx, 1, question.ID, AnswerInput{AuthorToken: "tok", Text: "42"})
	require.Equal(t, StatusCreated, resp.Status)

	resp = f.manager.CreateLecture(ctx, 1, course.ID,
		LectureInput{Start: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), Title: "Intro", Room: "A1"})
	require.Equal(t, StatusCreated, resp.Status)

	resp = f.manager.DeleteCourse(ctx, 1, course.ID)
	require.Equal(t, StatusOK, resp.Status)
	require.Empty(t, f.courses.rows)
	require.Empty(t, f.questions.rows)
	require.Empty(t, f.answers.rows)
	require.Empty(t, f.lectures.rows)
	require.Empty(t, f.courseQuestions.rows)
}

func TestDeleteCourseCascadeAborts(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	course := f.seedCourse()

	resp := f.manager.CreateQuestion(ctx, 1, course.ID, QuestionInput{Text: "What is x?"})
	require.Equal(t, StatusCreated, resp.Status)

	f.questions.failDelete = types.Failure(types.ResourceError, "write failure")
	resp = f.manager.DeleteCourse(ctx, 1, course.ID)
	require.Equal(t, StatusInternal, resp.Status)
	require.Contains(t, f.courses.rows, schema.CourseKey{SchoolID: 1, ID: course.ID})
}

func TestRescheduleLectureMovesStart(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	course := f.seedCourse()
	oldStart := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	newStart := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)

	f.lectures.put(schema.Lecture{SchoolID: 1, CourseID: course.ID, Start: oldStart, Title: "Intro", Room: "A1"})

	resp := f.manager.RescheduleLecture(ctx, 1, course.ID, oldStart,
		LectureInput{Start: newStart, Title: "Intro", Room: "A1"})
	require.Equal(t, StatusOK, resp.Status)

	require.Len(t, f.lectures.rows, 1)
	require.Contains(t, f.lectures.rows,
		schema.LectureKey{SchoolID: 1, CourseID: course.ID, Start: newStart})
}

func TestRescheduleLectureInsertFailureIsDataLoss(t *testing.T) {
	f := newCourseFixture()
	course := f.seedCourse()
	oldStart := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	f.lectures.put(schema.Lecture{SchoolID: 1, CourseID: course.ID, Start: oldStart, Title: "Intro", Room: "A1"})
	f.lectures.failInsert = types.Failure(types.ResourceError, "write failure")

	resp := f.manager.RescheduleLecture(context.Background(), 1, course.ID, oldStart,
		LectureInput{Start: oldStart.Add(2 * time.Hour), Title: "Intro", Room: "A1"})
	require.Equal(t, StatusInternal, resp.Status)
	require.Empty(t, f.lectures.rows)
}

func TestRescheduleLectureMissing(t *testing.T) {
	f := newCourseFixture()
	course := f.seedCourse()

	resp := f.manager.RescheduleLecture(context.Background(), 1, course.ID, time.Now(),
		LectureInput{Start: time.Now(), Title: "Intro", Room: "A1"})
	require.Equal(t, StatusNotFound, resp.Status)
}
