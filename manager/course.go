package manager

import (
	"context"
	"time"

	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/schema"
	"github.com/arloliu/registrar/types"
)

// CourseManager owns courses and everything hanging off them: questions
// with their answers, and scheduled lectures.
type CourseManager struct {
	courses         EntityStore[schema.Course, schema.CourseKey]
	questions       EntityStore[schema.Question, schema.QuestionKey]
	answers         EntityStore[schema.Answer, schema.AnswerKey]
	lectures        EntityStore[schema.Lecture, schema.LectureKey]
	courseQuestions LinkStore[gocql.UUID, gocql.UUID]
	logger          types.Logger
}

// NewCourseManager wires the course aggregate.
func NewCourseManager(
	courses EntityStore[schema.Course, schema.CourseKey],
	questions EntityStore[schema.Question, schema.QuestionKey],
	answers EntityStore[schema.Answer, schema.AnswerKey],
	lectures EntityStore[schema.Lecture, schema.LectureKey],
	courseQuestions LinkStore[gocql.UUID, gocql.UUID],
	logger types.Logger,
) *CourseManager {
	return &CourseManager{
		courses:         courses,
		questions:       questions,
		answers:         answers,
		lectures:        lectures,
		courseQuestions: courseQuestions,
		logger:          logger,
	}
}

// CourseInput is the validated input for course creation and update.
type CourseInput struct {
	Name    string `validate:"required"`
	Teacher string `validate:"required"`
}

// CreateCourse inserts a course with a fresh id.
func (m *CourseManager) CreateCourse(ctx context.Context, schoolID int, in CourseInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	course := schema.Course{SchoolID: schoolID, ID: gocql.TimeUUID(), Name: in.Name, Teacher: in.Teacher}
	res := m.courses.Insert(ctx, &course)
	switch {
	case res.IsNotApplied():
		return conflict("course id collision, retry")
	case !res.IsOK():
		return internal(m.logger, "create course", res)
	}

	return created(course)
}

// GetCourse reads one course by id.
func (m *CourseManager) GetCourse(ctx context.Context, schoolID int, id gocql.UUID) Response {
	course, res := m.courses.Get(ctx, schema.CourseKey{SchoolID: schoolID, ID: id})
	switch {
	case res.IsNotFound():
		return notFound("course not found")
	case !res.IsOK():
		return internal(m.logger, "get course", res)
	}

	return ok(course)
}

// ListCourses lists a school's courses.
func (m *CourseManager) ListCourses(ctx context.Context, schoolID int) Response {
	courses, res := m.courses.List(ctx, schoolID)
	if !res.IsOK() {
		return internal(m.logger, "list courses", res)
	}

	return ok(courses)
}

// UpdateCourse rewrites a course's attributes in place.
func (m *CourseManager) UpdateCourse(ctx context.Context, schoolID int, id gocql.UUID, in CourseInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	course := schema.Course{SchoolID: schoolID, ID: id, Name: in.Name, Teacher: in.Teacher}
	res := m.courses.Update(ctx, &course)
	switch {
	case res.IsNotApplied():
		return notFound("course not found")
	case !res.IsOK():
		return internal(m.logger, "update course", res)
	}

	return ok(course)
}

// DeleteCourse removes a course and cascades: each indexed question is
// deleted along with its answer partition, then the question index, then
// the course's lectures, then the course. The first failure aborts;
// already-deleted children stay deleted.
func (m *CourseManager) DeleteCourse(ctx context.Context, schoolID int, id gocql.UUID) Response {
	questionIDs, res := m.courseQuestions.Members(ctx, schoolID, id)
	if !res.IsOK() {
		return internal(m.logger, "delete course", res)
	}

	for _, qid := range questionIDs {
		if res := m.answers.DeleteAll(ctx, schoolID, qid); !res.IsOK() {
			m.logger.Errorw("course cascade aborted",
				"course_id", id.String(),
				"question_id", qid.String(),
			)

			return internal(m.logger, "delete course answers", res)
		}

		res = m.questions.Delete(ctx, schema.QuestionKey{SchoolID: schoolID, ID: qid})
		if res.IsNotApplied() {
			m.logger.Warnw("skipping orphaned question link",
				"course_id", id.String(),
				"question_id", qid.String(),
			)

			continue
		}
		if !res.IsOK() {
			m.logger.Errorw("course cascade aborted",
				"course_id", id.String(),
				"question_id", qid.String(),
			)

			return internal(m.logger, "delete course questions", res)
		}
	}

	if res := m.courseQuestions.UnlinkAll(ctx, schoolID, id); !res.IsOK() {
		return internal(m.logger, "delete course question links", res)
	}

	if res := m.lectures.DeleteAll(ctx, schoolID, id); !res.IsOK() {
		return internal(m.logger, "delete course lectures", res)
	}

	res = m.courses.Delete(ctx, schema.CourseKey{SchoolID: schoolID, ID: id})
	switch {
	case res.IsNotApplied():
		return notFound("course not found")
	case !res.IsOK():
		return internal(m.logger, "delete course", res)
	}

	return ok(nil)
}

// QuestionInput is the validated input for question creation.
type QuestionInput struct {
	Text string `validate:"required"`
}

// CreateQuestion inserts a question under a course and indexes it.
func (m *CourseManager) CreateQuestion(ctx context.Context, schoolID int, courseID gocql.UUID, in QuestionInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	_, res := m.courses.Get(ctx, schema.CourseKey{SchoolID: schoolID, ID: courseID})
	switch {
	case res.IsNotFound():
		return notFound("course not found")
	case !res.IsOK():
		return internal(m.logger, "create question", res)
	}

	question := schema.Question{SchoolID: schoolID, ID: gocql.TimeUUID(), CourseID: courseID, Text: in.Text}
	res = m.questions.Insert(ctx, &question)
	switch {
	case res.IsNotApplied():
		return conflict("question id collision, retry")
	case !res.IsOK():
		return internal(m.logger, "create question", res)
	}

	if res := m.courseQuestions.Link(ctx, schoolID, courseID, question.ID); !res.IsOK() && !res.IsNotApplied() {
		m.logger.Errorw("question created but not indexed",
			"course_id", courseID.String(),
			"question_id", question.ID.String(),
			"result", res.String(),
		)

		return internal(m.logger, "index question", res)
	}

	return created(question)
}

// ListQuestions lists a course's questions through the index, skipping
// orphaned links.
func (m *CourseManager) ListQuestions(ctx context.Context, schoolID int, courseID gocql.UUID) Response {
	ids, res := m.courseQuestions.Members(ctx, schoolID, courseID)
	if !res.IsOK() {
		return internal(m.logger, "list questions", res)
	}

	questions := make([]schema.Question, 0, len(ids))
	for _, id := range ids {
		question, res := m.questions.Get(ctx, schema.QuestionKey{SchoolID: schoolID, ID: id})
		if res.IsNotFound() {
			m.logger.Warnw("skipping orphaned question link",
				"course_id", courseID.String(),
				"question_id", id.String(),
			)

			continue
		}
		if !res.IsOK() {
			return internal(m.logger, "list questions", res)
		}
		questions = append(questions, question)
	}

	return ok(questions)
}

// AnswerInput is the validated input for answer creation.
type AnswerInput struct {
	AuthorToken string `validate:"required"`
	Text        string `validate:"required"`
}

// CreateAnswer appends an answer to a question. The created timeuuid both
// identifies and orders the answer within its partition.
func (m *CourseManager) CreateAnswer(ctx context.Context, schoolID int, questionID gocql.UUID, in AnswerInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	_, res := m.questions.Get(ctx, schema.QuestionKey{SchoolID: schoolID, ID: questionID})
	switch {
	case res.IsNotFound():
		return notFound("question not found")
	case !res.IsOK():
		return internal(m.logger, "create answer", res)
	}

	answer := schema.Answer{
		SchoolID:    schoolID,
		QuestionID:  questionID,
		Created:     gocql.TimeUUID(),
		AuthorToken: in.AuthorToken,
		Text:        in.Text,
	}
	res = m.answers.Insert(ctx, &answer)
	switch {
	case res.IsNotApplied():
		return conflict("answer timestamp collision, retry")
	case !res.IsOK():
		return internal(m.logger, "create answer", res)
	}

	return created(answer)
}

// ListAnswers lists a question's answers in clustering order; an empty list
// is OK.
func (m *CourseManager) ListAnswers(ctx context.Context, schoolID int, questionID gocql.UUID) Response {
	answers, res := m.answers.List(ctx, schoolID, questionID)
	if !res.IsOK() {
		return internal(m.logger, "list answers", res)
	}

	return ok(answers)
}

// LectureInput is the validated input for lecture creation and reschedule.
type LectureInput struct {
	Start time.Time `validate:"required"`
	Title string    `validate:"required"`
	Room  string    `validate:"required"`
}

// CreateLecture schedules a lecture for a course.
func (m *CourseManager) CreateLecture(ctx context.Context, schoolID int, courseID gocql.UUID, in LectureInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	_, res := m.courses.Get(ctx, schema.CourseKey{SchoolID: schoolID, ID: courseID})
	switch {
	case res.IsNotFound():
		return notFound("course not found")
	case !res.IsOK():
		return internal(m.logger, "create lecture", res)
	}

	lecture := schema.Lecture{SchoolID: schoolID, CourseID: courseID, Start: in.Start, Title: in.Title, Room: in.Room}
	res = m.lectures.Insert(ctx, &lecture)
	switch {
	case res.IsNotApplied():
		return conflict("lecture already scheduled at that time")
	case !res.IsOK():
		return internal(m.logger, "create lecture", res)
	}

	return created(lecture)
}

// ListLectures lists a course's lectures in start order; an empty list is
// OK.
func (m *CourseManager) ListLectures(ctx context.Context, schoolID int, courseID gocql.UUID) Response {
	lectures, res := m.lectures.List(ctx, schoolID, courseID)
	if !res.IsOK() {
		return internal(m.logger, "list lectures", res)
	}

	return ok(lectures)
}

// RescheduleLecture moves a lecture to a new start time. The start is a
// clustering column, so the old row is deleted and a new one inserted; an
// insert failure after a successful delete loses the lecture, which is
// logged prominently and surfaced.
func (m *CourseManager) RescheduleLecture(ctx context.Context, schoolID int, courseID gocql.UUID, oldStart time.Time, in LectureInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	res := m.lectures.Delete(ctx, schema.LectureKey{SchoolID: schoolID, CourseID: courseID, Start: oldStart})
	switch {
	case res.IsNotApplied():
		return notFound("lecture not found")
	case !res.IsOK():
		return internal(m.logger, "reschedule lecture", res)
	}

	lecture := schema.Lecture{SchoolID: schoolID, CourseID: courseID, Start: in.Start, Title: in.Title, Room: in.Room}
	res = m.lectures.Insert(ctx, &lecture)
	if !res.IsOK() {
		m.logger.Errorw("lecture lost: old row deleted but replacement insert failed",
			"course_id", courseID.String(),
			"old_start", oldStart,
			"new_start", in.Start,
			"result", res.String(),
		)
		if res.IsNotApplied() {
			return conflict("lecture already scheduled at the new time; the old entry was removed")
		}

		return Response{Status: StatusInternal, Body: ErrorBody{Error: "internal error"}}
	}

	return ok(lecture)
}

// DeleteLecture removes one lecture by start time.
func (m *CourseManager) DeleteLecture(ctx context.Context, schoolID int, courseID gocql.UUID, start time.Time) Response {
	res := m.lectures.Delete(ctx, schema.LectureKey{SchoolID: schoolID, CourseID: courseID, Start: start})
	switch {
	case res.IsNotApplied():
		return notFound("lecture not found")
	case !res.IsOK():
		return internal(m.logger, "delete lecture", res)
	}

	return ok(nil)
}
