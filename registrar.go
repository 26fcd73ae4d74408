package registrar

import (
	"context"

	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/auth"
	"github.com/arloliu/registrar/manager"
	"github.com/arloliu/registrar/schema"
	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/table"
	"github.com/arloliu/registrar/types"
)

// module is the common surface of Table and LinkTable used during startup.
type module interface {
	Configure(keyspace string)
	EnsureSchema(ctx context.Context) types.Result
	Name() string
}

// App is the fully wired application graph: every table and every manager,
// constructed explicitly at startup and shared by reference. There are no
// singletons; callers own the App's lifetime.
type App struct {
	conn    *store.Conn
	cfg     config
	modules []module

	countries         *table.Table[schema.Country, int]
	schools           *table.Table[schema.School, int]
	nationalHolidays  *table.Table[schema.Holiday, schema.HolidayKey]
	customHolidays    *table.Table[schema.Holiday, schema.HolidayKey]
	users             *table.Table[schema.User, schema.UserKey]
	students          *table.Table[schema.Student, schema.StudentKey]
	todos             *table.Table[schema.Todo, schema.TodoKey]
	tags              *table.Table[schema.Tag, schema.TagKey]
	courses           *table.Table[schema.Course, schema.CourseKey]
	questions         *table.Table[schema.Question, schema.QuestionKey]
	answers           *table.Table[schema.Answer, schema.AnswerKey]
	lectures          *table.Table[schema.Lecture, schema.LectureKey]
	files             *table.Table[schema.File, schema.FileKey]
	grades            *table.Table[schema.Grade, schema.GradeKey]
	todosByUser       *table.LinkTable[string, gocql.UUID]
	questionsByCourse *table.LinkTable[gocql.UUID, gocql.UUID]
	filesByUser       *table.LinkTable[string, gocql.UUID]

	environment *manager.EnvironmentManager
	userMgr     *manager.UserManager
	todoMgr     *manager.TodoManager
	tagMgr      *manager.TagManager
	courseMgr   *manager.CourseManager
	gradeMgr    *manager.GradeManager
	fileMgr     *manager.FileManager
}

// New wires the application graph on top of an established connection.
//
// Parameters:
//   - conn: The shared store connection (required)
//   - opts: Optional configuration options
//
// Returns:
//   - *App: The wired application; call Configure before use
//   - error: types.ErrNilConn if conn is nil
func New(conn *store.Conn, opts ...Option) (*App, error) {
	if conn == nil {
		return nil, types.ErrNilConn
	}

	app := &App{
		conn: conn,
		cfg:  defaultConfig(),
	}
	for _, opt := range opts {
		opt(&app.cfg)
	}

	app.countries = table.New(conn, schema.CountryDefinition())
	app.schools = table.New(conn, schema.SchoolDefinition())
	app.nationalHolidays = table.New(conn, schema.NationalHolidayDefinition())
	app.customHolidays = table.New(conn, schema.CustomHolidayDefinition())
	app.users = table.New(conn, schema.UserDefinition())
	app.students = table.New(conn, schema.StudentDefinition())
	app.todos = table.New(conn, schema.TodoDefinition())
	app.tags = table.New(conn, schema.TagDefinition())
	app.courses = table.New(conn, schema.CourseDefinition())
	app.questions = table.New(conn, schema.QuestionDefinition())
	app.answers = table.New(conn, schema.AnswerDefinition())
	app.lectures = table.New(conn, schema.LectureDefinition())
	app.files = table.New(conn, schema.FileDefinition())
	app.grades = table.New(conn, schema.GradeDefinition())
	app.todosByUser = table.NewLink(conn, schema.TodosByUserDefinition())
	app.questionsByCourse = table.NewLink(conn, schema.QuestionsByCourseDefinition())
	app.filesByUser = table.NewLink(conn, schema.FilesByUserDefinition())

	app.modules = []module{
		app.countries, app.schools, app.nationalHolidays, app.customHolidays,
		app.users, app.students, app.todos, app.tags,
		app.courses, app.questions, app.answers, app.lectures,
		app.files, app.grades,
		app.todosByUser, app.questionsByCourse, app.filesByUser,
	}

	logger := app.cfg.logger
	app.environment = manager.NewEnvironmentManager(
		app.countries, app.schools, app.nationalHolidays, app.customHolidays, logger)
	app.userMgr = manager.NewUserManager(
		app.users, app.todos, app.todosByUser, app.cfg.mailer, logger)
	app.todoMgr = manager.NewTodoManager(
		app.todos, app.users, app.todosByUser, logger)
	app.tagMgr = manager.NewTagManager(app.tags, logger)
	app.courseMgr = manager.NewCourseManager(
		app.courses, app.questions, app.answers, app.lectures, app.questionsByCourse, logger)
	app.gradeMgr = manager.NewGradeManager(
		app.grades, app.students, app.cfg.mailer, logger)
	app.fileMgr = manager.NewFileManager(
		app.files, app.filesByUser, logger)

	return app, nil
}

// Configure builds every table's statement set and, when createSchema is
// set, bootstraps the keyspace and tables with idempotent DDL.
//
// Configure must complete successfully before any manager is used; a
// schema failure on any table short-circuits and is returned.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - createSchema: Whether to issue CREATE KEYSPACE/TABLE IF NOT EXISTS
//
// Returns:
//   - types.Result: OK or the first failure
func (a *App) Configure(ctx context.Context, createSchema bool) types.Result {
	if createSchema {
		if res := a.conn.Exec(ctx, schema.KeyspaceDDL(a.cfg.keyspace)); !res.IsOK() {
			a.cfg.logger.Errorw("keyspace bootstrap failed",
				"keyspace", a.cfg.keyspace,
				"result", res.String(),
			)

			return res
		}
	}

	for _, mod := range a.modules {
		mod.Configure(a.cfg.keyspace)
		if !createSchema {
			continue
		}
		if res := mod.EnsureSchema(ctx); !res.IsOK() {
			a.cfg.logger.Errorw("table bootstrap failed",
				"table", mod.Name(),
				"result", res.String(),
			)

			return res
		}
	}

	a.cfg.logger.Infow("application configured",
		"keyspace", a.cfg.keyspace,
		"tables", len(a.modules),
		"schema_created", createSchema,
	)

	return types.Ok()
}

// Close releases the underlying connection.
func (a *App) Close() {
	a.conn.Close()
}

// Environment returns the country/school/holiday manager.
func (a *App) Environment() *manager.EnvironmentManager { return a.environment }

// Users returns the user-account manager.
func (a *App) Users() *manager.UserManager { return a.userMgr }

// Todos returns the todo manager.
func (a *App) Todos() *manager.TodoManager { return a.todoMgr }

// Tags returns the tag manager.
func (a *App) Tags() *manager.TagManager { return a.tagMgr }

// Courses returns the course/question/answer/lecture manager.
func (a *App) Courses() *manager.CourseManager { return a.courseMgr }

// Grades returns the grade manager.
func (a *App) Grades() *manager.GradeManager { return a.gradeMgr }

// Files returns the file-metadata manager.
func (a *App) Files() *manager.FileManager { return a.fileMgr }

// Decoder returns the configured bearer-claims decoder, or nil when none
// was configured.
func (a *App) Decoder() auth.Decoder { return a.cfg.decoder }
