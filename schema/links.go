package schema

import (
	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/table"
)

func scanUUID(row store.Row) (gocql.UUID, error) {
	var id gocql.UUID
	err := row.Scan(&id)

	return id, err
}

// TodosByUserDefinition returns the todos_by_user relationship table,
// mapping a user token to the ids of its todos.
func TodosByUserDefinition() table.LinkDefinition[string, gocql.UUID] {
	return table.LinkDefinition[string, gocql.UUID]{
		Name:         "todos_by_user",
		TenantColumn: "school_id",
		OwnerColumn:  "user_token",
		MemberColumn: "todo_id",
		Schema: "(school_id int, user_token text, todo_id uuid, " +
			"PRIMARY KEY ((school_id, user_token), todo_id))",
		ScanMember: scanUUID,
	}
}

// QuestionsByCourseDefinition returns the questions_by_course relationship
// table, mapping a course id to the ids of its questions.
func QuestionsByCourseDefinition() table.LinkDefinition[gocql.UUID, gocql.UUID] {
	return table.LinkDefinition[gocql.UUID, gocql.UUID]{
		Name:         "questions_by_course",
		TenantColumn: "school_id",
		OwnerColumn:  "course_id",
		MemberColumn: "question_id",
		Schema: "(school_id int, course_id uuid, question_id uuid, " +
			"PRIMARY KEY ((school_id, course_id), question_id))",
		ScanMember: scanUUID,
	}
}

// FilesByUserDefinition returns the files_by_user relationship table,
// mapping a user token to the ids of its files.
func FilesByUserDefinition() table.LinkDefinition[string, gocql.UUID] {
	return table.LinkDefinition[string, gocql.UUID]{
		Name:         "files_by_user",
		TenantColumn: "school_id",
		OwnerColumn:  "user_token",
		MemberColumn: "file_id",
		Schema: "(school_id int, user_token text, file_id uuid, " +
			"PRIMARY KEY ((school_id, user_token), file_id))",
		ScanMember: scanUUID,
	}
}
