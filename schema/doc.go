// Package schema declares the entity types of the system and their table
// definitions.
//
// Each entity gets a plain struct and a Definition wiring it to its table:
// column layout, primary key, updatable columns, and the bind/scan glue.
// Relationship tables get LinkDefinitions. All DDL is idempotent; the
// definitions carry the CREATE TABLE clauses and the keyspace DDL lives in
// keyspace.go.
//
// Key design note: entities whose natural ordering lives in a clustering
// column (holidays by date, lectures by start time, answers and grades by
// time) declare no updatable columns, because a clustering key cannot be
// rewritten in place. Their "updates" are delete-then-insert sequences owned
// by the managers.
package schema
