// Package table provides the generic per-entity statement layer.
//
// Table handles one entity table each: a Definition supplies the column
// layout and the bind/scan glue, and the Table builds its statement set once
// at Configure time. LinkTable is the same idea for the two-column
// relationship tables that index members by owner.
//
// Every write that targets a single row is conditional (IF NOT EXISTS or
// IF EXISTS), so concurrent writers serialize at the store and a lost race
// surfaces as NOT_APPLIED instead of a silent overwrite.
package table
