package table

import (
	"context"
	"fmt"
	"strings"

	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/types"
)

// Definition describes one entity table: its columns, primary key layout,
// and the binding/scanning glue between the entity type and the wire.
//
// E is the entity struct, K the full primary key (a scalar for single-column
// keys, a small struct for compound ones).
type Definition[E any, K any] struct {
	// Name is the unqualified table name.
	Name string

	// Columns lists every column in insert order.
	Columns []string

	// KeyColumns lists the full primary key (partition plus clustering),
	// in declaration order.
	KeyColumns []string

	// PartitionColumns lists the partition key only. Leave empty for
	// tables never listed or bulk-deleted by partition.
	PartitionColumns []string

	// UpdateColumns lists the non-key columns an Update rewrites. Leave
	// empty for tables whose rows are immutable once written; Update then
	// reports INVALID_REQUEST.
	UpdateColumns []string

	// Schema is the column and key clause of the CREATE TABLE statement,
	// e.g. "(id int, name text, PRIMARY KEY (id))".
	Schema string

	// Bind returns the values of all Columns, in order.
	Bind func(e *E) []any

	// BindKey returns the values of KeyColumns, in order.
	BindKey func(k K) []any

	// BindUpdate returns the values of UpdateColumns followed by
	// KeyColumns. Required only when UpdateColumns is set.
	BindUpdate func(e *E) []any

	// Scan reads one row of all Columns into e.
	Scan func(row store.Row, e *E) error
}

// Table executes the per-entity statement set against the shared connection.
//
// A Table is configured once at startup and is then safe for concurrent use;
// all state written after Configure is read-only.
type Table[E any, K any] struct {
	conn *store.Conn
	def  Definition[E, K]

	configured bool
	qualified  string

	stmtSchema    string
	stmtInsert    string
	stmtGet       string
	stmtListAll   string
	stmtListPart  string
	stmtUpdate    string
	stmtDelete    string
	stmtDeleteAll string
}

// New creates an unconfigured table handle.
//
// Parameters:
//   - conn: The shared store connection
//   - def: The table definition
//
// Returns:
//   - *Table[E, K]: The table handle; call Configure before use
func New[E any, K any](conn *store.Conn, def Definition[E, K]) *Table[E, K] {
	return &Table[E, K]{conn: conn, def: def}
}

// Configure builds the statement set for the given keyspace.
//
// Statement text is computed once here so the hot path only binds values;
// the driver prepares and caches each statement on first execution.
//
// Parameters:
//   - keyspace: The keyspace the table lives in
func (t *Table[E, K]) Configure(keyspace string) {
	t.qualified = keyspace + "." + t.def.Name

	cols := strings.Join(t.def.Columns, ", ")
	keyWhere := whereClause(t.def.KeyColumns)

	t.stmtSchema = fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s %s", t.qualified, t.def.Schema)
	t.stmtInsert = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) IF NOT EXISTS",
		t.qualified, cols, placeholders(len(t.def.Columns)))
	t.stmtGet = fmt.Sprintf("SELECT %s FROM %s WHERE %s", cols, t.qualified, keyWhere)
	t.stmtListAll = fmt.Sprintf("SELECT %s FROM %s", cols, t.qualified)
	t.stmtDelete = fmt.Sprintf("DELETE FROM %s WHERE %s IF EXISTS", t.qualified, keyWhere)

	if len(t.def.PartitionColumns) > 0 {
		partWhere := whereClause(t.def.PartitionColumns)
		t.stmtListPart = fmt.Sprintf("SELECT %s FROM %s WHERE %s", cols, t.qualified, partWhere)
		t.stmtDeleteAll = fmt.Sprintf("DELETE FROM %s WHERE %s", t.qualified, partWhere)
	}

	if len(t.def.UpdateColumns) > 0 {
		assigns := make([]string, len(t.def.UpdateColumns))
		for i, col := range t.def.UpdateColumns {
			assigns[i] = col + " = ?"
		}
		t.stmtUpdate = fmt.Sprintf("UPDATE %s SET %s WHERE %s IF EXISTS",
			t.qualified, strings.Join(assigns, ", "), keyWhere)
	}

	t.configured = true
}

// Name returns the unqualified table name.
func (t *Table[E, K]) Name() string {
	return t.def.Name
}

// EnsureSchema creates the table if it does not exist.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - types.Result: OK or the mapped failure
func (t *Table[E, K]) EnsureSchema(ctx context.Context) types.Result {
	if !t.configured {
		return notConfigured(t.def.Name)
	}

	return t.conn.Exec(ctx, t.stmtSchema)
}

// Insert writes a new row, guarded by IF NOT EXISTS.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - e: The entity to insert
//
// Returns:
//   - types.Result: OK, NOT_APPLIED when the key already exists, or the
//     mapped failure
func (t *Table[E, K]) Insert(ctx context.Context, e *E) types.Result {
	if !t.configured {
		return notConfigured(t.def.Name)
	}

	return t.conn.ExecCAS(ctx, t.stmtInsert, t.def.Bind(e)...)
}

// Get reads the row with the given key.
//
// More than one row for a full primary key means the table or its scan glue
// is broken; that is reported as UNKNOWN_ERROR rather than silently taking
// the first row.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - k: The full primary key
//
// Returns:
//   - E: The entity, zero-valued unless the result is OK
//   - types.Result: OK, NOT_FOUND, or the mapped failure
func (t *Table[E, K]) Get(ctx context.Context, k K) (E, types.Result) {
	var entity E
	if !t.configured {
		return entity, notConfigured(t.def.Name)
	}

	rows := 0
	res := t.conn.SelectRows(ctx, t.stmtGet, t.def.BindKey(k),
		func(_ int) {
			rows = 0
			entity = *new(E)
		},
		func(row store.Row) types.Result {
			rows++
			if rows > 1 {
				return types.Failuref(types.Unknown, "%s: multiple rows for one key", t.def.Name)
			}
			if err := t.def.Scan(row, &entity); err != nil {
				return types.Failure(types.Unknown, err.Error())
			}

			return types.Ok()
		})
	if !res.IsOK() {
		return *new(E), res
	}

	return entity, res
}

// List reads every row of the partition, or the whole table when no binds
// are given.
//
// An empty result is OK with an empty slice; listings are statements about
// a collection, not about one row's existence.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - partition: Partition key values, or none for a full scan
//
// Returns:
//   - []E: The entities, empty when none match
//   - types.Result: OK or the mapped failure
func (t *Table[E, K]) List(ctx context.Context, partition ...any) ([]E, types.Result) {
	if !t.configured {
		return nil, notConfigured(t.def.Name)
	}

	stmt := t.stmtListAll
	if len(partition) > 0 {
		if t.stmtListPart == "" {
			return nil, types.Failuref(types.InvalidRequest, "%s: no partition columns defined", t.def.Name)
		}
		stmt = t.stmtListPart
	}

	var entities []E
	res := t.conn.SelectRows(ctx, stmt, partition,
		func(n int) {
			entities = make([]E, 0, n)
		},
		func(row store.Row) types.Result {
			var e E
			if err := t.def.Scan(row, &e); err != nil {
				return types.Failure(types.Unknown, err.Error())
			}
			entities = append(entities, e)

			return types.Ok()
		})
	if res.IsNotFound() {
		return []E{}, types.Ok()
	}
	if !res.IsOK() {
		return nil, res
	}

	return entities, res
}

// Update rewrites the updatable columns of an existing row, guarded by
// IF EXISTS.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - e: The entity carrying the key and the new column values
//
// Returns:
//   - types.Result: OK, NOT_APPLIED when the row does not exist,
//     INVALID_REQUEST for immutable tables, or the mapped failure
func (t *Table[E, K]) Update(ctx context.Context, e *E) types.Result {
	if !t.configured {
		return notConfigured(t.def.Name)
	}
	if t.stmtUpdate == "" {
		return types.Failuref(types.InvalidRequest, "%s: table has no updatable columns", t.def.Name)
	}

	return t.conn.ExecCAS(ctx, t.stmtUpdate, t.def.BindUpdate(e)...)
}

// Delete removes the row with the given key, guarded by IF EXISTS.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - k: The full primary key
//
// Returns:
//   - types.Result: OK, NOT_APPLIED when the row does not exist, or the
//     mapped failure
func (t *Table[E, K]) Delete(ctx context.Context, k K) types.Result {
	if !t.configured {
		return notConfigured(t.def.Name)
	}

	return t.conn.ExecCAS(ctx, t.stmtDelete, t.def.BindKey(k)...)
}

// DeleteAll removes every row of the partition. The delete is
// unconditional: removing an already-empty partition is OK.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - partition: Partition key values
//
// Returns:
//   - types.Result: OK or the mapped failure
func (t *Table[E, K]) DeleteAll(ctx context.Context, partition ...any) types.Result {
	if !t.configured {
		return notConfigured(t.def.Name)
	}
	if t.stmtDeleteAll == "" {
		return types.Failuref(types.InvalidRequest, "%s: no partition columns defined", t.def.Name)
	}

	return t.conn.Exec(ctx, t.stmtDeleteAll, partition...)
}

func notConfigured(name string) types.Result {
	return types.Failuref(types.InvalidRequest, "%s: %s", name, types.ErrNotConfigured.Error())
}

func placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = "?"
	}

	return strings.Join(marks, ", ")
}

func whereClause(cols []string) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + " = ?"
	}

	return strings.Join(parts, " AND ")
}
