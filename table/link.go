package table

import (
	"context"
	"fmt"

	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/types"
)

// LinkDefinition describes one relationship table: an index from a
// tenant-scoped owner key to the keys of its members.
//
// O is the owner key type, M the member key type. The tenant is always the
// school id.
type LinkDefinition[O any, M any] struct {
	// Name is the unqualified table name, conventionally members_by_owner.
	Name string

	// TenantColumn is the school-scoping column, first half of the
	// partition key.
	TenantColumn string

	// OwnerColumn is the owning entity's key column, second half of the
	// partition key.
	OwnerColumn string

	// MemberColumn is the clustering column.
	MemberColumn string

	// Schema is the column and key clause of the CREATE TABLE statement.
	Schema string

	// ScanMember reads the member column of one row.
	ScanMember func(row store.Row) (M, error)
}

// LinkTable maintains one owner-to-members relationship table.
//
// Rows are immutable: a link is created, listed, and removed, never updated.
// Like Table, a LinkTable is configured once at startup and is then safe for
// concurrent use.
type LinkTable[O any, M any] struct {
	conn *store.Conn
	def  LinkDefinition[O, M]

	configured bool
	qualified  string

	stmtSchema    string
	stmtLink      string
	stmtMembers   string
	stmtUnlink    string
	stmtUnlinkAll string
}

// NewLink creates an unconfigured relationship table handle.
func NewLink[O any, M any](conn *store.Conn, def LinkDefinition[O, M]) *LinkTable[O, M] {
	return &LinkTable[O, M]{conn: conn, def: def}
}

// Configure builds the statement set for the given keyspace.
func (t *LinkTable[O, M]) Configure(keyspace string) {
	t.qualified = keyspace + "." + t.def.Name

	t.stmtSchema = fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s %s", t.qualified, t.def.Schema)
	t.stmtLink = fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?) IF NOT EXISTS",
		t.qualified, t.def.TenantColumn, t.def.OwnerColumn, t.def.MemberColumn)
	t.stmtMembers = fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? AND %s = ?",
		t.def.MemberColumn, t.qualified, t.def.TenantColumn, t.def.OwnerColumn)
	t.stmtUnlink = fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ? AND %s = ? IF EXISTS",
		t.qualified, t.def.TenantColumn, t.def.OwnerColumn, t.def.MemberColumn)
	t.stmtUnlinkAll = fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ?",
		t.qualified, t.def.TenantColumn, t.def.OwnerColumn)

	t.configured = true
}

// Name returns the unqualified table name.
func (t *LinkTable[O, M]) Name() string {
	return t.def.Name
}

// EnsureSchema creates the table if it does not exist.
func (t *LinkTable[O, M]) EnsureSchema(ctx context.Context) types.Result {
	if !t.configured {
		return notConfigured(t.def.Name)
	}

	return t.conn.Exec(ctx, t.stmtSchema)
}

// Link records that member belongs to owner, guarded by IF NOT EXISTS.
//
// Returns:
//   - types.Result: OK, NOT_APPLIED when the link already exists, or the
//     mapped failure
func (t *LinkTable[O, M]) Link(ctx context.Context, tenant int, owner O, member M) types.Result {
	if !t.configured {
		return notConfigured(t.def.Name)
	}

	return t.conn.ExecCAS(ctx, t.stmtLink, tenant, owner, member)
}

// Members lists the member keys linked to owner.
//
// An owner with no links yields OK and an empty slice.
//
// Returns:
//   - []M: The member keys, empty when none are linked
//   - types.Result: OK or the mapped failure
func (t *LinkTable[O, M]) Members(ctx context.Context, tenant int, owner O) ([]M, types.Result) {
	if !t.configured {
		return nil, notConfigured(t.def.Name)
	}

	var members []M
	res := t.conn.SelectRows(ctx, t.stmtMembers, []any{tenant, owner},
		func(n int) {
			members = make([]M, 0, n)
		},
		func(row store.Row) types.Result {
			m, err := t.def.ScanMember(row)
			if err != nil {
				return types.Failure(types.Unknown, err.Error())
			}
			members = append(members, m)

			return types.Ok()
		})
	if res.IsNotFound() {
		return []M{}, types.Ok()
	}
	if !res.IsOK() {
		return nil, res
	}

	return members, res
}

// Unlink removes one link, guarded by IF EXISTS.
//
// Returns:
//   - types.Result: OK, NOT_APPLIED when the link does not exist, or the
//     mapped failure
func (t *LinkTable[O, M]) Unlink(ctx context.Context, tenant int, owner O, member M) types.Result {
	if !t.configured {
		return notConfigured(t.def.Name)
	}

	return t.conn.ExecCAS(ctx, t.stmtUnlink, tenant, owner, member)
}

// UnlinkAll removes every link of the owner. The delete is unconditional:
// a range delete has no single-row conditional semantics, and removing an
// already-empty set is OK.
//
// Returns:
//   - types.Result: OK or the mapped failure
func (t *LinkTable[O, M]) UnlinkAll(ctx context.Context, tenant int, owner O) types.Result {
	if !t.configured {
		return notConfigured(t.def.Name)
	}

	return t.conn.Exec(ctx, t.stmtUnlinkAll, tenant, owner)
}
