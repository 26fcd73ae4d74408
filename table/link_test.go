package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/test/testutil"
	"github.com/arloliu/registrar/types"
)

func newLinkTable(t *testing.T, session *testutil.Session) *LinkTable[string, int] {
	t.Helper()

	conn, err := store.NewConn(session)
	require.NoError(t, err)

	tbl := NewLink(conn, LinkDefinition[string, int]{
		Name:         "entries_by_owner",
		TenantColumn: "school_id",
		OwnerColumn:  "owner_token",
		MemberColumn: "entry_id",
		Schema:       "(school_id int, owner_token text, entry_id int, PRIMARY KEY ((school_id, owner_token), entry_id))",
		ScanMember: func(row store.Row) (int, error) {
			var id int
			err := row.Scan(&id)

			return id, err
		},
	})
	tbl.Configure("registrar")

	return tbl
}

func TestUnconfiguredLinkTable(t *testing.T) {
	conn, err := store.NewConn(testutil.NewSession())
	require.NoError(t, err)

	tbl := NewLink(conn, LinkDefinition[string, int]{Name: "entries_by_owner"})
	res := tbl.Link(context.Background(), 1, "tok", 1)
	require.Equal(t, types.InvalidRequest, res.Code)
}

func TestLinkSchema(t *testing.T) {
	session := testutil.NewSession()
	tbl := newLinkTable(t, session)

	res := tbl.EnsureSchema(context.Background())
	require.True(t, res.IsOK())
	require.Equal(t,
		"CREATE TABLE IF NOT EXISTS registrar.entries_by_owner "+
			"(school_id int, owner_token text, entry_id int, PRIMARY KEY ((school_id, owner_token), entry_id))",
		session.LastStatement())
}

func TestLink(t *testing.T) {
	session := testutil.NewSession()
	tbl := newLinkTable(t, session)

	res := tbl.Link(context.Background(), 1, "tok", 9)
	require.True(t, res.IsOK())
	require.Equal(t,
		"INSERT INTO registrar.entries_by_owner (school_id, owner_token, entry_id) VALUES (?, ?, ?) IF NOT EXISTS",
		session.LastStatement())
	require.Equal(t, []any{1, "tok", 9}, session.Binds[0])
}

func TestLinkNotApplied(t *testing.T) {
	session := testutil.NewSession()
	session.Applied = false
	tbl := newLinkTable(t, session)

	res := tbl.Link(context.Background(), 1, "tok", 9)
	require.True(t, res.IsNotApplied())
}

func TestMembers(t *testing.T) {
	session := testutil.NewSession()
	session.Rows = [][]any{{4}, {9}}
	tbl := newLinkTable(t, session)

	got, res := tbl.Members(context.Background(), 1, "tok")
	require.True(t, res.IsOK())
	require.Equal(t, []int{4, 9}, got)
	require.Equal(t,
		"SELECT entry_id FROM registrar.entries_by_owner WHERE school_id = ? AND owner_token = ?",
		session.LastStatement())
	require.Equal(t, []any{1, "tok"}, session.Binds[0])
}

func TestMembersEmptyIsOK(t *testing.T) {
	session := testutil.NewSession()
	tbl := newLinkTable(t, session)

	got, res := tbl.Members(context.Background(), 1, "tok")
	require.True(t, res.IsOK())
	require.Empty(t, got)
	require.NotNil(t, got)
}

func TestUnlink(t *testing.T) {
	session := testutil.NewSession()
	tbl := newLinkTable(t, session)

	res := tbl.Unlink(context.Background(), 1, "tok", 9)
	require.True(t, res.IsOK())
	require.Equal(t,
		"DELETE FROM registrar.entries_by_owner WHERE school_id = ? AND owner_token = ? AND entry_id = ? IF EXISTS",
		session.LastStatement())
}

func TestUnlinkAll(t *testing.T) {
	session := testutil.NewSession()
	tbl := newLinkTable(t, session)

	res := tbl.UnlinkAll(context.Background(), 1, "tok")
	require.True(t, res.IsOK())
	require.Equal(t,
		"DELETE FROM registrar.entries_by_owner WHERE school_id = ? AND owner_token = ?",
		session.LastStatement())
	require.Equal(t, []any{1, "tok"}, session.Binds[0])
}
