package manager

import (
	"context"
	"sync"

	"github.com/arloliu/registrar/mail"
	"github.com/arloliu/registrar/types"
)

// fakeStore is a map-backed EntityStore. The zero value of each fail field
// is OK, meaning no forced failure.
type fakeStore[E any, K comparable] struct {
	rows    map[K]E
	keyOf   func(e *E) K
	matches func(e *E, partition []any) bool

	failInsert    types.Result
	failGet       types.Result
	failList      types.Result
	failUpdate    types.Result
	failDelete    types.Result
	failDeleteAll types.Result

	deleted []K
}

func newFakeStore[E any, K comparable](keyOf func(e *E) K, matches func(e *E, partition []any) bool) *fakeStore[E, K] {
	return &fakeStore[E, K]{
		rows:    make(map[K]E),
		keyOf:   keyOf,
		matches: matches,
	}
}

func (f *fakeStore[E, K]) put(e E) {
	f.rows[f.keyOf(&e)] = e
}

func (f *fakeStore[E, K]) Insert(_ context.Context, e *E) types.Result {
	if !f.failInsert.IsOK() {
		return f.failInsert
	}
	k := f.keyOf(e)
	if _, exists := f.rows[k]; exists {
		return types.NotAppliedResult()
	}
	f.rows[k] = *e

	return types.Ok()
}

func (f *fakeStore[E, K]) Get(_ context.Context, k K) (E, types.Result) {
	var zero E
	if !f.failGet.IsOK() {
		return zero, f.failGet
	}
	e, exists := f.rows[k]
	if !exists {
		return zero, types.NotFoundResult()
	}

	return e, types.Ok()
}

func (f *fakeStore[E, K]) List(_ context.Context, partition ...any) ([]E, types.Result) {
	if !f.failList.IsOK() {
		return nil, f.failList
	}
	out := make([]E, 0, len(f.rows))
	for k := range f.rows {
		e := f.rows[k]
		if len(partition) == 0 || f.matches == nil || f.matches(&e, partition) {
			out = append(out, e)
		}
	}

	return out, types.Ok()
}

func (f *fakeStore[E, K]) Update(_ context.Context, e *E) types.Result {
	if !f.failUpdate.IsOK() {
		return f.failUpdate
	}
	k := f.keyOf(e)
	if _, exists := f.rows[k]; !exists {
		return types.NotAppliedResult()
	}
	f.rows[k] = *e

	return types.Ok()
}

func (f *fakeStore[E, K]) Delete(_ context.Context, k K) types.Result {
	if !f.failDelete.IsOK() {
		return f.failDelete
	}
	if _, exists := f.rows[k]; !exists {
		return types.NotAppliedResult()
	}
	delete(f.rows, k)
	f.deleted = append(f.deleted, k)

	return types.Ok()
}

func (f *fakeStore[E, K]) DeleteAll(_ context.Context, partition ...any) types.Result {
	if !f.failDeleteAll.IsOK() {
		return f.failDeleteAll
	}
	for k := range f.rows {
		e := f.rows[k]
		if f.matches == nil || f.matches(&e, partition) {
			delete(f.rows, k)
			f.deleted = append(f.deleted, k)
		}
	}

	return types.Ok()
}

type linkRow[O comparable, M comparable] struct {
	tenant int
	owner  O
	member M
}

// fakeLink is a slice-backed LinkStore preserving insertion order.
type fakeLink[O comparable, M comparable] struct {
	rows []linkRow[O, M]

	failLink      types.Result
	failMembers   types.Result
	failUnlink    types.Result
	failUnlinkAll types.Result
}

func newFakeLink[O comparable, M comparable]() *fakeLink[O, M] {
	return &fakeLink[O, M]{}
}

func (f *fakeLink[O, M]) Link(_ context.Context, tenant int, owner O, member M) types.Result {
	if !f.failLink.IsOK() {
		return f.failLink
	}
	for _, row := range f.rows {
		if row.tenant == tenant && row.owner == owner && row.member == member {
			return types.NotAppliedResult()
		}
	}
	f.rows = append(f.rows, linkRow[O, M]{tenant: tenant, owner: owner, member: member})

	return types.Ok()
}

func (f *fakeLink[O, M]) Members(_ context.Context, tenant int, owner O) ([]M, types.Result) {
	if !f.failMembers.IsOK() {
		return nil, f.failMembers
	}
	members := make([]M, 0, len(f.rows))
	for _, row := range f.rows {
		if row.tenant == tenant && row.owner == owner {
			members = append(members, row.member)
		}
	}

	return members, types.Ok()
}

func (f *fakeLink[O, M]) Unlink(_ context.Context, tenant int, owner O, member M) types.Result {
	if !f.failUnlink.IsOK() {
		return f.failUnlink
	}
	for i, row := range f.rows {
		if row.tenant == tenant && row.owner == owner && row.member == member {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)

			return types.Ok()
		}
	}

	return types.NotAppliedResult()
}

func (f *fakeLink[O, M]) UnlinkAll(_ context.Context, tenant int, owner O) types.Result {
	if !f.failUnlinkAll.IsOK() {
		return f.failUnlinkAll
	}
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.tenant != tenant || row.owner != owner {
			kept = append(kept, row)
		}
	}
	f.rows = kept

	return types.Ok()
}

// fakeMailer records sent messages.
type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)

	return nil
}

func (f *fakeMailer) messages() []mail.Message {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]mail.Message(nil), f.sent...)
}
