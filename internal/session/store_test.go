package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tutorchat/internal/domain"
)

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreate_EverySubjectYieldsEmptyCurrentSession(t *testing.T) {
	for _, subj := range domain.Subjects {
		store := NewStore()
		sess := store.Create(subj)

		require.Equal(t, subj.ID, sess.Subject)
		require.Empty(t, sess.Messages)
		require.Equal(t, subj.Name+" Chat", sess.Title)
		require.False(t, sess.CreatedAt.IsZero())

		cur, ok := store.Current()
		require.True(t, ok)
		require.Equal(t, sess.ID, cur.ID)
	}
}

func TestCreate_PrependsNewestFirst(t *testing.T) {
	store := NewStore()
	first := store.Create(domain.Subjects[0])
	second := store.Create(domain.Subjects[1])

	list := store.List()
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)

	cur, ok := store.Current()
	require.True(t, ok)
	require.Equal(t, second.ID, cur.ID)
}

// ---------------------------------------------------------------------------
// Select / Current
// ---------------------------------------------------------------------------

func TestSelect_SwitchesCurrent(t *testing.T) {
	store := NewStore()
	first := store.Create(domain.Subjects[0])
	store.Create(domain.Subjects[1])

	require.NoError(t, store.Select(first.ID))
	cur, ok := store.Current()
	require.True(t, ok)
	require.Equal(t, first.ID, cur.ID)
}

func TestSelect_UnknownID(t *testing.T) {
	store := NewStore()
	store.Create(domain.Subjects[0])

	err := store.Select("missing")
	require.ErrorIs(t, err, ErrNotFound)

	// current must be untouched
	_, ok := store.Current()
	require.True(t, ok)
}

func TestCurrent_EmptyStore(t *testing.T) {
	store := NewStore()
	_, ok := store.Current()
	require.False(t, ok)
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestDelete_CurrentClearsPointer(t *testing.T) {
	store := NewStore()
	sess := store.Create(domain.Subjects[0])

	store.Delete(sess.ID)

	_, ok := store.Current()
	require.False(t, ok, "deleting the current session must leave no current session")
	require.Zero(t, store.Len())
}

func TestDelete_NonCurrentLeavesCurrentUnchanged(t *testing.T) {
	store := NewStore()
	first := store.Create(domain.Subjects[0])
	second := store.Create(domain.Subjects[1])

	store.Delete(first.ID)

	cur, ok := store.Current()
	require.True(t, ok)
	require.Equal(t, second.ID, cur.ID)
	require.Equal(t, 1, store.Len())
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	store := NewStore()
	store.Create(domain.Subjects[0])
	store.Delete("missing")
	require.Equal(t, 1, store.Len())
}

// ---------------------------------------------------------------------------
// Append
// ---------------------------------------------------------------------------

func TestAppend_PreservesChronologicalOrder(t *testing.T) {
	store := NewStore()
	sess := store.Create(domain.Subjects[0])

	roles := []domain.Role{domain.RoleUser, domain.RoleAssistant}
	var want []string
	for i := 0; i < 10; i++ {
		msg := domain.NewMessage(roles[i%2], "turn")
		want = append(want, msg.ID)
		_, err := store.Append(sess.ID, msg)
		require.NoError(t, err)
	}

	cur, ok := store.Current()
	require.True(t, ok)
	require.Len(t, cur.Messages, 10)
	for i, msg := range cur.Messages {
		require.Equal(t, want[i], msg.ID, "message %d out of order", i)
		require.Equal(t, roles[i%2], msg.Role)
	}
}

func TestAppend_CurrentAndListStayConsistent(t *testing.T) {
	store := NewStore()
	sess := store.Create(domain.Subjects[0])

	updated, err := store.Append(sess.ID, domain.NewMessage(domain.RoleUser, "hi"))
	require.NoError(t, err)
	require.Len(t, updated.Messages, 1)

	cur, ok := store.Current()
	require.True(t, ok)
	require.Len(t, cur.Messages, 1)

	list := store.List()
	require.Len(t, list, 1)
	require.Len(t, list[0].Messages, 1)
}

func TestAppend_UnknownSession(t *testing.T) {
	store := NewStore()
	_, err := store.Append("missing", domain.NewMessage(domain.RoleUser, "hi"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAppend_ReturnedValueIsDetachedCopy(t *testing.T) {
	store := NewStore()
	sess := store.Create(domain.Subjects[0])

	before, err := store.Append(sess.ID, domain.NewMessage(domain.RoleUser, "one"))
	require.NoError(t, err)
	_, err = store.Append(sess.ID, domain.NewMessage(domain.RoleAssistant, "two"))
	require.NoError(t, err)

	// the first returned value is a snapshot, unaffected by later appends
	require.Len(t, before.Messages, 1)
}
