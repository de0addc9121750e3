package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubjects_UniqueIDsAndCompleteRecords(t *testing.T) {
	require.NotEmpty(t, Subjects)
	seen := map[string]bool{}
	for _, s := range Subjects {
		require.NotEmpty(t, s.ID)
		require.NotEmpty(t, s.Name)
		require.NotEmpty(t, s.Icon)
		require.NotEmpty(t, s.PromptTemplate)
		require.NotEmpty(t, s.ColorTag)
		require.False(t, seen[s.ID], "duplicate subject id %q", s.ID)
		seen[s.ID] = true
	}
}

func TestSubjectByID_KnownIDs(t *testing.T) {
	for _, s := range Subjects {
		got := SubjectByID(s.ID)
		require.Equal(t, s.ID, got.ID)
		require.Equal(t, s.Name, got.Name)
	}
}

func TestSubjectByID_UnknownFallsBackToDefault(t *testing.T) {
	got := SubjectByID("deleted-subject")
	require.Equal(t, DefaultSubject().ID, got.ID)

	got = SubjectByID("")
	require.Equal(t, DefaultSubject().ID, got.ID)
}
