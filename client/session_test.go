package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minetheflag/mtf/internal/fakebackend"
	"github.com/minetheflag/mtf/models"
	"github.com/minetheflag/mtf/store"
)

func TestDecodeSubject(t *testing.T) {
	token := fakebackend.Token("1MF21CS001")
	sub, err := DecodeSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "1MF21CS001", sub)
}

func TestDecodeSubjectMalformed(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "a.b.c", "x.!!!.y"} {
		_, err := DecodeSubject(token)
		assert.Error(t, err, "token %q should not decode", token)
	}
}

func TestCurrentMember(t *testing.T) {
	teamID := 7
	backend := fakebackend.New()
	backend.Members = []models.Member{
		{ID: 1, Name: "Steve", USN: "1MF21CS001", TeamID: &teamID},
		{ID: 2, Name: "Alex", USN: "1MF21CS002"},
	}
	c, st := newTestClient(t, backend)

	t.Run("no token resolves to no session", func(t *testing.T) {
		_, err := c.CurrentMember(context.Background())
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("corrupt token resolves to no session", func(t *testing.T) {
		require.NoError(t, st.SetToken(store.Participant, "garbage"))
		_, err := c.CurrentMember(context.Background())
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("subject matched against member list", func(t *testing.T) {
		require.NoError(t, st.SetToken(store.Participant, fakebackend.Token("1MF21CS001")))
		member, err := c.CurrentMember(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Steve", member.Name)
		require.NotNil(t, member.TeamID)
		assert.Equal(t, teamID, *member.TeamID)
	})

	t.Run("unknown subject resolves to no session", func(t *testing.T) {
		require.NoError(t, st.SetToken(store.Participant, fakebackend.Token("1MF99XX999")))
		_, err := c.CurrentMember(context.Background())
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestCurrentMemberGatewayFailure(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.SetToken(store.Participant, fakebackend.Token("1MF21CS001")))

	c := New("http://127.0.0.1:1", st, testLogger())
	_, err = c.CurrentMember(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession, "a gateway failure is not the same as no session")
}
