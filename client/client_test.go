package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minetheflag/mtf/internal/fakebackend"
	"github.com/minetheflag/mtf/models"
	"github.com/minetheflag/mtf/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, backend *fakebackend.Backend) (*Client, *store.Store) {
	t.Helper()
	srv := httptest.NewServer(backend.Router())
	t.Cleanup(srv.Close)

	st, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return New(srv.URL, st, testLogger()), st
}

func TestLoginStoresTokenAndAttachesIt(t *testing.T) {
	backend := fakebackend.New()
	backend.Members = []models.Member{{ID: 1, Name: "Steve", USN: "1MF21CS001"}}
	c, st := newTestClient(t, backend)

	require.NoError(t, c.Login(context.Background(), "1MF21CS001", "secret"))

	token, ok := st.Token(store.Participant)
	require.True(t, ok)
	require.NotEmpty(t, token)

	_, err := c.Members(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+token, backend.LastAuth("/members"))
}

func TestLoginFailureLeavesNoToken(t *testing.T) {
	backend := fakebackend.New()
	c, st := newTestClient(t, backend)

	err := c.Login(context.Background(), "1MF21CS001", "wrong")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
	assert.Equal(t, "Invalid credentials", reqErr.Message)

	_, ok := st.Token(store.Participant)
	assert.False(t, ok)
}

func TestAdminFlagSelectsAdminSlot(t *testing.T) {
	backend := fakebackend.New()
	c, st := newTestClient(t, backend)

	require.NoError(t, st.SetToken(store.Participant, "participant-token"))
	require.NoError(t, st.SetToken(store.Admin, "admin-token"))

	_, err := c.AdminTeams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer admin-token", backend.LastAuth("/admin/teams"))

	_, err = c.Teams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer participant-token", backend.LastAuth("/teams"))
}

func TestExplicitTokenOverridesStore(t *testing.T) {
	backend := fakebackend.New()
	c, st := newTestClient(t, backend)

	require.NoError(t, st.SetToken(store.Participant, "participant-token"))

	var out []models.Team
	err := c.Request(context.Background(), "/teams", RequestOptions{Token: "override-token"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Bearer override-token", backend.LastAuth("/teams"))
}

func TestAbsentTokenSendsNoAuthHeader(t *testing.T) {
	backend := fakebackend.New()
	c, _ := newTestClient(t, backend)

	_, err := c.Teams(context.Background())
	require.NoError(t, err)
	assert.Empty(t, backend.LastAuth("/teams"))
}

func TestNonJSONErrorBodyFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	st, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer st.Close()
	c := New(srv.URL, st, testLogger())

	var reqErr *RequestError
	err = c.Request(context.Background(), "/anything", RequestOptions{}, nil)
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "HTTP error! status: 500", reqErr.Message)
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
}

func TestNoContentIsNotAParseError(t *testing.T) {
	backend := fakebackend.New()
	c, _ := newTestClient(t, backend)

	err := c.Register(context.Background(), "Steve", "1MF21CS001", "pw")
	require.NoError(t, err)

	// Even with a decode target, a 204 must not touch it.
	var out models.TeamCreateOut
	err = c.Request(context.Background(), "/member/register",
		RequestOptions{Method: http.MethodPost, Body: map[string]string{"name": "Alex", "usn": "1MF21CS002", "password": "pw"}},
		&out)
	require.NoError(t, err)
	assert.Zero(t, out)
}

func TestCreateTeamNameCollision(t *testing.T) {
	backend := fakebackend.New()
	backend.Members = []models.Member{{ID: 1, Name: "Steve", USN: "1MF21CS001"}}
	c, _ := newTestClient(t, backend)

	created, err := c.CreateTeam(context.Background(), "Creepers", "1MF21CS001")
	require.NoError(t, err)
	assert.Equal(t, "Creepers", created.TeamName)

	_, err = c.CreateTeam(context.Background(), "Creepers", "1MF21CS001")
	assert.ErrorIs(t, err, ErrTeamNameTaken)
}

func TestSubmitReturnsResultNotError(t *testing.T) {
	backend := fakebackend.New()
	c, _ := newTestClient(t, backend)

	result, err := c.Submit(context.Background(), 1, "FLAG{correct}")
	require.NoError(t, err)
	assert.True(t, result.OK)

	result, err = c.Submit(context.Background(), 1, "FLAG{nope}")
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "wrong flag", result.Reason)
}

func TestSolved(t *testing.T) {
	backend := fakebackend.New()
	backend.Solved = []int{1, 5}
	c, _ := newTestClient(t, backend)

	ids, err := c.Solved(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5}, ids)
}

func TestTransportFailureSurfacesOnce(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer st.Close()
	c := New("http://127.0.0.1:1", st, testLogger())

	_, err = c.Teams(context.Background())
	require.Error(t, err)
	var reqErr *RequestError
	assert.False(t, errors.As(err, &reqErr), "transport failures are not RequestErrors")
}
