package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/minetheflag/mtf/models"
	"github.com/minetheflag/mtf/store"
)

type tokenOut struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges participant credentials for a bearer token and
// stores it in the participant slot.
func (c *Client) Login(ctx context.Context, usn, password string) error {
	form := url.Values{}
	form.Set("username", usn)
	form.Set("password", password)

	var out tokenOut
	if err := c.postForm(ctx, "/member/token", form, &out); err != nil {
		return err
	}
	if out.AccessToken == "" {
		return errors.New("login response contained no access token")
	}
	return c.store.SetToken(store.Participant, out.AccessToken)
}

// Register creates a new member account. Registration does not log
// the member in.
func (c *Client) Register(ctx context.Context, name, usn, password string) error {
	body := map[string]string{"name": name, "usn": usn, "password": password}
	return c.Request(ctx, "/member/register", RequestOptions{Method: http.MethodPost, Body: body}, nil)
}

// Logout drops the participant token. A pure local clear; cannot fail
// against the backend.
func (c *Client) Logout() error {
	return c.store.ClearToken(store.Participant)
}

// Members lists all registered members.
func (c *Client) Members(ctx context.Context) ([]models.Member, error) {
	var out []models.Member
	if err := c.Request(ctx, "/members", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Team fetches a single team by id.
func (c *Client) Team(ctx context.Context, id int) (*models.Team, error) {
	var out models.Team
	if err := c.Request(ctx, fmt.Sprintf("/team/%d", id), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TeamMembers lists the members of a team.
func (c *Client) TeamMembers(ctx context.Context, id int) ([]models.Member, error) {
	var out []models.Member
	if err := c.Request(ctx, fmt.Sprintf("/team/%d/members", id), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Teams lists every team for the lobby view.
func (c *Client) Teams(ctx context.Context) ([]models.Team, error) {
	var out []models.Team
	if err := c.Request(ctx, "/teams", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTeam creates a team led by usnLead. A name collision is a
// domain-level rejection inside a 200 response and maps to
// ErrTeamNameTaken.
func (c *Client) CreateTeam(ctx context.Context, name, usnLead string) (*models.TeamCreateOut, error) {
	body := map[string]string{"team_name": name, "usn_lead": usnLead}
	var out models.TeamCreateOut
	if err := c.Request(ctx, "/team/create", RequestOptions{Method: http.MethodPost, Body: body}, &out); err != nil {
		return nil, err
	}
	if out.TeamID == -1 {
		return nil, ErrTeamNameTaken
	}
	return &out, nil
}

// JoinTeam adds the member identified by usn to an existing team.
func (c *Client) JoinTeam(ctx context.Context, teamName, usn string) error {
	body := map[string]string{"team_name": teamName, "usn": usn}
	return c.Request(ctx, "/team/join", RequestOptions{Method: http.MethodPost, Body: body}, nil)
}

// Leaderboard fetches the current standings, already ordered by the
// backend. The client never re-sorts.
func (c *Client) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var out []models.LeaderboardEntry
	if err := c.Request(ctx, "/leaderboard", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Solved returns the problem ids the current team has solved.
func (c *Client) Solved(ctx context.Context) ([]int, error) {
	var out struct {
		OK bool  `json:"ok"`
		X  []int `json:"x"`
	}
	if err := c.Request(ctx, "/team/solved", RequestOptions{Method: http.MethodPost, Body: struct{}{}}, &out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, nil
	}
	return out.X, nil
}

// Submit sends a flag for a problem. A wrong flag is a result, not an
// error: callers must inspect SubmitResult.OK.
func (c *Client) Submit(ctx context.Context, problemID int, flag string) (*models.SubmitResult, error) {
	body := map[string]any{"problem_id": problemID, "flag": flag}
	var out models.SubmitResult
	if err := c.Request(ctx, "/submit", RequestOptions{Method: http.MethodPost, Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminLogin exchanges admin credentials for a bearer token in the
// admin slot. There is no client-side fallback: a failed round trip
// is a failed login.
func (c *Client) AdminLogin(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var out tokenOut
	if err := c.Request(ctx, "/admin/login", RequestOptions{Method: http.MethodPost, Body: body}, &out); err != nil {
		return err
	}
	if out.AccessToken == "" {
		return errors.New("admin login response contained no access token")
	}
	return c.store.SetToken(store.Admin, out.AccessToken)
}

// AdminLogout drops the admin token.
func (c *Client) AdminLogout() error {
	return c.store.ClearToken(store.Admin)
}

// AdminTeams lists all teams with admin scope.
func (c *Client) AdminTeams(ctx context.Context) ([]models.Team, error) {
	var out []models.Team
	if err := c.Request(ctx, "/admin/teams", RequestOptions{Admin: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminLogs fetches the backend's log feed.
func (c *Client) AdminLogs(ctx context.Context) ([]models.Log, error) {
	var out []models.Log
	if err := c.Request(ctx, "/admin/logs", RequestOptions{Admin: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
