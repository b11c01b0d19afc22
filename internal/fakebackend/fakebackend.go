// Package fakebackend is an in-process stand-in for the contest
// backend, used by tests. It implements the documented HTTP routes
// plus the leaderboard socket with just enough behavior to exercise
// the client.
package fakebackend

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"

	"github.com/minetheflag/mtf/models"
)

const (
	password      = "secret"
	adminPassword = "op-secret"
	correctFlag   = "FLAG{correct}"
	signingKey    = "fakebackend"
)

// Backend holds the fixture's mutable state. All handlers are
// serialized through mu; tests may mutate the exported fields before
// serving traffic.
type Backend struct {
	mu sync.Mutex

	Members  []models.Member
	Teams    []models.Team
	Solved   []int
	Logs     []models.Log
	Standing []models.LeaderboardEntry

	auth  map[string]string // path -> last Authorization header seen
	calls map[string]int    // path -> request count

	wsMu      sync.Mutex
	wsClients []*websocket.Conn
	Pings     chan string // first text frame of each socket client
}

func New() *Backend {
	return &Backend{
		auth:  make(map[string]string),
		calls: make(map[string]int),
		Pings: make(chan string, 8),
	}
}

// Token mints a token whose subject is usn, signed with the fixture
// key. The client never verifies signatures, so any well-formed token
// works.
func Token(usn string) string {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": usn})
	signed, err := t.SignedString([]byte(signingKey))
	if err != nil {
		panic(err)
	}
	return signed
}

// LastAuth reports the Authorization header of the last request to
// path.
func (b *Backend) LastAuth(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.auth[path]
}

// Calls reports how many requests path has received.
func (b *Backend) Calls(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

// Router builds the backend's route table.
func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)

	r.Post("/member/token", b.memberToken)
	r.Post("/member/register", b.memberRegister)
	r.Get("/members", b.listMembers)
	r.Get("/team/{teamID}", b.getTeam)
	r.Get("/team/{teamID}/members", b.getTeamMembers)
	r.Post("/team/create", b.createTeam)
	r.Post("/team/join", b.joinTeam)
	r.Get("/teams", b.listTeams)
	r.Get("/leaderboard", b.getLeaderboard)
	r.Post("/team/solved", b.getSolved)
	r.Post("/submit", b.submit)
	r.Post("/admin/login", b.adminLogin)
	r.Get("/admin/teams", b.adminOnly(b.listTeams))
	r.Get("/admin/logs", b.adminOnly(b.adminLogs))
	r.Get("/ws/leaderboard", b.serveWS)

	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.auth[r.URL.Path] = r.Header.Get("Authorization")
		b.calls[r.URL.Path]++
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) memberToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		detail(w, http.StatusBadRequest, "malformed form body")
		return
	}
	usn := r.PostFormValue("username")
	if usn == "" || r.PostFormValue("password") != password {
		detail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, map[string]string{"access_token": Token(usn)})
}

func (b *Backend) memberRegister(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		USN      string `json:"usn"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.USN == "" {
		detail(w, http.StatusBadRequest, "invalid registration payload")
		return
	}
	b.mu.Lock()
	b.Members = append(b.Members, models.Member{ID: len(b.Members) + 1, Name: in.Name, USN: in.USN})
	b.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) listMembers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, b.Members)
}

func (b *Backend) getTeam(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "teamID"))
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.Teams {
		if t.ID == id {
			writeJSON(w, t)
			return
		}
	}
	detail(w, http.StatusNotFound, "team not found")
}

func (b *Backend) getTeamMembers(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "teamID"))
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []models.Member
	for _, m := range b.Members {
		if m.TeamID != nil && *m.TeamID == id {
			out = append(out, m)
		}
	}
	writeJSON(w, out)
}

func (b *Backend) createTeam(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TeamName string `json:"team_name"`
		USNLead  string `json:"usn_lead"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusBadRequest, "invalid team payload")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.Teams {
		if t.TeamName == in.TeamName {
			// Collisions come back inside a 200 body.
			writeJSON(w, models.TeamCreateOut{TeamID: -1, TeamName: in.TeamName})
			return
		}
	}
	team := models.Team{ID: len(b.Teams) + 1, TeamName: in.TeamName, USNLead: in.USNLead, Active: true}
	b.Teams = append(b.Teams, team)
	for i := range b.Members {
		if b.Members[i].USN == in.USNLead {
			id := team.ID
			b.Members[i].TeamID = &id
		}
	}
	writeJSON(w, models.TeamCreateOut{TeamID: team.ID, TeamName: team.TeamName})
}

func (b *Backend) joinTeam(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TeamName string `json:"team_name"`
		USN      string `json:"usn"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusBadRequest, "invalid join payload")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.Teams {
		if t.TeamName == in.TeamName {
			for i := range b.Members {
				if b.Members[i].USN == in.USN {
					id := t.ID
					b.Members[i].TeamID = &id
				}
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	detail(w, http.StatusNotFound, "team not found")
}

func (b *Backend) listTeams(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, b.Teams)
}

func (b *Backend) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, b.Standing)
}

func (b *Backend) getSolved(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, map[string]any{"ok": true, "x": b.Solved})
}

func (b *Backend) submit(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ProblemID int    `json:"problem_id"`
		Flag      string `json:"flag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusBadRequest, "invalid submission payload")
		return
	}
	if in.Flag == correctFlag {
		writeJSON(w, models.SubmitResult{OK: true})
		return
	}
	writeJSON(w, models.SubmitResult{OK: false, Reason: "wrong flag"})
}

func (b *Backend) adminLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Password != adminPassword {
		detail(w, http.StatusUnauthorized, "ACCESS DENIED")
		return
	}
	writeJSON(w, map[string]string{"access_token": Token("admin:" + in.Username)})
}

func (b *Backend) adminLogs(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, b.Logs)
}

func (b *Backend) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			detail(w, http.StatusUnauthorized, "admin token required")
			return
		}
		next(w, r)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (b *Backend) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	b.wsMu.Lock()
	b.wsClients = append(b.wsClients, conn)
	b.wsMu.Unlock()

	go func() {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			select {
			case b.Pings <- string(msg):
			default:
			}
		}
	}()
}

// Push broadcasts one frame to every connected socket client.
func (b *Backend) Push(frame any) error {
	raw, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	b.wsMu.Lock()
	defer b.wsMu.Unlock()
	for _, conn := range b.wsClients {
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			return err
		}
	}
	return nil
}

// CloseClients drops every connected socket client.
func (b *Backend) CloseClients() {
	b.wsMu.Lock()
	defer b.wsMu.Unlock()
	for _, conn := range b.wsClients {
		conn.Close()
	}
	b.wsClients = nil
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func detail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": message})
}
