package models

// Member is a registered participant. The backend owns the record;
// the client only reads it.
type Member struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	USN    string `json:"usn"`
	TeamID *int   `json:"team_id,omitempty"`
}

// Team is mutated only through backend calls; the client never
// computes scores.
type Team struct {
	ID       int    `json:"id"`
	TeamName string `json:"team_name"`
	USNLead  string `json:"usn_lead"`
	Score    int    `json:"score"`
	Active   bool   `json:"active"`
}

// TeamCreateOut is the response of /team/create. TeamID == -1 signals
// a name collision inside a successful HTTP response.
type TeamCreateOut struct {
	TeamID   int    `json:"team_id"`
	TeamName string `json:"team_name"`
}

// LeaderboardEntry is a read-only projection of Team, ordered by the
// backend.
type LeaderboardEntry struct {
	TeamName string `json:"team_name"`
	Score    int    `json:"score"`
	Active   bool   `json:"active"`
}

// SubmitResult is transient: shown once per flag submission, never
// persisted.
type SubmitResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// Log is an admin console log line.
type Log struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Data      string `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}
