// Package share implements the lossy export of finished tournaments to a
// compact URL-safe string. Sitting lists are not part of the payload, so bye
// points are not recoverable from a decoded tournament.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mzaleski/padel-mixer/internal/tournament"
)

type payload struct {
	Name    string          `json:"n"`
	Format  string          `json:"f"`
	Scoring int             `json:"s"`
	Players []payloadPlayer `json:"p"`
	Teams   []payloadTeam   `json:"t"`
	Rounds  []payloadRound  `json:"r"`
	Created time.Time       `json:"d"`
}

type payloadPlayer struct {
	ID   string `json:"i"`
	Name string `json:"n"`
}

type payloadTeam struct {
	ID        string   `json:"i"`
	Name      string   `json:"n"`
	PlayerIDs []string `json:"p"`
}

type payloadRound struct {
	Number  int            `json:"n"`
	Matches []payloadMatch `json:"m"`
}

type payloadMatch struct {
	Court  int      `json:"c"`
	Team1  []string `json:"t1"`
	Team2  []string `json:"t2"`
	Score1 *int     `json:"s1"`
	Score2 *int     `json:"s2"`
}

// Encode packs the shareable subset of a tournament into a base64url string.
func Encode(t *tournament.Tournament) (string, error) {
	p := payload{
		Name:    t.Name,
		Format:  string(t.Format),
		Scoring: int(t.ScoringSystem),
		Players: make([]payloadPlayer, len(t.Players)),
		Teams:   make([]payloadTeam, len(t.Teams)),
		Rounds:  make([]payloadRound, len(t.Rounds)),
		Created: t.CreatedAt,
	}
	for i, player := range t.Players {
		p.Players[i] = payloadPlayer{ID: player.ID, Name: player.Name}
	}
	for i, team := range t.Teams {
		p.Teams[i] = payloadTeam{ID: team.ID, Name: team.Name, PlayerIDs: team.PlayerIDs}
	}
	for i, round := range t.Rounds {
		pr := payloadRound{Number: round.Number, Matches: make([]payloadMatch, len(round.Matches))}
		for j, match := range round.Matches {
			pr.Matches[j] = payloadMatch{
				Court:  match.Court,
				Team1:  match.Team1.PlayerIDs,
				Team2:  match.Team2.PlayerIDs,
				Score1: match.Score1,
				Score2: match.Score2,
			}
		}
		p.Rounds[i] = pr
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode share payload: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode reconstructs a read-only tournament from an encoded payload. A
// malformed payload yields an error and no tournament, never a partial one.
// Decoded rounds have empty sitting lists; the scoring engine still runs
// against the result, it just cannot award bye points.
func Decode(encoded string) (*tournament.Tournament, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode share data: %w", err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode share data: %w", err)
	}

	t := &tournament.Tournament{
		ID:              fmt.Sprintf("shared_%d", time.Now().UnixMilli()),
		Name:            p.Name,
		Format:          tournament.Format(p.Format),
		ScoringSystem:   tournament.ScoringSystem(p.Scoring),
		Players:         make([]tournament.Player, len(p.Players)),
		Teams:           make([]tournament.Team, len(p.Teams)),
		Courts:          1,
		Rounds:          make([]tournament.Round, len(p.Rounds)),
		CurrentRound:    len(p.Rounds),
		RoundMode:       tournament.RoundsFixed,
		RankingStrategy: tournament.RankByPoints,
		Status:          tournament.StatusFinished,
		CreatedAt:       p.Created,
		UpdatedAt:       time.Now().UTC(),
	}
	for i, player := range p.Players {
		t.Players[i] = tournament.Player{ID: player.ID, Name: player.Name}
	}
	for i, team := range p.Teams {
		t.Teams[i] = tournament.Team{ID: team.ID, Name: team.Name, PlayerIDs: team.PlayerIDs}
	}

	for ri, round := range p.Rounds {
		r := tournament.Round{
			ID:      fmt.Sprintf("shared_round_%d", ri),
			Number:  round.Number,
			Matches: make([]tournament.Match, len(round.Matches)),
			Sitting: []string{},
		}
		completed := true
		for mi, match := range round.Matches {
			status := tournament.MatchUpcoming
			if match.Score1 != nil && match.Score2 != nil {
				status = tournament.MatchCompleted
			} else {
				completed = false
			}
			if match.Court > t.Courts {
				t.Courts = match.Court
			}
			r.Matches[mi] = tournament.Match{
				ID:     fmt.Sprintf("shared_match_%d_%d", ri, mi),
				Round:  ri,
				Court:  match.Court,
				Team1:  tournament.Side{PlayerIDs: match.Team1},
				Team2:  tournament.Side{PlayerIDs: match.Team2},
				Score1: match.Score1,
				Score2: match.Score2,
				Status: status,
			}
		}
		r.Completed = completed && len(round.Matches) > 0
		t.Rounds[ri] = r
	}

	return t, nil
}
