package tournament

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

type Format string

const (
	Americano      Format = "americano"
	MixedAmericano Format = "mixedAmericano"
	TeamAmericano  Format = "teamAmericano"
	Mexicano       Format = "mexicano"
	TeamMexicano   Format = "teamMexicano"
)

// IsTeamFormat reports whether matches are played by fixed two-player teams.
func (f Format) IsTeamFormat() bool {
	return f == TeamAmericano || f == TeamMexicano
}

// IsAmericanoFamily reports whether the format pre-generates its rounds in
// fixed mode (as opposed to the standings-driven Mexicano formats).
func (f Format) IsAmericanoFamily() bool {
	return f == Americano || f == MixedAmericano || f == TeamAmericano
}

// ScoringSystem is the fixed number of points the two sides of a match split.
type ScoringSystem int

const (
	Scoring16 ScoringSystem = 16
	Scoring21 ScoringSystem = 21
	Scoring24 ScoringSystem = 24
	Scoring32 ScoringSystem = 32
)

type RoundMode string

const (
	RoundsFixed     RoundMode = "fixed"
	RoundsUnlimited RoundMode = "unlimited"
)

type RankingStrategy string

const (
	RankByPoints RankingStrategy = "points"
	RankByWins   RankingStrategy = "wins"
)

// Tournament is the aggregate root. It is only ever mutated through the
// transition functions in internal/service, each of which works on a deep
// copy and returns a new snapshot.
type Tournament struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Format          Format          `json:"format"`
	ScoringSystem   ScoringSystem   `json:"scoringSystem"`
	Players         []Player        `json:"players"`
	Teams           []Team          `json:"teams"`
	Courts          int             `json:"courts"`
	Rounds          []Round         `json:"rounds"`
	CurrentRound    int             `json:"currentRound"`
	RoundMode       RoundMode       `json:"roundMode"`
	TotalRounds     *int            `json:"totalRounds"`
	RankingStrategy RankingStrategy `json:"rankingStrategy"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Current returns the round the CurrentRound pointer addresses, or nil if the
// tournament has no rounds.
func (t *Tournament) Current() *Round {
	if t.CurrentRound < 1 || t.CurrentRound > len(t.Rounds) {
		return nil
	}
	return &t.Rounds[t.CurrentRound-1]
}

// FindMatch locates a match by id across all rounds. The second return value
// is the index of the owning round.
func (t *Tournament) FindMatch(matchID string) (*Match, int) {
	for ri := range t.Rounds {
		for mi := range t.Rounds[ri].Matches {
			if t.Rounds[ri].Matches[mi].ID == matchID {
				return &t.Rounds[ri].Matches[mi], ri
			}
		}
	}
	return nil, -1
}

// Clone returns a deep copy of the tournament. Nested slices and nullable
// scores are copied so transitions never alias the input snapshot.
func (t *Tournament) Clone() *Tournament {
	c := *t
	c.Players = append([]Player(nil), t.Players...)
	c.Teams = make([]Team, len(t.Teams))
	for i, team := range t.Teams {
		c.Teams[i] = team
		c.Teams[i].PlayerIDs = append([]string(nil), team.PlayerIDs...)
	}
	if t.TotalRounds != nil {
		total := *t.TotalRounds
		c.TotalRounds = &total
	}
	c.Rounds = make([]Round, len(t.Rounds))
	for i, round := range t.Rounds {
		c.Rounds[i] = round.clone()
	}
	return &c
}
