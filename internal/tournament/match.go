package tournament

type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchCompleted MatchStatus = "completed"
)

// Side is one half of a match: a single player or a doubles pairing.
type Side struct {
	PlayerIDs []string `json:"playerIds"`
}

type Match struct {
	ID    string `json:"id"`
	Round int    `json:"round"` // zero-based index of the owning round
	Court int    `json:"court"` // 1..courts

	Team1 Side `json:"team1"`
	Team2 Side `json:"team2"`

	// Scores stay nil until entered; once both are set they sum to the
	// tournament's scoring system.
	Score1 *int `json:"score1"`
	Score2 *int `json:"score2"`

	Status MatchStatus `json:"status"`
}

func (m *Match) Completed() bool {
	return m.Status == MatchCompleted && m.Score1 != nil && m.Score2 != nil
}

func (m *Match) clone() Match {
	c := *m
	c.Team1.PlayerIDs = append([]string(nil), m.Team1.PlayerIDs...)
	c.Team2.PlayerIDs = append([]string(nil), m.Team2.PlayerIDs...)
	if m.Score1 != nil {
		s := *m.Score1
		c.Score1 = &s
	}
	if m.Score2 != nil {
		s := *m.Score2
		c.Score2 = &s
	}
	return c
}
