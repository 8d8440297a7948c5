package tournament

type Round struct {
	ID        string   `json:"id"`
	Number    int      `json:"number"` // 1-based, equals position in Tournament.Rounds
	Matches   []Match  `json:"matches"`
	Completed bool     `json:"completed"`
	Sitting   []string `json:"sitting"` // player ids not assigned to any court
}

// AllMatchesCompleted recomputes the completion state from the matches.
func (r *Round) AllMatchesCompleted() bool {
	for i := range r.Matches {
		if !r.Matches[i].Completed() {
			return false
		}
	}
	return true
}

func (r *Round) clone() Round {
	c := *r
	c.Sitting = append([]string(nil), r.Sitting...)
	c.Matches = make([]Match, len(r.Matches))
	for i := range r.Matches {
		c.Matches[i] = r.Matches[i].clone()
	}
	return c
}
