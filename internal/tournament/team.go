package tournament

// Team is a fixed pairing of exactly two players for the team formats.
type Team struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	PlayerIDs []string `json:"playerIds"`
}
