package tournament

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Gender Gender `json:"gender,omitempty"`
	TeamID string `json:"teamId,omitempty"`
}
