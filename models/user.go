package models

// UserProfile is the slice of a stored user the planner cares about: where
// they live and what they like. Passed explicitly into planning rather than
// read from any ambient session state.
type UserProfile struct {
	UserID    string   `json:"userid"`
	City      string   `json:"city,omitempty"`
	Coords    *Coords  `json:"coords,omitempty"`
	Interests []string `json:"interests,omitempty"`
}
