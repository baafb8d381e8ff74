package models

import "time"

// PlannableEvent is the read-only projection of a catalog event that the
// planner consumes. The catalog layer builds it from stored documents after
// coordinate normalization; an event whose coordinates cannot be normalized
// keeps a nil Coords and is excluded from routing.
type PlannableEvent struct {
	EventID         string            `json:"eventid"`
	Title           string            `json:"title"`
	Category        string            `json:"category,omitempty"`
	Date            time.Time         `json:"date,omitempty"`
	Time            string            `json:"time,omitempty"`
	DurationMinutes int               `json:"duration,omitempty"`
	Location        PlannableLocation `json:"location"`
	Price           *float64          `json:"price,omitempty"`
	MinPrice        *float64          `json:"minPrice,omitempty"`
}

type PlannableLocation struct {
	City   string  `json:"city,omitempty"`
	Coords *Coords `json:"coords,omitempty"`
}

// HasCoords reports whether the event can take part in routing.
func (e PlannableEvent) HasCoords() bool {
	return e.Location.Coords != nil
}
