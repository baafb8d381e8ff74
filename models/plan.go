package models

import (
	"encoding/json"
	"time"
)

// PlanRequest is the body of POST /api/itinerary/plan. Start is kept raw so
// that malformed coordinate payloads degrade to "absent" instead of failing
// the whole request.
type PlanRequest struct {
	Start                       json.RawMessage `json:"start,omitempty"`
	StartAt                     string          `json:"startAt,omitempty"`
	AvailableMinutes            int             `json:"availableMinutes,omitempty"`
	Mode                        string          `json:"mode,omitempty"`
	MaxStops                    int             `json:"maxStops,omitempty"`
	DefaultEventDurationMinutes int             `json:"defaultEventDurationMinutes,omitempty"`
	Categories                  []string        `json:"categories,omitempty"`
	City                        string          `json:"city,omitempty"`
	CityOnly                    *bool           `json:"cityOnly,omitempty"`
	UseInterests                bool            `json:"useInterests,omitempty"`
	IncludeUnpublished          bool            `json:"includeUnpublished,omitempty"`
	StrictFilters               *bool           `json:"strictFilters,omitempty"`
}

// PlanStep is one selected stop in the itinerary. Offsets are minutes from
// plan start; the distance is from the previous stop (or the start point for
// the first step) and rounded to two decimals.
type PlanStep struct {
	EventID               string     `json:"eventId"`
	Title                 string     `json:"title"`
	City                  string     `json:"city,omitempty"`
	Category              string     `json:"category,omitempty"`
	Date                  *time.Time `json:"date,omitempty"`
	Time                  string     `json:"time,omitempty"`
	Duration              int        `json:"duration"`
	Price                 *float64   `json:"price,omitempty"`
	MinPrice              *float64   `json:"minPrice,omitempty"`
	DistanceFromPrevKm    float64    `json:"distanceFromPrevKm"`
	TravelFromPrevMinutes int        `json:"travelFromPrevMinutes"`
	ArriveAtMinutes       int        `json:"arriveAtMinutes"`
	DepartAtMinutes       int        `json:"departAtMinutes"`
	Coords                *Coords    `json:"coords"`
}

// Suggestion is a nearest-candidate hint returned when no stop fit at all.
type Suggestion struct {
	EventID                string     `json:"eventId"`
	Title                  string     `json:"title"`
	City                   string     `json:"city,omitempty"`
	Category               string     `json:"category,omitempty"`
	Date                   *time.Time `json:"date,omitempty"`
	Time                   string     `json:"time,omitempty"`
	Duration               int        `json:"duration"`
	DistanceFromStartKm    float64    `json:"distanceFromStartKm"`
	TravelFromStartMinutes int        `json:"travelFromStartMinutes"`
	EstimatedBlockMinutes  int        `json:"estimatedBlockMinutes"`
}

// ParamsUsed echoes the effective planning parameters after defaults and
// profile-derived values were applied.
type ParamsUsed struct {
	Start                       *Coords  `json:"start"`
	StartAt                     string   `json:"startAt,omitempty"`
	AvailableMinutes            int      `json:"availableMinutes"`
	Mode                        string   `json:"mode"`
	MaxStops                    int      `json:"maxStops"`
	DefaultEventDurationMinutes int      `json:"defaultEventDurationMinutes"`
	Categories                  []string `json:"categories"`
	City                        string   `json:"city,omitempty"`
	CityOnly                    bool     `json:"cityOnly"`
	IncludeUnpublished          bool     `json:"includeUnpublished"`
	StrictFilters               bool     `json:"strictFilters"`
}

// PlanDebug explains why a plan came out the way it did: candidate counts,
// the filters applied, fallback activations, and how the walk ended.
type PlanDebug struct {
	TotalCandidates     int            `json:"totalCandidates"`
	WithCoords          int            `json:"withCoords"`
	FiltersApplied      map[string]any `json:"filtersApplied"`
	AllEventsWithCoords int64          `json:"allEventsWithCoords"`
	RelaxedCity         bool           `json:"relaxedCity"`
	RelaxedCategories   bool           `json:"relaxedCategories"`
	StoppedDueToTime    bool           `json:"stoppedDueToTime"`
	ElapsedMinutes      int            `json:"elapsedMinutes"`
	EndTimeMinutes      int            `json:"endTimeMinutes"`
}

type PlanTotals struct {
	Count            int `json:"count"`
	TotalMinutesUsed int `json:"totalMinutesUsed"`
	RemainingMinutes int `json:"remainingMinutes"`
}

// PlanResult is the full response of a planning request. Nothing in it is
// persisted; every plan is recomputed per request.
type PlanResult struct {
	PlanID      string       `json:"planid"`
	ParamsUsed  ParamsUsed   `json:"paramsUsed"`
	Debug       PlanDebug    `json:"debug"`
	Results     PlanTotals   `json:"results"`
	Suggestions []Suggestion `json:"suggestions"`
	Steps       []PlanStep   `json:"steps"`
}
