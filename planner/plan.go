package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/prooook2/smart-tourism/catalog"
	"github.com/prooook2/smart-tourism/geo"
	"github.com/prooook2/smart-tourism/models"
	"github.com/prooook2/smart-tourism/rdx"
	"github.com/prooook2/smart-tourism/utils"
)

// ErrStartRequired is returned when neither the request nor the requester
// profile yields a usable starting point.
var ErrStartRequired = errors.New("start location required: provide {start:{lat,lng}} or set profile coords")

const (
	defaultAvailableMinutes = 240
	defaultMaxStops         = 6
	defaultEventDuration    = 90
	defaultMode             = "walking"

	coordsCountTTL = 60 * time.Second
)

func applyDefaults(req *models.PlanRequest) {
	if req.AvailableMinutes <= 0 {
		req.AvailableMinutes = defaultAvailableMinutes
	}
	if req.MaxStops <= 0 {
		req.MaxStops = defaultMaxStops
	}
	if req.DefaultEventDurationMinutes <= 0 {
		req.DefaultEventDurationMinutes = defaultEventDuration
	}
	if req.Mode == "" {
		req.Mode = defaultMode
	}
	if req.CityOnly == nil {
		v := true
		req.CityOnly = &v
	}
	if req.StrictFilters == nil {
		v := true
		req.StrictFilters = &v
	}
}

// effectiveCategories prefers the explicit list, then the requester's stored
// interests when opted in, else no category filter at all.
func effectiveCategories(req models.PlanRequest, profile *models.UserProfile) []string {
	if len(req.Categories) > 0 {
		return req.Categories
	}
	if req.UseInterests && profile != nil && len(profile.Interests) > 0 {
		return profile.Interests
	}
	return []string{}
}

// resolveCity picks the city filter. With cityOnly set, the explicit city
// wins over the profile city; an explicit city pins the filter even when
// cityOnly is off.
func resolveCity(req models.PlanRequest, profile *models.UserProfile) string {
	if *req.CityOnly {
		if req.City != "" {
			return req.City
		}
		if profile != nil && profile.City != "" {
			return profile.City
		}
	}
	return req.City
}

// parseStartAt resolves the local calendar-day window for a startAt value.
// A malformed date skips the date filter instead of failing the request.
func parseStartAt(s string) (time.Time, time.Time, bool) {
	if s == "" {
		return time.Time{}, time.Time{}, false
	}

	var d time.Time
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		d, err = time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	dayStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local)
	dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)
	return dayStart, dayEnd, true
}

func filterWithCoords(events []models.PlannableEvent, exclude map[string]bool) []models.PlannableEvent {
	out := make([]models.PlannableEvent, 0, len(events))
	for _, e := range events {
		if e.HasCoords() && !exclude[e.EventID] {
			out = append(out, e)
		}
	}
	return out
}

func nearestSuggestions(start *models.Coords, pool []models.PlannableEvent, speed float64, defaultDuration, limit int) []models.Suggestion {
	ranked := make([]models.PlannableEvent, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		return geo.HaversineKm(start, ranked[i].Location.Coords) < geo.HaversineKm(start, ranked[j].Location.Coords)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]models.Suggestion, 0, len(ranked))
	for _, e := range ranked {
		d := geo.HaversineKm(start, e.Location.Coords)
		t := geo.TravelMinutes(d, speed)
		dur := e.DurationMinutes
		if dur <= 0 {
			dur = defaultDuration
		}
		out = append(out, models.Suggestion{
			EventID:                e.EventID,
			Title:                  e.Title,
			City:                   e.Location.City,
			Category:               e.Category,
			Date:                   dateOrNil(e.Date),
			Time:                   e.Time,
			Duration:               dur,
			DistanceFromStartKm:    utils.Round2(d),
			TravelFromStartMinutes: t,
			EstimatedBlockMinutes:  t + dur,
		})
	}
	return out
}

func countAllWithCoords(ctx context.Context, src catalog.EventSource, includeUnpublished bool) (int64, error) {
	key := fmt.Sprintf("itinerary:coordscount:%t", includeUnpublished)
	return rdx.CachedCount(ctx, key, coordsCountTTL, func() (int64, error) {
		return src.CountWithCoords(ctx, includeUnpublished)
	})
}

// BuildPlan runs the full planning pipeline: resolve the start point, query
// the base candidate pool, walk it greedily, relax filters if allowed and
// needed, and assemble the result with diagnostics. It is read-only and
// deterministic for a fixed catalog snapshot and request.
func BuildPlan(ctx context.Context, src catalog.EventSource, profile *models.UserProfile, req models.PlanRequest) (*models.PlanResult, error) {
	applyDefaults(&req)

	start := models.CoordsFromJSON(req.Start)
	if start == nil && profile != nil {
		start = profile.Coords
	}
	if start == nil {
		return nil, ErrStartRequired
	}

	speed := geo.SpeedKmPerMin(req.Mode)
	categories := effectiveCategories(req, profile)
	cityFilter := resolveCity(req, profile)
	dayStart, dayEnd, hasDay := parseStartAt(req.StartAt)

	base := catalog.Query{
		PublishedOnly: !req.IncludeUnpublished,
		City:          cityFilter,
		Categories:    categories,
	}
	if hasDay {
		base.DayStart, base.DayEnd = dayStart, dayEnd
	}

	log.Printf("[Itinerary] Filters: %v", base.Filter())
	candidates, err := src.FindPlannable(ctx, base)
	if err != nil {
		return nil, err
	}
	log.Printf("[Itinerary] Found %d candidates matching filters", len(candidates))

	// coordinate presence is always checked here, never delegated to the
	// repository
	withCoords := filterWithCoords(candidates, nil)
	log.Printf("[Itinerary] %d events have coordinates", len(withCoords))

	builder := newRouteBuilder(start, req)
	builder.fill(withCoords)

	relaxedCity := false
	if !*req.StrictFilters && len(builder.steps) < req.MaxStops && cityFilter != "" {
		relaxedCity = true
		log.Printf("[Itinerary] Fallback: relaxing city filter (had %d/%d)", len(builder.steps), req.MaxStops)
		relaxed := base
		relaxed.City = ""
		extra, err := src.FindPlannable(ctx, relaxed)
		if err != nil {
			return nil, err
		}
		builder.fill(filterWithCoords(extra, builder.pickedIDs))
	}

	relaxedCategories := false
	if !*req.StrictFilters && len(builder.steps) < req.MaxStops && len(categories) > 0 {
		relaxedCategories = true
		log.Printf("[Itinerary] Fallback: relaxing categories (had %d/%d)", len(builder.steps), req.MaxStops)
		relaxed := base
		relaxed.City = ""
		relaxed.Categories = nil
		extra, err := src.FindPlannable(ctx, relaxed)
		if err != nil {
			return nil, err
		}
		builder.fill(filterWithCoords(extra, builder.pickedIDs))
	}

	suggestions := []models.Suggestion{}
	if len(builder.steps) == 0 && len(withCoords) > 0 {
		suggestions = nearestSuggestions(start, withCoords, speed, req.DefaultEventDurationMinutes, 3)
	}

	allWithCoords, err := countAllWithCoords(ctx, src, req.IncludeUnpublished)
	if err != nil {
		return nil, err
	}

	steps := builder.steps
	if steps == nil {
		steps = []models.PlanStep{}
	}

	remaining := req.AvailableMinutes - builder.elapsed
	if remaining < 0 {
		remaining = 0
	}

	return &models.PlanResult{
		PlanID: utils.GetUUID(),
		ParamsUsed: models.ParamsUsed{
			Start:                       start,
			StartAt:                     req.StartAt,
			AvailableMinutes:            req.AvailableMinutes,
			Mode:                        req.Mode,
			MaxStops:                    req.MaxStops,
			DefaultEventDurationMinutes: req.DefaultEventDurationMinutes,
			Categories:                  categories,
			City:                        cityFilter,
			CityOnly:                    *req.CityOnly,
			IncludeUnpublished:          req.IncludeUnpublished,
			StrictFilters:               *req.StrictFilters,
		},
		Debug: models.PlanDebug{
			TotalCandidates:     len(candidates),
			WithCoords:          len(withCoords),
			FiltersApplied:      map[string]any(base.Filter()),
			AllEventsWithCoords: allWithCoords,
			RelaxedCity:         relaxedCity,
			RelaxedCategories:   relaxedCategories,
			StoppedDueToTime:    builder.stoppedDueToTime,
			ElapsedMinutes:      builder.elapsed,
			EndTimeMinutes:      req.AvailableMinutes,
		},
		Results: models.PlanTotals{
			Count:            len(steps),
			TotalMinutesUsed: builder.elapsed,
			RemainingMinutes: remaining,
		},
		Suggestions: suggestions,
		Steps:       steps,
	}, nil
}
