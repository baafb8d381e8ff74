package planner

import (
	"sort"
	"time"

	"github.com/prooook2/smart-tourism/geo"
	"github.com/prooook2/smart-tourism/models"
	"github.com/prooook2/smart-tourism/utils"
)

// routeBuilder walks a candidate pool greedily: always the nearest
// still-unvisited event next, until the time budget or the stop cap is hit.
// State carries over between fill calls so fallback pools continue the same
// walk instead of restarting it.
type routeBuilder struct {
	current          *models.Coords
	elapsed          int
	speed            float64
	availableMinutes int
	maxStops         int
	defaultDuration  int

	steps            []models.PlanStep
	pickedIDs        map[string]bool
	stoppedDueToTime bool
}

func newRouteBuilder(start *models.Coords, req models.PlanRequest) *routeBuilder {
	return &routeBuilder{
		current:          start,
		speed:            geo.SpeedKmPerMin(req.Mode),
		availableMinutes: req.AvailableMinutes,
		maxStops:         req.MaxStops,
		defaultDuration:  req.DefaultEventDurationMinutes,
		pickedIDs:        make(map[string]bool),
	}
}

func (b *routeBuilder) fill(pool []models.PlannableEvent) {
	remaining := make([]models.PlannableEvent, 0, len(pool))
	for _, e := range pool {
		if !b.pickedIDs[e.EventID] {
			remaining = append(remaining, e)
		}
	}

	for len(b.steps) < b.maxStops && len(remaining) > 0 {
		// re-rank from the current position each round; distance ties
		// break by event date, with undated events sorting earliest
		sort.SliceStable(remaining, func(i, j int) bool {
			di := geo.HaversineKm(b.current, remaining[i].Location.Coords)
			dj := geo.HaversineKm(b.current, remaining[j].Location.Coords)
			if di != dj {
				return di < dj
			}
			return remaining[i].Date.Before(remaining[j].Date)
		})

		next := remaining[0]
		remaining = remaining[1:]

		distanceKm := geo.HaversineKm(b.current, next.Location.Coords)
		travelMin := geo.TravelMinutes(distanceKm, b.speed)
		duration := next.DurationMinutes
		if duration <= 0 {
			duration = b.defaultDuration
		}
		blockMin := travelMin + duration

		// the first infeasible block ends the walk entirely: with a
		// nearest-first order, every later candidate only costs more
		if b.elapsed+blockMin > b.availableMinutes {
			b.stoppedDueToTime = true
			break
		}

		b.steps = append(b.steps, models.PlanStep{
			EventID:               next.EventID,
			Title:                 next.Title,
			City:                  next.Location.City,
			Category:              next.Category,
			Date:                  dateOrNil(next.Date),
			Time:                  next.Time,
			Duration:              duration,
			Price:                 next.Price,
			MinPrice:              next.MinPrice,
			DistanceFromPrevKm:    utils.Round2(distanceKm),
			TravelFromPrevMinutes: travelMin,
			ArriveAtMinutes:       b.elapsed + travelMin,
			DepartAtMinutes:       b.elapsed + blockMin,
			Coords:                next.Location.Coords,
		})
		b.elapsed += blockMin
		b.current = next.Location.Coords
		b.pickedIDs[next.EventID] = true
	}
}

func dateOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
