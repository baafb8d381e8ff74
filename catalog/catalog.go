package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/prooook2/smart-tourism/models"
)

// Query is the candidate-catalog filter contract. Zero values mean "no
// filter" for each criterion; the planner builds progressively more
// permissive queries from it when fallback staging kicks in.
type Query struct {
	PublishedOnly bool
	City          string
	Categories    []string
	DayStart      time.Time
	DayEnd        time.Time
}

// Filter renders the query as a Mongo filter. The same document is echoed
// in the plan debug output so callers can see exactly what was applied.
func (q Query) Filter() bson.M {
	filter := bson.M{}
	if q.PublishedOnly {
		filter["published"] = true
	}
	if q.City != "" {
		filter["location.city"] = q.City
	}
	if len(q.Categories) > 0 {
		filter["category"] = bson.M{"$in": q.Categories}
	}
	if !q.DayStart.IsZero() {
		filter["date"] = bson.M{"$gte": q.DayStart, "$lte": q.DayEnd}
	}
	return filter
}

// EventSource is the event-catalog side of the planner's repository
// contract. Implementations return projected events with coordinates
// already normalized; events without usable coordinates still come back and
// are post-filtered by the planner.
type EventSource interface {
	FindPlannable(ctx context.Context, q Query) ([]models.PlannableEvent, error)
	CountWithCoords(ctx context.Context, includeUnpublished bool) (int64, error)
}

// ProfileSource looks up the requester's stored coords, city, and interests.
type ProfileSource interface {
	Profile(ctx context.Context, userID string) (*models.UserProfile, error)
}
