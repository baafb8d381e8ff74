package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prooook2/smart-tourism/db"
	"github.com/prooook2/smart-tourism/models"
	"github.com/prooook2/smart-tourism/utils"
)

// Mongo serves the catalog contract from the marketplace's events and users
// collections.
type Mongo struct{}

var _ EventSource = Mongo{}
var _ ProfileSource = Mongo{}

// Coordinates are decoded as raw BSON so legacy [lng,lat] array records can
// be normalized alongside {lat,lng} documents.
type rawLocation struct {
	City   string        `bson:"city"`
	Coords bson.RawValue `bson:"coords"`
}

type rawEvent struct {
	EventID  string      `bson:"eventid"`
	Title    string      `bson:"title"`
	Category string      `bson:"category"`
	Date     time.Time   `bson:"date"`
	Time     string      `bson:"time"`
	Duration int         `bson:"duration"`
	Location rawLocation `bson:"location"`
	Price    *float64    `bson:"price"`
	MinPrice *float64    `bson:"minPrice"`
}

func (Mongo) FindPlannable(ctx context.Context, q Query) ([]models.PlannableEvent, error) {
	opts := options.Find().SetProjection(bson.M{
		"eventid":  1,
		"title":    1,
		"category": 1,
		"date":     1,
		"time":     1,
		"duration": 1,
		"location": 1,
		"price":    1,
		"minPrice": 1,
	})

	raw, err := utils.FindAndDecode[rawEvent](ctx, db.EventsCollection, q.Filter(), opts)
	if err != nil {
		return nil, err
	}

	out := make([]models.PlannableEvent, 0, len(raw))
	for _, e := range raw {
		out = append(out, models.PlannableEvent{
			EventID:         e.EventID,
			Title:           e.Title,
			Category:        e.Category,
			Date:            e.Date,
			Time:            e.Time,
			DurationMinutes: e.Duration,
			Location: models.PlannableLocation{
				City:   e.Location.City,
				Coords: models.CoordsFromBSON(e.Location.Coords),
			},
			Price:    e.Price,
			MinPrice: e.MinPrice,
		})
	}
	return out, nil
}

func (Mongo) CountWithCoords(ctx context.Context, includeUnpublished bool) (int64, error) {
	filter := bson.M{
		"location.coords.lat": bson.M{"$ne": nil},
		"location.coords.lng": bson.M{"$ne": nil},
	}
	if !includeUnpublished {
		filter["published"] = true
	}
	return db.EventsCollection.CountDocuments(ctx, filter)
}

type rawUser struct {
	UserID    string        `bson:"userid"`
	City      string        `bson:"city"`
	Coords    bson.RawValue `bson:"coords"`
	Interests []string      `bson:"interests"`
}

// Profile returns nil without error when the user does not exist; planning
// then simply proceeds without profile-derived defaults.
func (Mongo) Profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	opts := options.FindOne().SetProjection(bson.M{
		"userid":    1,
		"city":      1,
		"coords":    1,
		"interests": 1,
	})

	var u rawUser
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}, opts).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &models.UserProfile{
		UserID:    u.UserID,
		City:      u.City,
		Coords:    models.CoordsFromBSON(u.Coords),
		Interests: u.Interests,
	}, nil
}
