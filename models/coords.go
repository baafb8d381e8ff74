package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
)

// Coords is the canonical coordinate pair used everywhere inside the
// planner. Catalog records and request payloads carry coordinates either as
// a {lat,lng} object or as a legacy [lng,lat] array; both shapes are
// normalized into this type at the boundary. Anything malformed or missing
// a component normalizes to nil, never an error.
type Coords struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

type looseCoords struct {
	Lat *float64 `json:"lat" bson:"lat"`
	Lng *float64 `json:"lng" bson:"lng"`
}

// CoordsFromJSON normalizes a raw JSON value into canonical coordinates.
func CoordsFromJSON(raw json.RawMessage) *Coords {
	if len(raw) == 0 {
		return nil
	}
	var obj looseCoords
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Lat != nil && obj.Lng != nil {
		return &Coords{Lat: *obj.Lat, Lng: *obj.Lng}
	}
	var arr []float64
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) == 2 {
		return &Coords{Lat: arr[1], Lng: arr[0]}
	}
	return nil
}

// CoordsFromBSON normalizes a raw BSON value into canonical coordinates.
func CoordsFromBSON(rv bson.RawValue) *Coords {
	switch rv.Type {
	case bson.TypeEmbeddedDocument:
		var obj looseCoords
		if err := rv.Unmarshal(&obj); err == nil && obj.Lat != nil && obj.Lng != nil {
			return &Coords{Lat: *obj.Lat, Lng: *obj.Lng}
		}
	case bson.TypeArray:
		var arr []float64
		if err := rv.Unmarshal(&arr); err == nil && len(arr) == 2 {
			return &Coords{Lat: arr[1], Lng: arr[0]}
		}
	}
	return nil
}
