package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prooook2/smart-tourism/catalog"
	"github.com/prooook2/smart-tourism/globals"
	"github.com/prooook2/smart-tourism/models"
)

type fakeProfiles struct {
	profile *models.UserProfile
}

func (f *fakeProfiles) Profile(context.Context, string) (*models.UserProfile, error) {
	return f.profile, nil
}

func swapSources(t *testing.T, events catalog.EventSource, profiles catalog.ProfileSource) {
	t.Helper()
	prevEvents, prevProfiles := Events, Profiles
	Events, Profiles = events, profiles
	t.Cleanup(func() { Events, Profiles = prevEvents, prevProfiles })
}

func TestPlanItineraryHandler(t *testing.T) {
	swapSources(t, &fakeSource{
		coordsCount: 1,
		pools: func(catalog.Query) []models.PlannableEvent {
			return []models.PlannableEvent{tunisEvent("a", latOffsetKm(tunisCenter, 0.5), 45)}
		},
	}, &fakeProfiles{})

	body := `{"start":{"lat":36.80,"lng":10.18},"availableMinutes":180}`
	r := httptest.NewRequest(http.MethodPost, "/api/itinerary/plan", strings.NewReader(body))
	w := httptest.NewRecorder()

	PlanItinerary(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.PlanResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(result.Steps) != 1 || result.Steps[0].EventID != "a" {
		t.Fatalf("unexpected plan: %+v", result.Steps)
	}
	if result.PlanID == "" {
		t.Error("expected a plan id in the response")
	}
}

func TestPlanItineraryHandlerMissingStart(t *testing.T) {
	swapSources(t, &fakeSource{}, &fakeProfiles{})

	r := httptest.NewRequest(http.MethodPost, "/api/itinerary/plan", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	PlanItinerary(w, r, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a start point, got %d", w.Code)
	}
}

func TestPlanItineraryHandlerBadPayload(t *testing.T) {
	swapSources(t, &fakeSource{}, &fakeProfiles{})

	r := httptest.NewRequest(http.MethodPost, "/api/itinerary/plan", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()

	PlanItinerary(w, r, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed body, got %d", w.Code)
	}
}

func TestPlanItineraryHandlerUsesRequesterProfile(t *testing.T) {
	swapSources(t, &fakeSource{
		pools: func(catalog.Query) []models.PlannableEvent {
			return []models.PlannableEvent{tunisEvent("a", latOffsetKm(tunisCenter, 0.5), 45)}
		},
	}, &fakeProfiles{profile: &models.UserProfile{
		UserID: "u1",
		Coords: &models.Coords{Lat: 36.80, Lng: 10.18},
	}})

	// no explicit start in the body; the stored coords must be used
	r := httptest.NewRequest(http.MethodPost, "/api/itinerary/plan", strings.NewReader(`{}`))
	r = r.WithContext(context.WithValue(r.Context(), globals.UserIDKey, "u1"))
	w := httptest.NewRecorder()

	PlanItinerary(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with profile coords, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPrintPlanHandlerReturnsPDF(t *testing.T) {
	swapSources(t, &fakeSource{
		pools: func(catalog.Query) []models.PlannableEvent {
			return []models.PlannableEvent{tunisEvent("a", latOffsetKm(tunisCenter, 0.5), 45)}
		},
	}, &fakeProfiles{})

	body := `{"start":{"lat":36.80,"lng":10.18}}`
	r := httptest.NewRequest(http.MethodPost, "/api/itinerary/plan/print", strings.NewReader(body))
	w := httptest.NewRecorder()

	PrintPlan(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("response body does not look like a PDF")
	}
}
