package planner

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/prooook2/smart-tourism/catalog"
	"github.com/prooook2/smart-tourism/globals"
	"github.com/prooook2/smart-tourism/models"
	"github.com/prooook2/smart-tourism/utils"
)

// Catalog wiring; swapped for fakes in tests.
var (
	Events   catalog.EventSource   = catalog.Mongo{}
	Profiles catalog.ProfileSource = catalog.Mongo{}
)

// POST /api/itinerary/plan
func PlanItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	req, ok := decodePlanRequest(w, r)
	if !ok {
		return
	}

	result, err := BuildPlan(ctx, Events, requesterProfile(ctx), req)
	if err != nil {
		respondPlanError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// POST /api/itinerary/plan/print
// Computes the same plan and streams it as a PDF attachment.
func PrintPlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	req, ok := decodePlanRequest(w, r)
	if !ok {
		return
	}

	result, err := BuildPlan(ctx, Events, requesterProfile(ctx), req)
	if err != nil {
		respondPlanError(w, err)
		return
	}

	pdfBytes, err := renderPlanPDF(result)
	if err != nil {
		log.Println("plan PDF error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=itinerary-"+result.PlanID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

// decodePlanRequest tolerates an empty body; all fields then take defaults.
func decodePlanRequest(w http.ResponseWriter, r *http.Request) (models.PlanRequest, bool) {
	var req models.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return req, false
	}
	return req, true
}

func respondPlanError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrStartRequired) {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Println("planItinerary error:", err)
	utils.RespondWithError(w, http.StatusInternalServerError, "Failed to plan itinerary")
}

// requesterProfile loads the stored profile for an authenticated requester.
// Anonymous requests, unknown users, and lookup failures all plan without
// profile-derived defaults.
func requesterProfile(ctx context.Context) *models.UserProfile {
	userID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		return nil
	}
	profile, err := Profiles.Profile(ctx, userID)
	if err != nil {
		log.Println("profile lookup error:", err)
		return nil
	}
	return profile
}
