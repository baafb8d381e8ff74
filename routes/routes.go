package routes

import (
	"github.com/julienschmidt/httprouter"

	"github.com/prooook2/smart-tourism/middleware"
	"github.com/prooook2/smart-tourism/planner"
	"github.com/prooook2/smart-tourism/ratelim"
)

func AddItineraryRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/itinerary/plan", rl.Limit(middleware.OptionalAuth(planner.PlanItinerary)))
	router.POST("/api/itinerary/plan/print", rl.Limit(middleware.OptionalAuth(planner.PrintPlan)))
}
