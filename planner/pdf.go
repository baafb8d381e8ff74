package planner

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/prooook2/smart-tourism/models"
)

// renderPlanPDF lays out the plan as an A4 sheet with a step list and a QR
// code linking to directions over the stop coordinates.
func renderPlanPDF(plan *models.PlanResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Day Itinerary")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Stops: %d    Minutes used: %d    Minutes left: %d",
		plan.Results.Count, plan.Results.TotalMinutesUsed, plan.Results.RemainingMinutes))
	pdf.Ln(12)

	if len(plan.Steps) == 0 {
		pdf.Cell(0, 8, "No reachable events fit the given time budget.")
		pdf.Ln(8)
	}

	for i, step := range plan.Steps {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("%d. %s", i+1, step.Title))
		pdf.Ln(7)

		pdf.SetFont("Arial", "", 11)
		line := fmt.Sprintf("Arrive %s, depart %s  -  %.2f km from previous stop",
			clockOffset(step.ArriveAtMinutes), clockOffset(step.DepartAtMinutes), step.DistanceFromPrevKm)
		if step.City != "" {
			line += "  -  " + step.City
		}
		pdf.Cell(0, 7, line)
		pdf.Ln(9)
	}

	if url := directionsURL(plan); url != "" {
		qrPNG, err := qrcode.Encode(url, qrcode.Medium, 256)
		if err != nil {
			return nil, err
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("route-qr", opts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("route-qr", 155, 15, 40, 40, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// directionsURL builds a maps link over the start point and every stop.
func directionsURL(plan *models.PlanResult) string {
	if len(plan.Steps) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("https://www.google.com/maps/dir/")
	if s := plan.ParamsUsed.Start; s != nil {
		fmt.Fprintf(&sb, "%f,%f/", s.Lat, s.Lng)
	}
	for _, step := range plan.Steps {
		if step.Coords != nil {
			fmt.Fprintf(&sb, "%f,%f/", step.Coords.Lat, step.Coords.Lng)
		}
	}
	return sb.String()
}

func clockOffset(min int) string {
	return fmt.Sprintf("+%dh%02dm", min/60, min%60)
}
