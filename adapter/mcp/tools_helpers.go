package mcp

import (
	"errors"
	"math"
	"time"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
)

const dateLayout = "2006-01-02"

var errNoInsights = errors.New("insights require a configured store")

func requireInsights(app *cli.App) error {
	if app == nil || app.InsightsService == nil {
		return errNoInsights
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
