package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
)

// PointsDTO is the points balance with the latest awards.
type PointsDTO struct {
	Total  int        `json:"total"`
	Recent []AwardDTO `json:"recent"`
}

// AwardDTO is one ledger entry.
type AwardDTO struct {
	Reason    string `json:"reason"`
	Amount    int    `json:"amount"`
	AwardedAt string `json:"awarded_at"`
}

const recentAwards = 10

func pointsSummary(ctx context.Context, app *cli.App) (*PointsDTO, error) {
	if app == nil || app.GetPointsHandler == nil {
		return nil, errors.New("points require a configured store")
	}
	ledger, err := app.GetPointsHandler.Handle(ctx, queries.GetPointsQuery{
		UserID: app.CurrentUserID,
		Recent: recentAwards,
	})
	if err != nil {
		return nil, err
	}

	dto := &PointsDTO{Total: ledger.Total, Recent: make([]AwardDTO, 0, len(ledger.Recent))}
	for _, a := range ledger.Recent {
		dto.Recent = append(dto.Recent, AwardDTO{
			Reason:    string(a.Reason),
			Amount:    a.Amount,
			AwardedAt: a.AwardedAt.Format(time.RFC3339),
		})
	}
	return dto, nil
}
