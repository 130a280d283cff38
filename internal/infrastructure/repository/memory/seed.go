package memory

import (
	"time"

	"github.com/matchpulse/matchpulse-api/internal/domain/match"
	"github.com/matchpulse/matchpulse-api/internal/domain/prediction"
)

// SeedMatches backs the in-memory mode used when no database is configured.
func SeedMatches() []match.Record {
	kickoff := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	return []match.Record{
		{
			ExternalID:     "seed-epl-001",
			DataSource:     "seed",
			MatchDate:      kickoff,
			Status:         match.StatusUpcoming,
			League:         "Premier League",
			Sport:          "football",
			HomeTeam:       "Arsenal",
			AwayTeam:       "Liverpool",
			Odds: []match.BookmakerOdds{
				{
					Bookmaker:  "Seed Books",
					LastUpdate: kickoff.Add(-24 * time.Hour),
					Markets: []match.Market{
						{
							Key: "h2h",
							Outcomes: []match.Outcome{
								{Name: "Arsenal", Price: 2.1},
								{Name: "Draw", Price: 3.4},
								{Name: "Liverpool", Price: 3.2},
							},
						},
					},
				},
			},
			Stats:          map[string]any{},
			SourcePriority: 1,
		},
		{
			ExternalID:     "seed-nba-001",
			DataSource:     "seed",
			MatchDate:      kickoff.Add(6 * time.Hour),
			Status:         match.StatusUpcoming,
			League:         "NBA",
			Sport:          "basketball",
			HomeTeam:       "Boston Celtics",
			AwayTeam:       "Denver Nuggets",
			Odds:           []match.BookmakerOdds{},
			Stats:          map[string]any{},
			SourcePriority: 1,
		},
	}
}

func SeedPredictions() []prediction.Prediction {
	created := time.Now().Add(-24 * time.Hour)
	return []prediction.Prediction{
		{
			ID:         "seed-pred-001",
			MatchTitle: "Arsenal vs Liverpool",
			League:     "Premier League",
			MatchDate:  time.Now().Add(48 * time.Hour).Truncate(time.Hour),
			Pick:       "Over 2.5 goals",
			Odds:       1.85,
			Confidence: 72,
			IsPremium:  false,
			Result:     prediction.ResultPending,
			CreatedAt:  created,
			UpdatedAt:  created,
		},
	}
}
