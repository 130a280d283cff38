package oddsapi

import (
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/matchpulse/matchpulse-api/internal/domain/league"
	"github.com/matchpulse/matchpulse-api/internal/domain/match"
)

// DataSource tags every record this provider produces; combined with the
// provider event id it forms the store's uniqueness key.
const DataSource = "odds-api"

// SourcePriority ranks this provider when several feed the same store.
const SourcePriority = 1

// ErrEventInvalid marks a provider event missing a required field. The caller
// skips that event and keeps normalizing its siblings.
var ErrEventInvalid = crerr.New("provider event is missing required fields")

// NormalizeEvent maps one provider event to a canonical match record. It is
// pure: no I/O, no mutation of the input, deterministic for a fixed now.
func NormalizeEvent(ev Event, leagueCode string, now time.Time) (match.Record, error) {
	if strings.TrimSpace(ev.ID) == "" {
		return match.Record{}, fmt.Errorf("%w: event id", ErrEventInvalid)
	}
	if ev.CommenceTime.IsZero() {
		return match.Record{}, fmt.Errorf("%w: commence time (event=%s)", ErrEventInvalid, ev.ID)
	}
	if strings.TrimSpace(ev.HomeTeam) == "" || strings.TrimSpace(ev.AwayTeam) == "" {
		return match.Record{}, fmt.Errorf("%w: team names (event=%s)", ErrEventInvalid, ev.ID)
	}

	sport, err := league.SportForCode(leagueCode)
	if err != nil {
		return match.Record{}, fmt.Errorf("resolve sport for event=%s: %w", ev.ID, err)
	}

	return match.Record{
		ExternalID:     strings.TrimSpace(ev.ID),
		DataSource:     DataSource,
		MatchDate:      ev.CommenceTime,
		Status:         match.DeriveStatus(ev.CommenceTime, now),
		League:         league.DisplayName(leagueCode),
		Sport:          sport,
		HomeTeam:       strings.TrimSpace(ev.HomeTeam),
		AwayTeam:       strings.TrimSpace(ev.AwayTeam),
		Odds:           normalizeOdds(ev.Bookmakers),
		Stats:          map[string]any{},
		SourcePriority: SourcePriority,
	}, nil
}

// normalizeOdds preserves bookmaker order and drops only what is malformed:
// unnamed bookmakers, keyless markets, and outcomes without a name or price.
func normalizeOdds(bookmakers []Bookmaker) []match.BookmakerOdds {
	out := make([]match.BookmakerOdds, 0, len(bookmakers))
	for _, bk := range bookmakers {
		title := strings.TrimSpace(bk.Title)
		if title == "" {
			title = strings.TrimSpace(bk.Key)
		}
		if title == "" {
			continue
		}

		bundle := match.BookmakerOdds{
			Bookmaker:  title,
			LastUpdate: bk.LastUpdate,
			Markets:    make([]match.Market, 0, len(bk.Markets)),
		}
		for _, m := range bk.Markets {
			key := strings.TrimSpace(m.Key)
			if key == "" {
				continue
			}
			mkt := match.Market{
				Key:      key,
				Outcomes: make([]match.Outcome, 0, len(m.Outcomes)),
			}
			for _, o := range m.Outcomes {
				name := strings.TrimSpace(o.Name)
				if name == "" || o.Price == nil {
					continue
				}
				mkt.Outcomes = append(mkt.Outcomes, match.Outcome{
					Name:  name,
					Price: *o.Price,
					Point: o.Point,
				})
			}
			bundle.Markets = append(bundle.Markets, mkt)
		}
		out = append(out, bundle)
	}
	return out
}
