package match

import "time"

const (
	StatusUpcoming = "upcoming"
	StatusLive     = "live"
	StatusFinished = "finished"
)

// Record is the canonical persisted form of one fixture from one provider.
// (external_id, data_source) is the uniqueness key.
type Record struct {
	ExternalID     string
	DataSource     string
	MatchDate      time.Time
	Status         string
	League         string
	Sport          string
	HomeTeam       string
	AwayTeam       string
	HomeScore      *int
	AwayScore      *int
	Odds           []BookmakerOdds
	Stats          map[string]any
	SourcePriority int
}

// BookmakerOdds bundles every market one bookmaker quotes for the fixture.
type BookmakerOdds struct {
	Bookmaker  string    `json:"bookmaker"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []Market  `json:"markets"`
}

type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// Key identifies the record across providers feeding the same store.
func (r Record) Key() string {
	return r.ExternalID + "|" + r.DataSource
}

// DeriveStatus classifies a fixture by kickoff time. Anything not strictly in
// the future counts as live; this feed carries no reliable finished signal.
func DeriveStatus(matchDate, now time.Time) string {
	if matchDate.After(now) {
		return StatusUpcoming
	}
	return StatusLive
}
