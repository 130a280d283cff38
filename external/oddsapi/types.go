package oddsapi

import "time"

// Event is one fixture as returned by the provider's per-league odds endpoint.
// The payload does not name the league it was fetched under; callers must keep
// the league code alongside.
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

type Bookmaker struct {
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	LastUpdate time.Time    `json:"last_update"`
	Markets    []MarketData `json:"markets"`
}

type MarketData struct {
	Key      string        `json:"key"`
	Outcomes []OutcomeData `json:"outcomes"`
}

// OutcomeData keeps price and point as pointers: the provider omits or nulls
// them, and a missing price means the outcome is dropped, not the fixture.
type OutcomeData struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
	Point *float64 `json:"point"`
}
