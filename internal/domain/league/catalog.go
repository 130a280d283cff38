package league

import (
	"errors"
	"fmt"
	"strings"
)

const (
	SportFootball   = "football"
	SportBasketball = "basketball"
)

// ErrUnknownSport reports a league code outside every configured sport group.
var ErrUnknownSport = errors.New("league code belongs to no known sport group")

var footballCodes = []string{
	"soccer_epl",
	"soccer_spain_la_liga",
	"soccer_italy_serie_a",
	"soccer_france_ligue_one",
	"soccer_germany_bundesliga",
}

var basketballCodes = []string{
	"basketball_nba",
	"basketball_euroleague",
}

var displayNames = map[string]string{
	"soccer_epl":                "Premier League",
	"soccer_spain_la_liga":      "La Liga",
	"soccer_italy_serie_a":      "Serie A",
	"soccer_france_ligue_one":   "Ligue 1",
	"soccer_germany_bundesliga": "Bundesliga",
	"basketball_nba":            "NBA",
	"basketball_euroleague":     "EuroLeague",
}

var sportByCode = buildSportIndex()

func buildSportIndex() map[string]string {
	out := make(map[string]string, len(footballCodes)+len(basketballCodes))
	for _, code := range footballCodes {
		out[code] = SportFootball
	}
	for _, code := range basketballCodes {
		out[code] = SportBasketball
	}
	return out
}

// Codes returns every ingestable league code, football first.
func Codes() []string {
	out := make([]string, 0, len(footballCodes)+len(basketballCodes))
	out = append(out, footballCodes...)
	out = append(out, basketballCodes...)
	return out
}

// DisplayName maps a provider league code to its display name. Codes outside
// the catalog pass through verbatim so new leagues are never dropped.
func DisplayName(code string) string {
	if name, ok := displayNames[strings.TrimSpace(code)]; ok {
		return name
	}
	return code
}

// SportForCode resolves the sport group for a league code. A code in neither
// group is an explicit error, never a silent default.
func SportForCode(code string) (string, error) {
	if sport, ok := sportByCode[strings.TrimSpace(code)]; ok {
		return sport, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSport, code)
}
