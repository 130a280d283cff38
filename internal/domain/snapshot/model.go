package snapshot

import "time"

// Snapshot archives one raw provider response for replay and audit.
type Snapshot struct {
	Source      string
	LeagueCode  string
	Payload     string
	PayloadHash string
	FetchedAt   time.Time
}
