package prediction

import "time"

const (
	ResultPending = "pending"
	ResultWon     = "won"
	ResultLost    = "lost"
	ResultVoid    = "void"
)

// Prediction is one published tip for an upcoming fixture.
type Prediction struct {
	ID         string
	MatchTitle string
	League     string
	MatchDate  time.Time
	Pick       string
	Odds       float64
	Confidence int
	IsPremium  bool
	Result     string
	Archived   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
