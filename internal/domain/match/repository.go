package match

import "context"

// Filter narrows match reads; zero values mean "any".
type Filter struct {
	Sport  string
	Status string
	League string
	Limit  int
}

// Repository persists canonical match records with last-write-wins upserts.
type Repository interface {
	Upsert(ctx context.Context, record Record) error
	List(ctx context.Context, filter Filter) ([]Record, error)
}
