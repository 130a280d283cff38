package prediction

import "context"

type Filter struct {
	League          string
	IncludeArchived bool
	PremiumOnly     bool
	Limit           int
}

type Repository interface {
	Create(ctx context.Context, p Prediction) error
	Update(ctx context.Context, p Prediction) error
	GetByID(ctx context.Context, id string) (Prediction, bool, error)
	List(ctx context.Context, filter Filter) ([]Prediction, error)
	Archive(ctx context.Context, id string) error
}
