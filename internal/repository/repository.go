package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Repository is the Domain Store. Every owner-scoped query carries the
// ownership predicate in its WHERE clause; callers never see rows they do not
// own, and a filtered-out row is indistinguishable from a missing one.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}
