package domain

import "context"

// OpportunityStore persists flagged arbitrage history.
type OpportunityStore interface {
	InsertBatch(ctx context.Context, opps []Opportunity) error
	ListRecent(ctx context.Context, limit int) ([]Opportunity, error)
	Count(ctx context.Context) (int64, error)
}
