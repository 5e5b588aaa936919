package health

import "context"

// StoragePinger checks storage availability.
type StoragePinger interface {
	Ping(ctx context.Context) error
}

// CollectionCounter reads the fund collection end to end.
type CollectionCounter interface {
	Count(ctx context.Context) (int, error)
}
