package customer

import (
	"context"
	"errors"
	"iter"
	"time"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrMultipleCustomers = errors.New("more than one customer matches id")
)

// Store is the backing store of customers and their orders.
type Store interface {
	// Insert persists c together with its orders and fills in generated order ids.
	Insert(ctx context.Context, c *Customer) error
	Exists(ctx context.Context, id string) (bool, error)
	// Get returns the customer with its orders, or nil if there is none.
	Get(ctx context.Context, id string) (*Customer, error)
	// All returns a lazy sequence; every range over it runs a new query.
	All(ctx context.Context) iter.Seq2[Customer, error]
	Page(ctx context.Context, offset, limit int) ([]Customer, error)
	// DeleteSingle removes the one customer matching id and returns it.
	DeleteSingle(ctx context.Context, id string) (*Customer, error)
	Replace(ctx context.Context, c Customer) error
	Close() error
}

// Cache is the part of the cache the repository needs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, sliding time.Duration) error
	Delete(ctx context.Context, key string) error
}
