package customer

import (
	"context"
	"encoding/json"
	"iter"

	"github.com/0x0FACED/zlog"
)

// Repository serves customers from the store, keeping Find results in the
// cache under a sliding expiration.
type Repository struct {
	store Store
	cache Cache
	log   *zlog.ZerologLogger
	cfg   Config
}

func NewRepository(store Store, cache Cache, log *zlog.ZerologLogger, cfg Config) *Repository {
	return &Repository{
		store: store,
		cache: cache,
		log:   log,
		cfg:   cfg,
	}
}

func (r *Repository) Add(ctx context.Context, c Customer) (*Customer, error) {
	if err := r.store.Insert(ctx, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *Repository) Exist(ctx context.Context, id string) (bool, error) {
	return r.store.Exists(ctx, id)
}

// Find returns the customer with its orders or nil if there is no such
// customer.
func (r *Repository) Find(ctx context.Context, id string) (*Customer, error) {
	data, ok, err := r.cache.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ok {
		var cached Customer
		if err := json.Unmarshal(data, &cached); err != nil {
			return nil, err
		}
		r.log.Debug().Str("id", id).Msg("[Customer] cache hit")
		return &cached, nil
	}

	c, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}

	data, err = json.Marshal(c)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, c.CustomerID, data, r.cfg.cacheTTL()); err != nil {
		return nil, err
	}

	r.log.Debug().Str("id", id).Int("orders", len(c.Orders)).Msg("[Customer] cached")

	return c, nil
}

// GetAll returns every customer lazily. Nothing is read until the sequence
// is ranged over.
func (r *Repository) GetAll(ctx context.Context) iter.Seq2[Customer, error] {
	return r.store.All(ctx)
}

func (r *Repository) GetCustomersPage(ctx context.Context, params PaginationParameters) ([]Customer, error) {
	params = params.Normalize(r.cfg.Pagination)
	return r.store.Page(ctx, params.Offset(), params.Size)
}

func (r *Repository) Remove(ctx context.Context, id string) (*Customer, error) {
	c, err := r.store.DeleteSingle(ctx, id)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, id)

	return c, nil
}

func (r *Repository) Update(ctx context.Context, c Customer) (*Customer, error) {
	if err := r.store.Replace(ctx, c); err != nil {
		return nil, err
	}

	r.invalidate(ctx, c.CustomerID)

	return &c, nil
}

// The write is already committed, so a failed delete is only logged.
func (r *Repository) invalidate(ctx context.Context, id string) {
	if !r.cfg.InvalidateOnWrite {
		return
	}

	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn().Err(err).Str("id", id).Msg("[Customer] cache invalidation failed")
	}
}
