package apiclient

import (
	"context"
	"strconv"

	"github.com/diewo77/go-carteira/internal/models"
)

const (
	keyClients = "clientes"
	keyAssets  = "ativos"
)

// Queries pairs the API client with a cache. Reads go through the cache and
// successful writes invalidate the lists they affect.
type Queries struct {
	api   *Client
	cache *Cache
}

func NewQueries(api *Client, cache *Cache) *Queries {
	return &Queries{api: api, cache: cache}
}

func (q *Queries) Clients(ctx context.Context) ([]models.Client, error) {
	return Get(ctx, q.cache, Key{keyClients}, q.api.ListClients)
}

func (q *Queries) Assets(ctx context.Context) ([]models.Asset, error) {
	return Get(ctx, q.cache, Key{keyAssets}, q.api.ListAssets)
}

// ClientAssets lists one client's assets under the key {"ativos", id}.
func (q *Queries) ClientAssets(ctx context.Context, clientID uint) ([]models.Asset, error) {
	key := Key{keyAssets, strconv.FormatUint(uint64(clientID), 10)}
	return Get(ctx, q.cache, key, func(ctx context.Context) ([]models.Asset, error) {
		return q.api.ListClientAssets(ctx, clientID)
	})
}

// Health asks the API whether it is up. It is never cached.
func (q *Queries) Health(ctx context.Context) error {
	return q.api.Health(ctx)
}

func (q *Queries) CreateClient(ctx context.Context, in models.ClientInput) (*models.Client, error) {
	c, err := q.api.CreateClient(ctx, in)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(keyClients)
	return c, nil
}

func (q *Queries) UpdateClient(ctx context.Context, id uint, in models.ClientInput) (*models.Client, error) {
	c, err := q.api.UpdateClient(ctx, id, in)
	if err != nil {
		return nil, err
	}
	// asset listings embed the client
	q.cache.Invalidate(keyClients)
	q.cache.Invalidate(keyAssets)
	return c, nil
}

func (q *Queries) DeleteClient(ctx context.Context, id uint) error {
	if err := q.api.DeleteClient(ctx, id); err != nil {
		return err
	}
	q.cache.Invalidate(keyClients)
	q.cache.Invalidate(keyAssets)
	return nil
}

func (q *Queries) CreateAsset(ctx context.Context, in models.AssetInput) (*models.Asset, error) {
	a, err := q.api.CreateAsset(ctx, in)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(keyAssets)
	return a, nil
}

func (q *Queries) UpdateAsset(ctx context.Context, id uint, in models.AssetInput) (*models.Asset, error) {
	a, err := q.api.UpdateAsset(ctx, id, in)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(keyAssets)
	return a, nil
}

func (q *Queries) DeleteAsset(ctx context.Context, id uint) error {
	if err := q.api.DeleteAsset(ctx, id); err != nil {
		return err
	}
	q.cache.Invalidate(keyAssets)
	return nil
}
