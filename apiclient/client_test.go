package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-carteira/internal/handlers"
	"github.com/diewo77/go-carteira/internal/models"
	"github.com/diewo77/go-carteira/internal/store"
)

type countingStore struct {
	*store.MemoryStore
	clientLists atomic.Int32
	assetLists  atomic.Int32
}

func (s *countingStore) ListClients(ctx context.Context) ([]models.Client, error) {
	s.clientLists.Add(1)
	return s.MemoryStore.ListClients(ctx)
}

func (s *countingStore) ListAssets(ctx context.Context) ([]models.Asset, error) {
	s.assetLists.Add(1)
	return s.MemoryStore.ListAssets(ctx)
}

func newAPI(t *testing.T) (*Client, *countingStore) {
	t.Helper()
	s := &countingStore{MemoryStore: store.NewMemoryStore()}
	mux := http.NewServeMux()
	handlers.NewClientHandler(s).Register(mux)
	handlers.NewAssetHandler(s).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client()), s
}

func TestClientRoundTrip(t *testing.T) {
	api, _ := newAPI(t)
	ctx := context.Background()

	ana, err := api.CreateClient(ctx, models.ClientInput{Name: "Ana", Email: "ana@x.com", Active: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, uint(1), ana.ID)

	asset, err := api.CreateAsset(ctx, models.NewAssetInput("Ação X", 10.5, ana.ID))
	require.NoError(t, err)
	assert.Equal(t, 10.5, asset.Value)

	assets, err := api.ListClientAssets(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Ação X", assets[0].Name)

	all, err := api.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Client)
	assert.Equal(t, "Ana", all[0].Client.Name)

	updated, err := api.UpdateAsset(ctx, asset.ID, models.NewAssetInput("Ação Y", 11, ana.ID))
	require.NoError(t, err)
	assert.Equal(t, "Ação Y", updated.Name)

	require.NoError(t, api.DeleteAsset(ctx, asset.ID))
	require.NoError(t, api.DeleteClient(ctx, ana.ID))
	clients, err := api.ListClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestClientDecodesAPIErrors(t *testing.T) {
	api, _ := newAPI(t)
	ctx := context.Background()

	_, err := api.CreateClient(ctx, models.ClientInput{Name: "Ana", Email: "bad"})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "validation_failed", apiErr.Code)
	assert.Equal(t, "invalid_email", apiErr.Detail["email"])
	assert.Equal(t, "required", apiErr.Detail["status"])

	err = api.DeleteClient(ctx, 9)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "client_not_found", apiErr.Code)
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	_, err := New(srv.URL, nil).ListClients(context.Background())
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}

func TestQueriesInvalidateOnMutation(t *testing.T) {
	api, s := newAPI(t)
	q := NewQueries(api, NewCache(time.Hour))
	ctx := context.Background()

	clients, err := q.Clients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
	_, err = q.Clients(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), s.clientLists.Load())

	ana, err := q.CreateClient(ctx, models.ClientInput{Name: "Ana", Email: "ana@x.com", Active: ptr(true)})
	require.NoError(t, err)
	clients, err = q.Clients(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
	assert.Equal(t, int32(2), s.clientLists.Load())

	_, err = q.Assets(ctx)
	require.NoError(t, err)
	own, err := q.ClientAssets(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, own)

	_, err = q.CreateAsset(ctx, models.NewAssetInput("Ação X", 10.5, ana.ID))
	require.NoError(t, err)
	own, err = q.ClientAssets(ctx, ana.ID)
	require.NoError(t, err)
	assert.Len(t, own, 1)
	all, err := q.Assets(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, int32(2), s.assetLists.Load())

	// asset writes leave the client list cached
	assert.Equal(t, int32(2), s.clientLists.Load())
}

func TestQueriesFailedMutationKeepsCache(t *testing.T) {
	api, s := newAPI(t)
	q := NewQueries(api, NewCache(time.Hour))
	ctx := context.Background()

	_, err := q.Assets(ctx)
	require.NoError(t, err)
	_, err = q.CreateAsset(ctx, models.NewAssetInput("Ação X", 10.5, 99))
	require.Error(t, err)
	_, err = q.Assets(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), s.assetLists.Load())
}

func ptr[T any](v T) *T { return &v }
