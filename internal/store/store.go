// Package store defines the persistence boundary for clients and assets.
//
// Handlers depend on the interfaces here, never on gorm directly, so the
// relational store and the in-memory fake are interchangeable.
package store

import (
	"context"
	"errors"

	"github.com/diewo77/go-carteira/internal/models"
)

var (
	// ErrNotFound reports that the record targeted by an operation does not exist.
	ErrNotFound = errors.New("store: record not found")
	// ErrClientNotFound reports that an asset references a client that does not exist.
	ErrClientNotFound = errors.New("store: referenced client not found")
	// ErrClientHasAssets reports that a client cannot be deleted while it owns assets.
	ErrClientHasAssets = errors.New("store: client still owns assets")
)

type ClientStore interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	CreateClient(ctx context.Context, c *models.Client) error
	// UpdateClient replaces every mutable field of the client with c.ID.
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, id uint) error
	// ListClientAssets returns ErrNotFound when the client does not exist.
	ListClientAssets(ctx context.Context, clientID uint) ([]models.Asset, error)
}

type AssetStore interface {
	// ListAssets returns every asset with its owning client loaded.
	ListAssets(ctx context.Context) ([]models.Asset, error)
	// CreateAsset returns ErrClientNotFound when a.ClientID does not resolve.
	CreateAsset(ctx context.Context, a *models.Asset) error
	UpdateAsset(ctx context.Context, a *models.Asset) error
	DeleteAsset(ctx context.Context, id uint) error
}

// Store is the full persistence surface used by the API server.
type Store interface {
	ClientStore
	AssetStore
	Ping(ctx context.Context) error
}
