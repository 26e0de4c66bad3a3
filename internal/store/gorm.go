package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/go-carteira/internal/models"
	"gorm.io/gorm"
)

// GormStore persists clients and assets through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Ping(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("SELECT 1").Error
}

func (s *GormStore) ListClients(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}
	if err := s.db.WithContext(ctx).Order("id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *GormStore) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	return findClient(s.db.WithContext(ctx), id)
}

func findClient(tx *gorm.DB, id uint) (*models.Client, error) {
	var c models.Client
	if err := tx.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get client %d: %w", id, err)
	}
	return &c, nil
}

func (s *GormStore) CreateClient(ctx context.Context, c *models.Client) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateClient(ctx context.Context, c *models.Client) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findClient(tx, c.ID); err != nil {
			return err
		}
		err := tx.Model(&models.Client{ID: c.ID}).
			Select("nome", "email", "status").
			Updates(c).Error
		if err != nil {
			return fmt.Errorf("update client %d: %w", c.ID, err)
		}
		return nil
	})
}

func (s *GormStore) DeleteClient(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findClient(tx, id); err != nil {
			return err
		}
		var owned int64
		if err := tx.Model(&models.Asset{}).Where("cliente_id = ?", id).Count(&owned).Error; err != nil {
			return fmt.Errorf("count assets of client %d: %w", id, err)
		}
		if owned > 0 {
			return ErrClientHasAssets
		}
		if err := tx.Delete(&models.Client{}, id).Error; err != nil {
			return fmt.Errorf("delete client %d: %w", id, err)
		}
		return nil
	})
}

func (s *GormStore) ListClientAssets(ctx context.Context, clientID uint) ([]models.Asset, error) {
	var c models.Client
	err := s.db.WithContext(ctx).
		Preload("Assets", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&c, clientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("list assets of client %d: %w", clientID, err)
	}
	if c.Assets == nil {
		return []models.Asset{}, nil
	}
	return c.Assets, nil
}

func (s *GormStore) ListAssets(ctx context.Context) ([]models.Asset, error) {
	assets := []models.Asset{}
	if err := s.db.WithContext(ctx).Preload("Client").Order("id").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}

func (s *GormStore) CreateAsset(ctx context.Context, a *models.Asset) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireClient(tx, a.ClientID); err != nil {
			return err
		}
		// Client is a belongs-to association; never upsert it from here.
		if err := tx.Omit("Client").Create(a).Error; err != nil {
			return fmt.Errorf("create asset: %w", err)
		}
		return nil
	})
}

func (s *GormStore) UpdateAsset(ctx context.Context, a *models.Asset) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Asset
		if err := tx.First(&existing, a.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get asset %d: %w", a.ID, err)
		}
		if err := requireClient(tx, a.ClientID); err != nil {
			return err
		}
		err := tx.Model(&models.Asset{ID: a.ID}).
			Updates(map[string]any{"nome": a.Name, "valor": a.Value, "cliente_id": a.ClientID}).Error
		if err != nil {
			return fmt.Errorf("update asset %d: %w", a.ID, err)
		}
		return nil
	})
}

func (s *GormStore) DeleteAsset(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Asset{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete asset %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func requireClient(tx *gorm.DB, id uint) error {
	_, err := findClient(tx, id)
	if errors.Is(err, ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}
