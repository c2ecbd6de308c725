package repository

import (
	"context"
	"time"

	"NFTCast/internal/domain/models"
)

// Marketplace resolves NFT identifiers against the upstream marketplace API.
type Marketplace interface {
	GetNFT(ctx context.Context, ref models.NFTRef) (*models.NFTDetails, error)
	GetCollectionStats(ctx context.Context, slug string) (*models.CollectionStats, error)
}

// Publisher ships finished analyses to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, a *models.Analysis) error
	Close() error
}

// SnapshotStore persists observed floor prices and serves them back as history.
type SnapshotStore interface {
	Init(ctx context.Context) error // ensure tables
	Store(ctx context.Context, s models.FloorSnapshot) error
	StoreBatch(ctx context.Context, snaps []models.FloorSnapshot) error
	// Series returns at most limit buckets ending at to, ascending by date.
	Series(ctx context.Context, contract string, to time.Time, limit int, iv Interval) ([]models.PricePoint, error)
	Health(ctx context.Context) error
	Close() error
}

type Metrics interface {
	RecordForecast(model string, degraded bool, seconds float64)
	RecordUpstream(endpoint string, status int, seconds float64)
	RecordCache(hit bool)
	RecordFloorPrice(collection string, price float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
