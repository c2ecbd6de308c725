package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"NFTCast/internal/domain/models"
	domrepo "NFTCast/internal/domain/repository"
	pkgch "NFTCast/pkg/clickhouse"
	applogger "NFTCast/pkg/logger"
	"NFTCast/pkg/util"
)

// DefaultSnapshotTable holds one row per floor observation.
const DefaultSnapshotTable = "nftcast.floor_snapshots"

// CHSnapshotStore implements SnapshotStore backed by ClickHouse.
type CHSnapshotStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

var _ domrepo.SnapshotStore = (*CHSnapshotStore)(nil)

func NewCHSnapshotStore(ch *pkgch.Client, table string) *CHSnapshotStore {
	if table == "" {
		table = DefaultSnapshotTable
	}
	return &CHSnapshotStore{db: ch.DB(), table: table, l: applogger.NewNop()}
}

// SetLogger injects a structured logger.
func (s *CHSnapshotStore) SetLogger(l *applogger.Logger) {
	if l != nil {
		s.l = l
	}
}

// schema returns the idempotent DDL for the snapshot table and its database.
func (s *CHSnapshotStore) schema() []string {
	stmts := make([]string, 0, 2)
	if db, _, ok := strings.Cut(s.table, "."); ok {
		stmts = append(stmts, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", db))
	}
	stmts = append(stmts, fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            observed_at DateTime64(3, 'UTC'),
            contract    LowCardinality(String),
            collection  LowCardinality(String),
            floor_price Float64
        )
        ENGINE = MergeTree
        ORDER BY (contract, observed_at)
        TTL toDateTime(observed_at) + INTERVAL 2 YEAR
    `, s.table))
	return stmts
}

func (s *CHSnapshotStore) Init(ctx context.Context) error {
	return pkgch.NewFromDB(s.db).InitSchema(ctx, s.schema())
}

func (s *CHSnapshotStore) Store(ctx context.Context, snap models.FloorSnapshot) error {
	return s.StoreBatch(ctx, []models.FloorSnapshot{snap})
}

func (s *CHSnapshotStore) StoreBatch(ctx context.Context, snaps []models.FloorSnapshot) error {
	// Chunked multi-row VALUES to reduce round-trips.
	const chunkSize = 2000
	for start := 0; start < len(snaps); start += chunkSize {
		end := min(start+chunkSize, len(snaps))

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*4)
		for _, sn := range snaps[start:end] {
			if sn.ContractAddress == "" || sn.FloorPrice <= 0 || sn.ObservedAt.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?)")
			args = append(args,
				sn.ObservedAt.UTC(),
				strings.ToLower(sn.ContractAddress),
				sn.CollectionSlug,
				sn.FloorPrice,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (observed_at, contract, collection, floor_price) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.l.Error("clickhouse store_snapshots error",
				applogger.String("table", s.table),
				applogger.Int("rows", len(values)),
				applogger.Error(err),
			)
			return fmt.Errorf("store snapshots: %w", err)
		}
	}
	return nil
}

// seriesQuery averages floor observations per bucket, newest first.
func (s *CHSnapshotStore) seriesQuery(iv domrepo.Interval) string {
	const qtpl = `
        SELECT %[2]s(observed_at) AS bucket, avg(floor_price) AS price
        FROM %[1]s
        WHERE contract = ? AND observed_at <= ?
        GROUP BY bucket
        ORDER BY bucket DESC
        LIMIT ?
    `
	return fmt.Sprintf(qtpl, s.table, iv.BucketExpr())
}

func (s *CHSnapshotStore) Series(ctx context.Context, contract string, to time.Time, limit int, iv domrepo.Interval) ([]models.PricePoint, error) {
	if limit <= 0 {
		return nil, nil
	}
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, s.seriesQuery(iv), strings.ToLower(contract), to.UTC(), limit)
	if err != nil {
		s.l.Error("clickhouse series query error",
			applogger.String("table", s.table),
			applogger.String("contract", contract),
			applogger.String("interval", string(iv)),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()

	out := make([]models.PricePoint, 0, limit)
	for rows.Next() {
		var bucket time.Time
		var price float64
		if err := rows.Scan(&bucket, &price); err != nil {
			return nil, fmt.Errorf("scan bucket: %w", err)
		}
		out = append(out, models.PricePoint{Date: util.FormatDay(bucket), Price: price})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	reversePoints(out)

	s.l.Debug("clickhouse series ok",
		applogger.String("contract", contract),
		applogger.String("interval", string(iv)),
		applogger.Int("rows", len(out)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return out, nil
}

func (s *CHSnapshotStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op; the pool belongs to pkg/clickhouse.Client.
func (s *CHSnapshotStore) Close() error {
	return nil
}

// reverse to ASC
func reversePoints(p []models.PricePoint) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}
