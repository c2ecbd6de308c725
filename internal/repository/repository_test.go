package repository

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NFTCast/internal/domain/models"
	domrepo "NFTCast/internal/domain/repository"
	pkgkafka "NFTCast/pkg/kafka"
)

type fakeWriter struct{ msgs []kafka.Message }

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}
func (w *fakeWriter) Close() error { return nil }

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(pkgkafka.NewProducerWithWriter(w, "gzip"), "nftcast.analyses")

	a := &models.Analysis{ID: "a-1", CurrentPrice: 12, NFT: models.NFTDetails{ContractAddress: "0xabc"}}
	require.NoError(t, p.Publish(context.Background(), a))
	require.NoError(t, p.Publish(context.Background(), &models.Analysis{}))
	assert.Error(t, p.Publish(context.Background(), nil))

	require.Len(t, w.msgs, 2)
	assert.Equal(t, "nftcast.analyses", w.msgs[0].Topic)
	assert.Equal(t, "a-1", string(w.msgs[0].Key))
	assert.Len(t, string(w.msgs[1].Key), 36)

	var got models.Analysis
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, 12.0, got.CurrentPrice)
	assert.Equal(t, "contract", w.msgs[0].Headers[1].Key)
}

func TestSnapshotQueries(t *testing.T) {
	s := &CHSnapshotStore{table: DefaultSnapshotTable}

	stmts := s.schema()
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE DATABASE IF NOT EXISTS nftcast", stmts[0])
	assert.Contains(t, stmts[1], "CREATE TABLE IF NOT EXISTS nftcast.floor_snapshots")

	q := s.seriesQuery(domrepo.IntervalWeekly)
	assert.Contains(t, q, "toMonday(observed_at) AS bucket")
	assert.Contains(t, q, "FROM nftcast.floor_snapshots")
	assert.True(t, strings.Contains(q, "ORDER BY bucket DESC"))

	bare := &CHSnapshotStore{table: "floor_snapshots"}
	assert.Len(t, bare.schema(), 1)
}

func TestReversePoints(t *testing.T) {
	p := []models.PricePoint{{Date: "2024-01-03"}, {Date: "2024-01-02"}, {Date: "2024-01-01"}}
	reversePoints(p)
	assert.Equal(t, "2024-01-01", p[0].Date)
	assert.Equal(t, "2024-01-03", p[2].Date)
}
