// Package predcache caches predicted parameter vectors in a key-value
// store, keyed by a digest of the description.
package predcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/monicapserrano/text-to-cad/internal/db"
)

const keyPrefix = "texttocad:pred_cache:"

// predictor is the consumer contract for the cache decorator.
type predictor interface {
	Predict(ctx context.Context, description string) ([]float64, error)
}

// store is the key-value subset the cache needs.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedPredictor is a caching decorator around a predictor. Cache
// failures degrade to computing the prediction.
type CachedPredictor struct {
	inner      predictor
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. cacheTotal is a counter vec with a
// "result" label ("hit"/"miss"), passed explicitly.
func New(
	inner predictor,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedPredictor {
	return &CachedPredictor{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Predict returns a cached vector or calls the inner predictor.
func (c *CachedPredictor) Predict(ctx context.Context, description string) ([]float64, error) {
	key := cacheKey(description)

	if vec, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return vec, nil
	}
	c.incCache("miss")

	vec, err := c.inner.Predict(ctx, description)
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, key, vec)
	return vec, nil
}

func (c *CachedPredictor) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(description string) string {
	h := sha256.Sum256([]byte(description))
	return keyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedPredictor) getFromCache(ctx context.Context, key string) ([]float64, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached prediction", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	vec, err := bytesToVector(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached prediction", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return vec, true
}

func (c *CachedPredictor) putToCache(ctx context.Context, key string, vec []float64) {
	if err := c.store.SetWithTTL(ctx, key, vectorToBytes(vec), c.ttl); err != nil {
		c.logger.Warn("Failed to cache prediction", zap.String("key", key), zap.Error(err))
	}
}

// vectorToBytes encodes the vector as little-endian float64 words.
func vectorToBytes(vec []float64) []byte {
	data := make([]byte, 8*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}
	return data
}

func bytesToVector(data []byte) ([]float64, error) {
	if len(data) == 0 || len(data)%8 != 0 {
		return nil, fmt.Errorf("cached vector has %d bytes, want a multiple of 8", len(data))
	}
	vec := make([]float64, len(data)/8)
	for i := range vec {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return vec, nil
}
