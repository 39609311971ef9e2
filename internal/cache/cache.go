// internal/cache/cache.go
package cache

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/gob"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stylisthq/stylist-backend/internal/config"
	"github.com/stylisthq/stylist-backend/internal/models"
)

const (
	nsQueryResult = "query_result"
	nsSearchTerms = "search_terms"
	nsEmbeddings  = "embeddings"

	anonymousUser = "anonymous"
)

// Cache is a Redis-backed result cache. When the backend is unreachable it
// disables itself and every operation becomes a miss/no-op, so callers never
// special-case a down cache.
type Cache struct {
	client  *redis.Client
	enabled atomic.Bool
	cfg     config.CacheConfig
	log     *logrus.Entry
}

func New(redisCfg config.RedisConfig, cacheCfg config.CacheConfig) *Cache {
	c := &Cache{
		cfg: cacheCfg,
		log: logrus.WithField("component", "cache"),
	}

	if !cacheCfg.Enabled {
		c.log.Info("Result cache disabled by configuration")
		return c
	}

	c.client = redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", redisCfg.Host, redisCfg.Port),
		Password:    redisCfg.Password,
		DB:          redisCfg.DB,
		DialTimeout: time.Duration(redisCfg.DialTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(redisCfg.DialTimeout)*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx).Err(); err != nil {
		c.log.WithError(err).Warn("Redis unreachable, result cache disabled")
		return c
	}

	c.enabled.Store(true)
	c.log.Info("Result cache connected")
	return c
}

func (c *Cache) Enabled() bool {
	return c.enabled.Load()
}

func (c *Cache) disable(err error) {
	if c.enabled.CompareAndSwap(true, false) {
		c.log.WithError(err).Warn("Cache backend failure, disabling result cache")
	}
}

// Fingerprint builds a cache key from a namespace and arbitrary key material.
// Structured keys hash order-independently since JSON object keys are sorted.
func Fingerprint(namespace string, key interface{}) string {
	var material []byte
	switch k := key.(type) {
	case string:
		material = []byte(k)
	default:
		material, _ = json.Marshal(k)
	}

	sum := md5.Sum(material)
	return namespace + ":" + hex.EncodeToString(sum[:])[:12]
}

func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.disable(err)
		return false
	}

	if err := deserialize(data, dest); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("Failed to decode cached value")
		return false
	}

	return true
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) bool {
	if !c.Enabled() {
		return false
	}

	data, err := serialize(value)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("Failed to encode value for cache")
		return false
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.disable(err)
		return false
	}

	return true
}

func (c *Cache) Delete(ctx context.Context, keys ...string) bool {
	if !c.Enabled() || len(keys) == 0 {
		return false
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.disable(err)
		return false
	}

	return true
}

func (c *Cache) Keys(ctx context.Context, pattern string) []string {
	if !c.Enabled() {
		return nil
	}

	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		c.disable(err)
		return nil
	}

	return keys
}

// Query results

func QueryResultKey(query, userID string) string {
	if userID == "" {
		userID = anonymousUser
	}
	return Fingerprint(nsQueryResult, map[string]string{
		"query": strings.ToLower(strings.TrimSpace(query)),
		"user":  userID,
	})
}

func (c *Cache) GetQueryResult(ctx context.Context, query, userID string) *models.StylistResponse {
	var resp models.StylistResponse
	if !c.Get(ctx, QueryResultKey(query, userID), &resp) {
		return nil
	}
	return &resp
}

func (c *Cache) SetQueryResult(ctx context.Context, query, userID string, resp *models.StylistResponse) bool {
	ttl := time.Duration(c.cfg.QueryResultTTL) * time.Second
	return c.Set(ctx, QueryResultKey(query, userID), resp, ttl)
}

// Search-term expansions

func (c *Cache) GetSearchTerms(ctx context.Context, query string) []string {
	key := Fingerprint(nsSearchTerms, strings.ToLower(strings.TrimSpace(query)))
	var terms []string
	if !c.Get(ctx, key, &terms) {
		return nil
	}
	return terms
}

func (c *Cache) SetSearchTerms(ctx context.Context, query string, terms []string) bool {
	key := Fingerprint(nsSearchTerms, strings.ToLower(strings.TrimSpace(query)))
	return c.Set(ctx, key, terms, time.Duration(c.cfg.SearchTermsTTL)*time.Second)
}

// Embeddings

func (c *Cache) GetEmbedding(ctx context.Context, text string) []float32 {
	var vec []float32
	if !c.Get(ctx, Fingerprint(nsEmbeddings, text), &vec) {
		return nil
	}
	return vec
}

func (c *Cache) SetEmbedding(ctx context.Context, text string, vec []float32) bool {
	return c.Set(ctx, Fingerprint(nsEmbeddings, text), vec, time.Duration(c.cfg.EmbeddingTTL)*time.Second)
}

// ClearUserCache drops every cached query result for one user. Pattern-based
// scans are acceptable here since invalidation is rare and admin-triggered.
func (c *Cache) ClearUserCache(ctx context.Context, userID string) int {
	if !c.Enabled() {
		return 0
	}

	cleared := 0
	for _, key := range c.Keys(ctx, nsQueryResult+":*") {
		var resp models.StylistResponse
		if !c.Get(ctx, key, &resp) {
			continue
		}
		if key == QueryResultKey(resp.UserQuery, userID) {
			if c.Delete(ctx, key) {
				cleared++
			}
		}
	}

	return cleared
}

func (c *Cache) Stats(ctx context.Context) map[string]interface{} {
	stats := map[string]interface{}{
		"enabled": c.Enabled(),
	}

	if !c.Enabled() {
		return stats
	}

	if size, err := c.client.DBSize(ctx).Result(); err == nil {
		stats["total_keys"] = size
	}
	stats["query_result_keys"] = len(c.Keys(ctx, nsQueryResult+":*"))
	stats["search_term_keys"] = len(c.Keys(ctx, nsSearchTerms+":*"))
	stats["embedding_keys"] = len(c.Keys(ctx, nsEmbeddings+":*"))

	return stats
}

// serialize tries the portable textual encoding first and falls back to the
// binary one; deserialize attempts the inverse in the same order.
func serialize(value interface{}) ([]byte, error) {
	if data, err := json.Marshal(value); err == nil {
		return data, nil
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return nil, fmt.Errorf("value is neither JSON nor gob encodable: %w", err)
	}
	return buf.Bytes(), nil
}

func deserialize(data []byte, dest interface{}) error {
	if err := json.Unmarshal(data, dest); err == nil {
		return nil
	}

	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(dest); err != nil {
		return fmt.Errorf("cached value is neither JSON nor gob decodable: %w", err)
	}
	return nil
}
