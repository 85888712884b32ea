// Copyright 2024 The gannot authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rcache provides an optional Redis-backed cache for example
// search responses. The example dictionaries only change on sync, so
// entries live under a common prefix which a sync wipes wholesale.
package rcache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTTL = 10 * time.Minute

	keyPrefix = "gannotSearch"
)

type Conf struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	DB       int    `json:"db"`
	Password string `json:"password"`
	TTLSecs  int    `json:"ttlSecs"`
}

// Adapter wraps the Redis connection. A nil *Adapter is a valid
// no-op cache, so callers never have to branch on configuration.
type Adapter struct {
	ctx context.Context
	c   *redis.Client
	ttl time.Duration
}

func NewAdapter(conf *Conf, ctx context.Context) *Adapter {
	ttl := DefaultTTL
	if conf.TTLSecs > 0 {
		ttl = time.Duration(conf.TTLSecs) * time.Second
	}
	return &Adapter{
		ctx: ctx,
		c: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
			Password: conf.Password,
			DB:       conf.DB,
		}),
		ttl: ttl,
	}
}

// TestConnection pings Redis repeatedly until it answers or the
// timeout is over.
func (a *Adapter) TestConnection(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(a.ctx, timeout)
	defer cancel()
	tick := time.NewTicker(2 * time.Second)
	defer tick.Stop()
	for {
		err := a.c.Ping(ctx).Err()
		if err == nil {
			return nil
		}
		log.Warn().Err(err).Msg("waiting for Redis...")
		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to connect to Redis: %w", ctx.Err())
		case <-tick.C:
		}
	}
}

// Key derives a cache key from the query and the raw filter values.
func Key(parts ...string) string {
	var argKey string
	for _, p := range parts {
		argKey += p + "\n"
	}
	hashKey := sha1.Sum([]byte(argKey))
	return keyPrefix + ":" + hex.EncodeToString(hashKey[:])
}

// Get returns a cached serialized response, or ok=false on a miss.
// Redis errors degrade to a miss - the cache must never break search.
func (a *Adapter) Get(key string) ([]byte, bool) {
	if a == nil {
		return nil, false
	}
	cmd := a.c.Get(a.ctx, key)
	if cmd.Err() != nil {
		if cmd.Err() != redis.Nil {
			log.Warn().Err(cmd.Err()).Str("key", key).Msg("cache read failed")
		}
		return nil, false
	}
	return []byte(cmd.Val()), true
}

// Put stores a serialized response under the key with the
// configured TTL.
func (a *Adapter) Put(key string, data []byte) {
	if a == nil {
		return
	}
	if err := a.c.Set(a.ctx, key, string(data), a.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Invalidate drops all cached search responses. Called after a sync
// refreshes the example dictionaries.
func (a *Adapter) Invalidate() {
	if a == nil {
		return
	}
	iter := a.c.Scan(a.ctx, 0, keyPrefix+":*", 0).Iterator()
	var numDeleted int
	for iter.Next(a.ctx) {
		if err := a.c.Del(a.ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Msg("cache invalidation failed")
			return
		}
		numDeleted++
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("cache invalidation failed")
		return
	}
	log.Debug().Int("numDeleted", numDeleted).Msg("invalidated search cache")
}
