package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	keyPrefix   = "hotelhub:"
	dialTimeout = 2 * time.Second
	opTimeout   = 500 * time.Millisecond
)

// Client wraps redis.Client but fails safe: a missing or unreachable redis
// behaves like an empty cache. A nil *Client is valid and never hits the network.
type Client struct {
	rdb *redis.Client
}

// New creates a new Redis client. No connection is made until first use.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  dialTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})}
}

func (c *Client) ready() bool {
	return c != nil && c.rdb != nil
}

// Ping reports whether redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if !c.ready() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying connections.
func (c *Client) Close() error {
	if !c.ready() {
		return nil
	}
	return c.rdb.Close()
}

// Get returns the stored value, or nil on a miss or when redis is unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.ready() {
		return nil, nil
	}
	res, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	switch {
	case stderrors.Is(err, redis.Nil):
		return nil, nil
	case err != nil:
		swallow("get", key, err)
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL. Redis failures are logged and dropped.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.ready() {
		return nil
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		swallow("set", key, err)
	}
	return nil
}

// Delete removes a key. Redis failures are logged and dropped.
func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.ready() {
		return nil
	}
	if err := c.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		swallow("delete", key, err)
	}
	return nil
}

// GetJSON decodes a cached JSON value into dest. It reports false on a miss or
// when the cached payload cannot be decoded.
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	data, _ := c.Get(ctx, key)
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetJSON encodes value as JSON and stores it with TTL.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		swallow("encode", key, err)
		return
	}
	_ = c.Set(ctx, key, payload, ttl)
}

func swallow(op, key string, err error) {
	logrus.WithFields(logrus.Fields{"op": op, "key": key}).WithError(err).Debug("cache degraded")
}
