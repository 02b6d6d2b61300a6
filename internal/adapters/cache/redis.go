package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options describe the Redis shared by every instance of one app group.
type Options struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Namespace is the app group; it names the connection in CLIENT LIST.
	Namespace   string
	PoolSize    int
	DialTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Port == "" {
		o.Port = "6379"
	}
	if o.PoolSize <= 0 {
		o.PoolSize = 10
	}
	if o.DialTimeout <= 0 {
		o.DialTimeout = 5 * time.Second
	}
	return o
}

func (o Options) clientOptions() *redis.Options {
	o = o.withDefaults()
	opts := &redis.Options{
		Addr:         net.JoinHostPort(o.Host, o.Port),
		Password:     o.Password,
		DB:           o.DB,
		DialTimeout:  o.DialTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     o.PoolSize,
		MinIdleConns: min(2, o.PoolSize),
	}
	if o.Namespace != "" {
		opts.ClientName = "quotewidget:" + o.Namespace
	}
	return opts
}

// NewRedisClient connects and pings within ctx and the dial timeout. The
// client is closed again when the ping fails.
func NewRedisClient(ctx context.Context, o Options) (*redis.Client, error) {
	opts := o.clientOptions()
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	return rdb, nil
}
