package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/gridtable/pkg/errors"
)

// DefaultRedisPrefix namespaces store keys.
const DefaultRedisPrefix = "gridtable:"

// Redis stores each record as a JSON string under <prefix>table:<id>, with
// a sorted set <prefix>tables ordering ids by creation time.
type Redis struct {
	client redis.UniversalClient
	prefix string
	logger *log.Logger
	owned  bool
}

// NewRedis wraps an existing client. Close does not close it.
func NewRedis(client redis.UniversalClient, prefix string, logger *log.Logger) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix, logger: orDiscard(logger)}
}

// DialRedis connects to the server at addr.
func DialRedis(ctx context.Context, addr string, logger *log.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to redis at %s", addr)
	}
	r := NewRedis(client, "", logger)
	r.owned = true
	r.logger.Info("connected to redis", "addr", addr)
	return r, nil
}

func (r *Redis) key(id string) string { return r.prefix + "table:" + id }
func (r *Redis) index() string        { return r.prefix + "tables" }

func (r *Redis) Put(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode record %s", rec.ID)
	}
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.key(rec.ID), data, 0)
		p.ZAdd(ctx, r.index(), redis.Z{Score: float64(rec.CreatedAt.UnixNano()), Member: rec.ID})
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store table %s", rec.ID)
	}
	r.logger.Debug("stored table", "id", rec.ID, "version", rec.Version)
	return nil
}

func (r *Redis) Get(ctx context.Context, id string) (Record, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return Record{}, notFound(id)
	}
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInternal, err, "load table %s", id)
	}
	return decodeRecord(id, data)
}

func (r *Redis) List(ctx context.Context) ([]Record, error) {
	ids, err := r.client.ZRange(ctx, r.index(), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list tables")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list tables")
	}

	out := make([]Record, 0, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// Index entry without a record; the record was deleted concurrently.
			continue
		}
		rec, err := decodeRecord(ids[i], []byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *Redis) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		del = p.Del(ctx, r.key(id))
		p.ZRem(ctx, r.index(), id)
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete table %s", id)
	}
	if del.Val() == 0 {
		return notFound(id)
	}
	r.logger.Debug("deleted table", "id", id)
	return nil
}

// Close closes the client if DialRedis created it.
func (r *Redis) Close() error {
	if r.owned {
		return r.client.Close()
	}
	return nil
}

func decodeRecord(id string, data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInternal, fmt.Errorf("decode: %w", err), "table %s", id)
	}
	return rec, nil
}

var _ Store = (*Redis)(nil)
