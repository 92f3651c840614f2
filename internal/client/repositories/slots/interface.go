package slots

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
}
