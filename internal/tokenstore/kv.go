package tokenstore

import (
	"context"
	"errors"
)

// Fixed keys of the persisted records.
const (
	TokenInfoKey = "tkeel_token_info"
	UserInfoKey  = "tkeel_user_info"
)

var ErrNotFound = errors.New("key not found")

// KV is the persistence boundary behind the token and user-info records.
// Get returns ErrNotFound when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
