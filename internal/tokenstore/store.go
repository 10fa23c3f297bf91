package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BerryBytes/consolectl/models"
)

type TokenStore interface {
	Get(ctx context.Context) (*models.TokenInfo, error)
	Set(ctx context.Context, info models.TokenInfo) error
	Remove(ctx context.Context) error
}

type UserInfoStore interface {
	Get(ctx context.Context) (*models.UserInfo, error)
	Set(ctx context.Context, info models.UserInfo) error
	Remove(ctx context.Context) error
}

// Record is a JSON record stored under a fixed key. Get returns nil with
// no error when the record is absent.
type Record[T any] struct {
	kv  KV
	key string
}

func NewRecord[T any](kv KV, key string) *Record[T] {
	return &Record[T]{kv: kv, key: key}
}

func NewTokenStore(kv KV) *Record[models.TokenInfo] {
	return NewRecord[models.TokenInfo](kv, TokenInfoKey)
}

func NewUserInfoStore(kv KV) *Record[models.UserInfo] {
	return NewRecord[models.UserInfo](kv, UserInfoKey)
}

func (r *Record[T]) Get(ctx context.Context) (*T, error) {
	data, err := r.kv.Get(ctx, r.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.key, err)
	}
	return &value, nil
}

func (r *Record[T]) Set(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", r.key, err)
	}
	return r.kv.Set(ctx, r.key, data)
}

func (r *Record[T]) Remove(ctx context.Context) error {
	return r.kv.Remove(ctx, r.key)
}
