package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ErrMalformed возвращается, когда сохранённая запись не разбирается
var ErrMalformed = errors.New("malformed record")

// Ключи записей в хранилище
const (
	KeyCart               = "cart"
	KeyPriorityDelivery   = "priorityDelivery"
	KeyOrders             = "orders"
	KeyUser               = "user"
	KeyAdminAuthenticated = "adminAuthenticated"
	KeyLoginPrompted      = "loginPrompted"
)

// KV порт персистентности: get/set/remove по ключу
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// LoadJSON decodes the record at key into v. It reports false when the key is
// absent and wraps ErrMalformed when the stored text does not decode.
func LoadJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

func SaveJSON(ctx context.Context, kv KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(b))
}

// LoadFlag reads a "true"/"false" record; anything other than "true" is false.
func LoadFlag(ctx context.Context, kv KV, key string) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	return raw == "true", nil
}

func SaveFlag(ctx context.Context, kv KV, key string, v bool) error {
	return kv.Set(ctx, key, strconv.FormatBool(v))
}
