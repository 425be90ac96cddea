package cache

import (
	"context"
	"encoding/json"
	"time"
)

// ByteStore 是读穿缓存的最小依赖面，*Cache 为生产实现。
// 服务层按此接口持有缓存，测试可以换成内存假实现。
type ByteStore interface {
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error)
}

// GetOrLoadJSON 在 ByteStore 上做 JSON 编解码的读穿：
// 未命中时调 load 回源并写缓存；load 返回 nil 值时透传 nil，不落 "null"。
func GetOrLoadJSON[T any](ctx context.Context, c ByteStore, key string, ttl time.Duration, load func(context.Context) (*T, error)) (*T, error) {
	raw, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	out := new(T)
	if e := json.Unmarshal(raw, out); e != nil {
		return nil, e
	}
	return out, nil
}
