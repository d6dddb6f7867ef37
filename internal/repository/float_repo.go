package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
)

// FloatOverride is the stored start-of-day cash override for one device and
// date. The scope is deliberately per-device: the original client kept this
// in device-local storage and the limitation is part of the contract, so
// the key includes the device id and the value is never shared.
type FloatOverride struct {
	Value  decimal.Decimal `json:"value"`
	Reason string          `json:"reason"`
	SetAt  time.Time       `json:"set_at"`
}

type FloatRepository interface {
	Get(ctx context.Context, deviceID string, period reconcile.ReportingPeriod) (*FloatOverride, error)
	Set(ctx context.Context, deviceID string, period reconcile.ReportingPeriod, o FloatOverride) error
}

// Overrides only matter for the day they cover; 48h leaves room for
// late-night closes without accumulating stale keys.
const floatTTL = 48 * time.Hour

type floatRepo struct{ rdb *redis.Client }

func NewFloatRepository(rdb *redis.Client) FloatRepository { return &floatRepo{rdb: rdb} }

func floatKey(deviceID string, period reconcile.ReportingPeriod) string {
	return fmt.Sprintf("float:%s:%s", deviceID, period.String())
}

func (r *floatRepo) Get(ctx context.Context, deviceID string, period reconcile.ReportingPeriod) (*FloatOverride, error) {
	raw, err := r.rdb.Get(ctx, floatKey(deviceID, period)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var o FloatOverride
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		return nil, fmt.Errorf("float: corrupt override for %s: %w", deviceID, err)
	}
	return &o, nil
}

func (r *floatRepo) Set(ctx context.Context, deviceID string, period reconcile.ReportingPeriod, o FloatOverride) error {
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, floatKey(deviceID, period), data, floatTTL).Err()
}
