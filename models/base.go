package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/turboszerviz/turbo_backend/utils"
)

// NewId returns a fresh opaque record identifier.
func NewId() string {
	return uuid.NewString()
}

// GetResource fetches a record by id, first from redis, then from the db,
// caching the db result.
// (may return RecordNotFound error)
func GetResource[T any](ctx context.Context, id string, associations ...string) (*T, error) {

	// find in redis
	result, err := utils.RetrieveRedis[T](id)
	if err != nil {
		return nil, err
	}
	// if not found in redis
	if result == nil {
		// fetch from db
		result, err = utils.FetchModel[T](ctx, id, associations...)
		if err != nil {
			return nil, err
		}

		// store in redis
		if err := utils.StoreRedis[T](result, id); err != nil {
			return nil, err
		}
	}

	return result, nil
}

/* JSON columns */

func jsonColumnValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonColumnScan(dest any, value interface{}) error {
	if value == nil {
		return nil
	}
	switch src := value.(type) {
	case []byte:
		if len(src) == 0 {
			return nil
		}
		return json.Unmarshal(src, dest)
	case string:
		if src == "" {
			return nil
		}
		return json.Unmarshal([]byte(src), dest)
	default:
		return fmt.Errorf("unsupported source type %T for json column", value)
	}
}

// StringList is a JSON-encoded list of strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return jsonColumnValue(l)
}

func (l *StringList) Scan(value interface{}) error {
	return jsonColumnScan(l, value)
}
