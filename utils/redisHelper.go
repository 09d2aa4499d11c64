package utils

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/turboszerviz/turbo_backend/config"
)

func GetCacheLifespan() time.Duration {
	lifespan, err := strconv.Atoi(os.Getenv("CACHE_LIFESPAN"))
	if err != nil {
		lifespan = 1
	}
	return time.Duration(lifespan) * time.Hour
}

func GetTypeName[T any]() string {
	var v T
	typeOfT := reflect.TypeOf(v)
	return typeOfT.Name()
}

/* Redis */

// store instance, obj should be a pointer
func StoreRedis[T any](obj any, id string) error {
	key := GetTypeName[T]() + ":" + id
	return config.SetRedisObject(key, &obj, GetCacheLifespan())
}

// retrieve instance; nil result means cache miss
func RetrieveRedis[T any](id string) (*T, error) {
	key := GetTypeName[T]() + ":" + id

	var obj T
	exists, err := config.GetRedisObject(key, &obj)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return &obj, nil
}

// remove cached instance after update/delete
func RemoveRedis[T any](id string) error {
	key := GetTypeName[T]() + ":" + fmt.Sprint(id)
	return config.RemoveRedisKey(key)
}
