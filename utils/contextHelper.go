package utils

import (
	"context"
)

type contextKey string

const correlationIdKey contextKey = "correlation_id"

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return context.WithValue(ctx, correlationIdKey, correlationId)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(correlationIdKey).(string)
	return v, ok
}
