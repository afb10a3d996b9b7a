package utils

import (
	"context"
)

type contextKey string

const (
	TenantIDKey  contextKey = "tenant_id"
	RequestIDKey contextKey = "request_id"
)

// DefaultTenantID is used when neither the request nor the config names a tenant.
const DefaultTenantID = "default"

func SetTenantContext(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// GetTenantIDFromContext returns the tenant set by the tenant middleware, or DefaultTenantID.
func GetTenantIDFromContext(ctx context.Context) string {
	tenantID, ok := ctx.Value(TenantIDKey).(string)
	if !ok || tenantID == "" {
		return DefaultTenantID
	}
	return tenantID
}

func SetRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	return requestID, ok
}
