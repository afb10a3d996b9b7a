package middleware

import (
	"net/http"
	"strings"

	"floor-layout/pkg/utils"

	"go.uber.org/zap"
)

// TenantHeader names the tenant a request acts for.
const TenantHeader = "x-tenant-id"

const maxTenantIDLength = 128

// Tenant reads x-tenant-id into the request context, falling back to defaultTenant.
func Tenant(defaultTenant string, logger *zap.Logger) func(http.Handler) http.Handler {
	if defaultTenant == "" {
		defaultTenant = utils.DefaultTenantID
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := strings.TrimSpace(r.Header.Get(TenantHeader))
			if tenantID == "" {
				tenantID = defaultTenant
			}

			if len(tenantID) > maxTenantIDLength {
				logger.Warn("Rejected oversized tenant id",
					zap.Int("length", len(tenantID)),
					zap.String("path", r.URL.Path))
				utils.ResponseValidationError(w, "Tenant id is too long", "", nil)
				return
			}

			ctx := utils.SetTenantContext(r.Context(), tenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
