package middleware

import (
	"net/http"
	"strings"

	"github.com/relevant-recovery/recovery-backend/api/responses"
	"github.com/relevant-recovery/recovery-backend/api/validators"
	pkgauth "github.com/relevant-recovery/recovery-backend/pkg/auth"
	"github.com/relevant-recovery/recovery-backend/pkg/config"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
)

// AdminAuth validates the bearer token and requires its email claim to match
// the configured admin. There is no user table; the config object is the
// entire credential store.
func AdminAuth(jwtCfg config.JWTConfig, adminCfg config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	adminEmail := strings.ToLower(strings.TrimSpace(adminCfg.Email))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := validators.ExtractBearerToken(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAdminToken(jwtCfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if !strings.EqualFold(claims.Email, adminEmail) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required"))
				return
			}

			ctx := WithAdminEmail(r.Context(), claims.Email)
			if logg != nil {
				ctx = logg.WithAdminEmail(ctx, claims.Email)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
