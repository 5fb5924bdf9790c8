package casbinAuthorization

import (
	"net/http"

	"github.com/casbin/casbin"
	"github.com/sirupsen/logrus"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/authorization"
	errs "github.com/AkashRanjanSaikia/Hotal-Booking-system/errors"
)

const unauthenticatedRole = "Unauthenticated"

func extractRole(req *http.Request) string {
	token := authorization.ExtractToken(req)
	if token == "" {
		return unauthenticatedRole
	}

	claims, err := authorization.GetClaims(token)
	if err != nil {
		return unauthenticatedRole
	}
	return string(claims.Role)
}

// CasbinMiddleware gates every route on (role, path, method). Requests
// without a usable token run as Unauthenticated and get 401 on protected
// paths; authenticated requests outside their role's policy get 403.
func CasbinMiddleware(enforcer *casbin.Enforcer, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(rw http.ResponseWriter, req *http.Request) {
			userRole := extractRole(req)

			res, err := enforcer.EnforceSafe(userRole, req.URL.Path, req.Method)
			if err != nil {
				logger.Error("Error enforcing authorization policy: ", err)
				errs.ReturnJSONError(rw, errs.InternalServerError, http.StatusInternalServerError)
				return
			}

			if !res {
				if userRole == unauthenticatedRole {
					logger.Warn("Unauthenticated access attempt: ", req.URL.Path)
					errs.ReturnJSONError(rw, errs.UnauthorizedError, http.StatusUnauthorized)
					return
				}
				logger.Warn("Forbidden access attempt: ", req.URL.Path)
				errs.ReturnJSONError(rw, errs.ForbiddenError, http.StatusForbidden)
				return
			}

			next.ServeHTTP(rw, req)
		}

		return http.HandlerFunc(fn)
	}
}
