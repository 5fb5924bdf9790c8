package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/authorization"
	"github.com/AkashRanjanSaikia/Hotal-Booking-system/domain"
	errs "github.com/AkashRanjanSaikia/Hotal-Booking-system/errors"
)

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		next.ServeHTTP(rw, h)
	})
}

// MiddlewareAttachClaims parses the request token, if any, and carries
// the identity on the request context. Authorization decisions stay with
// the casbin layer.
func MiddlewareAttachClaims(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		if token := authorization.ExtractToken(req); token != "" {
			if claims, err := authorization.GetClaims(token); err == nil {
				req = req.WithContext(authorization.ContextWithClaims(req.Context(), claims))
			}
		}
		next.ServeHTTP(rw, req)
	})
}

// requestClaims resolves the caller identity, preferring claims already
// attached by the middleware.
func requestClaims(req *http.Request) (*domain.Claims, bool) {
	if claims, ok := authorization.ClaimsFromContext(req.Context()); ok {
		return claims, true
	}
	token := authorization.ExtractToken(req)
	if token == "" {
		return nil, false
	}
	claims, err := authorization.GetClaims(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func jsonResponse(object interface{}, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	resp, err := json.Marshal(object)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(resp)
}

// writeDomainError maps the domain sentinels onto the API's status
// codes. Anything unrecognized is a 500 with a generic body so internal
// details never reach the client.
func writeDomainError(rw http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrHotelNotFound):
		errs.ReturnJSONError(rw, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAlreadyFavourite),
		errors.Is(err, domain.ErrAlreadyManager),
		errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidCredentials):
		errs.ReturnJSONError(rw, err.Error(), http.StatusBadRequest)
	default:
		errs.ReturnJSONError(rw, errs.InternalServerError, http.StatusInternalServerError)
	}
}
