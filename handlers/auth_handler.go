package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/domain"
	errs "github.com/AkashRanjanSaikia/Hotal-Booking-system/errors"
	application "github.com/AkashRanjanSaikia/Hotal-Booking-system/service"
)

const tokenCookieName = "token"

type AuthHandler struct {
	logger  *logrus.Logger
	service *application.AuthService
	tracer  trace.Tracer
}

func NewAuthHandler(logger *logrus.Logger, service *application.AuthService, tracer trace.Tracer) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		service: service,
		tracer:  tracer,
	}
}

func (handler *AuthHandler) Init(router *mux.Router) {
	router.HandleFunc("/auth/signup", handler.Signup).Methods("POST")
	router.HandleFunc("/auth/login", handler.Login).Methods("POST")
	router.HandleFunc("/auth/logout", handler.Logout).Methods("POST")
	router.HandleFunc("/auth/me", handler.Me).Methods("GET")
	router.HandleFunc("/auth/register", handler.RegisterAsManager).Methods("POST")
}

func (handler *AuthHandler) Signup(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Signup")
	defer span.End()

	var input domain.SignupInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		errs.ReturnJSONError(rw, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	user, err := handler.service.Signup(ctx, &input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warn("Signup failed: ", err)
		writeDomainError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(user.Public(), rw)
}

func (handler *AuthHandler) Login(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Login")
	defer span.End()

	var input domain.LoginInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		errs.ReturnJSONError(rw, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	user, token, err := handler.service.Login(ctx, &input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warn("Login failed for ", input.Email, ": ", err)
		// An unknown email reads as bad credentials, not as a missing
		// resource.
		if errors.Is(err, domain.ErrUserNotFound) {
			errs.ReturnJSONError(rw, err.Error(), http.StatusBadRequest)
			return
		}
		writeDomainError(rw, err)
		return
	}

	setTokenCookie(rw, token)
	jsonResponse(user, rw)
}

func (handler *AuthHandler) Logout(rw http.ResponseWriter, req *http.Request) {
	_, span := handler.tracer.Start(req.Context(), "AuthHandler.Logout")
	defer span.End()

	clearTokenCookie(rw)
	jsonResponse(map[string]string{"message": "Logged out"}, rw)
}

func (handler *AuthHandler) Me(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Me")
	defer span.End()

	userID, ok := authenticatedUserID(req)
	if !ok {
		errs.ReturnJSONError(rw, errs.UnauthorizedError, http.StatusUnauthorized)
		return
	}

	user, err := handler.service.CurrentUser(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(rw, err)
		return
	}

	jsonResponse(user, rw)
}

func (handler *AuthHandler) RegisterAsManager(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.RegisterAsManager")
	defer span.End()

	userID, ok := authenticatedUserID(req)
	if !ok {
		errs.ReturnJSONError(rw, errs.UnauthorizedError, http.StatusUnauthorized)
		return
	}

	var app domain.ManagerApplication
	if err := json.NewDecoder(req.Body).Decode(&app); err != nil {
		errs.ReturnJSONError(rw, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	user, token, err := handler.service.RegisterAsManager(ctx, userID, &app)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warn("Manager registration failed: ", err)
		writeDomainError(rw, err)
		return
	}

	// The previous token still says "user", so the cookie is replaced.
	setTokenCookie(rw, token)
	jsonResponse(user, rw)
}

// authenticatedUserID resolves the caller's user ID from the request
// token. The bool result is false for missing, invalid or malformed
// tokens.
func authenticatedUserID(req *http.Request) (primitive.ObjectID, bool) {
	claims, ok := requestClaims(req)
	if !ok {
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return userID, true
}

func setTokenCookie(rw http.ResponseWriter, token string) {
	http.SetCookie(rw, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearTokenCookie(rw http.ResponseWriter) {
	http.SetCookie(rw, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
