package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/domain"
	errs "github.com/AkashRanjanSaikia/Hotal-Booking-system/errors"
	application "github.com/AkashRanjanSaikia/Hotal-Booking-system/service"
)

type BookingHandler struct {
	logger  *logrus.Logger
	service *application.BookingService
	tracer  trace.Tracer
}

func NewBookingHandler(logger *logrus.Logger, service *application.BookingService, tracer trace.Tracer) *BookingHandler {
	return &BookingHandler{
		logger:  logger,
		service: service,
		tracer:  tracer,
	}
}

func (handler *BookingHandler) Init(router *mux.Router) {
	router.HandleFunc("/bookings/my-bookings", handler.MyBookings).Methods("GET")
	router.HandleFunc("/bookings", handler.Create).Methods("POST")
}

func (handler *BookingHandler) Create(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Create")
	defer span.End()

	var input domain.BookingInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		errs.ReturnJSONError(rw, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	booking, err := handler.service.Create(ctx, &input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warn("Error creating booking: ", err)
		writeDomainError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(map[string]interface{}{
		"message": "Booking confirmed",
		"booking": booking,
	}, rw)
}

// MyBookings answers with the bookings tied to the email inside the
// caller's token.
func (handler *BookingHandler) MyBookings(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.MyBookings")
	defer span.End()

	claims, ok := requestClaims(req)
	if !ok {
		errs.ReturnJSONError(rw, errs.UnauthorizedError, http.StatusUnauthorized)
		return
	}
	if claims.Email == "" {
		errs.ReturnJSONError(rw, errs.MissingEmailClaimError, http.StatusBadRequest)
		return
	}

	bookings, err := handler.service.GetByUserEmail(ctx, claims.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(rw, err)
		return
	}
	jsonResponse(bookings, rw)
}
