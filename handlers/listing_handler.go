package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/cache"
	"github.com/AkashRanjanSaikia/Hotal-Booking-system/domain"
	errs "github.com/AkashRanjanSaikia/Hotal-Booking-system/errors"
	application "github.com/AkashRanjanSaikia/Hotal-Booking-system/service"
	"github.com/AkashRanjanSaikia/Hotal-Booking-system/storage"
)

const maxUploadSize = 32 << 20

type ListingHandler struct {
	logger  *logrus.Logger
	service *application.ListingService
	cache   *cache.ImageCache
	storage *storage.FileStorage
	tracer  trace.Tracer
}

func NewListingHandler(logger *logrus.Logger, service *application.ListingService, imageCache *cache.ImageCache, fileStorage *storage.FileStorage, tracer trace.Tracer) *ListingHandler {
	return &ListingHandler{
		logger:  logger,
		service: service,
		cache:   imageCache,
		storage: fileStorage,
		tracer:  tracer,
	}
}

// Init registers the listing routes. Static paths go first so mux never
// swallows them with the {id} pattern.
func (handler *ListingHandler) Init(router *mux.Router) {
	router.HandleFunc("/listings/create", handler.Create).Methods("POST")
	router.HandleFunc("/listings/my-hotels", handler.MyHotels).Methods("GET")
	router.HandleFunc("/listings/favourites", handler.Favourites).Methods("GET")
	router.HandleFunc("/listings/{id}/favourite", handler.AddFavourite).Methods("POST")
	router.HandleFunc("/listings/{id}/favourite", handler.RemoveFavourite).Methods("DELETE")
	router.HandleFunc("/listings/{id}/reviews", handler.AddReview).Methods("POST")
	router.HandleFunc("/listings/{id}/images/{filename}", handler.GetImage).Methods("GET")
	router.HandleFunc("/listings/{id}", handler.Get).Methods("GET")
	router.HandleFunc("/listings/{id}", handler.Update).Methods("PUT")
	router.HandleFunc("/listings/{id}", handler.Delete).Methods("DELETE")
	router.HandleFunc("/listings", handler.GetAll).Methods("GET")
}

func (handler *ListingHandler) GetAll(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ListingHandler.GetAll")
	defer span.End()

	listings, err := handler.service.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Error("Error fetching listings: ", err)
		writeDomainError(rw, err)
		return
	}
	jsonResponse(listings, rw)
}

func (handler *ListingHandler) Get(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ListingHandler.Get")
	defer span.End()

	id, ok := listingID(rw, req)
	if !ok {
		return
	}

	details, err := handler.service.GetDetails(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(rw, err)
		return
	}
	jsonResponse(details, rw)
}

// Create accepts either a JSON body with inline image references or
// multipart form data with an optional mainImage file and up to four
// gallery files.
func (handler *ListingHandler) Create(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ListingHandler.Create")
	defer span.End()

	var (
		input     *domain.CreateListingInput
		mainImage *application.ImageUpload
		gallery   []application.ImageUpload
	)

	contentType := req.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := req.ParseMultipartForm(maxUploadSize); err != nil {
			errs.ReturnJSONError(rw, errs.InvalidRequestFormatError, http.StatusBadRequest)
			return
		}

		price, _ := strconv.ParseFloat(req.FormValue("price"), 64)
		input = &domain.CreateListingInput{
			Title:       req.FormValue("title"),
			Description: req.FormValue("description"),
			Price:       price,
			Location:    req.FormValue("location"),
			Country:     req.FormValue("country"),
		}

		upload, err := handler.readUpload(req, "mainImage")
		if err != nil {
			errs.ReturnJSONError(rw, errs.InvalidRequestFormatError, http.StatusBadRequest)
			return
		}
		mainImage = upload

		for _, header := range req.MultipartForm.File["images"] {
			upload, err := readFileHeader(header)
			if err != nil {
				errs.ReturnJSONError(rw, errs.InvalidRequestFormatError, http.StatusBadRequest)
				return
			}
			gallery = append(gallery, *upload)
		}
	} else {
		input = &domain.CreateListingInput{}
		if err := input.FromJSON(req.Body); err != nil {
			errs.ReturnJSONError(rw, errs.InvalidRequestFormatError, http.StatusBadRequest)
			return
		}
	}

	var owner *primitive.ObjectID
	if userID, ok := authenticatedUserID(req); ok {
		owner = &userID
	}

	listing, err := handler.service.Create(ctx, input, owner, mainImage, gallery)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warn("Error creating listing: ", err)
		writeDomainError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(listing, rw)
}

func (handler *ListingHandler) Update(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ListingHandler.Update")
	defer span.End()

	id, ok := listingID(rw, req)
	if !ok {
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
		errs.ReturnJSONError(rw, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	patch := domain.BuildListingPatch(raw)
	listing, err := handler.service.Update(ctx, id, patch)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(rw, err)
		return
	}
	jsonResponse(listing, rw)
}

func (handler *ListingHandler) Delete(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ListingHandler.Delete")
	defer span.End()

	id, ok := listingID(rw, req)
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(rw, err)
		return
	}
	jsonResponse(map[string]string{"message": "Listing deleted"}, rw)
}

// MyHotels lists the listings owned by the user named in the userId
// query parameter.
func (handler *ListingHandler) MyHotels(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ListingHandler.MyHotels")
	defer span.End()

	owner, ok := queryUserID(rw, req)
	if !ok {
		return
	}

	listings, err := handler.service.GetByOwner(ctx, owner)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(rw, err)
		return
	}
	jsonResponse(listings, rw)
}

func (handler *ListingHandler) Favourites(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ListingHandler.Favourites")
	defer span.End()

	userID, ok := queryUserID(rw, req)
	if !ok {
		return
	}

	listings, err := handler.service.FavouritesOf(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(rw, err)
		return
	}
	jsonResponse(map[string]interface{}{"favourites": listings}, rw)
}

func (handler *ListingHandler) AddFavourite(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ListingHandler.AddFavourite")
	defer span.End()

	id, ok := listingID(rw, req)
	if !ok {
		return
	}
	userID, ok := requestUserID(rw, req)
	if !ok {
		return
	}

	if err := handler.service.Favourite(ctx, userID, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(rw, err)
		return
	}
	jsonResponse(map[string]string{"message": "Added to favourites"}, rw)
}

func (handler *ListingHandler) RemoveFavourite(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ListingHandler.RemoveFavourite")
	defer span.End()

	id, ok := listingID(rw, req)
	if !ok {
		return
	}
	userID, ok := requestUserID(rw, req)
	if !ok {
		return
	}

	if err := handler.service.Unfavourite(ctx, userID, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(rw, err)
		return
	}
	jsonResponse(map[string]string{"message": "Removed from favourites"}, rw)
}

func (handler *ListingHandler) AddReview(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ListingHandler.AddReview")
	defer span.End()

	id, ok := listingID(rw, req)
	if !ok {
		return
	}
	userID, ok := authenticatedUserID(req)
	if !ok {
		errs.ReturnJSONError(rw, errs.UnauthorizedError, http.StatusUnauthorized)
		return
	}

	var input domain.ReviewInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		errs.ReturnJSONError(rw, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	details, err := handler.service.AddReview(ctx, id, userID, &input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(details, rw)
}

// GetImage serves a stored listing image, preferring the cache and
// falling back to file storage, filling the cache on a miss.
func (handler *ListingHandler) GetImage(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ListingHandler.GetImage")
	defer span.End()

	vars := mux.Vars(req)
	listingID := vars["id"]
	filename := vars["filename"]

	if handler.cache != nil {
		if content, err := handler.cache.Get(ctx, listingID, filename); err == nil {
			writeImage(rw, content)
			return
		}
	}

	if handler.storage == nil {
		errs.ReturnJSONError(rw, errs.ImageStorageError, http.StatusInternalServerError)
		return
	}

	content, err := handler.storage.GetImageContent(ctx, listingID, filename)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warn("Image not found in storage: ", filename)
		errs.ReturnJSONError(rw, errs.ImageNotFoundError, http.StatusNotFound)
		return
	}

	if handler.cache != nil {
		if err := handler.cache.Post(ctx, listingID, filename, content); err != nil {
			handler.logger.Warn("Error caching image: ", err)
		}
	}
	writeImage(rw, content)
}

func writeImage(rw http.ResponseWriter, content []byte) {
	rw.Header().Set("Content-Type", http.DetectContentType(content))
	rw.Write(content)
}

func (handler *ListingHandler) readUpload(req *http.Request, field string) (*application.ImageUpload, error) {
	file, header, err := req.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &application.ImageUpload{Filename: header.Filename, Content: content}, nil
}

func readFileHeader(header *multipart.FileHeader) (*application.ImageUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &application.ImageUpload{Filename: header.Filename, Content: content}, nil
}

// queryUserID parses the userId query parameter, answering 400 when it
// is absent or malformed.
func queryUserID(rw http.ResponseWriter, req *http.Request) (primitive.ObjectID, bool) {
	raw := req.URL.Query().Get("userId")
	if raw == "" {
		errs.ReturnJSONError(rw, errs.MissingUserIDError, http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		errs.ReturnJSONError(rw, errs.MissingUserIDError, http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return userID, true
}

// requestUserID resolves the acting user for the favourite endpoints:
// a userId field in the JSON body wins, otherwise the token identity.
func requestUserID(rw http.ResponseWriter, req *http.Request) (primitive.ObjectID, bool) {
	var body struct {
		UserID string `json:"userId"`
	}
	if req.Body != nil {
		_ = json.NewDecoder(req.Body).Decode(&body)
	}
	if body.UserID != "" {
		userID, err := primitive.ObjectIDFromHex(body.UserID)
		if err != nil {
			errs.ReturnJSONError(rw, errs.MissingUserIDError, http.StatusBadRequest)
			return primitive.NilObjectID, false
		}
		return userID, true
	}

	if userID, ok := authenticatedUserID(req); ok {
		return userID, true
	}
	errs.ReturnJSONError(rw, errs.MissingUserIDError, http.StatusBadRequest)
	return primitive.NilObjectID, false
}

// listingID parses the {id} path variable, answering 404 for anything
// that is not a valid object id. Malformed ids are indistinguishable
// from missing listings to the client.
func listingID(rw http.ResponseWriter, req *http.Request) (primitive.ObjectID, bool) {
	vars := mux.Vars(req)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		errs.ReturnJSONError(rw, errs.InvalidListingIDError, http.StatusNotFound)
		return primitive.NilObjectID, false
	}
	return id, true
}
