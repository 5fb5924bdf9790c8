package startup

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/cache"
	"github.com/AkashRanjanSaikia/Hotal-Booking-system/casbinAuthorization"
	"github.com/AkashRanjanSaikia/Hotal-Booking-system/handlers"
	application "github.com/AkashRanjanSaikia/Hotal-Booking-system/service"
	"github.com/AkashRanjanSaikia/Hotal-Booking-system/startup/config"
	"github.com/AkashRanjanSaikia/Hotal-Booking-system/storage"
	"github.com/AkashRanjanSaikia/Hotal-Booking-system/store"
)

const serviceName = "hotel_booking"

type Server struct {
	config *config.Config
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) Start() {
	logger := server.initLogger()

	ctx := context.Background()

	tp := server.initTraceProvider(logger)
	if tp != nil {
		defer func() { _ = tp.Shutdown(ctx) }()
		otel.SetTracerProvider(tp)
	}
	tracer := otel.Tracer(serviceName)

	mongoClient := server.initMongoClient(ctx)
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Error disconnecting from MongoDB: ", err)
		}
	}()

	imageCache := server.initImageCache(logger, tracer)
	fileStorage := server.initFileStorage(logger, tracer)
	if fileStorage != nil {
		defer fileStorage.Close()
	}

	userStore := store.NewUserMongoDBStore(mongoClient, tracer)
	listingStore := store.NewListingMongoDBStore(mongoClient, tracer)
	bookingStore := store.NewBookingMongoDBStore(mongoClient, tracer)

	defaultOwner := server.initDefaultOwner(logger)

	authService := application.NewAuthService(userStore, []byte(server.config.SecretKey))
	listingService := application.NewListingService(listingStore, userStore, imageStorageOrNil(fileStorage), defaultOwner, logger)
	bookingService := application.NewBookingService(bookingStore, listingStore)

	authHandler := handlers.NewAuthHandler(logger, authService, tracer)
	listingHandler := handlers.NewListingHandler(logger, listingService, imageCache, fileStorage, tracer)
	bookingHandler := handlers.NewBookingHandler(logger, bookingService, tracer)

	enforcer, err := casbin.NewEnforcerSafe("./rbac_model.conf", "./policy.csv")
	if err != nil {
		log.Fatal("Error initializing casbin enforcer: ", err)
	}

	server.start(logger, enforcer, authHandler, listingHandler, bookingHandler)
}

func (server *Server) initLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if server.config.LogFile != "" {
		logger.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   server.config.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}))
	}
	return logger
}

func (server *Server) initTraceProvider(logger *logrus.Logger) *sdktrace.TracerProvider {
	if server.config.JaegerAddress == "" {
		logger.Info("JAEGER_ADDRESS not set, tracing disabled")
		return nil
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(server.config.JaegerAddress)))
	if err != nil {
		log.Fatalf("Failed to initialize exporter: %v", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		log.Fatal(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}

func (server *Server) initMongoClient(ctx context.Context) *mongo.Client {
	client, err := store.GetClient(ctx, server.config.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initImageCache(logger *logrus.Logger, tracer trace.Tracer) *cache.ImageCache {
	if server.config.ImageCacheAddress == "" {
		logger.Info("IMAGE_CACHE_ADDRESS not set, image cache disabled")
		return nil
	}

	imageCache := cache.New(server.config.ImageCacheAddress, logger, tracer)
	if err := imageCache.Ping(); err != nil {
		logger.Warn("Image cache unreachable: ", err)
	}
	return imageCache
}

func (server *Server) initFileStorage(logger *logrus.Logger, tracer trace.Tracer) *storage.FileStorage {
	if server.config.HDFSUri == "" {
		logger.Info("HDFS_URI not set, image storage disabled")
		return nil
	}

	fileStorage, err := storage.New(server.config.HDFSUri, logger, tracer)
	if err != nil {
		log.Fatal("Error connecting to image storage: ", err)
	}
	if err := fileStorage.CreateDirectoriesStart(); err != nil {
		logger.Warn("Error preparing image storage directories: ", err)
	}
	return fileStorage
}

func (server *Server) initDefaultOwner(logger *logrus.Logger) primitive.ObjectID {
	if server.config.DefaultOwnerID == "" {
		return primitive.NilObjectID
	}
	owner, err := primitive.ObjectIDFromHex(server.config.DefaultOwnerID)
	if err != nil {
		logger.Warn("DEFAULT_OWNER_ID is not a valid object id, ignoring")
		return primitive.NilObjectID
	}
	return owner
}

// imageStorageOrNil avoids handing the service a non-nil interface
// wrapping a nil pointer.
func imageStorageOrNil(fileStorage *storage.FileStorage) application.ImageStorage {
	if fileStorage == nil {
		return nil
	}
	return fileStorage
}

func (server *Server) start(logger *logrus.Logger, enforcer *casbin.Enforcer, handlerList ...interface{ Init(*mux.Router) }) {
	router := mux.NewRouter()
	router.Use(handlers.MiddlewareContentTypeSet)
	router.Use(handlers.MiddlewareAttachClaims)
	router.Use(casbinAuthorization.CasbinMiddleware(enforcer, logger))

	for _, handler := range handlerList {
		handler.Init(router)
	}

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{server.config.AllowedOrigin}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillaHandlers.AllowCredentials(),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", server.config.Port),
		Handler: cors(router),
	}

	wait := time.Second * 15
	go func() {
		logger.Info("Server listening on port ", server.config.Port)
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}
