package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ImageCache keeps served listing images in redis so repeated reads skip
// the file storage round-trip.
type ImageCache struct {
	cli    *redis.Client
	logger *logrus.Logger
	tracer trace.Tracer
}

func New(address string, logger *logrus.Logger, tracer trace.Tracer) *ImageCache {
	client := redis.NewClient(&redis.Options{
		Addr: address,
	})

	return &ImageCache{
		cli:    client,
		logger: logger,
		tracer: tracer,
	}
}

func (cache *ImageCache) Ping() error {
	_, err := cache.cli.Ping().Result()
	return err
}

func (cache *ImageCache) Post(ctx context.Context, listingID string, imageName string, image []byte) error {
	ctx, span := cache.tracer.Start(ctx, "ImageCache.Post")
	defer span.End()

	err := cache.cli.Set(constructKey(listingID, imageName), image, 30*time.Minute).Err()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		cache.logger.Warnf("redis set error: %s", err)
	}
	return err
}

func (cache *ImageCache) Get(ctx context.Context, listingID string, imageName string) ([]byte, error) {
	ctx, span := cache.tracer.Start(ctx, "ImageCache.Get")
	defer span.End()

	value, err := cache.cli.Get(constructKey(listingID, imageName)).Bytes()
	if err != nil {
		return nil, err
	}

	cache.logger.Debug("Cache hit - get image")
	return value, nil
}

func (cache *ImageCache) Exists(listingID string, imageName string) bool {
	cnt, err := cache.cli.Exists(constructKey(listingID, imageName)).Result()
	if err != nil {
		return false
	}
	return cnt == 1
}
