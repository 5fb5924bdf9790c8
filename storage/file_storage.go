package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/colinmarc/hdfs/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const hdfsRoot = "/cozystay/images"

// FileStorage holds uploaded listing images in HDFS, one directory per
// listing. It is the upload collaborator behind the {filename, url} pairs
// stored on listing documents.
type FileStorage struct {
	client *hdfs.Client
	logger *logrus.Logger
	tracer trace.Tracer
}

func New(hdfsURI string, logger *logrus.Logger, tracer trace.Tracer) (*FileStorage, error) {
	client, err := hdfs.New(hdfsURI)
	if err != nil {
		logger.Error(err)
		return nil, err
	}

	return &FileStorage{
		client: client,
		logger: logger,
		tracer: tracer,
	}, nil
}

func (fs *FileStorage) Close() {
	fs.client.Close()
}

func (fs *FileStorage) CreateDirectoriesStart() error {
	err := fs.client.MkdirAll(hdfsRoot, 0644)
	if err != nil {
		fs.logger.Error(err)
		return err
	}
	return nil
}

func (fs *FileStorage) SaveImage(ctx context.Context, listingID, imageName string, imageContent []byte) error {
	ctx, span := fs.tracer.Start(ctx, "FileStorage.SaveImage")
	defer span.End()

	folderPath := path.Join(hdfsRoot, listingID)
	imagePath := path.Join(folderPath, imageName)

	if err := fs.client.MkdirAll(folderPath, 0644); err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Errorf("Error creating directory %s: %v", folderPath, err)
		return err
	}

	file, err := fs.client.Create(imagePath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Errorf("Error creating file %s: %v", imagePath, err)
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fs.logger.Errorf("Error closing file: %v", closeErr)
		}
	}()

	if _, err := file.Write(imageContent); err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Errorf("Error writing image content: %v", err)
		return err
	}

	return nil
}

func (fs *FileStorage) GetImageContent(ctx context.Context, listingID, imageName string) ([]byte, error) {
	ctx, span := fs.tracer.Start(ctx, "FileStorage.GetImageContent")
	defer span.End()

	fullPath := path.Join(hdfsRoot, listingID, imageName)

	file, err := fs.client.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Error(err)
		return nil, fmt.Errorf("error opening file: %v", err)
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Error(err)
		return nil, fmt.Errorf("error reading file: %v", err)
	}

	return imageData, nil
}
