package repository

import (
	"fmt"
	"io"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// ImageRepository stores listing images in MongoDB GridFS. Listings keep the
// returned file ids in their images column.
type ImageRepository struct {
	db *mongo.Database
}

func NewImageRepository(client *mongo.Client, dbName string) *ImageRepository {
	return &ImageRepository{db: client.Database(dbName)}
}

func (r *ImageRepository) Upload(file multipart.File, filename string) (string, error) {
	bucket, err := gridfs.NewBucket(r.db)
	if err != nil {
		return "", fmt.Errorf("ImageRepository.Upload bucket: %w", err)
	}

	stream, err := bucket.OpenUploadStream(filename)
	if err != nil {
		return "", fmt.Errorf("ImageRepository.Upload stream: %w", err)
	}
	defer stream.Close()

	if _, err := io.Copy(stream, file); err != nil {
		return "", fmt.Errorf("ImageRepository.Upload copy: %w", err)
	}

	return stream.FileID.(primitive.ObjectID).Hex(), nil
}

func (r *ImageRepository) Download(fileID string) ([]byte, error) {
	bucket, err := gridfs.NewBucket(r.db)
	if err != nil {
		return nil, fmt.Errorf("ImageRepository.Download bucket: %w", err)
	}

	objID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, fmt.Errorf("ImageRepository.Download id: %w", err)
	}

	stream, err := bucket.OpenDownloadStream(objID)
	if err != nil {
		return nil, fmt.Errorf("ImageRepository.Download stream: %w", err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("ImageRepository.Download read: %w", err)
	}
	return data, nil
}
