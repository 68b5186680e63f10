package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFSStorage keeps uploads in the fs.files / fs.chunks bucket.
type GridFSStorage struct {
	bucket  *gridfs.Bucket
	baseURL string
}

var _ contract.IFileStorage = (*GridFSStorage)(nil)

func NewGridFSStorage(db *mongo.Database, baseURL string) (*GridFSStorage, error) {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs bucket: %w", err)
	}
	return &GridFSStorage{bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// PublicURL is the route that streams the file back.
func (s *GridFSStorage) PublicURL(fileID string) string {
	return fmt.Sprintf("%s/api/v1/files/%s", s.baseURL, fileID)
}

func parseFileID(fileID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return primitive.NilObjectID, contract.ErrNotFound
	}
	return oid, nil
}

func (s *GridFSStorage) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetWriteDeadline(deadline); err != nil {
			return "", "", err
		}
	}
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "content_type", Value: contentType}})
	oid, err := s.bucket.UploadFromStream(filename, r, opts)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	id := oid.Hex()
	return id, s.PublicURL(id), nil
}

func (s *GridFSStorage) Open(ctx context.Context, fileID string) (io.ReadCloser, *entity.FileInfo, error) {
	oid, err := parseFileID(fileID)
	if err != nil {
		return nil, nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetReadDeadline(deadline); err != nil {
			return nil, nil, err
		}
	}
	stream, err := s.bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, nil, contract.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open file %s: %w", fileID, err)
	}

	f := stream.GetFile()
	info := &entity.FileInfo{
		ID:         fileID,
		Filename:   f.Name,
		Size:       f.Length,
		UploadedAt: f.UploadDate,
	}
	if ct, ok := f.Metadata.Lookup("content_type").StringValueOK(); ok {
		info.ContentType = ct
	}
	if info.ContentType == "" {
		info.ContentType = "application/octet-stream"
	}
	return stream, info, nil
}

func (s *GridFSStorage) Delete(ctx context.Context, fileID string) error {
	oid, err := parseFileID(fileID)
	if err != nil {
		return err
	}
	if err := s.bucket.DeleteContext(ctx, oid); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return contract.ErrNotFound
		}
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}
