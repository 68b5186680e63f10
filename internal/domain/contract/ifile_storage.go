package contract

import (
	"context"
	"io"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

// IFileStorage stores uploaded binaries and hands back a public URL.
type IFileStorage interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (fileID string, publicURL string, err error)
	Open(ctx context.Context, fileID string) (io.ReadCloser, *entity.FileInfo, error)
	Delete(ctx context.Context, fileID string) error
}
