package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Index names on the certificates collection. The duplicate-key message
// carries the index name, which tells a code collision from a second
// certificate for the same pair.
const (
	certCodeIndex = "verification_code_unique"
	certPairIndex = "user_course_unique"
)

type CertificateRepository struct {
	collection *mongo.Collection
}

var _ contract.ICertificateRepository = (*CertificateRepository)(nil)

func NewCertificateRepository(db *mongo.Database) *CertificateRepository {
	return &CertificateRepository{collection: db.Collection(contract.CascadeCertificates)}
}

func (r *CertificateRepository) CreateCertificate(ctx context.Context, cert *entity.Certificate) error {
	_, err := r.collection.InsertOne(ctx, cert)
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), certCodeIndex) {
		return contract.ErrDuplicateCode
	}
	return fmt.Errorf("failed to create certificate: %w", mapErr(err))
}

func (r *CertificateRepository) SetDownloadURL(ctx context.Context, id, url string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"download_url": url}})
	if err != nil {
		return fmt.Errorf("failed to set download url: %w", err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}

func (r *CertificateRepository) findOne(ctx context.Context, filter bson.M) (*entity.Certificate, error) {
	var cert entity.Certificate
	if err := r.collection.FindOne(ctx, filter).Decode(&cert); err != nil {
		return nil, mapErr(err)
	}
	return &cert, nil
}

func (r *CertificateRepository) GetByID(ctx context.Context, id string) (*entity.Certificate, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CertificateRepository) GetByVerificationCode(ctx context.Context, code string) (*entity.Certificate, error) {
	return r.findOne(ctx, bson.M{"verification_code": code})
}

func (r *CertificateRepository) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*entity.Certificate, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "course_id": courseID})
}

func (r *CertificateRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Certificate, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find certificates: %w", err)
	}
	defer cursor.Close(ctx)

	certs := []*entity.Certificate{}
	if err := cursor.All(ctx, &certs); err != nil {
		return nil, fmt.Errorf("failed to decode certificates: %w", err)
	}
	return certs, nil
}

func (r *CertificateRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Certificate, error) {
	return r.find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.M{"issued_at": -1}))
}

func (r *CertificateRepository) List(ctx context.Context, page, pageSize int) ([]*entity.Certificate, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count certificates: %w", err)
	}
	skip, limit := skipLimit(page, pageSize)
	certs, err := r.find(ctx, bson.M{}, options.Find().SetSort(bson.M{"issued_at": -1}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	return certs, total, nil
}

func (r *CertificateRepository) SetRevocation(ctx context.Context, id string, reason string, revokedAt *time.Time) error {
	var update bson.M
	if revokedAt == nil {
		update = bson.M{
			"$set":   bson.M{"is_revoked": false},
			"$unset": bson.M{"revocation_reason": "", "revoked_at": ""},
		}
	} else {
		update = bson.M{"$set": bson.M{
			"is_revoked":        true,
			"revocation_reason": reason,
			"revoked_at":        *revokedAt,
		}}
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update revocation: %w", err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}
