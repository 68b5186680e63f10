package mongodb

import (
	"context"
	"fmt"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatsRepository counts documents across collections and stores snapshots.
type StatsRepository struct {
	db        *mongo.Database
	snapshots *mongo.Collection
}

var _ contract.IStatsRepository = (*StatsRepository)(nil)

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{db: db, snapshots: db.Collection(CollectionStats)}
}

func (r *StatsRepository) count(ctx context.Context, name string) (int64, error) {
	n, err := r.db.Collection(name).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", name, err)
	}
	return n, nil
}

func (r *StatsRepository) CountAll(ctx context.Context) (*entity.DashboardStats, error) {
	var stats entity.DashboardStats
	targets := []struct {
		name string
		dst  *int64
	}{
		{CollectionUsers, &stats.Users},
		{contract.CascadeCourse, &stats.Courses},
		{contract.CascadeEnrollments, &stats.Enrollments},
		{contract.CascadeCertificates, &stats.Certificates},
		{CollectionProducts, &stats.Products},
	}
	for _, t := range targets {
		n, err := r.count(ctx, t.name)
		if err != nil {
			return nil, err
		}
		*t.dst = n
	}
	return &stats, nil
}

func (r *StatsRepository) SaveSnapshot(ctx context.Context, snapshot *entity.StatsSnapshot) error {
	if _, err := r.snapshots.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save stats snapshot: %w", err)
	}
	return nil
}

func (r *StatsRepository) LatestSnapshots(ctx context.Context, n int) ([]*entity.StatsSnapshot, error) {
	opts := options.Find().SetSort(bson.M{"taken_at": -1}).SetLimit(int64(n))
	cursor, err := r.snapshots.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	snapshots := []*entity.StatsSnapshot{}
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode stats snapshots: %w", err)
	}
	return snapshots, nil
}

type ContactRepository struct {
	collection *mongo.Collection
}

var _ contract.IContactRepository = (*ContactRepository)(nil)

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{collection: db.Collection(CollectionContact)}
}

func (r *ContactRepository) CreateSubmission(ctx context.Context, submission *entity.ContactSubmission) error {
	if _, err := r.collection.InsertOne(ctx, submission); err != nil {
		return fmt.Errorf("failed to store contact submission: %w", err)
	}
	return nil
}

func (r *ContactRepository) ListSubmissions(ctx context.Context, page, pageSize int) ([]*entity.ContactSubmission, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count contact submissions: %w", err)
	}
	skip, limit := skipLimit(page, pageSize)
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact submissions: %w", err)
	}
	defer cursor.Close(ctx)

	submissions := []*entity.ContactSubmission{}
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode contact submissions: %w", err)
	}
	return submissions, total, nil
}
