package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ---------- DTO layer ------------------
type tokenDTO struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	TokenType string    `bson:"token_type"`
	TokenHash string    `bson:"token_hash"`
	Verifier  string    `bson:"verifier,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
	Revoke    bool      `bson:"revoke"`
}

func (t *tokenDTO) ToEntity() *entity.Token {
	return &entity.Token{
		ID:        t.ID,
		UserID:    t.UserID,
		TokenType: entity.TokenType(t.TokenType),
		Verifier:  t.Verifier,
		TokenHash: t.TokenHash,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		Revoke:    t.Revoke,
	}
}

func FromTokenEntityToDTO(t *entity.Token) *tokenDTO {
	return &tokenDTO{
		ID:        t.ID,
		UserID:    t.UserID,
		TokenType: string(t.TokenType),
		Verifier:  t.Verifier,
		TokenHash: t.TokenHash,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		Revoke:    t.Revoke,
	}
}

// ---------------------------------------

type TokenRepository struct {
	Collection *mongo.Collection
}

// check in compile time if TokenRepository implements ITokenRepository
var _ contract.ITokenRepository = (*TokenRepository)(nil)

func NewTokenRepository(colln *mongo.Collection) *TokenRepository {
	return &TokenRepository{
		Collection: colln,
	}
}

func (r *TokenRepository) CreateToken(ctx context.Context, token *entity.Token) error {
	if _, err := r.Collection.InsertOne(ctx, FromTokenEntityToDTO(token)); err != nil {
		return fmt.Errorf("failed to store token: %w", mapErr(err))
	}
	return nil
}

func (r *TokenRepository) findOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*entity.Token, error) {
	var dto tokenDTO
	if err := r.Collection.FindOne(ctx, filter, opts...).Decode(&dto); err != nil {
		return nil, mapErr(err)
	}
	return dto.ToEntity(), nil
}

func (r *TokenRepository) GetTokenByID(ctx context.Context, id string) (*entity.Token, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetTokenByUserID returns the newest live token of the given type.
func (r *TokenRepository) GetTokenByUserID(ctx context.Context, userID string, tokenType entity.TokenType) (*entity.Token, error) {
	filter := bson.M{"user_id": userID, "token_type": string(tokenType), "revoke": false}
	return r.findOne(ctx, filter, options.FindOne().SetSort(bson.M{"created_at": -1}))
}

// UpdateToken updates the token hash and expiry
func (r *TokenRepository) UpdateToken(ctx context.Context, tokenID string, tokenHash string, expiry time.Time) error {
	filter := bson.M{"_id": tokenID}
	update := bson.M{"$set": bson.M{"token_hash": tokenHash, "expires_at": expiry}}
	res, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}

func (r *TokenRepository) GetTokenByVerifier(ctx context.Context, verifier string) (*entity.Token, error) {
	return r.findOne(ctx, bson.M{"verifier": verifier})
}

// Revoke marks a token as revoked by its ID
func (r *TokenRepository) RevokeToken(ctx context.Context, id string) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"revoke": true}}
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}

func (r *TokenRepository) RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error {
	filter := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "token_type", Value: string(tokenType)},
		{Key: "revoke", Value: false},
	}
	update := bson.D{
		{Key: "$set", Value: bson.M{"revoke": true}},
	}
	if _, err := r.Collection.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}
