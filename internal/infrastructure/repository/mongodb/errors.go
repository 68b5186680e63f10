package mongodb

import (
	"errors"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names not covered by the course cascade.
const (
	CollectionUsers      = "users"
	CollectionTokens     = "tokens"
	CollectionActivities = "activities"
	CollectionProducts   = "products"
	CollectionContact    = "contact_submissions"
	CollectionStats      = "stats"
)

// mapErr translates driver errors into the storage sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return contract.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return contract.ErrDuplicate
	}
	return err
}

func skipLimit(page, pageSize int) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return int64((page - 1) * pageSize), int64(pageSize)
}
