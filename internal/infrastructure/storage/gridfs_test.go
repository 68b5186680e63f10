package storage

import (
	"context"
	"testing"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestGridFSStorage(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("public url", func(mt *mtest.T) {
		s, err := NewGridFSStorage(mt.DB, "http://localhost:8080/")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api/v1/files/abc", s.PublicURL("abc"))
	})

	mt.Run("malformed ids are not found", func(mt *mtest.T) {
		s, err := NewGridFSStorage(mt.DB, "http://localhost:8080")
		require.NoError(t, err)

		_, _, err = s.Open(context.Background(), "not-an-object-id")
		assert.ErrorIs(t, err, contract.ErrNotFound)
		assert.ErrorIs(t, s.Delete(context.Background(), "nope"), contract.ErrNotFound)
	})
}
