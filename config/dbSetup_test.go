package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func isUnique(m mongo.IndexModel) bool {
	return m.Options != nil && m.Options.Unique != nil && *m.Options.Unique
}

func TestReviewIndexIsUniquePerPostAndAuthor(t *testing.T) {
	require.Len(t, reviewIndexes, 1)
	idx := reviewIndexes[0]
	assert.Equal(t, bson.D{{Key: "post", Value: 1}, {Key: "author", Value: 1}}, idx.Keys)
	assert.True(t, isUnique(idx))
}

func TestUserIndexesAreUnique(t *testing.T) {
	for _, idx := range userIndexes {
		assert.True(t, isUnique(idx), idx.Keys)
	}
}

func TestPostIndexesIncludeGeometry(t *testing.T) {
	assert.Contains(t, postIndexes, mongo.IndexModel{Keys: bson.D{{Key: "geometry", Value: "2dsphere"}}})
}
