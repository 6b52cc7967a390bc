package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIDFilter(t *testing.T) {
	hex := "6718f9a2c3b1e4d5f6a7b8c9"
	oid, err := primitive.ObjectIDFromHex(hex)
	assert.NoError(t, err)

	assert.Equal(t, bson.M{"_id": oid}, idFilter(hex))
	assert.Equal(t, bson.M{"_id": "welcome"}, idFilter("welcome"))
}

func TestNormalize(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	got := normalize(bson.M{
		"_id":     oid,
		"title":   "Edge AI",
		"created": primitive.NewDateTimeFromTime(when),
		"meta":    bson.D{{Key: "description", Value: "Models on devices."}},
		"authors": bson.A{bson.M{"ref": oid}, "jane"},
	})

	assert.Equal(t, map[string]any{
		"_id":     oid.Hex(),
		"title":   "Edge AI",
		"created": when,
		"meta":    map[string]any{"description": "Models on devices."},
		"authors": []any{map[string]any{"ref": oid.Hex()}, "jane"},
	}, got)
}
