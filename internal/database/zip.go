package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"votebot/entity"
)

// FindZip resolves a zip code to its places. Absent codes are
// entity.ErrZipNotFound; anything else is an infrastructure failure.
func (m *MongoDB) FindZip(ctx context.Context, code string) (*entity.Zip, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(zipsCollection)
	filter := bson.D{{Key: "code", Value: code}}

	var zip entity.Zip
	err = collection.FindOne(ctx, filter).Decode(&zip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrZipNotFound
		}
		return nil, fmt.Errorf("mongodb find zip: %w", err)
	}
	return &zip, nil
}
