package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"votebot/entity"
)

// GetUser loads a user by UUID or username. Returns (nil, nil) when absent.
func (m *MongoDB) GetUser(ctx context.Context, id string) (*entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "$or", Value: []bson.D{
		{{Key: "uuid", Value: id}},
		{{Key: "username", Value: id}},
	}}}

	var user entity.User
	err = collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}

	return &user, nil
}

// GetUserByUsername loads a user by their normalized phone/handle only.
func (m *MongoDB) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "username", Value: entity.NormalizeUsername(username)}}

	var user entity.User
	err = collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}
	return &user, nil
}

// UpsertUser creates or replaces a user keyed by username.
func (m *MongoDB) UpsertUser(ctx context.Context, user *entity.User) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	user.LastSeen = time.Now()

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "username", Value: user.Username}}
	update := bson.M{"$set": user}

	_, err = collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

// WipeUser removes a user's record along with every conversation they were a
// recipient of and all of that traffic. A username with no record is a no-op.
func (m *MongoDB) WipeUser(ctx context.Context, username string) error {
	user, err := m.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	db := connection.Database(m.database)

	cursor, err := db.Collection(conversationsCollection).
		Find(ctx, bson.D{{Key: "recipients", Value: user.UUID}})
	if err != nil {
		return fmt.Errorf("mongodb find conversations: %w", err)
	}
	var conversations []entity.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return fmt.Errorf("mongodb decode conversations: %w", err)
	}

	conversationIDs := make([]string, len(conversations))
	for i, c := range conversations {
		conversationIDs[i] = c.UUID
	}

	if len(conversationIDs) > 0 {
		messageFilter := bson.D{{Key: "$or", Value: []bson.M{
			{"conversation_id": bson.M{"$in": conversationIDs}},
			{"user_id": user.UUID},
		}}}
		if _, err := db.Collection(messagesCollection).DeleteMany(ctx, messageFilter); err != nil {
			return fmt.Errorf("mongodb delete messages: %w", err)
		}
		if _, err := db.Collection(conversationsCollection).
			DeleteMany(ctx, bson.M{"uuid": bson.M{"$in": conversationIDs}}); err != nil {
			return fmt.Errorf("mongodb delete conversations: %w", err)
		}
	}

	if _, err := db.Collection(usersCollection).DeleteOne(ctx, bson.D{{Key: "uuid", Value: user.UUID}}); err != nil {
		return fmt.Errorf("mongodb delete user: %w", err)
	}
	return nil
}

// UpdateUser persists the full user record by UUID.
func (m *MongoDB) UpdateUser(ctx context.Context, user *entity.User) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	user.LastSeen = time.Now()

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "uuid", Value: user.UUID}}
	update := bson.M{"$set": user}

	_, err = collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb update error: %w", err)
	}
	return nil
}
