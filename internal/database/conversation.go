package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"votebot/entity"
)

func (m *MongoDB) CreateConversation(ctx context.Context, conversation *entity.Conversation) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)
	_, err = collection.InsertOne(ctx, conversation)
	if err != nil {
		return fmt.Errorf("mongodb insert conversation: %w", err)
	}
	return nil
}

// GetConversation loads a conversation by UUID. Returns (nil, nil) when absent.
func (m *MongoDB) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)
	filter := bson.D{{Key: "uuid", Value: id}}

	var conversation entity.Conversation
	err = collection.FindOne(ctx, filter).Decode(&conversation)
	if err != nil {
		return nil, m.findError(err)
	}
	return &conversation, nil
}

// GetRecentConversationByUser returns the latest conversation the user is a
// recipient of, active or not.
func (m *MongoDB) GetRecentConversationByUser(ctx context.Context, userID string) (*entity.Conversation, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)
	filter := bson.D{{Key: "recipients", Value: userID}}
	opts := options.FindOne().SetSort(bson.D{{Key: "created", Value: -1}})

	var conversation entity.Conversation
	err = collection.FindOne(ctx, filter, opts).Decode(&conversation)
	if err != nil {
		return nil, m.findError(err)
	}
	return &conversation, nil
}

func (m *MongoDB) UpdateConversation(ctx context.Context, conversation *entity.Conversation) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	conversation.Updated = time.Now()

	collection := connection.Database(m.database).Collection(conversationsCollection)
	filter := bson.D{{Key: "uuid", Value: conversation.UUID}}
	update := bson.M{"$set": conversation}

	_, err = collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb update conversation: %w", err)
	}
	return nil
}

// CloseConversation marks a conversation inactive. The record stays around.
func (m *MongoDB) CloseConversation(ctx context.Context, id string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)
	filter := bson.D{{Key: "uuid", Value: id}}
	update := bson.M{"$set": bson.M{"active": false, "updated": time.Now()}}

	_, err = collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb close conversation: %w", err)
	}
	return nil
}
