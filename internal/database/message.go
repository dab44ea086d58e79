package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"votebot/entity"
)

// CreateMessage stores a message, stamping it with the next per-conversation
// sequence number so pollers can ask for "everything after N".
func (m *MongoDB) CreateMessage(ctx context.Context, message *entity.Message) (*entity.Message, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	db := connection.Database(m.database)

	counters := db.Collection(countersCollection)
	filter := bson.D{{Key: "_id", Value: "messages." + message.ConversationID}}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return nil, fmt.Errorf("mongodb message counter: %w", err)
	}
	message.Seq = counter.Seq

	_, err = db.Collection(messagesCollection).InsertOne(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("mongodb insert message: %w", err)
	}
	return message, nil
}

// ListMessagesSince returns a conversation's messages with Seq > afterSeq,
// oldest first.
func (m *MongoDB) ListMessagesSince(ctx context.Context, conversationID string, afterSeq int64) ([]entity.Message, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(messagesCollection)
	filter := bson.D{
		{Key: "conversation_id", Value: conversationID},
		{Key: "seq", Value: bson.M{"$gt": afterSeq}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []entity.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("mongodb decode messages: %w", err)
	}
	return messages, nil
}
