package state

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists users and reminders in MongoDB. Document ids are stored
// as ObjectID hex strings so they round-trip through the JSON API unchanged.
type MongoStore struct {
	client    *mongo.Client
	reminders *mongo.Collection
	users     *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	db := client.Database(dbName)
	return &MongoStore{
		client:    client,
		reminders: db.Collection("reminders"),
		users:     db.Collection("users"),
	}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) CreateReminder(ctx context.Context, rec ReminderRecord) (ReminderRecord, error) {
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = primitive.NewObjectID().Hex()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	if _, err := s.reminders.InsertOne(ctx, rec); err != nil {
		return ReminderRecord{}, fmt.Errorf("insert reminder: %w", err)
	}
	return rec, nil
}

func (s *MongoStore) ListReminders(ctx context.Context, userID string) ([]ReminderRecord, error) {
	return s.findReminders(ctx, bson.M{"user_id": userID})
}

func (s *MongoStore) ListUncompleted(ctx context.Context, userID string) ([]ReminderRecord, error) {
	return s.findReminders(ctx, bson.M{"user_id": userID, "completed": false})
}

func (s *MongoStore) findReminders(ctx context.Context, filter bson.M) ([]ReminderRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.reminders.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find reminders: %w", err)
	}
	defer cur.Close(ctx)
	out := make([]ReminderRecord, 0, 16)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}
	return out, nil
}

func (s *MongoStore) DeleteReminder(ctx context.Context, userID, id string) error {
	res, err := s.reminders.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	res, err := s.reminders.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"completed": completed, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user UserRecord) (UserRecord, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	count, err := s.users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return UserRecord{}, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return UserRecord{}, ErrDuplicateEmail
	}
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	user.Email = email
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return UserRecord{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (UserRecord, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user UserRecord
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return UserRecord{}, false, nil
	}
	if err != nil {
		return UserRecord{}, false, fmt.Errorf("find user: %w", err)
	}
	return user, true, nil
}

func (s *MongoStore) GetUser(ctx context.Context, id string) (UserRecord, bool, error) {
	var user UserRecord
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return UserRecord{}, false, nil
	}
	if err != nil {
		return UserRecord{}, false, fmt.Errorf("find user: %w", err)
	}
	return user, true, nil
}
