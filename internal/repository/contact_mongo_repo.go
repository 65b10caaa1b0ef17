package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/noah-isme/portfolio-api/internal/models"
)

const contactCollection = "contacts"

type contactDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Subject   string        `bson:"subject"`
	Message   string        `bson:"message"`
	CreatedAt time.Time     `bson:"createdAt"`
}

type mongoContactRepository struct {
	collection *mongo.Collection
}

// NewMongoContactRepository constructs a repository storing messages in the contacts collection.
func NewMongoContactRepository(db *mongo.Database) ContactRepository {
	return &mongoContactRepository{collection: db.Collection(contactCollection)}
}

func (r *mongoContactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	doc := contactDocument{
		Name:      message.Name,
		Email:     message.Email,
		Subject:   message.Subject,
		Message:   message.Message,
		CreatedAt: message.CreatedAt,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return err
	}

	if id, ok := result.InsertedID.(bson.ObjectID); ok {
		message.ID = id.Hex()
	}
	return nil
}

func (r *mongoContactRepository) ListRecent(ctx context.Context) ([]models.ContactMessage, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, newestFirst())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []contactDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	messages := make([]models.ContactMessage, 0, len(docs))
	for _, doc := range docs {
		messages = append(messages, models.ContactMessage{
			ID:        doc.ID.Hex(),
			Name:      doc.Name,
			Email:     doc.Email,
			Subject:   doc.Subject,
			Message:   doc.Message,
			CreatedAt: doc.CreatedAt,
		})
	}
	return messages, nil
}

func newestFirst() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
