package books

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "books"

// bookDocument keys match the logical filter field names, so compiled
// filters address them directly.
type bookDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Genre      string             `bson:"genre"`
	AuthorID   string             `bson:"authorId"`
	Cover      string             `bson:"cover,omitempty"`
	URL        string             `bson:"url,omitempty"`
	IsFavorite bool               `bson:"isFavorite"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d *bookDocument) model() *models.Book {
	return &models.Book{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Genre:      d.Genre,
		AuthorID:   d.AuthorID,
		Cover:      d.Cover,
		URL:        d.URL,
		IsFavorite: d.IsFavorite,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes backs the author lookup and the default createdAt ordering.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "authorId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := &bookDocument{
		ID:         primitive.NewObjectID(),
		Name:       book.Name,
		Genre:      book.Genre,
		AuthorID:   book.AuthorID,
		Cover:      book.Cover,
		URL:        book.URL,
		IsFavorite: book.IsFavorite,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return doc.model(), nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*models.Book, error) {
	q, err := filter.BSON(filter.Eq(filter.FieldID, id))
	if err != nil {
		return nil, err
	}
	return decodeOne(r.coll.FindOne(ctx, q))
}

func (r *MongoRepository) Find(ctx context.Context, f filter.Filter, sorts ...filter.Sort) ([]*models.Book, error) {
	q, err := filter.BSON(f)
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if len(sorts) > 0 {
		opts.SetSort(filter.BSONSort(sorts...))
	}

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	var docs []bookDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	result := make([]*models.Book, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].model())
	}
	return result, nil
}

func (r *MongoRepository) UpdateByID(ctx context.Context, id string, patch models.BookPatch) (*models.Book, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}
	q, err := filter.BSON(filter.Eq(filter.FieldID, id))
	if err != nil {
		return nil, err
	}

	set := patchSet(patch)
	set["updatedAt"] = time.Now().UTC().Truncate(time.Millisecond)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeOne(r.coll.FindOneAndUpdate(ctx, q, bson.M{"$set": set}, opts))
}

func (r *MongoRepository) DeleteByID(ctx context.Context, id string) (*models.Book, error) {
	q, err := filter.BSON(filter.Eq(filter.FieldID, id))
	if err != nil {
		return nil, err
	}
	return decodeOne(r.coll.FindOneAndDelete(ctx, q))
}

func patchSet(patch models.BookPatch) bson.M {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Genre != nil {
		set["genre"] = *patch.Genre
	}
	if patch.AuthorID != nil {
		set["authorId"] = *patch.AuthorID
	}
	if patch.Cover != nil {
		set["cover"] = *patch.Cover
	}
	if patch.URL != nil {
		set["url"] = *patch.URL
	}
	if patch.IsFavorite != nil {
		set["isFavorite"] = *patch.IsFavorite
	}
	return set
}

func decodeOne(res *mongo.SingleResult) (*models.Book, error) {
	doc := &bookDocument{}
	if err := res.Decode(doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return doc.model(), nil
}
