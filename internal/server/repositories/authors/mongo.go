package authors

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "authors"

type authorDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
	Age  int32              `bson:"age"`
}

func (d *authorDocument) model() *models.Author {
	return &models.Author{ID: d.ID.Hex(), Name: d.Name, Age: d.Age}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, author *models.Author) (*models.Author, error) {
	doc := &authorDocument{ID: primitive.NewObjectID(), Name: author.Name, Age: author.Age}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return doc.model(), nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*models.Author, error) {
	q, err := filter.BSON(filter.Eq(filter.FieldID, id))
	if err != nil {
		return nil, err
	}

	doc := &authorDocument{}
	if err := r.coll.FindOne(ctx, q).Decode(doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return doc.model(), nil
}

func (r *MongoRepository) Find(ctx context.Context, f filter.Filter, sorts ...filter.Sort) ([]*models.Author, error) {
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

	var docs []authorDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	result := make([]*models.Author, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].model())
	}
	return result, nil
}
