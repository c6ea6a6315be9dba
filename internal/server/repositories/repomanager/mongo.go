package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/authors"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultMongoDatabase is used when the connection string names no database.
const DefaultMongoDatabase = "graph-books"

type MongoRepositoryManager struct {
	client  *mongo.Client
	users   *users.MongoRepository
	authors *authors.MongoRepository
	books   *books.MongoRepository
}

func NewMongoRepositoryManager(ctx context.Context, dsn string) (*MongoRepositoryManager, error) {
	name, err := mongoDatabaseName(dsn)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dsn))
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	db := client.Database(name)
	return &MongoRepositoryManager{
		client:  client,
		users:   users.NewMongoRepository(db),
		authors: authors.NewMongoRepository(db),
		books:   books.NewMongoRepository(db),
	}, nil
}

func mongoDatabaseName(dsn string) (string, error) {
	cs, err := connstring.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mongo dsn: %w", err)
	}
	if cs.Database == "" {
		return DefaultMongoDatabase, nil
	}
	return cs.Database, nil
}

// RunMigrations creates the indexes the repositories rely on.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := m.users.EnsureIndexes(ctx); err != nil {
		return err
	}
	return m.books.EnsureIndexes(ctx)
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoRepositoryManager) Users() users.Repository     { return m.users }
func (m *MongoRepositoryManager) Authors() authors.Repository { return m.authors }
func (m *MongoRepositoryManager) Books() books.Repository     { return m.books }
