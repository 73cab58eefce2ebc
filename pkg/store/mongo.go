package store

import (
	"context"
	stderrors "errors"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/gridtable/pkg/errors"
)

// Default MongoDB names.
const (
	DefaultMongoDatabase   = "gridtable"
	DefaultMongoCollection = "tables"
)

// Mongo stores one document per record, keyed by id.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *log.Logger
}

// NewMongo uses an existing collection. Close does not disconnect.
func NewMongo(coll *mongo.Collection, logger *log.Logger) *Mongo {
	return &Mongo{coll: coll, logger: orDiscard(logger)}
}

// DialMongo connects to uri and uses the tables collection of database.
func DialMongo(ctx context.Context, uri, database string, logger *log.Logger) (*Mongo, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	m := NewMongo(client.Database(database).Collection(DefaultMongoCollection), logger)
	m.client = client
	m.logger.Info("connected to mongodb", "database", database)
	return m, nil
}

func (m *Mongo) Put(ctx context.Context, rec Record) error {
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store table %s", rec.ID)
	}
	m.logger.Debug("stored table", "id", rec.ID, "version", rec.Version)
	return nil
}

func (m *Mongo) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, notFound(id)
	}
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInternal, err, "load table %s", id)
	}
	return rec, nil
}

func (m *Mongo) List(ctx context.Context) ([]Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list tables")
	}
	var out []Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list tables")
	}
	return out, nil
}

func (m *Mongo) Delete(ctx context.Context, id string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete table %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	m.logger.Debug("deleted table", "id", id)
	return nil
}

// Close disconnects the client if DialMongo created it.
func (m *Mongo) Close() error {
	if m.client != nil {
		return m.client.Disconnect(context.Background())
	}
	return nil
}

var _ Store = (*Mongo)(nil)
