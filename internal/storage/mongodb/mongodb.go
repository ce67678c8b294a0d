// Package mongodb provides a MongoDB-backed implementation of the
// storage.Storage interface using the official mongo-driver.
//
// Records live in a single collection (menuitems by default). Ids are
// ObjectIDs, exposed to clients as their 24 character hex form.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/Shadowrithik/Modify-data2/internal/config"
	"github.com/Shadowrithik/Modify-data2/internal/storage"
	"github.com/Shadowrithik/Modify-data2/internal/types"
)

const defaultDatabase = "test"

// MongoDB is the concrete implementation of storage.Storage.
// A *mongo.Client owns a connection pool and is safe for concurrent use.
type MongoDB struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// menuItemDocument is the BSON shape of a stored menu item.
type menuItemDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description *string            `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
}

// New connects to the server at cfg.Storage.MongoURI and verifies the
// connection with a ping. The connection is established once here and
// reused by every request until Close.
func New(ctx context.Context, cfg *config.Config) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Storage.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Storage.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongodb.New: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb.New: ping: %w", err)
	}

	dbName, err := databaseName(cfg.Storage.MongoURI, cfg.Storage.Database)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb.New: %w", err)
	}

	return &MongoDB{
		client: client,
		coll:   client.Database(dbName).Collection(cfg.Storage.Collection),
	}, nil
}

// databaseName picks the configured database, falling back to the one
// named in the connection string and then to "test".
func databaseName(uri, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("parse uri: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}

	return defaultDatabase, nil
}

func (m *MongoDB) CreateMenuItem(ctx context.Context, draft types.Draft) (types.MenuItem, error) {
	if err := draft.Validate(); err != nil {
		return types.MenuItem{}, fmt.Errorf("CreateMenuItem: %w", err)
	}

	doc := toDocument(primitive.NewObjectID(), draft)

	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return types.MenuItem{}, fmt.Errorf("CreateMenuItem: insert: %w", err)
	}

	return doc.item(), nil
}

func (m *MongoDB) GetMenuItems(ctx context.Context) ([]types.MenuItem, error) {
	// ObjectIDs start with their creation time, so sorting by _id is
	// insertion order.
	cur, err := m.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("GetMenuItems: find: %w", err)
	}

	var docs []menuItemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("GetMenuItems: decode: %w", err)
	}

	items := make([]types.MenuItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.item())
	}

	return items, nil
}

func (m *MongoDB) UpdateMenuItemByID(ctx context.Context, id string, fields map[string]any) (types.MenuItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: %w", err)
	}

	filter := bson.M{"_id": oid}

	var current menuItemDocument
	if err := m.coll.FindOne(ctx, filter).Decode(&current); err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: find: %w", notFound(err))
	}

	draft := types.DraftOf(current.item())
	if err := draft.Apply(fields); err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: %w", err)
	}
	if err := draft.Validate(); err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: %w", err)
	}

	var updated menuItemDocument
	err = m.coll.FindOneAndUpdate(ctx, filter, updateDocument(draft),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: update: %w", notFound(err))
	}

	return updated.item(), nil
}

func (m *MongoDB) DeleteMenuItemByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return fmt.Errorf("DeleteMenuItemByID: %w", err)
	}

	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("DeleteMenuItemByID: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("DeleteMenuItemByID: %w", storage.ErrNotFound)
	}

	return nil
}

func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w %q: %v", storage.ErrInvalidID, id, err)
	}
	return oid, nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	return err
}

func toDocument(id primitive.ObjectID, d types.Draft) menuItemDocument {
	item := d.Item(id.Hex())
	return menuItemDocument{
		ID:          id,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
	}
}

// updateDocument sets every schema field; a cleared description is
// removed from the document rather than stored as null.
func updateDocument(d types.Draft) bson.D {
	item := d.Item("")

	set := bson.D{
		{Key: "name", Value: item.Name},
		{Key: "price", Value: item.Price},
	}
	if item.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *item.Description})
		return bson.D{{Key: "$set", Value: set}}
	}

	return bson.D{
		{Key: "$set", Value: set},
		{Key: "$unset", Value: bson.D{{Key: "description", Value: ""}}},
	}
}

func (doc menuItemDocument) item() types.MenuItem {
	return types.MenuItem{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Description: doc.Description,
		Price:       doc.Price,
	}
}
