package todos

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "todos"

// Store is the persistence the lifecycle service depends on.
// FindByID returns (nil, nil) when no todo has the given id.
type Store interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*Todo, error)
	Find(ctx context.Context, filter Filter) ([]Todo, error)
	Save(ctx context.Context, todo *Todo) error
	SaveMany(ctx context.Context, todos []Todo) error
}

// Repository is the MongoDB Store.
type Repository struct {
	collection *mongo.Collection
}

var _ Store = (*Repository)(nil)

func NewRepository(ctx context.Context, db *mongo.Database) (*Repository, error) {
	collection := db.Collection(collectionName)

	// Create indexes
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("idx_todo_status")},
		{Keys: bson.D{{Key: "dueDatetime", Value: 1}}, Options: options.Index().SetName("idx_todo_due_datetime")},
	})
	if err != nil {
		return nil, fmt.Errorf("create todo indexes: %w", err)
	}

	return &Repository{collection: collection}, nil
}

func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Todo, error) {
	var todo Todo
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &todo, nil
}

func (r *Repository) Find(ctx context.Context, filter Filter) ([]Todo, error) {
	query, err := buildFilter(filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "creationDatetime", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var todos []Todo
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, err
	}

	if todos == nil {
		todos = []Todo{}
	}

	return todos, nil
}

// Save upserts a single todo, assigning an id first when it has none.
func (r *Repository) Save(ctx context.Context, todo *Todo) error {
	if todo.ID.IsZero() {
		todo.ID = primitive.NewObjectID()
	}

	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": todo.ID},
		todo,
		options.Replace().SetUpsert(true),
	)
	return err
}

// SaveMany upserts all todos in one unordered bulk write.
func (r *Repository) SaveMany(ctx context.Context, todos []Todo) error {
	if len(todos) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, len(todos))
	for i := range todos {
		if todos[i].ID.IsZero() {
			todos[i].ID = primitive.NewObjectID()
		}
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": todos[i].ID}).
			SetReplacement(todos[i]).
			SetUpsert(true)
	}

	_, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

func buildFilter(f Filter) (bson.M, error) {
	query := bson.M{}
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, fmt.Errorf("unknown todo status %q", f.Status)
		}
		query["status"] = string(f.Status)
	}
	if f.DueBefore != nil {
		query["dueDatetime"] = bson.M{"$lt": *f.DueBefore}
	}
	return query, nil
}
