package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chainal/red-wolf-project/module/core/domain"
	"github.com/chainal/red-wolf-project/module/core/internal/repository/database"
)

var _ database.PositionRepository = (*PositionRepo)(nil)

const collectionName = "user_positions"

type geoJSONPoint struct {
	Type        string     `bson:"type"`
	Coordinates [2]float64 `bson:"coordinates"` // [lng, lat]
}

type positionDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	User       string             `bson:"user"`
	CreateTime time.Time          `bson:"createtime"`
	Location   geoJSONPoint       `bson:"location"`
}

type PositionRepo struct {
	coll *mongo.Collection
}

func NewPositionRepo(db *mongo.Database) *PositionRepo {
	return &PositionRepo{coll: db.Collection(collectionName)}
}

// EnsureIndexes creates the 2dsphere index FindNear depends on.
// Called once at startup.
func (r *PositionRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	})
	if err != nil {
		return fmt.Errorf("create location index: %w", err)
	}
	return nil
}

func (r *PositionRepo) Insert(ctx context.Context, user string, loc domain.GeoPoint) (*domain.Position, error) {
	doc := positionDoc{
		User:       user,
		CreateTime: time.Now().UTC(),
		Location:   toGeoJSON(loc),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert position: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert position: unexpected id type %T", res.InsertedID)
	}

	return &domain.Position{
		ID:         id.Hex(),
		User:       user,
		CreateTime: doc.CreateTime,
		Location:   loc,
	}, nil
}

func (r *PositionRepo) DistinctUsers(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "user", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("distinct users: %w", err)
	}

	users := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			users = append(users, s)
		}
	}
	return users, nil
}

func (r *PositionRepo) FindNear(ctx context.Context, center domain.GeoPoint, maxDistanceMeters float64, limit int64) ([]domain.Position, error) {
	// $near on the 2dsphere index returns documents in ascending
	// distance order; that ordering is passed through unchanged.
	filter := bson.D{{Key: "location", Value: bson.D{{Key: "$near", Value: bson.D{
		{Key: "$geometry", Value: toGeoJSON(center)},
		{Key: "$maxDistance", Value: maxDistanceMeters},
	}}}}}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("find near: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var results []domain.Position
	for cur.Next(ctx) {
		var doc positionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode position: %w", err)
		}
		results = append(results, toDomain(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find near: %w", err)
	}
	return results, nil
}

func toGeoJSON(p domain.GeoPoint) geoJSONPoint {
	return geoJSONPoint{Type: "Point", Coordinates: [2]float64{p.Lng, p.Lat}}
}

func toDomain(doc *positionDoc) domain.Position {
	return domain.Position{
		ID:         doc.ID.Hex(),
		User:       doc.User,
		CreateTime: doc.CreateTime,
		Location: domain.GeoPoint{
			Lng: doc.Location.Coordinates[0],
			Lat: doc.Location.Coordinates[1],
		},
	}
}
