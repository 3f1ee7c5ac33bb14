package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/miteshhgoyal/gearmates/internal/features/orders/domain"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderRepository implements the OrderRepository port on a MongoDB
// orders collection.
type MongoOrderRepository struct {
	col *mongo.Collection
}

// NewMongoOrderRepository creates the repository and its indexes.
func NewMongoOrderRepository(ctx context.Context, db *mongo.Database) (*MongoOrderRepository, error) {
	col := db.Collection("orders")

	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "awbCode", Value: 1}}},
		{Keys: bson.D{{Key: "shiprocketOrderId", Value: 1}}},
	})
	if err != nil {
		return nil, err
	}
	return &MongoOrderRepository{col: col}, nil
}

func (r *MongoOrderRepository) Insert(ctx context.Context, o *domain.Order) error {
	now := time.Now().UTC()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	o.CreatedAt = now
	o.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, o)
	return err
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never match a stored order.
		return nil, ports.ErrOrderNotFound
	}

	var order domain.Order
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ports.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *MongoOrderRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *MongoOrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoOrderRepository) find(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Order
	for cur.Next(ctx) {
		var o domain.Order
		if err := cur.Decode(&o); err != nil {
			return nil, err
		}
		out = append(out, &o)
	}
	return out, cur.Err()
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return r.set(ctx, id, bson.M{"status": status})
}

func (r *MongoOrderRepository) UpdatePayment(ctx context.Context, id string, paid bool) error {
	return r.set(ctx, id, bson.M{"payment": paid})
}

func (r *MongoOrderRepository) SetShipmentCreated(ctx context.Context, id string, remoteOrderID, remoteShipmentID int64) error {
	return r.set(ctx, id, bson.M{
		"shiprocketOrderId":    remoteOrderID,
		"shiprocketShipmentId": remoteShipmentID,
		"shiprocketStatus":     domain.ShipmentCreated,
	})
}

func (r *MongoOrderRepository) SetAWBAssigned(ctx context.Context, id string, awbCode string, courierID int64, courierName, trackingURL string) error {
	return r.set(ctx, id, bson.M{
		"awbCode":          awbCode,
		"courierId":        courierID,
		"courierName":      courierName,
		"trackingUrl":      trackingURL,
		"shiprocketStatus": domain.ShipmentAWBAssigned,
	})
}

func (r *MongoOrderRepository) SetLabelGenerated(ctx context.Context, id string, labelURL string) error {
	return r.set(ctx, id, bson.M{
		"labelUrl":         labelURL,
		"shiprocketStatus": domain.ShipmentLabelGenerated,
	})
}

func (r *MongoOrderRepository) SetPickupScheduled(ctx context.Context, id string, date time.Time, pickupStatus string) error {
	return r.set(ctx, id, bson.M{
		"pickupScheduled":  true,
		"pickupDate":       date,
		"pickupStatus":     pickupStatus,
		"shiprocketStatus": domain.ShipmentPickupScheduled,
		"status":           domain.OrderStatusShipped,
	})
}

// SetShipmentError records the failure without touching identifiers already
// persisted by earlier successful steps.
func (r *MongoOrderRepository) SetShipmentError(ctx context.Context, id string, message string) error {
	return r.set(ctx, id, bson.M{
		"shiprocketStatus": domain.ShipmentError,
		"shiprocketError":  message,
	})
}

func (r *MongoOrderRepository) UpdateTrackingInfo(ctx context.Context, id string, override ports.TrackingOverride) error {
	fields := bson.M{}
	if override.AWBCode != "" {
		fields["awbCode"] = override.AWBCode
	}
	if override.CourierName != "" {
		fields["courierName"] = override.CourierName
	}
	if override.TrackingURL != "" {
		fields["trackingUrl"] = override.TrackingURL
	}
	if override.ShiprocketOrderID != 0 {
		fields["shiprocketOrderId"] = override.ShiprocketOrderID
	}
	if override.ShiprocketShipmentID != 0 {
		fields["shiprocketShipmentId"] = override.ShiprocketShipmentID
	}
	if len(fields) == 0 {
		return nil
	}
	return r.set(ctx, id, fields)
}

func (r *MongoOrderRepository) AppendTrackingEvent(ctx context.Context, id string, event domain.TrackingEvent) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ports.ErrOrderNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"trackingHistory": event},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ports.ErrOrderNotFound
	}
	return nil
}

func (r *MongoOrderRepository) set(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ports.ErrOrderNotFound
	}

	fields["updatedAt"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ports.ErrOrderNotFound
	}
	return nil
}
