package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
)

type OrderRepositoryMongo struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewOrderRepositoryMongo(db *mongo.Database, log *logger.Logger) (*OrderRepositoryMongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection("orders")
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "payment_info.order_id", Value: 1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order indexes: %w", err)
	}

	return &OrderRepositoryMongo{collection: collection, logger: log}, nil
}

func (r *OrderRepositoryMongo) Create(ctx context.Context, order *entities.Order) error {
	_, err := r.collection.InsertOne(ctx, toOrderDocument(order))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrOrderAlreadyExists
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *OrderRepositoryMongo) GetByID(ctx context.Context, orderID string) (*entities.Order, error) {
	return r.findOne(ctx, bson.M{"order_id": orderID})
}

func (r *OrderRepositoryMongo) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entities.Order, error) {
	return r.findOne(ctx, bson.M{"payment_info.order_id": gatewayOrderID})
}

func (r *OrderRepositoryMongo) findOne(ctx context.Context, filter bson.M) (*entities.Order, error) {
	var doc OrderDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repositories.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return toOrderEntity(&doc), nil
}

func (r *OrderRepositoryMongo) ListByUser(ctx context.Context, userID string) ([]*entities.Order, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *OrderRepositoryMongo) ListAll(ctx context.Context) ([]*entities.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *OrderRepositoryMongo) list(ctx context.Context, filter bson.M) ([]*entities.Order, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*entities.Order
	for cursor.Next(ctx) {
		var doc OrderDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, toOrderEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("order cursor failed: %w", err)
	}
	return orders, nil
}

// SetGatewayOrderID only matches while the field is still empty, so the
// gateway order id can never be rebound.
func (r *OrderRepositoryMongo) SetGatewayOrderID(ctx context.Context, orderID, gatewayOrderID string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"order_id": orderID,
			"$or": bson.A{
				bson.M{"payment_info.order_id": ""},
				bson.M{"payment_info.order_id": bson.M{"$exists": false}},
			},
		},
		bson.M{"$set": bson.M{"payment_info.order_id": gatewayOrderID}},
	)
	if err != nil {
		return fmt.Errorf("failed to set gateway order id: %w", err)
	}
	if result.MatchedCount == 0 {
		if exists, eerr := r.exists(ctx, orderID); eerr == nil && exists {
			return repositories.ErrGatewayOrderBound
		}
		return repositories.ErrOrderNotFound
	}
	return nil
}

// Transition writes the lifecycle fields with the stored status as a guard;
// a concurrent transition makes the filter miss and surfaces as a conflict.
func (r *OrderRepositoryMongo) Transition(ctx context.Context, order *entities.Order, from entities.Status) error {
	doc := toOrderDocument(order)
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"order_id": order.OrderID, "status": string(from)},
		bson.M{"$set": bson.M{
			"status":              doc.Status,
			"is_paid":             doc.IsPaid,
			"paid_at":             doc.PaidAt,
			"is_shipped":          doc.IsShipped,
			"shipped_at":          doc.ShippedAt,
			"is_delivered":        doc.IsDelivered,
			"delivered_at":        doc.DeliveredAt,
			"delivery_partner":    doc.DeliveryPartner,
			"tracking_id":         doc.TrackingID,
			"tracking_link":       doc.TrackingLink,
			"cancellation_reason": doc.CancellationReason,
			"payment_info":        doc.PaymentInfo,
			"updated_at":          doc.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if result.MatchedCount == 0 {
		if exists, eerr := r.exists(ctx, order.OrderID); eerr == nil && !exists {
			return repositories.ErrOrderNotFound
		}
		r.logger.Warn("order transition lost a concurrent update",
			"order_id", order.OrderID,
			"expected_status", string(from),
			"target_status", string(order.Status))
		return repositories.ErrStatusConflict
	}
	return nil
}

func (r *OrderRepositoryMongo) exists(ctx context.Context, orderID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"order_id": orderID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func toOrderDocument(order *entities.Order) *OrderDocument {
	doc := &OrderDocument{
		OrderID:   order.OrderID,
		UserID:    order.UserID,
		UserName:  order.UserName,
		UserEmail: order.UserEmail,
		Items:     make([]OrderItemDocument, len(order.Items)),
		ShippingAddress: AddressDocument{
			FullName:    order.ShippingAddress.FullName,
			PhoneNumber: order.ShippingAddress.PhoneNumber,
			Address:     order.ShippingAddress.Address,
			City:        order.ShippingAddress.City,
			State:       order.ShippingAddress.State,
			PostalCode:  order.ShippingAddress.PostalCode,
			Country:     order.ShippingAddress.Country,
		},
		PaymentMethod: string(order.PaymentMethod),
		PaymentInfo: PaymentInfoDocument{
			PaymentID: order.PaymentInfo.PaymentID,
			Status:    order.PaymentInfo.Status,
			OrderID:   order.PaymentInfo.OrderID,
			Signature: order.PaymentInfo.Signature,
		},
		ItemsPrice:         order.ItemsPrice,
		TaxPrice:           order.TaxPrice,
		ShippingPrice:      order.ShippingPrice,
		TotalPrice:         order.TotalPrice,
		Status:             string(order.Status),
		IsPaid:             order.IsPaid,
		PaidAt:             order.PaidAt,
		IsShipped:          order.IsShipped,
		ShippedAt:          order.ShippedAt,
		IsDelivered:        order.IsDelivered,
		DeliveredAt:        order.DeliveredAt,
		DeliveryPartner:    order.DeliveryPartner,
		TrackingID:         order.TrackingID,
		TrackingLink:       order.TrackingLink,
		CancellationReason: order.CancellationReason,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
	for i, item := range order.Items {
		doc.Items[i] = OrderItemDocument{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Qty:       item.Qty,
			Price:     item.Price,
		}
	}
	return doc
}

func toOrderEntity(doc *OrderDocument) *entities.Order {
	items := make([]entities.OrderItem, len(doc.Items))
	for i, item := range doc.Items {
		items[i] = entities.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Qty:       item.Qty,
			Price:     item.Price,
		}
	}
	return &entities.Order{
		OrderID:   doc.OrderID,
		UserID:    doc.UserID,
		UserName:  doc.UserName,
		UserEmail: doc.UserEmail,
		Items:     items,
		ShippingAddress: entities.ShippingAddress{
			FullName:    doc.ShippingAddress.FullName,
			PhoneNumber: doc.ShippingAddress.PhoneNumber,
			Address:     doc.ShippingAddress.Address,
			City:        doc.ShippingAddress.City,
			State:       doc.ShippingAddress.State,
			PostalCode:  doc.ShippingAddress.PostalCode,
			Country:     doc.ShippingAddress.Country,
		},
		PaymentMethod: entities.PaymentMethod(doc.PaymentMethod),
		PaymentInfo: entities.PaymentInfo{
			PaymentID: doc.PaymentInfo.PaymentID,
			Status:    doc.PaymentInfo.Status,
			OrderID:   doc.PaymentInfo.OrderID,
			Signature: doc.PaymentInfo.Signature,
		},
		ItemsPrice:         doc.ItemsPrice,
		TaxPrice:           doc.TaxPrice,
		ShippingPrice:      doc.ShippingPrice,
		TotalPrice:         doc.TotalPrice,
		Status:             entities.Status(doc.Status),
		IsPaid:             doc.IsPaid,
		PaidAt:             doc.PaidAt,
		IsShipped:          doc.IsShipped,
		ShippedAt:          doc.ShippedAt,
		IsDelivered:        doc.IsDelivered,
		DeliveredAt:        doc.DeliveredAt,
		DeliveryPartner:    doc.DeliveryPartner,
		TrackingID:         doc.TrackingID,
		TrackingLink:       doc.TrackingLink,
		CancellationReason: doc.CancellationReason,
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
	}
}
