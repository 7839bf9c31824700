package realtime

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"order_admin/internal/apperrors"
	"order_admin/internal/models"
	"order_admin/internal/services"
)

// Processor applies client-issued mutation events to the store and
// rebroadcasts the result. The protocol is fire-and-forget: a failed
// apply is logged server-side and the emitting client is not notified.
type Processor struct {
	orders   services.OrderService
	products services.ProductService
	hub      *Hub
	log      *zap.Logger
}

func NewProcessor(orders services.OrderService, products services.ProductService, hub *Hub, log *zap.Logger) *Processor {
	return &Processor{orders: orders, products: products, hub: hub, log: log}
}

// Apply validates and executes one inbound event on behalf of user.
// Role checks run here, server-side, against the identity resolved at
// the websocket handshake.
func (p *Processor) Apply(user *models.User, raw []byte) error {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("malformed event: %w", err)
	}

	switch env.Event {
	case EventUpdateStatus:
		var in StatusChangePayload
		if err := json.Unmarshal(env.Data, &in); err != nil {
			return fmt.Errorf("malformed %s payload: %w", env.Event, err)
		}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("invalid %s payload: %w", env.Event, err)
		}
		order, err := p.orders.SetStatus(in.OrderID, in.Status)
		if err != nil {
			return err
		}
		p.hub.Broadcast(EventStatusUpdated, order)
		p.log.Info("order status updated",
			zap.Uint("order_id", in.OrderID),
			zap.String("status", in.Status),
		)
		return nil

	case EventUpdateStock:
		if user.Role == string(models.RoleManager) {
			return apperrors.Forbidden("managers cannot update stock")
		}
		var in StockChangePayload
		if err := json.Unmarshal(env.Data, &in); err != nil {
			return fmt.Errorf("malformed %s payload: %w", env.Event, err)
		}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("invalid %s payload: %w", env.Event, err)
		}
		product, err := p.products.UpdateStock(in.ProductID, in.Stock)
		if err != nil {
			return err
		}
		p.hub.Broadcast(EventStockUpdated, product)
		p.log.Info("product stock updated", zap.Uint("product_id", in.ProductID))
		return nil

	case EventAssignOrder:
		var in AssignOrderPayload
		if err := json.Unmarshal(env.Data, &in); err != nil {
			return fmt.Errorf("malformed %s payload: %w", env.Event, err)
		}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("invalid %s payload: %w", env.Event, err)
		}
		order, err := p.orders.AssignOrder(in.OrderID, in.ManagerID)
		if err != nil {
			return err
		}
		p.hub.Broadcast(EventOrderAssigned, order)
		p.log.Info("order assigned",
			zap.Uint("order_id", in.OrderID),
			zap.Uint("manager_id", in.ManagerID),
		)
		return nil

	default:
		return fmt.Errorf("unknown event %q", env.Event)
	}
}
