package realtime

import (
	"encoding/json"
	"errors"
)

// Client-to-server event names.
const (
	EventUpdateStatus = "updateStatus"
	EventUpdateStock  = "updatestock"
	EventAssignOrder  = "assignorder"
)

// Server-to-all-clients event names.
const (
	EventStatusUpdated = "statusUpdated"
	EventStockUpdated  = "stockupdated"
	EventOrderAssigned = "assignorderupdated"
)

// Envelope is the tagged wire form of every realtime message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type StatusChangePayload struct {
	OrderID uint   `json:"id"`
	Status  string `json:"status"`
}

func (p *StatusChangePayload) Validate() error {
	if p.OrderID == 0 {
		return errors.New("id is required")
	}
	if p.Status == "" {
		return errors.New("status is required")
	}
	return nil
}

type StockChangePayload struct {
	ProductID uint `json:"id"`
	Stock     int  `json:"stock"`
}

func (p *StockChangePayload) Validate() error {
	if p.ProductID == 0 {
		return errors.New("id is required")
	}
	if p.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

type AssignOrderPayload struct {
	OrderID   uint `json:"orderId"`
	ManagerID uint `json:"managerId"`
}

func (p *AssignOrderPayload) Validate() error {
	if p.OrderID == 0 {
		return errors.New("orderId is required")
	}
	if p.ManagerID == 0 {
		return errors.New("managerId is required")
	}
	return nil
}
