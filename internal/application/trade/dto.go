package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ==================== Sales Order DTOs ====================

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	OrderNumber  string          `json:"order_number" binding:"omitempty,max=50"`
	CustomerID   uuid.UUID       `json:"customer_id" binding:"required"`
	CustomerName string          `json:"customer_name" binding:"required,min=1,max=200"`
	ProductID    *uuid.UUID      `json:"product_id"`
	ProductName  string          `json:"product_name" binding:"omitempty,max=200"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" binding:"omitempty,max=20"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Remark       string          `json:"remark" binding:"omitempty,max=500"`
}

// UpdateOrderStatusRequest represents a request to change an order's status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=processing cancelled"`
}

// SalesOrderListFilter represents filter options for the sales order list
type SalesOrderListFilter struct {
	Search   string             `form:"search"`
	Status   *trade.OrderStatus `form:"status"`
	Page     int                `form:"page"`
	PageSize int                `form:"page_size"`
	OrderBy  string             `form:"order_by"`
	OrderDir string             `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	OrderNumber  string          `json:"order_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	ProductID    *uuid.UUID      `json:"product_id,omitempty"`
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	Remark       string          `json:"remark"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
	DeliveredAt  *time.Time      `json:"delivered_at,omitempty"`
	InvoicedAt   *time.Time      `json:"invoiced_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// OrderStatusSummary represents order counts grouped by status
type OrderStatusSummary struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Cancelled  int64 `json:"cancelled"`
	Delivered  int64 `json:"delivered"`
	Invoiced   int64 `json:"invoiced"`
	Total      int64 `json:"total"`
}

// ToSalesOrderResponse converts a domain sales order to a response DTO
func ToSalesOrderResponse(order *trade.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		ID:           order.ID,
		TenantID:     order.TenantID,
		OrderNumber:  order.OrderNumber,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		ProductID:    order.ProductID,
		ProductName:  order.ProductName,
		Quantity:     order.Quantity,
		Unit:         order.Unit,
		UnitPrice:    order.UnitPrice,
		TotalAmount:  order.TotalAmount,
		Status:       order.Status.String(),
		Remark:       order.Remark,
		CancelledAt:  order.CancelledAt,
		DeliveredAt:  order.DeliveredAt,
		InvoicedAt:   order.InvoicedAt,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

// ToSalesOrderResponses converts a slice of domain sales orders
func ToSalesOrderResponses(orders []trade.SalesOrder) []SalesOrderResponse {
	responses := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToSalesOrderResponse(&orders[i])
	}
	return responses
}
