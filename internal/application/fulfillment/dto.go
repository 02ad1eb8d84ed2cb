package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/fulfillment"
)

// ==================== Delivery DTOs ====================

// AdvanceDeliveryRequest represents a request to move a delivery forward
type AdvanceDeliveryRequest struct {
	Status       string     `json:"status" binding:"required,oneof=in_transit delivered"`
	DeliveryDate *time.Time `json:"delivery_date"`
}

// DeliveryListFilter represents filter options for the delivery list
type DeliveryListFilter struct {
	Status   *fulfillment.DeliveryStatus `form:"status"`
	Search   string                      `form:"search"`
	Page     int                         `form:"page"`
	PageSize int                         `form:"page_size"`
}

// DeliveryResponse represents a delivery in API responses
type DeliveryResponse struct {
	ID               uuid.UUID  `json:"id"`
	TenantID         uuid.UUID  `json:"tenant_id"`
	SalesOrderID     uuid.UUID  `json:"sales_order_id"`
	SalesOrderNumber string     `json:"sales_order_number"`
	CustomerName     string     `json:"customer_name"`
	Status           string     `json:"status"`
	DeliveryDate     *time.Time `json:"delivery_date,omitempty"`
	Remark           string     `json:"remark"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ToDeliveryResponse converts a domain delivery to a response DTO
func ToDeliveryResponse(d *fulfillment.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:               d.ID,
		TenantID:         d.TenantID,
		SalesOrderID:     d.SalesOrderID,
		SalesOrderNumber: d.SalesOrderNumber,
		CustomerName:     d.CustomerName,
		Status:           d.Status.String(),
		DeliveryDate:     d.DeliveryDate,
		Remark:           d.Remark,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// ToDeliveryResponses converts a slice of domain deliveries
func ToDeliveryResponses(deliveries []fulfillment.Delivery) []DeliveryResponse {
	responses := make([]DeliveryResponse, len(deliveries))
	for i := range deliveries {
		responses[i] = ToDeliveryResponse(&deliveries[i])
	}
	return responses
}
