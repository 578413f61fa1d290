package domain

import "time"

// ServiceRequestType identifies the kind of request opened by the customer.
type ServiceRequestType string

const (
	RequestPortability  ServiceRequestType = "PORTABILITY"
	RequestChipSwap     ServiceRequestType = "CHIP_SWAP"
	RequestBlock        ServiceRequestType = "BLOCK"
	RequestUnblock      ServiceRequestType = "UNBLOCK"
	RequestCancellation ServiceRequestType = "CANCELLATION"
)

// ServiceRequestStatus is the processing state of a request.
type ServiceRequestStatus string

const (
	RequestPending    ServiceRequestStatus = "PENDING"
	RequestInProgress ServiceRequestStatus = "IN_PROGRESS"
	RequestCompleted  ServiceRequestStatus = "COMPLETED"
	RequestCancelled  ServiceRequestStatus = "CANCELLED"
)

// ChipSwapReason describes why a chip swap is requested.
type ChipSwapReason string

const (
	SwapLost        ChipSwapReason = "LOST"
	SwapStolen      ChipSwapReason = "STOLEN"
	SwapDefective   ChipSwapReason = "DEFECTIVE"
	SwapESIMUpgrade ChipSwapReason = "ESIM_UPGRADE"
)

// ChipType distinguishes physical chips from eSIM profiles.
type ChipType string

const (
	ChipPhysical ChipType = "PHYSICAL"
	ChipESIM     ChipType = "ESIM"
)

// RequestDetails carries the type-specific payload of a service request.
// Only the fields relevant to the request type are set.
type RequestDetails struct {
	// Portability
	NumberToPort    string `json:"numberToPort,omitempty" bson:"number_to_port,omitempty"`
	CurrentOperator string `json:"currentOperator,omitempty" bson:"current_operator,omitempty"`
	DesiredDate     string `json:"desiredDate,omitempty" bson:"desired_date,omitempty"`

	// Chip swap
	SwapReason      ChipSwapReason `json:"swapReason,omitempty" bson:"swap_reason,omitempty"`
	ChipType        ChipType       `json:"chipType,omitempty" bson:"chip_type,omitempty"`
	DeliveryAddress *Address       `json:"deliveryAddress,omitempty" bson:"delivery_address,omitempty"`

	// Block / cancellation
	Reason   string `json:"reason,omitempty" bson:"reason,omitempty"`
	Feedback string `json:"feedback,omitempty" bson:"feedback,omitempty"`
}

// TargetLineStatus returns the line status a request of this type asks the
// carrier core to apply, when it asks for one at all.
func (t ServiceRequestType) TargetLineStatus() (LineStatus, bool) {
	switch t {
	case RequestBlock:
		return LineBlocked, true
	case RequestUnblock:
		return LineActive, true
	case RequestCancellation:
		return LineCancelled, true
	default:
		return "", false
	}
}

// ServiceRequest is a request submitted to the boundary.
type ServiceRequest struct {
	Type       ServiceRequestType `json:"type"`
	CustomerID string             `json:"customerId"`
	LineID     string             `json:"lineId"`
	Details    RequestDetails     `json:"details"`
}

// ServiceRequestReceipt is returned when a request is created. Protocol is
// the human-readable tracking code quoted in support interactions.
type ServiceRequestReceipt struct {
	RequestID           string               `json:"requestId"`
	Protocol            string               `json:"protocol"`
	Status              ServiceRequestStatus `json:"status"`
	EstimatedCompletion time.Time            `json:"estimatedCompletion"`
	Message             string               `json:"message"`
}

// ServiceRequestHistoryItem is a read-only projection of a past request.
// The client never polls for status changes.
type ServiceRequestHistoryItem struct {
	ID          string               `json:"id" bson:"_id,omitempty"`
	Protocol    string               `json:"protocol" bson:"protocol"`
	CustomerID  string               `json:"-" bson:"customer_id"`
	Type        ServiceRequestType   `json:"type" bson:"type"`
	Status      ServiceRequestStatus `json:"status" bson:"status"`
	CreatedAt   time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updated_at"`
	CompletedAt *time.Time           `json:"completedAt,omitempty" bson:"completed_at,omitempty"`
	Description string               `json:"description" bson:"description"`
}
