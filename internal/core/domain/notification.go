package domain

import "time"

// NotificationType classifies a customer notification.
type NotificationType string

const (
	NotifInvoice          NotificationType = "INVOICE"
	NotifConsumptionAlert NotificationType = "CONSUMPTION_ALERT"
	NotifServiceCompleted NotificationType = "SERVICE_COMPLETED"
	NotifPromotion        NotificationType = "PROMOTION"
	NotifActivation       NotificationType = "ACTIVATION"
)

// Notification is a message shown in the customer's inbox.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
	Read      bool             `json:"read"`
}
