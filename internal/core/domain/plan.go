package domain

// CustomerPlan is the plan currently attached to the customer's line.
type CustomerPlan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	DataGB       float64  `json:"dataGB"`
	SMSQuantity  int      `json:"smsQuantity"`
	VoiceMinutes *int     `json:"voiceMinutes"` // nil = unlimited
	IncludedApps []string `json:"includedApps"`
	MonthlyPrice float64  `json:"monthlyPrice"`
	RenewalDate  string   `json:"renewalDate"`
}

// AvailablePlan is a plan offered for contracting or upgrade.
type AvailablePlan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	DataGB       float64  `json:"dataGB"`
	SMSQuantity  int      `json:"smsQuantity"`
	VoiceMinutes *int     `json:"voiceMinutes"`
	IncludedApps []string `json:"includedApps"`
	MonthlyPrice float64  `json:"monthlyPrice"`
	Highlight    string   `json:"highlight,omitempty"`
}

// DataPackage is an add-on data bundle.
type DataPackage struct {
	ID           string  `json:"id"`
	DataGB       float64 `json:"dataGB"`
	Price        float64 `json:"price"`
	ValidityDays int     `json:"validityDays"`
	Description  string  `json:"description,omitempty"`
}

// PaymentMethod for data package purchases.
const (
	PurchaseCreditCard   = "CREDIT_CARD"
	PurchaseBalance      = "BALANCE"
	PurchaseAddToInvoice = "ADD_TO_INVOICE"
)
