package domain

// InvoiceStatus represents the payment state of an invoice.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "PAID"
	InvoicePending InvoiceStatus = "PENDING"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
)

// PaymentMethod for recurring billing.
type PaymentMethod string

const (
	PaymentBoleto     PaymentMethod = "BOLETO"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitAuto  PaymentMethod = "DEBIT_AUTO"
)

// Invoice is a monthly bill.
type Invoice struct {
	ID             string        `json:"id"`
	ReferenceMonth string        `json:"referenceMonth"` // "YYYY-MM"
	Amount         float64       `json:"amount"`
	DueDate        string        `json:"dueDate"`
	Status         InvoiceStatus `json:"status"`
	PDFURL         string        `json:"pdfUrl"`
	Barcode        string        `json:"barcode,omitempty"`
	PixCode        string        `json:"pixCode,omitempty"`
}
