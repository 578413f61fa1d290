package mock

import (
	"time"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
)

// Canned payloads replicating the responses of the SKY carrier core. They
// stand in for the real backend during development and double as the format
// reference for the integration work.

// Demo credential accepted by Login: this CPF with any password of at least
// four characters.
const (
	demoCPF           = "12345678900"
	minPasswordLength = 4
)

const demoCustomerID = "cust-001"

var demoLogin = ports.LoginResult{
	AccessToken:  "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.mock-token",
	RefreshToken: "mock-refresh-token-12345",
	Customer: ports.LoginCustomer{
		ID:          demoCustomerID,
		Name:        "Carlos Eduardo Silva",
		ProfileType: domain.ProfileSolo,
	},
}

var demoProfile = domain.CustomerProfile{
	ID:       demoCustomerID,
	FullName: "Carlos Eduardo Silva",
	CPF:      "12345678900",
	Email:    "carlos.silva@email.com",
	Phone:    "11987654321",
	Address: domain.Address{
		Street:       "Rua das Flores",
		Number:       "123",
		Complement:   "Apto 45",
		Neighborhood: "Jardim Paulista",
		City:         "São Paulo",
		State:        "SP",
		ZipCode:      "01234567",
	},
	MobileLines: []domain.MobileLine{
		{
			MSISDN:         "11999990001",
			ICCID:          "89550534000000000001",
			IMSI:           "724050000000001",
			Status:         domain.LineActive,
			ActivationDate: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		},
	},
	ProfileType: domain.ProfileSolo,
}

var demoConsumption = domain.ConsumptionSnapshot{
	Data: domain.DataConsumption{
		UsedBytes:   9126805504,
		TotalBytes:  16106127360,
		UsedGB:      8.5,
		TotalGB:     15,
		PercentUsed: 56.67,
	},
	SMS:           domain.SMSConsumption{Used: 23, Total: 100},
	Voice:         domain.VoiceConsumption{UsedMinutes: 45, TotalMinutes: nil},
	CycleEndDate:  "2026-02-15",
	DaysRemaining: 7,
}

var demoCurrentPlan = domain.CustomerPlan{
	ID:           "plan-2",
	Name:         "SKY Móvel 15GB",
	DataGB:       15,
	SMSQuantity:  100,
	VoiceMinutes: nil,
	IncludedApps: []string{"WhatsApp", "Instagram"},
	MonthlyPrice: 49.90,
	RenewalDate:  "2026-02-15",
}

var demoAvailablePlans = []domain.AvailablePlan{
	{
		ID: "plan-1", Name: "SKY Móvel 8GB", DataGB: 8, SMSQuantity: 50,
		IncludedApps: []string{"WhatsApp"}, MonthlyPrice: 34.90,
	},
	{
		ID: "plan-2", Name: "SKY Móvel 15GB", DataGB: 15, SMSQuantity: 100,
		IncludedApps: []string{"WhatsApp", "Instagram"}, MonthlyPrice: 49.90,
	},
	{
		ID: "plan-3", Name: "SKY Móvel 25GB", DataGB: 25, SMSQuantity: 150,
		IncludedApps: []string{"WhatsApp", "Instagram", "Facebook"}, MonthlyPrice: 69.90,
		Highlight: "Mais vendido",
	},
	{
		ID: "plan-4", Name: "SKY Móvel 40GB", DataGB: 40, SMSQuantity: 200,
		IncludedApps: []string{"WhatsApp", "Instagram", "Facebook", "TikTok"}, MonthlyPrice: 89.90,
		Highlight: "Melhor custo-benefício",
	},
}

var demoDataPackages = []domain.DataPackage{
	{ID: "pkg-1", DataGB: 1, Price: 9.90, ValidityDays: 7, Description: "Pacote emergencial"},
	{ID: "pkg-2", DataGB: 2, Price: 14.90, ValidityDays: 15},
	{ID: "pkg-3", DataGB: 5, Price: 29.90, ValidityDays: 30, Description: "Mais popular"},
	{ID: "pkg-4", DataGB: 10, Price: 49.90, ValidityDays: 30},
}

var demoInvoices = []domain.Invoice{
	{
		ID: "inv-1", ReferenceMonth: "2026-01", Amount: 49.90, DueDate: "2026-02-10",
		Status: domain.InvoicePending, PDFURL: "/invoices/inv-1.pdf",
		Barcode: "12345.67890 12345.678901 12345.678901 1 12340000004990",
		PixCode: "00020126580014BR.GOV.BCB.PIX0136a1b2c3d4-e5f6-7890-abcd-ef1234567890520400005303986540549.905802BR5925SKY SERVICOS DE BANDA LA6009SAO PAULO62070503***6304ABCD",
	},
	{ID: "inv-2", ReferenceMonth: "2025-12", Amount: 49.90, DueDate: "2026-01-10", Status: domain.InvoicePaid, PDFURL: "/invoices/inv-2.pdf"},
	{ID: "inv-3", ReferenceMonth: "2025-11", Amount: 49.90, DueDate: "2025-12-10", Status: domain.InvoicePaid, PDFURL: "/invoices/inv-3.pdf"},
	{ID: "inv-4", ReferenceMonth: "2025-10", Amount: 34.90, DueDate: "2025-11-10", Status: domain.InvoicePaid, PDFURL: "/invoices/inv-4.pdf"},
	{ID: "inv-5", ReferenceMonth: "2025-09", Amount: 34.90, DueDate: "2025-10-10", Status: domain.InvoicePaid, PDFURL: "/invoices/inv-5.pdf"},
}

var demoRequestHistory = []domain.ServiceRequestHistoryItem{
	{
		ID: "sr-001", Protocol: "SKY20260201001", CustomerID: demoCustomerID,
		Type: domain.RequestPortability, Status: domain.RequestInProgress,
		CreatedAt: time.Date(2026, 2, 1, 14, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC),
		Description: "Portabilidade do número (21) 98765-4321",
	},
	{
		ID: "sr-002", Protocol: "SKY20260115002", CustomerID: demoCustomerID,
		Type: domain.RequestChipSwap, Status: domain.RequestCompleted,
		CreatedAt:   time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 1, 18, 16, 0, 0, 0, time.UTC),
		CompletedAt: timePtr(time.Date(2026, 1, 18, 16, 0, 0, 0, time.UTC)),
		Description: "Troca de chip - Motivo: Defeito",
	},
}

var demoNotifications = []domain.Notification{
	{
		ID: "notif-1", Type: domain.NotifInvoice, Title: "Fatura disponível",
		Message:   "Sua fatura de janeiro/2026 no valor de R$ 49,90 já está disponível.",
		CreatedAt: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC), Read: false,
	},
	{
		ID: "notif-2", Type: domain.NotifConsumptionAlert, Title: "Consumo em 80%",
		Message:   "Você já utilizou 80% da sua franquia de dados. Considere adquirir um pacote adicional.",
		CreatedAt: time.Date(2026, 1, 28, 15, 30, 0, 0, time.UTC), Read: false,
	},
	{
		ID: "notif-3", Type: domain.NotifPromotion, Title: "Oferta especial!",
		Message:   "Faça upgrade para o SKY Móvel 25GB e ganhe 3 meses com 50% de desconto!",
		CreatedAt: time.Date(2026, 1, 25, 10, 0, 0, 0, time.UTC), Read: true,
	},
	{
		ID: "notif-4", Type: domain.NotifServiceCompleted, Title: "Troca de chip concluída",
		Message:   "Sua solicitação de troca de chip foi concluída com sucesso.",
		CreatedAt: time.Date(2026, 1, 18, 16, 0, 0, 0, time.UTC), Read: true,
	},
	{
		ID: "notif-5", Type: domain.NotifActivation, Title: "Linha ativada!",
		Message:   "Bem-vindo à SKY Móvel! Sua linha (11) 99999-0001 está ativa.",
		CreatedAt: time.Date(2026, 1, 15, 10, 5, 0, 0, time.UTC), Read: true,
	},
}

func timePtr(t time.Time) *time.Time { return &t }
