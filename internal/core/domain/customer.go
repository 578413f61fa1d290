package domain

import "time"

// ProfileType identifies the commercial profile of a SKY customer.
type ProfileType string

const (
	ProfileSolo  ProfileType = "SKY_MOVEL_SOLO"
	ProfileCombo ProfileType = "SKY_MOVEL_COMBO"
)

// LineStatus represents the lifecycle state of a mobile line.
type LineStatus string

const (
	LineActive    LineStatus = "ACTIVE"
	LineSuspended LineStatus = "SUSPENDED"
	LineBlocked   LineStatus = "BLOCKED"
	LineCancelled LineStatus = "CANCELLED"
)

// validLineTransitions defines the allowed state machine transitions.
// Transitions are requested by the client and applied by the carrier core;
// the mock boundary acknowledges requests without ever updating line status.
var validLineTransitions = map[LineStatus][]LineStatus{
	LineActive:    {LineSuspended, LineBlocked, LineCancelled},
	LineSuspended: {LineActive, LineCancelled},
	LineBlocked:   {LineActive, LineCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s LineStatus) CanTransitionTo(next LineStatus) bool {
	for _, allowed := range validLineTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Address is the customer's billing/delivery address.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

// MobileLine is a single line under the customer's account.
type MobileLine struct {
	MSISDN         string     `json:"msisdn"`
	ICCID          string     `json:"iccid"`
	IMSI           string     `json:"imsi"`
	Status         LineStatus `json:"status"`
	ActivationDate time.Time  `json:"activationDate"`
}

// CustomerProfile is the full customer record returned by the boundary.
type CustomerProfile struct {
	ID          string       `json:"id"`
	FullName    string       `json:"fullName"`
	CPF         string       `json:"cpf"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Address     Address      `json:"address"`
	MobileLines []MobileLine `json:"mobileLines"`
	ProfileType ProfileType  `json:"profileType"`
}
