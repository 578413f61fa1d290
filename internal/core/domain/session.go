package domain

// Persisted key-value entry names. Stable across releases: a renamed key
// silently logs every installed client out on upgrade.
const (
	KeyAccessToken       = "accessToken"
	KeyRefreshToken      = "refreshToken"
	KeyCustomerID        = "customerId"
	KeyHasSeenOnboarding = "hasSeenOnboarding"
	KeyBiometricEnabled  = "biometricEnabled"
)

// Session mirrors the persisted authentication state.
// IsAuthenticated is true iff both the access token and the customer id are
// present in persisted storage.
type Session struct {
	IsAuthenticated   bool        `json:"isAuthenticated"`
	AccessToken       string      `json:"-"`
	RefreshToken      string      `json:"-"`
	CustomerID        string      `json:"customerId,omitempty"`
	CustomerName      string      `json:"customerName,omitempty"`
	ProfileType       ProfileType `json:"profileType,omitempty"`
	HasSeenOnboarding bool        `json:"hasSeenOnboarding"`
}
