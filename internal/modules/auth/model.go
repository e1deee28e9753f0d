package auth

// Scope identifies which kind of actor a credential belongs to. A token
// carries exactly one scope.
type Scope string

const (
	ScopeConsumer Scope = "consumer"
	ScopeStore    Scope = "store"
	ScopeDriver   Scope = "driver"
)

// Account is a stored credential. SubjectID points at the profile the
// account authenticates: a consumer, store, or driver id depending on Scope.
type Account struct {
	ID           string `json:"id"`
	Scope        Scope  `json:"scope"`
	SubjectID    string `json:"subject_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Identity is the result of resolving a bearer token.
type Identity struct {
	AccountID string
	Scope     Scope
	SubjectID string
}

// StoreID returns the store bound to a store-scoped identity, or "".
func (i Identity) StoreID() string {
	if i.Scope == ScopeStore {
		return i.SubjectID
	}
	return ""
}

// DriverID returns the driver bound to a driver-scoped identity, or "".
func (i Identity) DriverID() string {
	if i.Scope == ScopeDriver {
		return i.SubjectID
	}
	return ""
}
