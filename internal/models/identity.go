package models

// IdentityKind tags who is calling.
type IdentityKind int

const (
	Anonymous IdentityKind = iota
	User
	Admin
)

func (k IdentityKind) String() string {
	switch k {
	case User:
		return RoleUser
	case Admin:
		return RoleAdmin
	default:
		return "anonymous"
	}
}

// Identity is the resolved caller of a request. The zero value is anonymous.
type Identity struct {
	Kind      IdentityKind
	AccountID string
	Email     string
}

func AnonymousIdentity() Identity {
	return Identity{Kind: Anonymous}
}

// NewIdentity builds an authenticated identity from a stored role.
// Unknown roles yield ok == false.
func NewIdentity(accountID, email, role string) (Identity, bool) {
	switch role {
	case RoleUser:
		return Identity{Kind: User, AccountID: accountID, Email: email}, true
	case RoleAdmin:
		return Identity{Kind: Admin, AccountID: accountID, Email: email}, true
	default:
		return Identity{}, false
	}
}

func (i Identity) Authenticated() bool {
	return i.Kind != Anonymous && i.AccountID != ""
}

func (i Identity) IsAdmin() bool {
	return i.Kind == Admin && i.AccountID != ""
}
