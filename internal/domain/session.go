package domain

// User is the identity record returned by the API on login or register.
// The client treats it as mostly opaque; only the fields it renders are named.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Tokens is the credential pair issued by the API. Access authorizes bearer
// calls; Refresh is stored alongside it but not independently exercised here.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Session is the authenticated identity plus credential pair held for this
// client instance. A nil User means unauthenticated.
type Session struct {
	User   *User  `json:"user"`
	Tokens Tokens `json:"tokens"`
}

// Present reports whether the session is populated. User and the access
// credential are written as a unit, so presence requires both.
func (s Session) Present() bool {
	return s.User != nil && s.Tokens.Access != ""
}

// Validate enforces the session invariant: user and access credential are
// either both set or both absent. A session violating it must never be
// established or persisted.
func (s Session) Validate() error {
	if s.User == nil && s.Tokens.Access == "" {
		return nil
	}
	if s.User == nil {
		return NewValidationError("user", "tokens present without user")
	}
	if s.Tokens.Access == "" {
		return NewValidationError("tokens.access", "user present without access token")
	}
	return nil
}
