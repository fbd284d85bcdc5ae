package wallet

// Authorizer gates privileged operations. Implementations must be
// side-effect free.
type Authorizer interface {
	// RequireOwner returns ErrUnauthorized unless caller is the owner.
	RequireOwner(caller Account) error
	// Owner returns the owner identity.
	Owner() Account
}

// AccessControl is the default Authorizer: a single owner identity fixed at
// construction.
type AccessControl struct {
	owner Account
}

// NewAccessControl returns an AccessControl for the given owner. It fails
// with ErrInvalidOwner if owner is the null identity.
func NewAccessControl(owner Account) (*AccessControl, error) {
	if IsNullAccount(owner) {
		return nil, ErrInvalidOwner
	}
	return &AccessControl{owner: owner}, nil
}

// RequireOwner implements Authorizer.
func (a *AccessControl) RequireOwner(caller Account) error {
	if !caller.Equals(a.owner) {
		return ErrUnauthorized
	}
	return nil
}

// Owner implements Authorizer.
func (a *AccessControl) Owner() Account {
	return a.owner
}
