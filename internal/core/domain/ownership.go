package domain

// Roles
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Actor is the authenticated account identity acting on a resource.
// It is always passed explicitly; there is no request-scoped current user.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// EffectiveDefault returns the is_default value stored on a newly created
// category. The flag is forced from the actor's role: a non-admin gets a
// personal category no matter what the request asked for.
func EffectiveDefault(actor Actor) bool {
	return actor.IsAdmin()
}

// CanMutate decides whether the actor may update or delete a resource.
// Default (shared) resources are mutable by admins only; everything else
// only by its creator.
func CanMutate(actor Actor, createdBy string, isDefault bool) error {
	if isDefault {
		if !actor.IsAdmin() {
			return ErrForbidden
		}
		return nil
	}
	if createdBy != actor.ID {
		return ErrForbidden
	}
	return nil
}
