package domain

import "fmt"

// Actor is the authenticated caller of a use case. It is passed explicitly to
// every call that needs it.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManageProject reports whether the actor may write to the project and its reports.
func (a Actor) CanManageProject(p *Project) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Role == RoleManager && a.ID != "" && p.ManagerID == a.ID
}

func (a Actor) Validate() error {
	var errs ValidationErrors
	if a.ID == "" {
		errs.Add("actor.id", "actor id is required")
	}
	if !ValidRoles[a.Role] {
		errs.Add("actor.role", fmt.Sprintf("invalid role %q", a.Role))
	}
	return errs.OrNil()
}
