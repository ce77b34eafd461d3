package permission

// Identity is the view of an authenticated principal the rules need.
// Implementations must tolerate being called on a nil receiver.
type Identity interface {
	Authenticated() bool
	Subject() string
	IsAdmin() bool
}

// Decision is the outcome of a rule.
type Decision bool

const (
	Deny   Decision = false
	Permit Decision = true
)

// Allowed reports whether the decision permits the action.
func (d Decision) Allowed() bool {
	return bool(d)
}

func (d Decision) String() string {
	if d {
		return "permit"
	}
	return "deny"
}

// AdminOnly permits iff id is present and holds the administrator role.
func AdminOnly(id Identity) Decision {
	if !present(id) {
		return Deny
	}
	return Decision(id.IsAdmin())
}

// SelfOnly permits iff id is present and its subject equals target.
func SelfOnly(id Identity, target string) Decision {
	if !present(id) || target == "" {
		return Deny
	}
	return Decision(id.Subject() == target)
}

func present(id Identity) bool {
	return id != nil && id.Authenticated()
}
