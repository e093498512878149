package alarm

// Actor identifies who performed an action in the system.
type Actor struct {
	// Hostname is the machine name where the action was performed.
	Hostname string
	// Username is the system user who triggered the action.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String renders "user@host", or "unknown" for a nil actor.
func (a *Actor) String() string {
	if a == nil || (a.Username == "" && a.Hostname == "") {
		return "unknown"
	}

	return a.Username + "@" + a.Hostname
}
