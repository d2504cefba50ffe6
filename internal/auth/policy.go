package auth

// Action is a worklog operation subject to authorization.
type Action int

const (
	ActionList Action = iota
	ActionGet
	ActionCreate
	ActionUpdate
	ActionDelete
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionGet:
		return "get"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Input carries everything the policy needs for one decision.
type Input struct {
	Role  Role
	Owner OwnerRef // resolved ownership of the caller; ignored for admins

	Action Action

	// TargetOwnerID is the owner of the existing record, for Get,
	// Update and Delete.
	TargetOwnerID uint

	// RequestedOwnerID is the owner the client asked to write, for
	// Create and Update.
	RequestedOwnerID uint
}

// Decision is the outcome of a policy evaluation.
type Decision struct {
	Allowed bool

	// OwnerID is the effective owner to persist on Create and Update.
	// For non-admins it is always the caller's own linked employee,
	// regardless of what the request carried.
	OwnerID uint
}

var deny = Decision{}

// Decide is the single authorization rule for worklog access. It is a
// pure function: no I/O, no clock, no hidden request state. Any owner
// that cannot be resolved denies access.
func Decide(in Input) Decision {
	switch in.Role {
	case RoleAdmin:
		// Admins act on any record and write any owner the request
		// names. The owner reference itself is still validated
		// against storage by the caller.
		return Decision{Allowed: true, OwnerID: in.RequestedOwnerID}

	case RoleUser:
		if !in.Owner.Linked {
			return deny
		}
		switch in.Action {
		case ActionList, ActionCreate:
			// List is implicitly scoped and Create is forced to the
			// caller's own employee; neither depends on a target.
			return Decision{Allowed: true, OwnerID: in.Owner.ID}
		case ActionGet, ActionDelete:
			if in.TargetOwnerID != in.Owner.ID {
				return deny
			}
			return Decision{Allowed: true, OwnerID: in.Owner.ID}
		case ActionUpdate:
			// Own records only, and the record cannot be handed to
			// another employee.
			if in.TargetOwnerID != in.Owner.ID {
				return deny
			}
			return Decision{Allowed: true, OwnerID: in.Owner.ID}
		default:
			return deny
		}

	default:
		return deny
	}
}
