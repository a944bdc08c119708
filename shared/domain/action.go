package domain

// Action is a named capability a Role may grant on a board.
//
// Earlier payload revisions carried a single action per role (with a wider
// enum including vote actions); the current revision models a role as a set
// of these three. SchemaVersion on Board records which revision wrote the
// payload.
type Action string

const (
	// ActionOpenThread allows opening threads directly, without moderation.
	ActionOpenThread Action = "OpenThread"
	// ActionComment allows commenting directly.
	ActionComment Action = "Comment"
	// ActionBoard marks moderation authority: holders approve/reject requests.
	ActionBoard Action = "Board"
)

func (a Action) Valid() bool {
	switch a {
	case ActionOpenThread, ActionComment, ActionBoard:
		return true
	}
	return false
}

// GrantedRoleName is the role created (or reused) when an approval grants
// an action to a pubkey that is not yet a member.
func (a Action) GrantedRoleName() RoleName {
	switch a {
	case ActionOpenThread:
		return "thread-creator"
	case ActionComment:
		return "commenter"
	default:
		return "moderator"
	}
}
