package domain

// BoardSchemaVersion is written into every Board payload so readers can tell
// which revision of the role schema produced it (v1: single action per role,
// v2: action sets).
const BoardSchemaVersion = 2

// Role names a set of actions. Approver, when set, is the pubkey that
// moderates requests targeting this role's actions; nil means the board
// owners do.
type Role struct {
	Name     RoleName `json:"name"`
	Approver *Pubkey  `json:"approver"`
	Actions  []Action `json:"actions"`
}

func (r Role) HasAction(action Action) bool {
	for _, a := range r.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Member binds a pubkey to a role by name. A pubkey appears at most once
// among a board's members.
type Member struct {
	Pubkey Pubkey   `json:"pubkey"`
	Role   RoleName `json:"role"`
}

// Board is the root of the access model. Roles and members are not
// independently addressable: every membership change republishes the whole
// board record.
type Board struct {
	Id            EntityId  `json:"id"`
	Name          BoardName `json:"name"`
	Description   string    `json:"description"`
	CreatedAt     int64     `json:"created_at"`
	Roles         []Role    `json:"roles"`
	Members       []Member  `json:"members"`
	OwnerList     []Pubkey  `json:"ownerList"`
	SchemaVersion int       `json:"schemaVersion"`
}

func (b *Board) IsOwner(pubkey Pubkey) bool {
	for _, owner := range b.OwnerList {
		if owner == pubkey {
			return true
		}
	}
	return false
}

func (b *Board) FindRole(name RoleName) *Role {
	for i := range b.Roles {
		if b.Roles[i].Name == name {
			return &b.Roles[i]
		}
	}
	return nil
}

func (b *Board) FindMember(pubkey Pubkey) *Member {
	for i := range b.Members {
		if b.Members[i].Pubkey == pubkey {
			return &b.Members[i]
		}
	}
	return nil
}
