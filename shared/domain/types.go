package domain

type (
	// Pubkey is a hex encoded 32-byte sr25519 public key. It identifies a
	// user across every relay; there is no other account concept.
	Pubkey = string

	// EntityId is the application-chosen stable identifier of a logically
	// mutable entity. All revisions of an entity share its id.
	EntityId = string

	BoardName = string
	RoleName  = string
)
