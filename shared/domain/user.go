package domain

// User is the profile record for a pubkey (kind 0). At most one logical
// user per pubkey; the latest write wins. JoinedBoardIds keeps the json key
// the original payloads used.
type User struct {
	Pubkey         Pubkey     `json:"pubkey"`
	Name           string     `json:"name"`
	JoinedBoardIds []EntityId `json:"JoinedBoardIds"`
}

func (u *User) HasJoined(boardId EntityId) bool {
	for _, id := range u.JoinedBoardIds {
		if id == boardId {
			return true
		}
	}
	return false
}
