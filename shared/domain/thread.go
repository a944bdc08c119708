package domain

type Thread struct {
	Id        EntityId  `json:"id"`
	BoardId   EntityId  `json:"boardId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    Pubkey    `json:"author"`
	CreatedAt int64     `json:"created_at"`
	State     Lifecycle `json:"state"`
}

type Comment struct {
	Id        EntityId  `json:"id"`
	ThreadId  EntityId  `json:"threadId"`
	Content   string    `json:"content"`
	Author    Pubkey    `json:"author"`
	CreatedAt int64     `json:"created_at"`
	State     Lifecycle `json:"state"`
}
