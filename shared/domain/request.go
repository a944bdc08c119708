package domain

// RequestStatus is monotonic: pending -> approved or pending -> rejected,
// terminal thereafter. Re-processing a non-pending request is refused.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

func (s RequestStatus) Processed() bool {
	return s == RequestApproved || s == RequestRejected
}

// ThreadRequest asks for permission to open a thread on a board that
// requires approval. ThreadId points at the content record that was
// published alongside the request in pending state.
type ThreadRequest struct {
	Id        EntityId      `json:"id"`
	BoardId   EntityId      `json:"boardId"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	ThreadId  EntityId      `json:"threadId"`
	Requester Pubkey        `json:"requester"`
	Status    RequestStatus `json:"status"`
	CreatedAt int64         `json:"created_at"`
}

// CommentRequest is the commenting counterpart, scoped to a thread.
type CommentRequest struct {
	Id        EntityId      `json:"id"`
	ThreadId  EntityId      `json:"threadId"`
	Content   string        `json:"content"`
	CommentId EntityId      `json:"commentId"`
	Requester Pubkey        `json:"requester"`
	Status    RequestStatus `json:"status"`
	CreatedAt int64         `json:"created_at"`
}
