package domain

// Lifecycle is the visibility state of published content. Pending content
// exists on the relays (it already has a stable id) but is hidden from
// listings until its request is approved. Deleted is a soft-delete marker:
// records are append-only and can only be superseded, never removed.
type Lifecycle string

const (
	LifecycleVisible Lifecycle = "visible"
	LifecyclePending Lifecycle = "pending"
	LifecycleDeleted Lifecycle = "deleted"
)

// Visible treats the empty string as visible so that payloads written before
// the state field existed keep their meaning.
func (l Lifecycle) Visible() bool {
	return l == LifecycleVisible || l == ""
}
