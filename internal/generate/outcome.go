package generate

import (
	"github.com/calebhart/seedpost/internal/domain"
	"github.com/calebhart/seedpost/internal/scheduler"
)

// CommentDraft is a generated comment before identity assignment.
// ParentIndex references an earlier draft for the same post, or -1 for a
// top-level comment.
type CommentDraft struct {
	Author       string
	Body         string
	ParentIndex  int
	DelayMinutes int
}

// SlotResult is the tagged per-slot outcome. A failed slot carries its error
// and no post; the batch continues around it rather than aborting, so
// completed work is never thrown away by a single bad generation.
type SlotResult struct {
	Slot     scheduler.Slot
	Post     *domain.Post
	Comments []CommentDraft
	Err      error
}

// OK reports whether the slot produced a post.
func (r SlotResult) OK() bool {
	return r.Err == nil && r.Post != nil
}
