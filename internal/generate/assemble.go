package generate

import (
	"fmt"
	"time"

	"github.com/calebhart/seedpost/internal/domain"
)

// Assemble turns per-slot results into an immutable Calendar. The engine
// owns identity here: posts are numbered P1.. in slot order, comments C1..
// across the whole week. Draft comments that violate thread invariants
// (self-reply, bad parent reference, depth beyond two levels) are dropped at
// this point regardless of how they were generated, so the assembled
// calendar always satisfies them.
func Assemble(weekNumber int, generatedAt time.Time, results []SlotResult) *domain.Calendar {
	cal := &domain.Calendar{
		WeekNumber:  weekNumber,
		GeneratedAt: generatedAt,
	}

	commentSeq := 0
	for _, r := range results {
		if !r.OK() {
			continue
		}

		post := *r.Post
		post.PostID = fmt.Sprintf("P%d", len(cal.Posts)+1)
		cal.Posts = append(cal.Posts, post)

		// Maps draft index -> assigned comment id, for parent resolution.
		assigned := make(map[int]string, len(r.Comments))
		authorOf := make(map[int]string, len(r.Comments))
		isReply := make(map[int]bool, len(r.Comments))

		for i, d := range r.Comments {
			if d.Author == post.AuthorUsername {
				continue
			}

			var parentID *string
			if d.ParentIndex >= 0 {
				id, ok := assigned[d.ParentIndex]
				if !ok {
					continue // parent was dropped or never existed
				}
				if isReply[d.ParentIndex] {
					continue // depth cap: replies to replies are not allowed
				}
				if authorOf[d.ParentIndex] == d.Author {
					continue // no self-reply
				}
				parentID = &id
			}

			commentSeq++
			id := fmt.Sprintf("C%d", commentSeq)
			assigned[i] = id
			authorOf[i] = d.Author
			isReply[i] = parentID != nil

			cal.Comments = append(cal.Comments, domain.Comment{
				CommentID:       id,
				PostID:          post.PostID,
				ParentCommentID: parentID,
				AuthorUsername:  d.Author,
				Body:            d.Body,
				IsReply:         parentID != nil,
				DelayMinutes:    d.DelayMinutes,
			})
		}
	}

	cal.TotalPosts = len(cal.Posts)
	cal.TotalComments = len(cal.Comments)
	return cal
}
