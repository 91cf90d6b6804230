package domain

import "time"

// Calendar is the complete weekly artifact. It is immutable once produced;
// generating the next week yields a new Calendar.
type Calendar struct {
	WeekNumber    int       `json:"week_number"`
	GeneratedAt   time.Time `json:"generated_at"`
	Posts         []Post    `json:"posts"`
	Comments      []Comment `json:"comments"`
	QualityScore  float64   `json:"quality_score"`
	TotalPosts    int       `json:"total_posts"`
	TotalComments int       `json:"total_comments"`
}

// CommentsFor returns the comments belonging to a post, top-level first.
func (c *Calendar) CommentsFor(postID string) []Comment {
	var out []Comment
	for _, cm := range c.Comments {
		if cm.PostID == postID && cm.ParentCommentID == nil {
			out = append(out, cm)
		}
	}
	for _, cm := range c.Comments {
		if cm.PostID == postID && cm.ParentCommentID != nil {
			out = append(out, cm)
		}
	}
	return out
}
