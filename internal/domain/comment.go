package domain

// Comment is one reply in a post's thread. A nil ParentCommentID means a
// top-level comment on the post; thread depth never exceeds two levels.
type Comment struct {
	CommentID       string  `json:"comment_id"`
	PostID          string  `json:"post_id"`
	ParentCommentID *string `json:"parent_comment_id"`
	AuthorUsername  string  `json:"author_username"`
	Body            string  `json:"body"`
	IsReply         bool    `json:"is_reply"`
	DelayMinutes    int     `json:"delay_minutes"`
}
