package domain

import "time"

// Post is one generated submission scheduled within a week.
type Post struct {
	PostID         string    `json:"post_id"`
	Subreddit      string    `json:"subreddit"`
	AuthorUsername string    `json:"author_username"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	PostType       PostType  `json:"post_type"`
	TargetQuery    string    `json:"target_query"`
	ScheduledTime  time.Time `json:"scheduled_time"`
}
