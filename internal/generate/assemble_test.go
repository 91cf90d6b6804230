package generate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebhart/seedpost/internal/domain"
	"github.com/calebhart/seedpost/internal/scheduler"
)

func slotPost(author string) *domain.Post {
	return &domain.Post{
		Subreddit:      "r/startups",
		AuthorUsername: author,
		Title:          "title",
		Body:           "a body long enough to be plausible content for a post",
		PostType:       domain.PostQuestion,
		TargetQuery:    "presentation tools",
	}
}

func TestAssembleNumbersPostsAndComments(t *testing.T) {
	results := []SlotResult{
		{
			Slot: scheduler.Slot{Index: 0},
			Post: slotPost("riley"),
			Comments: []CommentDraft{
				{Author: "jordan", Body: "first", ParentIndex: -1, DelayMinutes: 30},
				{Author: "emily", Body: "reply to first", ParentIndex: 0, DelayMinutes: 60},
			},
		},
		{
			Slot: scheduler.Slot{Index: 1},
			Post: slotPost("jordan"),
			Comments: []CommentDraft{
				{Author: "riley", Body: "other thread", ParentIndex: -1, DelayMinutes: 45},
			},
		},
	}

	generatedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cal := Assemble(4, generatedAt, results)

	assert.Equal(t, 4, cal.WeekNumber)
	assert.Equal(t, generatedAt, cal.GeneratedAt)

	require.Len(t, cal.Posts, 2)
	assert.Equal(t, "P1", cal.Posts[0].PostID)
	assert.Equal(t, "P2", cal.Posts[1].PostID)

	require.Len(t, cal.Comments, 3)
	assert.Equal(t, "C1", cal.Comments[0].CommentID)
	assert.Equal(t, "C2", cal.Comments[1].CommentID)
	assert.Equal(t, "C3", cal.Comments[2].CommentID)

	// The reply resolves to its parent's assigned id within the same post.
	reply := cal.Comments[1]
	require.NotNil(t, reply.ParentCommentID)
	assert.Equal(t, "C1", *reply.ParentCommentID)
	assert.True(t, reply.IsReply)
	assert.Equal(t, "P1", reply.PostID)

	assert.Equal(t, 2, cal.TotalPosts)
	assert.Equal(t, 3, cal.TotalComments)
}

func TestAssembleSkipsFailedSlots(t *testing.T) {
	results := []SlotResult{
		{Slot: scheduler.Slot{Index: 0}, Err: errors.New("bad output")},
		{Slot: scheduler.Slot{Index: 1}, Post: slotPost("riley")},
	}

	cal := Assemble(1, time.Now(), results)
	require.Len(t, cal.Posts, 1)
	assert.Equal(t, "P1", cal.Posts[0].PostID, "numbering restarts from surviving posts only")
}

func TestAssembleDropsInvalidComments(t *testing.T) {
	results := []SlotResult{
		{
			Slot: scheduler.Slot{Index: 0},
			Post: slotPost("riley"),
			Comments: []CommentDraft{
				{Author: "riley", Body: "post author commenting on own post", ParentIndex: -1},
				{Author: "jordan", Body: "fine top-level", ParentIndex: -1},
				{Author: "jordan", Body: "self reply", ParentIndex: 1},
				{Author: "emily", Body: "fine reply", ParentIndex: 1},
				{Author: "sam", Body: "reply to a reply", ParentIndex: 3},
				{Author: "sam", Body: "reply to dropped draft", ParentIndex: 0},
				{Author: "sam", Body: "parent out of range", ParentIndex: 42},
			},
		},
	}

	cal := Assemble(1, time.Now(), results)
	require.Len(t, cal.Comments, 2)

	assert.Equal(t, "jordan", cal.Comments[0].AuthorUsername)
	assert.Nil(t, cal.Comments[0].ParentCommentID)

	assert.Equal(t, "emily", cal.Comments[1].AuthorUsername)
	require.NotNil(t, cal.Comments[1].ParentCommentID)
	assert.Equal(t, cal.Comments[0].CommentID, *cal.Comments[1].ParentCommentID)

	assert.Equal(t, 2, cal.TotalComments)
}

func TestAssembleEmpty(t *testing.T) {
	cal := Assemble(1, time.Now(), nil)
	assert.Empty(t, cal.Posts)
	assert.Empty(t, cal.Comments)
	assert.Equal(t, 0, cal.TotalPosts)
	assert.Equal(t, 0, cal.TotalComments)
}
