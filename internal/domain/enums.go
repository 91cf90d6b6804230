package domain

// PostType classifies the framing of a generated post.
type PostType string

const (
	PostQuestion       PostType = "question"
	PostStory          PostType = "story"
	PostRecommendation PostType = "recommendation"
)

// AllPostTypes lists post types in the order the generator cycles through them.
var AllPostTypes = []PostType{PostQuestion, PostStory, PostRecommendation}

func (t PostType) Valid() bool {
	switch t {
	case PostQuestion, PostStory, PostRecommendation:
		return true
	}
	return false
}
