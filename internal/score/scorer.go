package score

import (
	"strings"

	"github.com/calebhart/seedpost/internal/domain"
)

// Weights tunes how much each heuristic contributes to the final score.
type Weights struct {
	Diversity    float64 `yaml:"diversity"`
	Voice        float64 `yaml:"voice"`
	Targeting    float64 `yaml:"targeting"`
	Completeness float64 `yaml:"completeness"`
}

// DefaultWeights returns the stock weighting.
func DefaultWeights() Weights {
	return Weights{
		Diversity:    0.30,
		Voice:        0.20,
		Targeting:    0.25,
		Completeness: 0.25,
	}
}

// Input carries the draft calendar plus the context needed to judge it.
type Input struct {
	Posts     []domain.Post
	Comments  []domain.Comment
	Personas  []domain.Persona
	SlotCount int
	Weights   Weights
}

// Score computes the advisory 0-10 quality score over a full week's draft.
// Degenerate inputs (zero posts) score near zero rather than erroring.
func Score(in Input) float64 {
	w := in.Weights
	total := w.Diversity + w.Voice + w.Targeting + w.Completeness
	if total <= 0 {
		w = DefaultWeights()
		total = w.Diversity + w.Voice + w.Targeting + w.Completeness
	}

	raw := w.Diversity*scoreDiversity(in) +
		w.Voice*scoreVoice(in) +
		w.Targeting*scoreTargeting(in) +
		w.Completeness*scoreCompleteness(in)

	return clamp(10*raw/total, 0, 10)
}

// scoreDiversity measures distinct (persona, subreddit, post_type)
// combinations relative to post count, penalizing repetition.
func scoreDiversity(in Input) float64 {
	if len(in.Posts) == 0 {
		return 0
	}
	combos := make(map[string]bool, len(in.Posts))
	for _, p := range in.Posts {
		combos[p.AuthorUsername+"\x00"+p.Subreddit+"\x00"+string(p.PostType)] = true
	}
	return float64(len(combos)) / float64(len(in.Posts))
}

// scoreVoice checks that each persona's quirk and style keywords surface in
// the content they authored. A third of a persona's keywords appearing is
// treated as full marks; quirks color a voice, they don't dominate it.
func scoreVoice(in Input) float64 {
	byAuthor := make(map[string]*strings.Builder)
	for _, p := range in.Posts {
		appendText(byAuthor, p.AuthorUsername, p.Title, p.Body)
	}
	for _, c := range in.Comments {
		appendText(byAuthor, c.AuthorUsername, c.Body)
	}
	if len(byAuthor) == 0 {
		return 0
	}

	var sum float64
	var counted int
	for _, persona := range in.Personas {
		b, ok := byAuthor[persona.Username]
		if !ok {
			continue
		}
		keys := voiceKeywords(persona)
		if len(keys) == 0 {
			continue
		}
		text := strings.ToLower(b.String())
		found := 0
		for _, k := range keys {
			if strings.Contains(text, k) {
				found++
			}
		}
		frac := float64(found) / float64(len(keys))
		sum += minF(1, frac*3)
		counted++
	}
	if counted == 0 {
		return 0.5 // nothing to judge; stay neutral
	}
	return sum / float64(counted)
}

// scoreTargeting checks whether each post reflects its target query terms in
// title or body.
func scoreTargeting(in Input) float64 {
	if len(in.Posts) == 0 {
		return 0
	}
	hits := 0
	for _, p := range in.Posts {
		text := strings.ToLower(p.Title + " " + p.Body)
		terms := queryTerms(p.TargetQuery)
		if len(terms) == 0 {
			continue
		}
		found := 0
		for _, t := range terms {
			if strings.Contains(text, t) {
				found++
			}
		}
		if found*2 >= len(terms) {
			hits++
		}
	}
	return float64(hits) / float64(len(in.Posts))
}

// scoreCompleteness blends slot fill ratio with the ratio of posts that drew
// at least one comment.
func scoreCompleteness(in Input) float64 {
	if in.SlotCount == 0 || len(in.Posts) == 0 {
		return 0
	}
	fill := float64(len(in.Posts)) / float64(in.SlotCount)

	commented := make(map[string]bool)
	for _, c := range in.Comments {
		commented[c.PostID] = true
	}
	engaged := 0
	for _, p := range in.Posts {
		if commented[p.PostID] {
			engaged++
		}
	}
	engagement := float64(engaged) / float64(len(in.Posts))

	return 0.5*fill + 0.5*engagement
}

func appendText(m map[string]*strings.Builder, author string, parts ...string) {
	b, ok := m[author]
	if !ok {
		b = &strings.Builder{}
		m[author] = b
	}
	for _, p := range parts {
		b.WriteString(p)
		b.WriteByte(' ')
	}
}

// voiceKeywords extracts lowercase keywords from a persona's quirks and
// style descriptor. Short connective words are skipped.
func voiceKeywords(p domain.Persona) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, src := range append(append([]string(nil), p.Quirks...), p.Style) {
		for _, word := range strings.Fields(strings.ToLower(src)) {
			word = strings.Trim(word, ".,!?:;\"'()")
			if len(word) < 4 || seen[word] {
				continue
			}
			seen[word] = true
			keys = append(keys, word)
		}
	}
	return keys
}

func queryTerms(q string) []string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(q)) {
		if len(w) >= 3 {
			terms = append(terms, w)
		}
	}
	return terms
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
