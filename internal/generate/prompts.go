package generate

import (
	"fmt"
	"strings"

	"github.com/calebhart/seedpost/internal/domain"
	"github.com/calebhart/seedpost/internal/scheduler"
)

// postSystemPrompt instructs the model to write a submission in a persona's
// voice that reads as organic, not promotional.
const postSystemPrompt = `You write Reddit posts that must sound 100% human. You are given a persona and you stay in character.

Rules:
1. Write like a real person on Reddit: casual language, contractions, hedging ("tbh", "imo", "anyone else?"), occasional lowercase starts.
2. Show uncertainty and vulnerability; real posters are not polished.
3. Be specific, not generic. "I keep spending 2 hours fixing bullet alignment" beats "I need presentation software".
4. Never pitch a product in the post itself. Posts raise problems or share experiences; the company context is background only.
5. Match the subreddit's culture and the persona's expertise.
6. The post must plausibly surface for someone searching the target query, without quoting it verbatim like an SEO header.

Output ONLY a JSON object:
{"title": "natural reddit title", "body": "natural reddit body, 100-250 words"}
No markdown fences, no extra keys, no commentary.`

// commentSystemPrompt instructs the model to write one reply in a thread.
const commentSystemPrompt = `You write Reddit comments that must sound 100% human. You are given a persona and the post (and parent comment, if replying) for context.

Rules:
1. Vary engagement: sometimes short agreement ("same here", "+1"), sometimes a longer story or a concrete suggestion, sometimes a follow-up question.
2. Stay on the post's topic; reference something specific from it.
3. A product mention is allowed only when genuinely relevant, buried in a longer comment, hedged ("still figuring it out but", "not perfect"), and mixed with other suggestions.
4. Replies to comments can be shorter and more casual than top-level comments.
5. Use the persona's style and quirks lightly. No corporate tone, no "it's important to note".

Output ONLY a JSON object:
{"body": "natural reddit comment", "delay_minutes": 15-360}
No markdown fences, no extra keys, no commentary.`

// formatReinforcement is appended to a prompt when the previous attempt did
// not parse; the semantic request stays the same.
const formatReinforcement = "\n\nIMPORTANT: your previous answer was not valid JSON. Respond with EXACTLY one JSON object matching the requested shape and nothing else."

// phrasingVariations nudge retry attempts away from whatever framing failed.
var phrasingVariations = []string{
	"",
	"\nTry a different angle on the same topic than the obvious one.",
	"\nOpen mid-thought, the way people do when they're venting.",
}

func postUserPrompt(cfg *domain.GenerationConfig, persona domain.Persona, slot scheduler.Slot, attempt int) string {
	var b strings.Builder

	b.WriteString("PERSONA:\n")
	writePersona(&b, persona, true)

	fmt.Fprintf(&b, "\nPOST TO CREATE:\nSubreddit: %s\nPost type: %s\nTarget search query: %s\n",
		slot.Subreddit, slot.PostType, slot.TargetQuery)

	b.WriteString("\nCOMPANY CONTEXT (background only, do not pitch):\n")
	b.WriteString(cfg.CompanyInfo)

	b.WriteString(postTypeInstruction(slot.PostType))
	b.WriteString(phrasingVariations[attempt%len(phrasingVariations)])

	return b.String()
}

func commentUserPrompt(cfg *domain.GenerationConfig, persona domain.Persona, post *domain.Post, parentBody string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ORIGINAL POST in %s by %s:\nTitle: %s\n%s\n",
		post.Subreddit, post.AuthorUsername, post.Title, post.Body)

	if parentBody != "" {
		b.WriteString("\nYOU ARE REPLYING TO THIS COMMENT:\n")
		b.WriteString(parentBody)
		b.WriteString("\n")
	}

	b.WriteString("\nYOU ARE:\n")
	writePersona(&b, persona, false)

	b.WriteString("\nCOMPANY CONTEXT (mention only if genuinely relevant):\n")
	b.WriteString(cfg.CompanyInfo)

	return b.String()
}

func writePersona(b *strings.Builder, p domain.Persona, full bool) {
	fmt.Fprintf(b, "Username: %s\nName: %s\nBackground: %s\nStyle: %s\n",
		p.Username, p.Name, p.Background, p.Style)
	if full {
		fmt.Fprintf(b, "Expertise: %s\n", p.Expertise)
		if p.PostingPatterns != "" {
			fmt.Fprintf(b, "Posting patterns: %s\n", p.PostingPatterns)
		}
	}
	if len(p.Quirks) > 0 {
		fmt.Fprintf(b, "Quirks: %s\n", strings.Join(p.Quirks, ", "))
	}
}

func postTypeInstruction(t domain.PostType) string {
	switch t {
	case domain.PostQuestion:
		return "\nFrame the post as a genuinely curious question about a specific problem, not market research."
	case domain.PostStory:
		return "\nFrame the post as an experience share: something that happened, what you tried, how it went."
	case domain.PostRecommendation:
		return "\nFrame the post as softly asking what others use for a specific need, with your current messy workaround described."
	default:
		return ""
	}
}
