package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/calebhart/seedpost/internal/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	scoreStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	plainRender = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
)

func style(s lipgloss.Style, text string) string {
	if plainRender {
		return text
	}
	return s.Render(text)
}

// renderSummary prints a compact overview of a generated calendar.
func renderSummary(cal *domain.Calendar, outPath string) string {
	var b strings.Builder

	b.WriteString(style(titleStyle, fmt.Sprintf("Week %d calendar", cal.WeekNumber)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		style(labelStyle, "posts:"),
		style(valueStyle, fmt.Sprintf("%d posts, %d comments", cal.TotalPosts, cal.TotalComments))))
	b.WriteString(fmt.Sprintf("%s %s\n",
		style(labelStyle, "quality:"),
		style(scoreStyle, fmt.Sprintf("%.1f / 10", cal.QualityScore))))

	bySubreddit := make(map[string]int)
	for _, p := range cal.Posts {
		bySubreddit[p.Subreddit]++
	}
	subs := make([]string, 0, len(bySubreddit))
	for s := range bySubreddit {
		subs = append(subs, s)
	}
	sort.Strings(subs)
	for _, s := range subs {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			style(valueStyle, s),
			style(mutedStyle, fmt.Sprintf("(%d)", bySubreddit[s]))))
	}

	b.WriteString(style(mutedStyle, "written to "+outPath))
	return b.String()
}
