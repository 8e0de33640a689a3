// Package render formats practice words, growth charts and word lists for
// the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/firstwords/internal/vocab"
	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// maxBarWidth is the widest growth bar in cells.
const maxBarWidth = 40

// Renderer holds the styles for one output stream. Color is dropped
// automatically when the stream is not a terminal.
type Renderer struct {
	title   lipgloss.Style
	card    lipgloss.Style
	word    lipgloss.Style
	known   lipgloss.Style
	newWord lipgloss.Style
	label   lipgloss.Style
	bar     lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
}

// New returns a Renderer whose color profile is detected from w.
func New(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1),
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(60),
		word: r.NewStyle().
			Bold(true),
		known: r.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true),
		newWord: r.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),
		label: r.NewStyle().
			Width(11),
		bar: r.NewStyle().
			Foreground(lipgloss.Color("#5DCCB4")),
		muted: r.NewStyle().
			Foreground(lipgloss.Color("245")),
		header: r.NewStyle().
			Bold(true).
			Underline(true),
	}
}

// PracticeCards renders one card per recommendation.
func (r *Renderer) PracticeCards(childName string, recs []types.PracticeRecommendation) string {
	var b strings.Builder
	b.WriteString(r.title.Render(fmt.Sprintf("Words for %s to practice", childName)))
	b.WriteString("\n")

	if len(recs) == 0 {
		b.WriteString(r.muted.Render("No practice words right now. Log some words or load a reference corpus."))
		b.WriteString("\n")
		return b.String()
	}

	for _, rec := range recs {
		badge := r.newWord.Render("New")
		status := "Not yet in vocabulary"
		if rec.InVocabulary {
			badge = r.known.Render("Known")
			status = fmt.Sprintf("Confidence: %d%%", rec.Confidence)
		}
		lines := []string{
			r.word.Render(strings.ToUpper(rec.Word)) + "  " + badge,
			status,
			"Typical age: " + formatAge(rec.TypicalAgeMonths),
			"Strategy: " + rec.Strategy,
		}
		b.WriteString(r.card.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

// GrowthChart renders the cumulative series as horizontal bars, one per
// age bucket, with the words first used in that month.
func (r *Renderer) GrowthChart(childName string, points []types.GrowthPoint) string {
	var b strings.Builder
	b.WriteString(r.title.Render(fmt.Sprintf("%s's Vocabulary Growth", childName)))
	b.WriteString("\n")

	if len(points) == 0 {
		b.WriteString(r.muted.Render("No words logged yet."))
		b.WriteString("\n")
		return b.String()
	}

	peak := points[len(points)-1].CumulativeTotal
	for _, p := range points {
		width := 1
		if peak > 0 {
			width = max(1, p.CumulativeTotal*maxBarWidth/peak)
		}
		fmt.Fprintf(&b, "%s %s %d\n",
			r.label.Render(AgeLabel(p.AgeMonths)),
			r.bar.Render(strings.Repeat("█", width)),
			p.CumulativeTotal)
		fmt.Fprintf(&b, "%s %s\n",
			r.label.Render(""),
			r.muted.Render(fmt.Sprintf("+%d: %s", p.NewWordCount, strings.Join(p.NewWords, ", "))))
	}
	return b.String()
}

// MissingBirthday is shown instead of a chart when the child has no
// birthday.
func (r *Renderer) MissingBirthday(childName string) string {
	return r.muted.Render(fmt.Sprintf(
		"%s has no birthday yet. Set one with: firstwords child birthday %q YYYY-MM-DD", childName, childName)) + "\n"
}

// WordList renders a child's words as a table in logged order.
func (r *Renderer) WordList(words []types.WordEntry) string {
	if len(words) == 0 {
		return r.muted.Render("No words logged yet.") + "\n"
	}

	wordWidth := len("Word")
	for _, w := range words {
		wordWidth = max(wordWidth, lipgloss.Width(w.Word))
	}
	col := r.header.Width(wordWidth + 2)

	var b strings.Builder
	b.WriteString(r.header.Width(38).Render("ID"))
	b.WriteString(col.Render("Word"))
	b.WriteString(r.header.Width(12).Render("Date"))
	b.WriteString(r.header.Width(8).Render("Speaks"))
	b.WriteString(r.header.Width(5).Render("ASL"))
	b.WriteString(r.header.Render("Confidence"))
	b.WriteString("\n")
	for _, w := range words {
		fmt.Fprintf(&b, "%-38s%-*s%-12s%-8s%-5s%d%%\n",
			w.WordID, wordWidth+2, w.Word, w.DateAdded, yesNo(w.Speaks), yesNo(w.ASL), w.Confidence)
	}
	return b.String()
}

// AgeLabel is the axis label for an age bucket.
func AgeLabel(months int) string {
	return fmt.Sprintf("%d months", months)
}

func formatAge(months float64) string {
	if months >= vocab.UnknownAge {
		return "unknown"
	}
	return strconv.FormatFloat(months, 'f', -1, 64) + " months"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
