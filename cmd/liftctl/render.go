package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/claude/liftcoach/internal/coach"
	"github.com/claude/liftcoach/internal/models"
	"github.com/claude/liftcoach/internal/suggest"
)

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	selected lipgloss.Style
	errText  lipgloss.Style
	cell     lipgloss.Style
}

// newStyles binds styles to w so colors are dropped when w is not a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		subtle:   r.NewStyle().Faint(true),
		selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		errText:  r.NewStyle().Foreground(lipgloss.Color("9")),
		cell:     r.NewStyle().PaddingRight(2),
	}
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64) + "kg"
}

func renderPlanTabs(w io.Writer, tabs []coach.PlanTab) string {
	st := newStyles(w)
	if len(tabs) == 0 {
		return st.subtle.Render("no plans")
	}
	var b strings.Builder
	for i, tab := range tabs {
		if i > 0 {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("  %s  %s", tab.ID, tab.Name)
		if tab.Selected {
			line = st.selected.Render("* " + tab.ID + "  " + tab.Name)
		}
		b.WriteString(line)
	}
	return b.String()
}

func renderView(w io.Writer, v *coach.View) string {
	st := newStyles(w)
	var b strings.Builder

	b.WriteString(st.title.Render(v.Heading))
	b.WriteString("\n")
	b.WriteString(st.subtle.Render(v.Subtitle))
	b.WriteString("\n\n")
	b.WriteString(renderPlanTabs(w, v.Plans))

	if v.Selected != nil {
		b.WriteString("\n\n")
		if v.EmptyPlan {
			b.WriteString(st.subtle.Render("No exercises yet."))
		} else {
			rows := [][]string{{"ID", "EXERCISE", "SETS", "REPS", "WEIGHT"}}
			for _, e := range v.Selected.Exercises {
				rows = append(rows, []string{e.ID, e.Name, strconv.Itoa(e.Sets), strconv.Itoa(e.Reps), formatWeight(e.Weight)})
			}
			b.WriteString(renderTable(st, rows))
		}
	}

	if v.Result.Open || v.Result.Loading {
		b.WriteString("\n\n")
		b.WriteString(renderResult(st, v.Result.Loading, v.Result.Error, v.Result.Suggestions))
	}
	return b.String()
}

func renderRequest(w io.Writer, rs *suggest.RequestState) string {
	st := newStyles(w)
	if rs.Phase == suggest.PhaseIdle {
		return st.subtle.Render("no suggestions requested")
	}
	return renderResult(st, rs.Loading(), rs.Error, rs.Suggestions)
}

func renderResult(st styles, loading bool, errMsg string, s *models.Suggestions) string {
	switch {
	case loading:
		return st.subtle.Render(coach.LabelAnalyzing)
	case errMsg != "":
		return st.errText.Render(errMsg)
	case s == nil:
		return ""
	}

	var b strings.Builder
	b.WriteString(st.title.Render("AI Suggestions"))
	b.WriteString("\n")
	b.WriteString(s.OverallFeedback)
	for _, es := range s.ExerciseSuggestions {
		b.WriteString("\n  ")
		b.WriteString(st.selected.Render(es.ExerciseName))
		b.WriteString(": ")
		b.WriteString(es.Suggestion)
	}
	return b.String()
}

// renderTable pads each column to its widest cell.
func renderTable(st styles, rows [][]string) string {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	var b strings.Builder
	for r, row := range rows {
		if r > 0 {
			b.WriteString("\n")
		}
		cells := make([]string, len(row))
		for i, cell := range row {
			style := st.cell.Width(widths[i] + 2)
			if r == 0 {
				style = style.Faint(true)
			}
			cells[i] = style.Render(cell)
		}
		b.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
	}
	return b.String()
}
