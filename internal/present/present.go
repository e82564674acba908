// Package present renders tasks as display labels.
//
// Every label has the same layout: priority, display subject, contexts,
// projects. Empty parts are skipped and the rest are joined by one space.
package present

import (
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todomenu/internal/todo"
)

// Presenter renders terminal labels with lipgloss styles.
type Presenter struct {
	priority lipgloss.Style
	subject  lipgloss.Style
	done     lipgloss.Style
	project  lipgloss.Style
	context  lipgloss.Style
}

// New returns a Presenter using the default lipgloss renderer.
func New(c Colors) *Presenter {
	return NewWithRenderer(lipgloss.DefaultRenderer(), c)
}

// NewWithRenderer returns a Presenter bound to r.
func NewWithRenderer(r *lipgloss.Renderer, c Colors) *Presenter {
	return &Presenter{
		priority: r.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Priority)),
		subject:  r.NewStyle(),
		done:     r.NewStyle().Faint(true),
		project:  r.NewStyle().Foreground(lipgloss.Color(c.Project)),
		context:  r.NewStyle().Foreground(lipgloss.Color(c.Context)),
	}
}

// Render returns the styled label for t.
func (p *Presenter) Render(t *todo.Task) string {
	subject := p.subject
	if t.Completed {
		subject = p.done
	}
	return layout(t,
		styled(p.priority),
		styled(subject),
		styled(p.context),
		styled(p.project),
	)
}

// Render returns the styled label for t using the default renderer.
func Render(t *todo.Task, c Colors) string {
	return New(c).Render(t)
}

// Plain returns the label for t without any styling.
func Plain(t *todo.Task) string {
	return layout(t, identity, identity, identity, identity)
}

// Markup returns the label for t as Pango markup, suitable for
// rofi -dmenu -markup-rows.
func Markup(t *todo.Task, c Colors) string {
	span := func(attrs string) func(string) string {
		return func(s string) string {
			return "<span " + attrs + ">" + html.EscapeString(s) + "</span>"
		}
	}
	priority := func(s string) string {
		return "<span fgcolor='" + c.Priority + "'><b>" + html.EscapeString(s) + "</b></span>"
	}
	subject := html.EscapeString
	if t.Completed {
		subject = span("alpha='50%'")
	}
	return layout(t,
		priority,
		subject,
		span("fgcolor='"+c.Context+"'"),
		span("fgcolor='"+c.Project+"'"),
	)
}

func layout(t *todo.Task, priority, subject, context, project func(string) string) string {
	parts := make([]string, 0, 2+len(t.Contexts)+len(t.Projects))
	if t.Priority.IsSet() {
		parts = append(parts, priority("("+t.Priority.String()+")"))
	}
	if s := t.DisplaySubject(); s != "" {
		parts = append(parts, subject(s))
	}
	for _, c := range t.Contexts {
		parts = append(parts, context(string(todo.ContextSigil)+c))
	}
	for _, p := range t.Projects {
		parts = append(parts, project(string(todo.ProjectSigil)+p))
	}
	return strings.Join(parts, " ")
}

// styled adapts a style to the single-string form layout expects.
func styled(st lipgloss.Style) func(string) string {
	return func(s string) string {
		return st.Render(s)
	}
}

func identity(s string) string {
	return s
}
