package todo

import (
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DateLayout is the layout of the optional dates before the subject.
const DateLayout = "2006-01-02"

// maxDates is the number of leading dates the format allows.
const maxDates = 2

// Tag sigils.
const (
	ProjectSigil = '+'
	ContextSigil = '@'
	HashtagSigil = '#'
)

// Task is one todo.txt line.
//
// Projects, Contexts and Hashtags are derived from Subject whenever the subject
// is parsed or replaced. They hold each tag once, in order of first appearance.
type Task struct {
	Completed bool
	Priority  Priority
	Subject   string

	Projects []string
	Contexts []string
	Hashtags []string

	dates []string
}

// Parse parses one line of a task file. It never fails: anything that is
// not a recognized marker ends up in the subject.
func Parse(line string) Task {
	line = strings.TrimRight(line, "\r\n")
	t := Task{Priority: NoPriority}

	rest := line
	if strings.HasPrefix(rest, "x ") {
		t.Completed = true
		rest = rest[2:]
	}
	if p, ok := priorityMarker(rest); ok {
		t.Priority = p
		rest = rest[4:]
	}
	for len(t.dates) < maxDates {
		d, ok := leadingDate(rest)
		if !ok {
			break
		}
		t.dates = append(t.dates, d)
		rest = rest[len(d)+1:]
	}

	t.setSubject(rest)
	return t
}

// NewTask returns an open task with the given subject and no priority.
func NewTask(subject string) Task {
	t := Task{Priority: NoPriority}
	t.SetSubject(subject)
	return t
}

// String serializes the task in canonical field order.
func (t *Task) String() string {
	var b strings.Builder
	if t.Completed {
		b.WriteString("x ")
	}
	if t.Priority.IsSet() {
		b.WriteByte('(')
		b.WriteString(t.Priority.String())
		b.WriteString(") ")
	}
	for _, d := range t.dates {
		b.WriteString(d)
		b.WriteByte(' ')
	}
	b.WriteString(t.Subject)
	return b.String()
}

// SetSubject replaces the subject with text parsed as a whole line.
// Markers typed into text are discarded; completion, priority and dates
// of t are kept.
func (t *Task) SetSubject(text string) {
	edited := Parse(text)
	t.Subject = edited.Subject
	t.Projects = edited.Projects
	t.Contexts = edited.Contexts
	t.Hashtags = edited.Hashtags
}

// Complete marks the task as done.
func (t *Task) Complete() {
	t.Completed = true
}

// Uncomplete marks the task as open.
func (t *Task) Uncomplete() {
	t.Completed = false
}

// Toggle flips the completion flag.
func (t *Task) Toggle() {
	t.Completed = !t.Completed
}

// DisplaySubject returns the subject with every tag token removed together
// with one preceding space. A tag at the start of the subject takes one
// following space instead.
func (t *Task) DisplaySubject() string {
	var b strings.Builder
	dropLeading := false
	prev := 0
	for _, tok := range tokens(t.Subject) {
		gap := t.Subject[prev:tok.start]
		prev = tok.end
		if dropLeading && gap != "" {
			_, size := utf8.DecodeRuneInString(gap)
			gap = gap[size:]
			dropLeading = false
		}
		word := t.Subject[tok.start:tok.end]
		if _, ok := tagName(word); !ok {
			b.WriteString(gap)
			b.WriteString(word)
			continue
		}
		if gap != "" {
			_, size := utf8.DecodeLastRuneInString(gap)
			b.WriteString(gap[:len(gap)-size])
		} else if b.Len() == 0 {
			dropLeading = true
		}
	}
	tail := t.Subject[prev:]
	if dropLeading && tail != "" {
		_, size := utf8.DecodeRuneInString(tail)
		tail = tail[size:]
	}
	b.WriteString(tail)
	return b.String()
}

// CreationDate returns the creation date, if the line carried one.
func (t *Task) CreationDate() (time.Time, bool) {
	idx := 0
	if t.Completed {
		idx = 1
	}
	return t.date(idx)
}

// CompletionDate returns the completion date of a completed task.
func (t *Task) CompletionDate() (time.Time, bool) {
	if !t.Completed {
		return time.Time{}, false
	}
	return t.date(0)
}

// Equal reports whether both tasks serialize and parse the same way.
func (t Task) Equal(other Task) bool {
	return t.Completed == other.Completed &&
		t.Priority == other.Priority &&
		t.Subject == other.Subject &&
		slices.Equal(t.dates, other.dates) &&
		slices.Equal(t.Projects, other.Projects) &&
		slices.Equal(t.Contexts, other.Contexts) &&
		slices.Equal(t.Hashtags, other.Hashtags)
}

func (t *Task) date(idx int) (time.Time, bool) {
	if idx >= len(t.dates) {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, t.dates[idx])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// setSubject stores subject and refreshes the derived tag lists.
// Marker-like prefixes left in front of the subject are dropped so that the
// serialized line always parses back to the same task.
func (t *Task) setSubject(subject string) {
	subject = trimMarkers(subject)
	t.Subject = subject
	t.Projects, t.Contexts, t.Hashtags = nil, nil, nil
	for _, tok := range tokens(subject) {
		word := subject[tok.start:tok.end]
		name, ok := tagName(word)
		if !ok {
			continue
		}
		switch word[0] {
		case ProjectSigil:
			t.Projects = appendUnique(t.Projects, name)
		case ContextSigil:
			t.Contexts = appendUnique(t.Contexts, name)
		case HashtagSigil:
			t.Hashtags = appendUnique(t.Hashtags, name)
		}
	}
}

func trimMarkers(s string) string {
	for {
		if strings.HasPrefix(s, "x ") {
			s = s[2:]
			continue
		}
		if _, ok := priorityMarker(s); ok {
			s = s[4:]
			continue
		}
		if d, ok := leadingDate(s); ok {
			s = s[len(d)+1:]
			continue
		}
		return s
	}
}

func priorityMarker(s string) (Priority, bool) {
	if len(s) < 4 || s[0] != '(' || s[2] != ')' || s[3] != ' ' {
		return NoPriority, false
	}
	return PriorityFromLetter(s[1])
}

func leadingDate(s string) (string, bool) {
	if len(s) < len(DateLayout)+1 || s[len(DateLayout)] != ' ' {
		return "", false
	}
	d := s[:len(DateLayout)]
	if _, err := time.Parse(DateLayout, d); err != nil {
		return "", false
	}
	return d, true
}

// tagName returns the tag name of a token such as "+project".
func tagName(word string) (string, bool) {
	if len(word) < 2 {
		return "", false
	}
	switch word[0] {
	case ProjectSigil, ContextSigil, HashtagSigil:
		return word[1:], true
	}
	return "", false
}

type span struct {
	start, end int
}

// tokens returns the byte spans of the whitespace-delimited words in s.
func tokens(s string) []span {
	var out []span
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, span{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, span{start, len(s)})
	}
	return out
}

func appendUnique(list []string, name string) []string {
	if slices.Contains(list, name) {
		return list
	}
	return append(list, name)
}
