// Package todo parses, serializes, and stores todo.txt task lists.
//
// Each non-blank line of the task file is one task:
//
//	[x ][(A) ][2024-01-02 ][2024-01-01 ]subject text +project @context #hashtag
//
// # Markers
//
//   - "x " at the start of the line marks the task as completed
//   - "(L) " with L in A..Z sets the priority; A is the most urgent
//   - up to two YYYY-MM-DD dates may follow; they are carried through untouched
//
// # Tags
//
// Tags live inside the subject and are never written twice. A whitespace-delimited
// token starting with "+" is a project, "@" a context and "#" a hashtag. The tag
// name is the token without its leading sigil, so "+@home" is the project "@home".
//
// # Parsing
//
// Parse never fails. Malformed markers are left in the subject, so
// Parse(t.String()) always yields a task equal to t.
//
// # Storage
//
// Store keeps the task file open for the whole session. Save rewrites the file
// in full, by default through a temporary file renamed over the target.
package todo
