package domain

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Session is the mutable state of one terminal: the logical working
// directory (cursor) and the raw command history. The host process's real
// working directory is never touched.
//
// A Session is not safe for concurrent use; callers serving several clients
// own one Session per client or guard it externally.
type Session struct {
	home    string
	cwd     string
	history []string
}

// NewSession creates a session rooted at start (home when empty).
func NewSession(home, start string) *Session {
	if home == "" {
		home = string(filepath.Separator)
	}
	s := &Session{home: filepath.Clean(home)}
	if start == "" {
		s.cwd = s.home
	} else {
		s.cwd = s.Resolve(start)
	}
	return s
}

// CurrentPath returns the cursor.
func (s *Session) CurrentPath() string {
	return s.cwd
}

// Home returns the directory cd without arguments returns to.
func (s *Session) Home() string {
	return s.home
}

// SetCurrentPath moves the cursor. Callers validate the target first.
func (s *Session) SetCurrentPath(path string) {
	s.cwd = filepath.Clean(path)
}

// Resolve turns path into an absolute, cleaned path relative to the cursor.
func (s *Session) Resolve(path string) string {
	switch {
	case path == "" || path == ".":
		return s.cwd
	case path == "~":
		return s.home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(s.home, path[2:])
	case filepath.IsAbs(path):
		return filepath.Clean(path)
	default:
		return filepath.Join(s.cwd, path)
	}
}

// Record appends a raw input line to the history.
func (s *Session) Record(input string) {
	s.history = append(s.history, input)
}

// HistoryLen returns the total number of recorded commands.
func (s *Session) HistoryLen() int {
	return len(s.history)
}

// History returns the recorded commands matching q, oldest first.
func (s *Session) History(q HistoryQuery) []string {
	entries := s.history
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		entries = lo.Filter(entries, func(entry string, _ int) bool {
			return strings.Contains(strings.ToLower(entry), needle)
		})
	}
	if !q.All {
		limit := q.Limit
		if limit <= 0 {
			limit = DefaultHistoryLimit
		}
		if len(entries) > limit {
			entries = entries[len(entries)-limit:]
		}
	}
	return slices.Clone(entries)
}
