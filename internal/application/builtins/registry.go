// Package builtins implements the commands the dispatcher runs natively.
// Every path operand is resolved against the session cursor, so several
// sessions can share one process without touching its working directory.
package builtins

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/ports"
)

// Builtin runs one command and reports its output and exit status.
type Builtin func(ctx context.Context, env *Env, args []string) (string, int)

// Env is everything a built-in may touch.
type Env struct {
	Session      *domain.Session
	FS           ports.FileSystem
	Runner       ports.ProcessRunner
	Metrics      ports.MetricsProvider
	User         string
	CPUSample    time.Duration
	HistoryLimit int
	Now          func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Env) historyLimit() int {
	if e.HistoryLimit <= 0 {
		return domain.DefaultHistoryLimit
	}
	return e.HistoryLimit
}

func (e *Env) user() string {
	if e.User != "" {
		return e.User
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}

// Registry maps command names to built-ins.
type Registry struct {
	commands map[string]Builtin
}

// NewRegistry returns the fixed built-in command set.
func NewRegistry() *Registry {
	r := &Registry{}
	r.commands = map[string]Builtin{
		"ls":          ls,
		"pwd":         pwd,
		"cd":          cd,
		"mkdir":       mkdir,
		"rm":          rm,
		"rmdir":       rmdir,
		"touch":       touch,
		"cat":         cat,
		"cp":          cp,
		"mv":          mv,
		"echo":        echo,
		"find":        find,
		"grep":        grep,
		"which":       r.which,
		"whereis":     r.whereis,
		"du":          du,
		"ps":          ps,
		"free":        free,
		"df":          df,
		"uptime":      uptime,
		"cpu":         cpu,
		"system_info": systemInfo,
		"whoami":      whoami,
		"date":        date,
		"history":     showHistory,
		"help":        showHelp,
		"clear":       clearScreen,
	}
	return r
}

// Lookup returns the built-in registered under name.
func (r *Registry) Lookup(name string) (Builtin, bool) {
	b, ok := r.commands[name]
	return b, ok
}

// Has reports whether name is a built-in.
func (r *Registry) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
