// Package terminal is the facade hosts drive: it translates natural
// language, dispatches commands and keeps the session history.
package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/nlterm/internal/application/builtins"
	"github.com/doeshing/nlterm/internal/application/dispatcher"
	"github.com/doeshing/nlterm/internal/application/translator"
	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/pkg/logger"
	"github.com/doeshing/nlterm/internal/ports"
)

// Error messages surfaced when natural language cannot be translated.
const (
	TranslationFailedError = "Natural language processing failed"
	translationFailedFmt   = "Could not understand natural language command: '%s'"
)

// Options configures a Service. FS and Runner are required; everything
// else has a usable zero value.
type Options struct {
	SessionID    string
	Home         string
	StartDir     string
	User         string
	FS           ports.FileSystem
	Runner       ports.ProcessRunner
	Metrics      ports.MetricsProvider
	History      ports.HistoryRepository
	Logger       ports.Logger
	Translator   *translator.Translator
	Registry     *builtins.Registry
	Timeout      time.Duration
	CPUSample    time.Duration
	HistoryLimit int
	Now          func() time.Time
}

// Service owns one session. It is not safe for concurrent use.
type Service struct {
	id         string
	session    *domain.Session
	translator *translator.Translator
	dispatcher *dispatcher.Dispatcher
	history    ports.HistoryRepository
	logger     ports.Logger
	now        func() time.Time
}

// New builds a Service from opts.
func New(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	tr := opts.Translator
	if tr == nil {
		tr = translator.NewDefault()
	}
	registry := opts.Registry
	if registry == nil {
		registry = builtins.NewRegistry()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	session := domain.NewSession(opts.Home, opts.StartDir)
	env := &builtins.Env{
		Session:      session,
		FS:           opts.FS,
		Runner:       opts.Runner,
		Metrics:      opts.Metrics,
		User:         opts.User,
		CPUSample:    opts.CPUSample,
		HistoryLimit: opts.HistoryLimit,
		Now:          now,
	}
	return &Service{
		id:         opts.SessionID,
		session:    session,
		translator: tr,
		dispatcher: dispatcher.New(registry, opts.Runner, env, log, opts.Timeout),
		history:    opts.History,
		logger:     log,
		now:        now,
	}
}

// ID returns the session identifier given at construction.
func (s *Service) ID() string {
	return s.id
}

// Translate maps text onto a command without running it.
func (s *Service) Translate(text string) (string, bool) {
	return s.translator.Translate(text)
}

// Execute runs one top-level input. With naturalLanguage set the input is
// translated first and never executed verbatim. Every non-empty input is
// recorded once, as typed.
func (s *Service) Execute(ctx context.Context, command string, naturalLanguage bool) domain.CommandResult {
	input := strings.TrimSpace(command)
	if input == "" {
		return domain.CommandResult{}
	}
	s.session.Record(input)
	dir := s.session.CurrentPath()
	start := s.now()

	resolved := input
	var res domain.CommandResult
	if naturalLanguage {
		translated, ok := s.translator.Translate(input)
		if !ok {
			s.logger.Warn("translation failed", map[string]interface{}{"input": input})
			res = domain.CommandResult{
				Output:   fmt.Sprintf(translationFailedFmt, input),
				ExitCode: 1,
				Error:    TranslationFailedError,
			}
			s.persist(input, "", naturalLanguage, dir, start, res)
			return res
		}
		s.logger.Debug("translated", map[string]interface{}{"input": input, "command": translated})
		resolved = translated
	}

	res = s.dispatcher.Execute(ctx, resolved)
	if naturalLanguage {
		res.AITranslation = resolved
	}
	s.persist(input, resolved, naturalLanguage, dir, start, res)
	return res
}

// persist writes to the optional history store; failures never reach the caller.
func (s *Service) persist(input, command string, natural bool, dir string, start time.Time, res domain.CommandResult) {
	if s.history == nil {
		return
	}
	record := domain.HistoryRecord{
		Timestamp:       start,
		SessionID:       s.id,
		Input:           input,
		Command:         command,
		NaturalLanguage: natural,
		Success:         res.Succeeded(),
		ExitCode:        res.ExitCode,
		Directory:       dir,
		ExecutionTimeMS: s.now().Sub(start).Milliseconds(),
	}
	if err := s.history.Save(record); err != nil {
		s.logger.Warn("history persistence failed", map[string]interface{}{"error": err.Error()})
	}
}

// History returns recorded inputs matching q, oldest first.
func (s *Service) History(q domain.HistoryQuery) []string {
	return s.session.History(q)
}

// CurrentPath returns the session cursor.
func (s *Service) CurrentPath() string {
	return s.session.CurrentPath()
}

// Builtins lists the names the dispatcher handles natively.
func (s *Service) Builtins() []string {
	return s.dispatcher.Registry.Names()
}
