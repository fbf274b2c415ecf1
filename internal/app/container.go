package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/doeshing/nlterm/internal/application/builtins"
	configapp "github.com/doeshing/nlterm/internal/application/config"
	"github.com/doeshing/nlterm/internal/application/doctor"
	"github.com/doeshing/nlterm/internal/application/terminal"
	"github.com/doeshing/nlterm/internal/application/translator"
	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/infrastructure/config"
	"github.com/doeshing/nlterm/internal/infrastructure/executor"
	"github.com/doeshing/nlterm/internal/infrastructure/fsys"
	"github.com/doeshing/nlterm/internal/infrastructure/history"
	"github.com/doeshing/nlterm/internal/infrastructure/metrics"
	"github.com/doeshing/nlterm/internal/pkg/filesystem"
	"github.com/doeshing/nlterm/internal/pkg/logger"
	"github.com/doeshing/nlterm/internal/ports"
)

// Options selects how the container is built.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         *logger.Zap
	FileSystem     ports.FileSystem
	Runner         *executor.LocalExecutor
	Metrics        ports.MetricsProvider
	HistoryStore   ports.HistoryRepository
	Translator     *translator.Translator
	Registry       *builtins.Registry
	DoctorService  *doctor.Service
	Home           string
	User           string
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	log, err := logger.New(opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := configapp.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgLoader.Path(), err)
	}

	var historyStore ports.HistoryRepository
	if cfg.IsHistoryEnabled() {
		historyStore, err = history.Open(cfg.GetHistoryBackend(), cfg.History.Path, log)
		if err != nil {
			return nil, err
		}
		if err := historyStore.PruneOlderThan(cfg.GetHistoryRetentionDays()); err != nil {
			log.Warn("history prune failed", map[string]interface{}{"error": err.Error()})
		}
	}

	tr := translator.NewDefault()
	metricsProvider := metrics.Default()

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		FileSystem:     fsys.New(),
		Runner:         executor.NewLocalExecutor(cfg.GetExecutionShell(), cfg.GetCommandTimeout()),
		Metrics:        metricsProvider,
		HistoryStore:   historyStore,
		Translator:     tr,
		Registry:       builtins.NewRegistry(),
		DoctorService: &doctor.Service{
			ConfigProvider: cfgLoader,
			Metrics:        metricsProvider,
			HistoryStore:   historyStore,
			Translator:     tr,
		},
		Home: filesystem.UserHomeDir(),
		User: currentUser(),
	}, nil
}

// NewTerminal starts a session in the configured start directory.
func (c *Container) NewTerminal(sessionID string) *terminal.Service {
	return terminal.New(terminal.Options{
		SessionID:    sessionID,
		Home:         c.Home,
		StartDir:     c.Config.Shell.StartDir,
		User:         c.User,
		FS:           c.FileSystem,
		Runner:       c.Runner,
		Metrics:      c.Metrics,
		History:      c.HistoryStore,
		Logger:       c.Logger,
		Translator:   c.Translator,
		Registry:     c.Registry,
		Timeout:      c.Config.GetCommandTimeout(),
		CPUSample:    c.Config.GetCPUSampleInterval(),
		HistoryLimit: c.Config.GetHistoryDisplayLimit(),
	})
}

// Close flushes the logger and releases the history store.
func (c *Container) Close() error {
	if closer, ok := c.HistoryStore.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return nil
}

func currentUser() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}
