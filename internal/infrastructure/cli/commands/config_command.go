package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/nlterm/internal/app"
	configapp "github.com/doeshing/nlterm/internal/application/config"
	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/nlterm/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(lazy *app.Lazy) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect nlterm configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(c *app.Container) error {
				return showConfiguration(cmd.Context(), cmd.OutOrStdout(), c)
			})
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(lazy),
		newConfigPathCommand(lazy),
		newConfigGetCommand(lazy),
		newConfigSetCommand(lazy),
		newConfigValidateCommand(lazy),
		newConfigDiffCommand(lazy),
	)

	return configCmd
}

func withContainer(cmd *cobra.Command, lazy *app.Lazy, fn func(*app.Container) error) error {
	container, err := lazy.Get(cmd.Context())
	if err != nil {
		return err
	}
	return fn(container)
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show full configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(c *app.Container) error {
				return showConfiguration(cmd.Context(), cmd.OutOrStdout(), c)
			})
		},
	}
}

// newConfigPathCommand creates the 'config path' subcommand
func newConfigPathCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(c *app.Container) error {
				loader, err := helpers.ConfigLoader(c)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), loader.Path())
				return nil
			})
		},
	}
}

// newConfigGetCommand creates the 'config get' subcommand
func newConfigGetCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value (e.g. execution.timeout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(c *app.Container) error {
				return getConfigurationValue(cmd.Context(), cmd.OutOrStdout(), c, args[0])
			})
		},
	}
}

// newConfigSetCommand creates the 'config set' subcommand
func newConfigSetCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (value accepts YAML syntax)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(c *app.Container) error {
				return setConfigurationValue(cmd.Context(), c, args[0], strings.Join(args[1:], " "))
			})
		},
	}
}

// newConfigValidateCommand creates the 'config validate' subcommand
func newConfigValidateCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(c *app.Container) error {
				cfg, err := c.ConfigProvider.Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("configuration validation failed: %w", err)
				}
				if err := configapp.Validate(cfg); err != nil {
					return fmt.Errorf("configuration validation failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
				return nil
			})
		},
	}
}

// newConfigDiffCommand creates the 'config diff' subcommand
func newConfigDiffCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show diff versus default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(c *app.Container) error {
				return showConfigurationDiff(cmd.Context(), cmd.OutOrStdout(), c)
			})
		},
	}
}

// showConfiguration displays the full configuration in YAML format
func showConfiguration(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	fmt.Fprint(out, string(data))
	return nil
}

// getConfigurationValue retrieves a specific configuration value by key path
func getConfigurationValue(ctx context.Context, out io.Writer, container *app.Container, keyPath string) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfgMap, err := configToMap(cfg)
	if err != nil {
		return err
	}

	value, found := lookupKey(cfgMap, strings.Split(keyPath, "."))
	if !found {
		return fmt.Errorf("key %s not found in configuration", keyPath)
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	fmt.Fprint(out, string(data))
	return nil
}

// setConfigurationValue updates a configuration value by key path
func setConfigurationValue(ctx context.Context, container *app.Container, keyPath string, value string) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfgMap, err := configToMap(cfg)
	if err != nil {
		return err
	}

	var parsed interface{}
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil {
		return fmt.Errorf("failed to parse value: %w", err)
	}

	if !assignKey(cfgMap, strings.Split(keyPath, "."), parsed) {
		return fmt.Errorf("unable to set key %s", keyPath)
	}

	updated, err := mapToConfig(cfgMap)
	if err != nil {
		return err
	}

	_, err = helpers.PersistConfig(container, updated)
	return err
}

// showConfigurationDiff shows the difference between current and default configuration
func showConfigurationDiff(ctx context.Context, out io.Writer, container *app.Container) error {
	current, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load current configuration: %w", err)
	}

	diff := cmp.Diff(configinfra.Default(), current)
	if diff == "" {
		fmt.Fprintln(out, MsgNoDifferencesFromDefault)
		return nil
	}

	fmt.Fprintln(out, diff)
	return nil
}

func configToMap(cfg domain.Config) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var cfgMap map[string]interface{}
	if err := yaml.Unmarshal(raw, &cfgMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to map: %w", err)
	}
	return cfgMap, nil
}

func mapToConfig(cfgMap map[string]interface{}) (domain.Config, error) {
	raw, err := yaml.Marshal(cfgMap)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to marshal updated map: %w", err)
	}
	return configinfra.Parse(raw)
}

// lookupKey walks nested maps along keys.
func lookupKey(m map[string]interface{}, keys []string) (interface{}, bool) {
	var current interface{} = m
	for _, key := range keys {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// assignKey sets an existing leaf; unknown keys are rejected.
func assignKey(m map[string]interface{}, keys []string, value interface{}) bool {
	if len(keys) == 0 {
		return false
	}
	parent, ok := lookupKey(m, keys[:len(keys)-1])
	if !ok {
		return false
	}
	node, ok := parent.(map[string]interface{})
	if !ok {
		return false
	}
	if _, exists := node[keys[len(keys)-1]]; !exists {
		return false
	}
	node[keys[len(keys)-1]] = value
	return true
}
