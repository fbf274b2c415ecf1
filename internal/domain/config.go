package domain

// Config mirrors ~/.nlterm/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Shell               ShellSettings     `yaml:"shell"`
	Execution           ExecutionSettings `yaml:"execution"`
	History             HistorySettings   `yaml:"history"`
	Server              ServerSettings    `yaml:"server"`
	UI                  UISettings        `yaml:"ui"`
	Metrics             MetricsSettings   `yaml:"metrics"`
}

// ShellSettings configures the interactive terminal.
type ShellSettings struct {
	StartDir            string `yaml:"start_dir"`
	HistoryFile         string `yaml:"history_file"`
	HistoryDisplayLimit int    `yaml:"history_display_limit"`
	Banner              bool   `yaml:"banner"`
}

// ExecutionSettings controls how external commands run.
type ExecutionSettings struct {
	Shell          string `yaml:"shell"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// HistorySettings controls the persistent history store.
type HistorySettings struct {
	Enabled       bool   `yaml:"enabled"`
	Backend       string `yaml:"backend"`
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

// ServerSettings configures the HTTP binding.
type ServerSettings struct {
	Addr        string `yaml:"addr"`
	MaxSessions int    `yaml:"max_sessions"`
	AllowOrigin string `yaml:"allow_origin"`
}

// UISettings selects the output formatter.
type UISettings struct {
	Rich string `yaml:"rich"`
}

// MetricsSettings tunes host introspection.
type MetricsSettings struct {
	CPUSampleMS int `yaml:"cpu_sample_ms"`
}
