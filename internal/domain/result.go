package domain

// CommandResult is the structured outcome of one top-level Execute call.
// Empty Error and AITranslation mean "absent".
type CommandResult struct {
	Output        string `json:"output"`
	ExitCode      int    `json:"exit_code"`
	Error         string `json:"error,omitempty"`
	AITranslation string `json:"ai_translation,omitempty"`
}

// Succeeded reports whether the command exited with status zero.
func (r CommandResult) Succeeded() bool {
	return r.ExitCode == 0
}

// ProcessResult is what an external process run reports back.
type ProcessResult struct {
	Output   string
	ExitCode int
	TimedOut bool
	Err      error
}
