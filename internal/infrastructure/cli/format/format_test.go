package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/nlterm/internal/domain"
)

func TestSelect(t *testing.T) {
	assert.IsType(t, Plain{}, Select(domain.RichNever, nil))
	assert.IsType(t, &Rich{}, Select(domain.RichAlways, nil))
	assert.IsType(t, Plain{}, Select(domain.RichAuto, nil))
}

func TestPlainResult(t *testing.T) {
	var buf bytes.Buffer
	Plain{}.Result(&buf, domain.CommandResult{
		Output:        "Step 1: Created directory: demo",
		ExitCode:      0,
		AITranslation: "mkdir demo",
	})
	assert.Equal(t, "-> mkdir demo\nStep 1: Created directory: demo\n", buf.String())

	buf.Reset()
	Plain{}.Result(&buf, domain.CommandResult{Output: "Command failed with exit code 2", ExitCode: 2, Error: "Command chain failed at step 1"})
	assert.Equal(t, "Command failed with exit code 2\nerror: Command chain failed at step 1\n", buf.String())
}

func TestPlainPrompt(t *testing.T) {
	assert.Equal(t, "ada@nlterm:~/src$ ", Plain{}.Prompt("ada", "~/src"))
}

func TestRichResultKeepsText(t *testing.T) {
	var buf bytes.Buffer
	NewRich().Result(&buf, domain.CommandResult{Output: "hello", AITranslation: "echo hello"})
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "echo hello")
}
