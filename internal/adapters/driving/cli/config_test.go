package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loamlabs/habitsync-cli/internal/adapters/driven/config/file"
)

func setupConfigTest(t *testing.T) (*file.ConfigStore, func()) {
	t.Helper()
	t.Setenv(file.EnvTodoistToken, "")
	t.Setenv(file.EnvHabitifyKey, "")

	cs, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	old := configStore
	configStore = cs
	return cs, func() {
		configStore = old
	}
}

func TestConfigShow_RedactsSecrets(t *testing.T) {
	cs, cleanup := setupConfigTest(t)
	defer cleanup()
	require.NoError(t, cs.SetTodoistToken("supersecrettoken"))

	out, err := execute(t, "config", "show")
	require.NoError(t, err)

	assert.NotContains(t, out, "supersecrettoken")
	assert.Contains(t, out, "su")
	assert.Contains(t, out, "Habitify key:   (not set)")
}

func TestConfigSetToken_UnknownService(t *testing.T) {
	_, cleanup := setupConfigTest(t)
	defer cleanup()

	_, err := execute(t, "config", "set-token", "jira")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown service")
}

func TestConfigSetToken_ReadsFromStdin(t *testing.T) {
	cs, cleanup := setupConfigTest(t)
	defer cleanup()

	rootCmd.SetIn(strings.NewReader("piped-token\n"))
	defer rootCmd.SetIn(nil)

	out, err := execute(t, "config", "set-token", "todoist")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored todoist credential")
	assert.Equal(t, "piped-token", cs.Config().Todoist.Token)
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "(not set)", redact(""))
	assert.Equal(t, "****", redact("abcd"))
	assert.Equal(t, "ab**ef", redact("abcdef"))
}
