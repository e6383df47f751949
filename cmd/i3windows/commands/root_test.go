package commands

import (
	"bytes"
	"errors"
	"os/user"
	"strings"
	"testing"

	"github.com/bryanchriswhite/i3windows/internal/config"
	"github.com/bryanchriswhite/i3windows/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}

	for _, name := range []string{"list", "config"} {
		assert.True(t, found[name], "expected subcommand %q", name)
	}
}

func TestRootCommand_AcceptsAtMostOneArg(t *testing.T) {
	assert.NoError(t, rootCmd.Args(rootCmd, nil))
	assert.NoError(t, rootCmd.Args(rootCmd, []string{"1"}))
	assert.Error(t, rootCmd.Args(rootCmd, []string{"1", "2"}))
}

func TestParseGroup(t *testing.T) {
	group, err := parseGroup(nil)
	require.NoError(t, err)
	assert.Nil(t, group)

	group, err = parseGroup([]string{"2"})
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Equal(t, 2, *group)

	_, err = parseGroup([]string{"left"})
	assert.Error(t, err)
}

func TestPlaceholdersFrom(t *testing.T) {
	env := map[string]string{"USER": "alice"}
	getenv := func(k string) string { return env[k] }
	current := func() (*user.User, error) { return &user.User{Username: "fromdb"}, nil }
	hostname := func() (string, error) { return "box", nil }

	p := placeholdersFrom(getenv, current, hostname)
	assert.Equal(t, "alice", p.User)
	assert.Equal(t, "box", p.Host)

	// LOGNAME wins over USER
	env["LOGNAME"] = "root"
	assert.Equal(t, "root", placeholdersFrom(getenv, current, hostname).User)

	empty := func(string) string { return "" }
	noHost := func() (string, error) { return "", errors.New("no hostname") }
	p = placeholdersFrom(empty, current, noHost)
	assert.Equal(t, "fromdb", p.User)
	assert.Equal(t, "", p.Host)
}

func TestPrintWindowsTable(t *testing.T) {
	var buf bytes.Buffer
	err := printWindowsTable(&buf, []window.Window{
		{ID: 1, Class: "URxvt", Title: "zsh", Workspace: "1", Focused: true},
		{ID: 2, Class: "Firefox", Title: "Example", Workspace: "2", Urgent: true},
		{ID: 3, Class: "Code", Title: "main.go", Workspace: "2"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "WORKSPACE"))
	assert.Contains(t, lines[2], "focused")
	assert.Contains(t, lines[3], "urgent")
	assert.Contains(t, lines[4], "main.go")
}

func TestPrintWindowsJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printWindowsJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteConfig(t *testing.T) {
	cfg := config.Default()

	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, cfg, "yaml"))

	var decoded config.Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, cfg.MaxLength, decoded.MaxLength)
	assert.Equal(t, cfg.Colors, decoded.Colors)
	assert.Equal(t, cfg.Title.Formatters, decoded.Title.Formatters)

	buf.Reset()
	require.NoError(t, writeConfig(&buf, cfg, "json"))
	assert.Contains(t, buf.String(), `"max_length": 50`)

	assert.Error(t, writeConfig(&buf, cfg, "toml"))
}

func TestLookupConfigKey(t *testing.T) {
	cfg := config.Default()

	value, err := lookupConfigKey(cfg, "colors.accent")
	require.NoError(t, err)
	assert.Equal(t, "#b4619a", value)

	value, err = lookupConfigKey(cfg, "max_length")
	require.NoError(t, err)
	assert.Equal(t, 50, value)

	value, err = lookupConfigKey(cfg, "title.formatters")
	require.NoError(t, err)
	require.IsType(t, []any{}, value)
	assert.Len(t, value, len(cfg.Title.Formatters))

	value, err = lookupConfigKey(cfg, "icons.rules")
	require.NoError(t, err)
	assert.Len(t, value, len(cfg.Icons.Rules))

	_, err = lookupConfigKey(cfg, "colors.nope")
	assert.Error(t, err)

	_, err = lookupConfigKey(cfg, "max_length.inner")
	assert.Error(t, err)
}
