package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"wireworld/internal/printer"
	"wireworld/internal/store"
	"wireworld/pkg/sims/wireworld"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wire = "#MCell 4.00\n#GAME Wireworld\n#BOARD 4x1\n#L H3C$\n"

// run executes the root command with fresh flag values and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, debug = "", false
	stepCount, stepOutput, stepShow = 1, "", false
	demoOutput, storeGetOutput = "", ""
	serveAddr, serveStart = "", false

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRootShowsHelp(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "wwctl")
}

func TestRootRejectsUnknownFlags(t *testing.T) {
	_, err := run(t, "--bogus")
	assert.ErrorContains(t, err, "unknown flag")
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing argument", args: []string{"step"}, want: "Error: accepts 1 arg(s), received 0\n"},
		{name: "blank store name", args: []string{"store", "put", "  ", "IN"}, want: "name cannot be empty"},
		{name: "unwritable output", args: []string{"step", "-o", "/nonexistent/dir/x.mcl", "IN"}, want: "Error: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := writeFile(t, "in.mcl", wire)
			cfg := writeFile(t, "wireworld.yml", "store:\n  backend: file\n  dir: "+t.TempDir()+"\n")
			args := append([]string{"--config", cfg}, tt.args...)
			for i, a := range args {
				if a == "IN" {
					args[i] = in
				}
			}

			_, err := run(t, args...)
			require.Error(t, err)
			assert.NotErrorIs(t, err, printer.ErrReported)

			var stderr bytes.Buffer
			Report(&stderr, err)
			assert.Contains(t, stderr.String(), tt.want)
		})
	}

	var stderr bytes.Buffer
	Report(&stderr, printer.Error("invalid configuration", "details", nil))
	Report(&stderr, nil)
	assert.Empty(t, stderr.String())
}

func TestDemo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.mcl")
	_, err := run(t, "demo", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, wireworld.DemoPattern+"\n", string(data))
}

func TestValidate(t *testing.T) {
	good := writeFile(t, "good.mcl", wire)
	bad := writeFile(t, "bad.mcl", "#BOARD 2x1\n#L 3C$")

	_, err := run(t, "validate", good)
	assert.NoError(t, err)

	_, err = run(t, "validate", good, bad)
	assert.ErrorContains(t, err, "1 of 2 patterns invalid")
}

func TestStep(t *testing.T) {
	in := writeFile(t, "in.mcl", wire)
	outPath := filepath.Join(t.TempDir(), "out.mcl")

	_, err := run(t, "step", "-n", "2", "-o", outPath, in)
	require.NoError(t, err)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "#MCell 4.00\n#GAME Wireworld\n#BOARD 4x1\n#L CTHC$\n", string(data))

	out, err := run(t, "step", in)
	require.NoError(t, err)
	assert.Equal(t, "#MCell 4.00\n#GAME Wireworld\n#BOARD 4x1\n#L TH2C$\n", out)

	_, err = run(t, "step", "-n", "-1", in)
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	in := writeFile(t, "in.mcl", wire)
	out, err := run(t, "show", in)
	require.NoError(t, err)
	assert.Equal(t, "4x1  copper=3 head=1 tail=0\nHCCC\n", out)

	_, err = run(t, "show", filepath.Join(t.TempDir(), "missing.mcl"))
	assert.Error(t, err)
}

func TestStoreCommands(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "library")
	cfg := writeFile(t, "wireworld.yml", "store:\n  backend: file\n  dir: "+dir+"\n")
	in := writeFile(t, "in.mcl", wire)

	_, err := run(t, "--config", cfg, "store", "put", "pulse", in)
	require.NoError(t, err)

	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)
	recs, err := fs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	id := recs[0].ID

	out, err := run(t, "--config", cfg, "store", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "pulse")
	assert.Contains(t, out, "4x1")

	out, err = run(t, "--config", cfg, "store", "get", id)
	require.NoError(t, err)
	assert.Equal(t, wire, out)

	_, err = run(t, "--config", cfg, "store", "delete", id)
	require.NoError(t, err)

	_, err = run(t, "--config", cfg, "store", "get", id)
	assert.ErrorContains(t, err, "not found")
}

func TestConfigFromEnvironment(t *testing.T) {
	cfg := writeFile(t, "wireworld.yml", "version: \"9\"\n")
	t.Setenv(ConfigEnv, cfg)

	_, err := run(t, "store", "list")
	assert.ErrorContains(t, err, "invalid configuration")
}
