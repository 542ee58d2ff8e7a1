package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"liteedit/internal/config"
	"liteedit/internal/document"
)

func testFlags(t *testing.T, backend string) *Flags {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.ExportDir = t.TempDir()
	cfg.Store.Backend = backend
	return &Flags{DataDir: cfg.DataDir, Config: &cfg}
}

func seed(t *testing.T, flags *Flags) {
	t.Helper()
	ctx := context.Background()
	st, closer, err := openStore(ctx, flags.Config)
	require.NoError(t, err)
	defer func() { require.NoError(t, closer()) }()

	doc := document.New(flags.Config.Bounds())
	doc.Add(document.KindRectangle)
	doc.Add(document.KindText)
	require.NoError(t, st.Save(ctx, doc.Elements()))
}

func runApp(t *testing.T, flags *Flags, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.Command{Name: "liteedit", Writer: &out}
	app = NewExportCmd(flags).Register(app)
	app = NewServeCmd(flags).Register(app)
	err := app.Run(context.Background(), append([]string{"liteedit"}, args...))
	return out.String(), err
}

func TestOpenStore_Backends(t *testing.T) {
	for _, backend := range []string{config.BackendJSON, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			flags := testFlags(t, backend)
			seed(t, flags)

			doc, _, closer, err := loadDocument(context.Background(), flags.Config)
			require.NoError(t, err)
			defer func() { _ = closer() }()
			assert.Equal(t, 2, doc.Len())
			assert.Empty(t, doc.SelectedID())
			assert.FileExists(t, flags.Config.StorePath())
		})
	}
}

func TestLoadDocument_NothingSaved(t *testing.T) {
	flags := testFlags(t, config.BackendJSON)

	doc, _, closer, err := loadDocument(context.Background(), flags.Config)
	require.NoError(t, err)
	defer func() { _ = closer() }()
	assert.Equal(t, 0, doc.Len())
}

func TestExportCmd(t *testing.T) {
	flags := testFlags(t, config.BackendJSON)
	seed(t, flags)

	out, err := runApp(t, flags, "export", "--format", "html")
	require.NoError(t, err)
	want := filepath.Join(flags.Config.ExportDir, "liteedit_design.html")
	assert.Equal(t, want, strings.TrimSpace(out))
	assert.FileExists(t, want)

	custom := filepath.Join(t.TempDir(), "nested", "design.txt")
	_, err = runApp(t, flags, "export", "-f", "txt", "-o", custom)
	require.NoError(t, err)
	data, err := os.ReadFile(custom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Type here")
}

func TestExportCmd_Errors(t *testing.T) {
	flags := testFlags(t, config.BackendJSON)

	_, err := runApp(t, flags, "export", "--format", "gif")
	assert.Error(t, err)

	_, err = runApp(t, flags, "export")
	assert.ErrorContains(t, err, "nothing to export")
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	assert.Equal(t, filepath.Join("/cfg", "liteedit", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/data", "liteedit"), DefaultDataDir())
}
