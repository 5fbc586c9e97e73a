package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/mapcode/pkg/alphabet"
	"github.com/ssargent/mapcode/pkg/api"
	"github.com/ssargent/mapcode/pkg/dataset"
	"github.com/ssargent/mapcode/pkg/di"
	"github.com/ssargent/mapcode/pkg/mapcode"
	"github.com/ssargent/mapcode/pkg/territory"
)

const worldYAML = "../../../pkg/dataset/testdata/world.yaml"

// run executes the command line against the test world with a config path
// that does not exist unless the test creates it.
func run(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	if configPath == "" {
		configPath = filepath.Join(t.TempDir(), "config.yaml")
	}
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config=" + configPath, "--dataset=" + worldYAML, "--log-level=error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestEncodeCommand(t *testing.T) {
	t.Run("shortest", func(t *testing.T) {
		out, _, err := run(t, "", "encode", "--shortest", "52.376514", "4.908543")
		require.NoError(t, err)
		assert.Equal(t, "NLD JD.LZM\n", out)
	})

	t.Run("all codes", func(t *testing.T) {
		out, _, err := run(t, "", "encode", "52.376514", "4.908543")
		require.NoError(t, err)
		got := lines(out)
		require.GreaterOrEqual(t, len(got), 2)
		assert.Equal(t, "NLD JD.LZM", got[0])
		last := got[len(got)-1]
		assert.NotContains(t, last, " ", "international codes carry no territory")
	})

	t.Run("territory by name", func(t *testing.T) {
		out, _, err := run(t, "", "encode", "--territory", "Holland", "52.376514", "4.908543")
		require.NoError(t, err)
		for _, l := range lines(out) {
			assert.True(t, strings.HasPrefix(l, "NLD "), l)
		}
	})

	t.Run("precision and max error", func(t *testing.T) {
		out, _, err := run(t, "", "encode", "--shortest", "--max-error", "-p", "2", "52.376514", "4.908543")
		require.NoError(t, err)
		got := lines(out)
		require.Len(t, got, 2)
		assert.Equal(t, fmt.Sprintf("# max error %.2f m", mapcode.MaxErrorInMeters(2)), got[0])
		assert.True(t, strings.HasPrefix(got[1], "NLD JD.LZM-"))
		assert.Len(t, got[1], len("NLD JD.LZM-")+2)
	})

	t.Run("alphabet", func(t *testing.T) {
		out, _, err := run(t, "", "encode", "--shortest", "--alphabet", "cyrillic", "52.376514", "4.908543")
		require.NoError(t, err)
		assert.Equal(t, "NLD "+alphabet.ToAlphabet("JD.LZM", alphabet.Cyrillic)+"\n", out)
	})

	t.Run("negative coordinate", func(t *testing.T) {
		out, _, err := run(t, "", "encode", "--shortest", "--", "-33.8568", "151.2153")
		require.NoError(t, err)
		assert.NotEmpty(t, strings.TrimSpace(out))
	})

	errCases := []struct {
		name string
		args []string
	}{
		{"bad latitude", []string{"encode", "north", "4.9"}},
		{"precision too high", []string{"encode", "-p", "9", "52.3", "4.9"}},
		{"unknown alphabet", []string{"encode", "-a", "klingon", "52.3", "4.9"}},
		{"unknown territory", []string{"encode", "-t", "XYZ", "52.3", "4.9"}},
		{"missing argument", []string{"encode", "52.3"}},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, "", tc.args...)
			assert.Error(t, err)
		})
	}
}

func TestDecodeCommand(t *testing.T) {
	tbl, err := dataset.Load(worldYAML)
	require.NoError(t, err)
	want, err := mapcode.NewEngine(tbl).Decode("NLD JD.LZM", territory.None)
	require.NoError(t, err)
	wantLine := fmt.Sprintf("%.6f %.6f\n", want.Lat, want.Lon)

	t.Run("one argument", func(t *testing.T) {
		out, _, err := run(t, "", "decode", "NLD JD.LZM")
		require.NoError(t, err)
		assert.Equal(t, wantLine, out)
	})

	t.Run("two arguments", func(t *testing.T) {
		out, _, err := run(t, "", "decode", "nld", "jd.lzm")
		require.NoError(t, err)
		assert.Equal(t, wantLine, out)
	})

	t.Run("context", func(t *testing.T) {
		out, _, err := run(t, "", "decode", "--context", "NLD", "JD.LZM")
		require.NoError(t, err)
		assert.Equal(t, wantLine, out)
	})

	t.Run("verbose", func(t *testing.T) {
		out, _, err := run(t, "", "decode", "-v", "NLD JD.LZM")
		require.NoError(t, err)
		assert.Equal(t, strings.TrimSuffix(wantLine, "\n")+" NLD\n", out)
	})

	t.Run("undecodable", func(t *testing.T) {
		_, _, err := run(t, "", "decode", "NLD ZZ.ZZZ")
		assert.ErrorIs(t, err, mapcode.ErrMapcodeUndecodable)
	})

	t.Run("missing territory", func(t *testing.T) {
		_, _, err := run(t, "", "decode", "JD.LZM")
		assert.ErrorIs(t, err, mapcode.ErrMissingTerritory)
	})
}

func TestParseCommand(t *testing.T) {
	out, _, err := run(t, "", "parse", "NLD 49.4V-12")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"territory: NLD",
		"mapcode:   49.4V",
		"extension: 12",
		"valid:     true",
	}, lines(out))

	out, _, err = run(t, "", "parse", "--bare", "NLD 49.4V")
	require.NoError(t, err)
	assert.Contains(t, out, "valid:     false")

	out, _, err = run(t, "", "parse", "--bare", "49.4V")
	require.NoError(t, err)
	assert.Contains(t, out, "valid:     true")

	_, _, err = run(t, "", "parse", "ABCD 49.4V")
	assert.ErrorIs(t, err, mapcode.ErrMissingDot)
}

func TestTerritoryCommand(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		out, _, err := run(t, "", "territory")
		require.NoError(t, err)
		got := lines(out)
		assert.Len(t, got, 11)
		assert.Contains(t, got, fmt.Sprintf("%-8s %s", "US-CA", "California"))
		assert.Contains(t, got, fmt.Sprintf("%-8s %s", "AAA", "International"))
	})

	t.Run("by alias name", func(t *testing.T) {
		out, _, err := run(t, "", "territory", "Holland")
		require.NoError(t, err)
		assert.Contains(t, out, "iso:      NLD\n")
		assert.Contains(t, out, "name:     Netherlands\n")
	})

	t.Run("subdivision in context", func(t *testing.T) {
		out, _, err := run(t, "", "territory", "--context", "RUS", "IN")
		require.NoError(t, err)
		assert.Contains(t, out, "iso:      RU-IN\n")
		assert.Contains(t, out, "short:    IN\n")
		assert.Contains(t, out, "parent:   RUS\n")
	})

	t.Run("country with subdivisions", func(t *testing.T) {
		out, _, err := run(t, "", "territory", "USA")
		require.NoError(t, err)
		assert.Contains(t, out, "subdivisions: yes\n")
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := run(t, "", "territory", "XYZ")
		assert.ErrorIs(t, err, territory.ErrUnknownTerritory)
	})
}

func TestAlphabetCommand(t *testing.T) {
	t.Run("all alphabets", func(t *testing.T) {
		out, _, err := run(t, "", "alphabet", "NLD 49.4V")
		require.NoError(t, err)
		got := lines(out)
		require.Len(t, got, len(alphabet.All()))
		assert.Equal(t, fmt.Sprintf("%-10s %s", "roman", "NLD 49.4V"), got[0])
	})

	t.Run("one alphabet", func(t *testing.T) {
		out, _, err := run(t, "", "alphabet", "--to", "cyrillic", "NLD", "49.4V")
		require.NoError(t, err)
		assert.Equal(t, "NLD "+alphabet.ToAlphabet("49.4V", alphabet.Cyrillic)+"\n", out)
	})

	t.Run("back to roman", func(t *testing.T) {
		code := alphabet.ToAlphabet("49.4V", alphabet.Cyrillic)
		out, _, err := run(t, "", "alphabet", "--roman", "NLD "+code)
		require.NoError(t, err)
		assert.Equal(t, "NLD 49.4V\n", out)
	})

	t.Run("runs without dataset", func(t *testing.T) {
		root := NewRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs([]string{"--config=" + filepath.Join(t.TempDir(), "c.yaml"), "--dataset=missing.yaml", "alphabet", "--to", "roman", "49.4V"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "49.4V\n", out.String())
	})
}

func TestDatasetCommands(t *testing.T) {
	dir := t.TempDir()
	compiled := filepath.Join(dir, "world.mcd")

	out, _, err := run(t, "", "dataset", "compile", worldYAML, compiled)
	require.NoError(t, err)
	assert.Contains(t, out, "Compiled 11 territories and 55 records")
	assert.FileExists(t, compiled)

	t.Run("info on compiled", func(t *testing.T) {
		root := NewRootCmd()
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetArgs([]string{"--config=" + filepath.Join(dir, "none.yaml"), "--dataset=" + compiled, "dataset", "info"})
		require.NoError(t, root.Execute())
		assert.Contains(t, buf.String(), "territories: 11\n")
		assert.Contains(t, buf.String(), "records:     55\n")
	})

	t.Run("info on builtin", func(t *testing.T) {
		root := NewRootCmd()
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetArgs([]string{"--config=" + filepath.Join(dir, "none.yaml"), "dataset", "info"})
		require.NoError(t, root.Execute())
		assert.Contains(t, buf.String(), "source:      builtin\n")
		assert.Contains(t, buf.String(), "territories: 1\n")
	})

	t.Run("export to stdout", func(t *testing.T) {
		out, _, err := run(t, "", "dataset", "export", compiled, "-")
		require.NoError(t, err)
		assert.Contains(t, out, "code: NLD")
	})

	t.Run("export to file", func(t *testing.T) {
		path := filepath.Join(dir, "export.yaml")
		_, _, err := run(t, "", "dataset", "export", compiled, path)
		require.NoError(t, err)
		d, err := dataset.ReadYAMLFile(path)
		require.NoError(t, err)
		assert.Len(t, d.Territories, 11)
	})

	t.Run("compile needs yaml", func(t *testing.T) {
		_, _, err := run(t, "", "dataset", "compile", compiled, filepath.Join(dir, "again.mcd"))
		assert.ErrorIs(t, err, dataset.ErrUnknownFormat)
	})
}

func TestBatchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.txt")
	doc := "# points\n52.376514 4.908543\n\nNaN,4.9\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	t.Run("file", func(t *testing.T) {
		out, errOut, err := run(t, "", "batch", "--shortest", "-w", "2", path)
		require.NoError(t, err)
		got := lines(out)
		require.Len(t, got, 2)
		assert.Equal(t, "52.376514 4.908543\tNLD JD.LZM", got[0])
		assert.True(t, strings.HasPrefix(got[1], "NaN 4.9\terror: "), got[1])
		assert.Contains(t, errOut, "1 of 2 points failed")
	})

	t.Run("stdin", func(t *testing.T) {
		root := NewRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetIn(strings.NewReader("52.376514,4.908543\n"))
		root.SetArgs([]string{"--config=" + filepath.Join(t.TempDir(), "c.yaml"), "--dataset=" + worldYAML, "batch", "--territory", "NLD", "-"})
		require.NoError(t, root.Execute())
		got := lines(out.String())
		require.Len(t, got, 1)
		assert.True(t, strings.HasPrefix(got[0], "52.376514 4.908543\tNLD JD.LZM"), got[0])
	})

	t.Run("bad file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.txt")
		require.NoError(t, os.WriteFile(bad, []byte("1 2 3\n"), 0600))
		_, _, err := run(t, "", "batch", bad)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := run(t, "", "batch", filepath.Join(t.TempDir(), "none.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestNeedsEngine(t *testing.T) {
	root := NewRootCmd()
	for _, tc := range []struct {
		path []string
		want bool
	}{
		{[]string{"encode"}, true},
		{[]string{"dataset", "info"}, true},
		{[]string{"dataset", "compile"}, false},
		{[]string{"alphabet"}, false},
		{[]string{"service", "start"}, false},
	} {
		c, _, err := root.Find(tc.path)
		require.NoError(t, err)
		assert.Equal(t, tc.want, needsEngine(c), strings.Join(tc.path, " "))
	}
}

// fakeStarter records what it would have served.
type fakeStarter struct {
	deps   api.Dependencies
	config api.ServerConfig
	calls  int
}

func (f *fakeStarter) StartServer(_ context.Context, deps api.Dependencies, config api.ServerConfig) error {
	f.calls++
	f.deps = deps
	f.config = config
	return nil
}

type fakeFactory struct{ starter *fakeStarter }

func (f fakeFactory) CreateServerStarter() api.ServerStarter { return f.starter }

func useFakeServer(t *testing.T) *fakeStarter {
	t.Helper()
	starter := &fakeStarter{}
	c := di.NewContainer()
	c.SetServerFactory(fakeFactory{starter: starter})
	prev := container
	SetContainer(c)
	t.Cleanup(func() { SetContainer(prev) })
	return starter
}
