package gen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/syssam/dbtype/compiler/load"
	"github.com/syssam/dbtype/dialect"
)

// testGraph returns a graph with one package in dir holding decls.
func testGraph(c *Config, dir string, decls ...Declaration) *Graph {
	return &Graph{
		Config: c,
		Packages: []*Package{
			{Name: "billing", Path: "example.com/billing", Dir: dir, Decls: decls},
		},
	}
}

func TestJenniferGenerator(t *testing.T) {
	t.Run("workers default to config", func(t *testing.T) {
		c := MustNewConfig(WithWorkers(3))
		g := NewJenniferGenerator(&Graph{Config: c})
		assert.Equal(t, 3, g.workers)
		g.WithWorkers(0)
		assert.Equal(t, 3, g.workers)
		g.WithWorkers(8)
		assert.Equal(t, 8, g.workers)
	})

	t.Run("helper methods", func(t *testing.T) {
		graph := &Graph{Config: MustNewConfig(WithFeatures(FeatureJSON))}
		g := NewJenniferGenerator(graph)
		assert.Equal(t, graph, g.Graph())
		assert.Equal(t, RuntimePkg, g.RuntimePkg())
		assert.True(t, g.FeatureEnabled(FeatureJSON.Name))
		assert.False(t, g.FeatureEnabled(FeatureGraphQL.Name))
	})

	t.Run("render requires a dialect", func(t *testing.T) {
		g := NewJenniferGenerator(&Graph{Config: MustNewConfig()})
		_, err := g.Render(context.Background())
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestNewFile_Header(t *testing.T) {
	g := NewJenniferGenerator(&Graph{Config: MustNewConfig()})
	assert.True(t, strings.HasPrefix(g.NewFile("billing").GoString(), "// "+DefaultHeader+"\n"))

	g = NewJenniferGenerator(&Graph{Config: MustNewConfig(WithHeader("Code generated by billing. DO NOT EDIT."))})
	assert.True(t, strings.HasPrefix(g.NewFile("billing").GoString(), "// Code generated by billing. DO NOT EDIT.\n"))
}

func TestRender_EmissionOrder(t *testing.T) {
	status := &Enum{
		Name:         "Status",
		Backends:     []string{dialect.MySQL, dialect.Postgres},
		Integrations: []string{FeatureGraphQL.Name},
	}
	account := &Identifier{
		Name:         "AccountID",
		Backends:     []string{dialect.Postgres},
		Integrations: []string{FeatureJSON.Name, FeatureGraphQL.Name},
	}
	graph := testGraph(allEnabled(), t.TempDir(), status, account)
	g := NewJenniferGenerator(graph).WithDialect(&mockDialectGenerator{})

	files, err := g.Render(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	code := string(files[0].Content)

	order := []string{
		"type Status int",
		"// postgres codec Status",
		"// mysql codec Status",
		"// graphql adapter Status",
		"type AccountID struct{}",
		"// postgres codec AccountID",
		"// json adapter AccountID",
		"// graphql adapter AccountID",
	}
	last := -1
	for _, s := range order {
		i := strings.Index(code, s)
		require.NotEqual(t, -1, i, "missing %q", s)
		assert.Greater(t, i, last, "%q out of order", s)
		last = i
	}
	assert.NotContains(t, code, "mysql codec AccountID")
	assert.NotContains(t, code, "json adapter Status")
}

func TestRender_PackageOrder(t *testing.T) {
	c := allEnabled()
	graph := &Graph{Config: c}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		graph.Packages = append(graph.Packages, &Package{
			Name:  name,
			Path:  "example.com/" + name,
			Dir:   filepath.Join("testdata", name),
			Decls: []Declaration{&Enum{Name: strings.ToUpper(name)}},
		})
	}
	files, err := NewJenniferGenerator(graph).WithWorkers(2).WithDialect(&mockMinimalDialect{}).Render(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 5)
	for i, f := range files {
		assert.Equal(t, filepath.Join(graph.Packages[i].Dir, load.DefaultOutput), f.Path)
		assert.Contains(t, string(f.Content), "package "+graph.Packages[i].Name)
	}
}

func TestRender_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	graph := testGraph(allEnabled(), t.TempDir(), &Enum{Name: "Status"})
	_, err := NewJenniferGenerator(graph).WithDialect(&mockMinimalDialect{}).Render(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_Logs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := MustNewConfig(WithBackends(dialect.Postgres), WithLogger(zap.New(core)))
	dir := t.TempDir()
	graph := testGraph(c, dir, &Enum{Name: "Status"})
	g := NewJenniferGenerator(graph).WithDialect(&mockMinimalDialect{})

	require.NoError(t, g.Generate(context.Background()))
	_, err := os.Stat(filepath.Join(dir, load.DefaultOutput))
	require.NoError(t, err)

	updated := logs.FilterMessage("file updated").All()
	require.Len(t, updated, 1)
	assert.Equal(t, filepath.Join(dir, load.DefaultOutput), updated[0].ContextMap()["path"])
	assert.Len(t, logs.FilterMessage("package rendered").All(), 1)

	// Nothing changes on a second run.
	require.NoError(t, g.Generate(context.Background()))
	assert.Len(t, logs.FilterMessage("file updated").All(), 1)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	graph := testGraph(allEnabled(), dir, &Enum{Name: "Status"})
	g := NewJenniferGenerator(graph).WithDialect(&mockMinimalDialect{})

	stale, err := g.Check(context.Background())
	require.NoError(t, err)
	require.Len(t, stale, 1)

	require.NoError(t, g.Generate(context.Background()))
	stale, err = g.Check(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stale)

	path := filepath.Join(dir, load.DefaultOutput)
	require.NoError(t, os.WriteFile(path, []byte("// "+DefaultHeader+"\n\npackage billing\n"), 0o644))
	stale, err = g.Check(context.Background())
	require.NoError(t, err)
	assert.Len(t, stale, 1)
}
