package sql

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dbtype/compiler/gen"
	"github.com/syssam/dbtype/compiler/load"
	"github.com/syssam/dbtype/compiler/load/loadtest"
	"github.com/syssam/dbtype/dialect"
)

const billingSrc = `package billing

import "github.com/google/uuid"

// Status is a subscription lifecycle state.
//
//dbtype:enum backends=postgres,mysql pg-type=subscription_status json jsonschema graphql msgpack
type Status int

const (
	StatusActive Status = iota
	StatusPastDue
	//dbtype:rename=cancelled
	StatusCanceled
)

//dbtype:enum backends=mysql mysql-repr=int
type Priority uint8

const (
	PriorityLow  Priority = 10
	PriorityHigh Priority = 20
)

// AccountID identifies an account.
//
//dbtype:id backends=postgres json
type AccountID struct{ id uuid.UUID }
`

// loadGraph builds the graph of src as if it were a file in dir.
func loadGraph(t *testing.T, dir, src string, opts ...gen.Option) *gen.Graph {
	t.Helper()
	pkg, err := loadtest.Package("example.com/billing", map[string]string{
		filepath.Join(dir, "types.go"): src,
	})
	require.NoError(t, err)
	cfg, err := gen.NewConfig(append([]gen.Option{
		gen.WithBackends(dialect.Postgres, dialect.MySQL),
		gen.WithFeatures(gen.AllFeatures...),
	}, opts...)...)
	require.NoError(t, err)
	g, err := gen.NewGraph(cfg, pkg)
	require.NoError(t, err)
	return g
}

func TestDialect(t *testing.T) {
	d := NewDialect(newTestHelper())
	assert.Equal(t, "sql", d.Name())

	var backends []string
	for _, b := range d.Backends() {
		backends = append(backends, b.Backend())
	}
	assert.Equal(t, []string{dialect.Postgres, dialect.MySQL}, backends)
}

func TestRender(t *testing.T) {
	g := loadGraph(t, t.TempDir(), billingSrc)
	generator := gen.NewJenniferGenerator(g)
	generator.WithDialect(NewDialect(generator))

	files, err := generator.Render(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.False(t, files[0].Remove)
	assert.Equal(t, load.DefaultOutput, filepath.Base(files[0].Path))
	code := string(files[0].Content)

	assert.True(t, strings.HasPrefix(code, "// "+gen.DefaultHeader+"\n"))
	assert.Contains(t, code, "package billing")
	// Declaration order, then base, backends and adapters per declaration.
	order := []string{
		"func ParseStatus(",
		"func (s Status) Value() (driver.Value, error) {",
		"func (s Status) EncodePostgres() (driver.Value, error) {",
		"func (s Status) EncodeMySQL() (driver.Value, error) {",
		"func (s Status) MarshalText() ([]byte, error) {",
		"func (Status) JSONSchema() *jsonschema.Schema {",
		"func (s Status) MarshalGQL(out io.Writer) {",
		"func (s Status) EncodeMsgpack(enc *msgpack.Encoder) error {",
		"func ParsePriority(",
		"func (p Priority) EncodeMySQL() (driver.Value, error) {",
		"func ParseAccountID(s string) (AccountID, error) {",
		"func (id AccountID) EncodePostgres() (driver.Value, error) {",
		"func (id AccountID) MarshalJSON() ([]byte, error) {",
	}
	last := -1
	for _, s := range order {
		i := strings.Index(code, s)
		require.NotEqual(t, -1, i, "missing %q", s)
		assert.Greater(t, i, last, "%q out of order", s)
		last = i
	}
	assert.NotContains(t, code, "func (p Priority) EncodePostgres")
	assert.NotContains(t, code, "func (id AccountID) EncodeMySQL")
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	g := loadGraph(t, dir, billingSrc, gen.WithOutput("zz_dbtype.go"))
	path := filepath.Join(dir, "zz_dbtype.go")

	stale, err := Check(ctx, g)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, path, stale[0].Path)

	require.NoError(t, Generate(ctx, g))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "func StatusValues() []Status {")

	stale, err = Check(ctx, g)
	require.NoError(t, err)
	assert.Empty(t, stale)

	// Output is deterministic.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, Generate(ctx, g))
	again, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), again.ModTime())
}

func TestGenerate_RemovesStaleOutput(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, load.DefaultOutput)
	require.NoError(t, os.WriteFile(path, []byte("// "+gen.DefaultHeader+"\n\npackage billing\n"), 0o644))

	g := loadGraph(t, dir, "package billing\n\ntype Status int\n")
	require.NoError(t, Generate(ctx, g))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerate_KeepsHandWrittenFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, load.DefaultOutput)
	require.NoError(t, os.WriteFile(path, []byte("package billing\n"), 0o644))

	g := loadGraph(t, dir, "package billing\n\ntype Status int\n")
	stale, err := Check(ctx, g)
	require.NoError(t, err)
	assert.Empty(t, stale)
	require.NoError(t, Generate(ctx, g))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
