package load_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dbtype/compiler/load"
	"github.com/syssam/dbtype/compiler/load/loadtest"
)

const billing = `package billing

import "github.com/google/uuid"

// Status is a subscription lifecycle state.
//
//dbtype:enum backends=postgres json
//dbtype:enum rename-all=kebab-case
type Status int

const (
	StatusActive Status = iota + 1
	StatusPastDue // trailing comment
	//dbtype:rename=cancelled
	StatusCanceled
	_
	unrelated = 7
)

func (s Status) Color() string { return "" }

type (
	// Plan is a price plan.
	//dbtype:enum
	Plan string

	// NotAnnotated has no directive.
	NotAnnotated int
)

const PlanFree Plan = "free"

//dbtype:id backends=mysql
type CustomerID struct{ id uuid.UUID }

func (c *CustomerID) Touch() {}

//dbtype:enum
type Ratio float64

//dbtype:enum rename="unterminated
type Broken int
`

func TestInspect(t *testing.T) {
	pkg, err := loadtest.Source("example.com/billing", billing)
	require.NoError(t, err)
	assert.Equal(t, "billing", pkg.Name)
	assert.Equal(t, "example.com/billing", pkg.Path)
	require.Len(t, pkg.Decls, 5)
	assert.Empty(t, pkg.Orphans)

	t.Run("Enum", func(t *testing.T) {
		d := pkg.Decls[0]
		assert.Equal(t, "Status", d.Name)
		assert.Equal(t, load.ShapeInteger, d.Shape)
		assert.Equal(t, "int", d.Underlying)
		assert.Equal(t, "Status is a subscription lifecycle state.", d.Doc)
		assert.Equal(t, []string{"enum", "enum"}, d.Kinds)
		require.Len(t, d.Directives, 3)
		assert.Equal(t, "backends=postgres", d.Directives[0].String())
		assert.Equal(t, "rename-all=kebab-case", d.Directives[2].String())
		assert.True(t, d.HasMethod("Color"))
		assert.False(t, d.HasMethod("String"))

		require.Len(t, d.Consts, 3)
		assert.Equal(t, "StatusActive", d.Consts[0].Name)
		assert.Equal(t, int64(1), d.Consts[0].Int)
		assert.True(t, d.Consts[0].IntExact)
		assert.Equal(t, int64(2), d.Consts[1].Int)
		assert.Empty(t, d.Consts[1].Directives)
		assert.Equal(t, "StatusCanceled", d.Consts[2].Name)
		require.Len(t, d.Consts[2].Directives, 1)
		assert.Equal(t, "rename", d.Consts[2].Directives[0].Key)
		assert.Equal(t, "cancelled", d.Consts[2].Directives[0].Value)
	})

	t.Run("GroupedTypeSpec", func(t *testing.T) {
		d := pkg.Decls[1]
		assert.Equal(t, "Plan", d.Name)
		assert.Equal(t, load.ShapeString, d.Shape)
		require.Len(t, d.Consts, 1)
		assert.Equal(t, "free", d.Consts[0].Str)
		assert.Equal(t, `"free"`, d.Consts[0].Value)
	})

	t.Run("Identifier", func(t *testing.T) {
		d := pkg.Decls[2]
		assert.Equal(t, "CustomerID", d.Name)
		assert.Equal(t, "id", d.Kind())
		assert.Equal(t, load.ShapeStruct, d.Shape)
		require.Len(t, d.Fields, 1)
		assert.Equal(t, "id", d.Fields[0].Name)
		assert.False(t, d.Fields[0].Embedded)
		assert.Equal(t, "github.com/google/uuid.UUID", d.Fields[0].Type.String())
		assert.True(t, d.HasMethod("Touch"))
	})

	t.Run("OtherShape", func(t *testing.T) {
		d := pkg.Decls[3]
		assert.Equal(t, "Ratio", d.Name)
		assert.Equal(t, load.ShapeOther, d.Shape)
		assert.Equal(t, "float64", d.Underlying)
	})

	t.Run("MalformedDirective", func(t *testing.T) {
		d := pkg.Decls[4]
		assert.Equal(t, "Broken", d.Name)
		assert.Empty(t, d.Kinds)
		require.Len(t, d.Errors, 1)
		assert.Contains(t, d.Errors[0].Error(), "unterminated")
	})
}

func TestInspect_Orphans(t *testing.T) {
	pkg, err := loadtest.Source("example.com/billing", `package billing

// Shade lost its type directive.
type Shade int

const (
	//dbtype:rename=dark
	ShadeDark Shade = iota
	ShadeLight
)

//dbtype:rename=max
const limit = 10
`)
	require.NoError(t, err)
	assert.Empty(t, pkg.Decls)
	require.Len(t, pkg.Orphans, 2)
	assert.Equal(t, "ShadeDark", pkg.Orphans[0].Const)
	assert.Equal(t, "Shade", pkg.Orphans[0].Type)
	assert.True(t, pkg.Orphans[0].Pos.IsValid())
	assert.Equal(t, "limit", pkg.Orphans[1].Const)
	assert.Equal(t, "untyped int", pkg.Orphans[1].Type)
}

func TestInspect_SourceOrderAcrossFiles(t *testing.T) {
	pkg, err := loadtest.Package("example.com/multi", map[string]string{
		"b.go": "package multi\n\nconst LevelHigh Level = 9\n",
		"a.go": "package multi\n\n//dbtype:enum\ntype Level uint8\n\nconst LevelLow Level = 1\n",
	})
	require.NoError(t, err)
	require.Len(t, pkg.Decls, 1)
	d := pkg.Decls[0]
	require.Len(t, d.Consts, 2)
	assert.Equal(t, "LevelLow", d.Consts[0].Name)
	assert.Equal(t, "LevelHigh", d.Consts[1].Name)
	assert.Len(t, pkg.Files, 2)
}

func TestCheck_TypeErrors(t *testing.T) {
	_, err := loadtest.Source("example.com/bad", "package bad\n\nvar x int = \"s\"\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type-checking example.com/bad")
}
