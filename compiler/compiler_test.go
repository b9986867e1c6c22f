package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dbtype/compiler/gen"
	"github.com/syssam/dbtype/dialect"
)

func TestLoadGraph(t *testing.T) {
	g, err := LoadGraph(context.Background(), []string{"../examples/billing"},
		gen.WithBackends(dialect.Postgres, dialect.MySQL),
		gen.WithFeatures(gen.AllFeatures...),
	)
	require.NoError(t, err)
	require.Len(t, g.Packages, 1)
	p := g.Packages[0]
	assert.Equal(t, "billing", p.Name)

	var enums, ids []string
	for _, e := range p.Enums() {
		enums = append(enums, e.Name)
	}
	for _, id := range p.Identifiers() {
		ids = append(ids, id.Name)
	}
	assert.Equal(t, []string{"Status", "Plan", "Priority", "Interval"}, enums)
	assert.Equal(t, []string{"AccountID", "InvoiceID", "LegacyCustomerID"}, ids)

	status, interval := p.Enums()[0], p.Enums()[3]
	assert.Equal(t, "subscription_status", status.PostgresType)
	assert.Equal(t, []string{"active", "past_due", "cancelled"}, status.Labels())
	assert.Equal(t, "Status is the lifecycle state of a subscription.", status.Description)
	assert.Equal(t, []string{"MONTHLY", "YEARLY"}, interval.Labels())
	assert.Equal(t, gen.MySQLInt, p.Enums()[2].MySQLRepr)
	assert.True(t, p.Identifiers()[2].Dangerous)
}

func TestLoadGraph_Diagnostics(t *testing.T) {
	_, err := LoadGraph(context.Background(), []string{"./testdata/invalid"},
		gen.WithBackends(dialect.Postgres),
	)
	require.Error(t, err)
	ds, ok := gen.AsDiagnostics(err)
	require.True(t, ok, "unexpected error: %v", err)
	require.Len(t, ds, 2)
	assert.ErrorIs(t, ds[0], gen.ErrBackendNotEnabled)
	assert.Equal(t, "Status", ds[0].Type)
	assert.Equal(t, 5, ds[0].Pos.Line)
	assert.ErrorIs(t, ds[1], gen.ErrUnsupportedShape)
	assert.Equal(t, "Role", ds[1].Type)
}

func TestLoadGraph_InvalidConfig(t *testing.T) {
	_, err := LoadGraph(context.Background(), []string{"./testdata/empty"}, gen.WithWorkers(-1))
	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))
}

func TestCheck_Empty(t *testing.T) {
	stale, err := Check(context.Background(), []string{"./testdata/empty"})
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestGenerate_AbortsOnDiagnostics(t *testing.T) {
	err := Generate(context.Background(), []string{"./testdata/invalid"})
	require.Error(t, err)
	assert.True(t, gen.IsDiagnostic(err))
	assert.NoFileExists(t, "testdata/invalid/dbtype_gen.go")
}

func TestGenerate_MethodConflict(t *testing.T) {
	err := Generate(context.Background(), []string{"./testdata/conflict"},
		gen.WithBackends(dialect.Postgres),
	)
	require.Error(t, err)
	ds, ok := gen.AsDiagnostics(err)
	require.True(t, ok, "unexpected error: %v", err)
	require.Len(t, ds, 1)
	assert.Equal(t, gen.MethodConflict, ds[0].Kind)
	assert.Equal(t, "Status", ds[0].Type)
	assert.Contains(t, ds[0].Message, "method Value")
	assert.NoFileExists(t, "testdata/conflict/dbtype_gen.go")
}
