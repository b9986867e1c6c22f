package gen

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syssam/dbtype/dialect"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, DefaultHeader, c.Header)
		assert.Equal(t, "dbtype_gen.go", c.Output)
		assert.Equal(t, runtime.GOMAXPROCS(0), c.Workers)
		assert.Empty(t, c.Backends)
		assert.Empty(t, c.Features)
		assert.NotNil(t, c.Log())
	})

	t.Run("first error wins", func(t *testing.T) {
		_, err := NewConfig(WithBackends("oracle"), WithWorkers(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "oracle")
	})

	t.Run("MustNewConfig panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNewConfig(WithOutput("")) })
		assert.NotPanics(t, func() { MustNewConfig(WithBackends(dialect.Postgres)) })
	})
}

func TestWithBackends(t *testing.T) {
	t.Run("sorts and dedupes", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithBackends(dialect.MySQL, dialect.Postgres, dialect.MySQL)(c))

		assert.Equal(t, []string{dialect.Postgres, dialect.MySQL}, c.Backends)
		assert.True(t, c.BackendEnabled(dialect.Postgres))
		assert.True(t, c.BackendEnabled(dialect.MySQL))
	})

	t.Run("unknown backend", func(t *testing.T) {
		c := &Config{}
		err := WithBackends("sqlite")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.False(t, c.BackendEnabled("sqlite"))
	})
}

func TestWithFeatures(t *testing.T) {
	t.Run("enables features once", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithFeatures(FeatureJSON, FeatureJSON, FeatureMsgpack)(c))

		assert.Len(t, c.Features, 2)
		assert.True(t, c.FeatureEnabled("json"))
		assert.True(t, c.FeatureEnabled("msgpack"))
		assert.False(t, c.FeatureEnabled("jsonschema"))
	})

	t.Run("by name", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithFeatureNames("typed-uuid", "dangerous-construction")(c))

		assert.True(t, c.FeatureEnabled(FeatureTypedUUID.Name))
		assert.True(t, c.FeatureEnabled(FeatureDangerousConstruction.Name))
	})

	t.Run("unknown name", func(t *testing.T) {
		c := &Config{}
		err := WithFeatureNames("serde")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("unknown feature is never enabled", func(t *testing.T) {
		c := &Config{}
		assert.False(t, c.FeatureEnabled("serde"))
	})
}

func TestWithOutput(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"dbtype_gen.go", false},
		{"zz_generated.go", false},
		{"", true},
		{"gen/dbtype_gen.go", true},
		{"dbtype_gen.txt", true},
		{"dbtype_gen_test.go", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithOutput(tt.name)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, c.Output)
		})
	}
}

func TestWithHeader(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithHeader("Code generated by make. DO NOT EDIT.")(c))
	assert.Equal(t, "Code generated by make. DO NOT EDIT.", c.Header)
}

func TestWithWorkers(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithWorkers(4)(c))
	assert.Equal(t, 4, c.Workers)

	err := WithWorkers(-1)(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestWithBuildFlags(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithBuildFlags("-tags", "integration")(c))
	require.NoError(t, WithBuildFlags("-mod=mod")(c))
	assert.Equal(t, []string{"-tags", "integration", "-mod=mod"}, c.BuildFlags)
}

func TestWithLogger(t *testing.T) {
	c := &Config{}
	l := zap.NewExample()
	require.NoError(t, WithLogger(l)(c))
	assert.Same(t, l, c.Log())

	err := WithLogger(nil)(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(WithBackends("oracle"), WithWorkers(2), WithOutput(""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
	assert.Contains(t, err.Error(), "Output")
	assert.Equal(t, 2, c.Workers)
}

func TestFeatureByName(t *testing.T) {
	for _, f := range AllFeatures {
		got, ok := FeatureByName(f.Name)
		require.True(t, ok)
		assert.Equal(t, f, got)
		assert.NotEqual(t, "unknown", f.Stage.String())
	}
	_, ok := FeatureByName("schemars")
	assert.False(t, ok)
}
