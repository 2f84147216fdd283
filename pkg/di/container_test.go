package di

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ssargent/pokepack/pkg/dex"
)

func TestContainer_Defaults(t *testing.T) {
	c := NewContainer()

	assert.NotNil(t, c.GetDexProvider())
	assert.NotNil(t, c.GetStoreFactory())
	assert.NotNil(t, c.GetServerFactory())
	assert.NotNil(t, c.GetServerFactory().CreateServerStarter())
}

func TestDefaultDexProvider(t *testing.T) {
	p := NewContainer().GetDexProvider()

	t.Run("embedded", func(t *testing.T) {
		d, err := p.Dex("")
		require.NoError(t, err)
		want, err := dex.Default()
		require.NoError(t, err)
		assert.Same(t, want, d)
	})

	t.Run("directory", func(t *testing.T) {
		dir := t.TempDir()
		for _, c := range dex.Categories {
			require.NoError(t, os.WriteFile(filepath.Join(dir, c.FileName()), []byte("\nOnly\n"), 0600))
		}
		d, err := p.Dex(dir)
		require.NoError(t, err)
		code, ok := d.Code(dex.Moves, "only")
		assert.True(t, ok)
		assert.Equal(t, 1, code)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := p.Dex(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

type stubProvider struct{ d *dex.Dex }

func (s stubProvider) Dex(string) (*dex.Dex, error) { return s.d, nil }

func TestContainer_Overrides(t *testing.T) {
	c := NewContainer()
	d := dex.Build(dex.Sources{})
	c.SetDexProvider(stubProvider{d: d})

	got, err := c.GetDexProvider().Dex("/ignored")
	require.NoError(t, err)
	assert.Same(t, d, got)
}

func TestDefaultStoreFactory(t *testing.T) {
	s, err := NewContainer().GetStoreFactory().OpenTeamStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
