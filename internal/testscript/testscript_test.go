package testscript_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/testscript"
)

func TestGoldenFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, paths, "expected at least one golden fixture")

	cfg := config.DefaultConfig()
	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			c, err := testscript.Load(path)
			require.NoError(t, err)
			assert.Equal(t, c.WantTitles, c.Run(cfg))
		})
	}
}
