package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viralcopy/backend/internal/platform/logger"
)

func TestLoadDirSkipsBrokenFiles(t *testing.T) {
	r, err := LoadDir("testdata/templates", logger.NewNop())
	require.NoError(t, err)

	// ppomppu and regenerate_ppomppu load; broken.yaml fails to parse and
	// undeclared.yaml references a variable the formatter cannot supply.
	_, err = r.Resolve("ppomppu")
	require.NoError(t, err)
	_, err = r.Resolve("regenerate_ppomppu")
	require.NoError(t, err)

	_, err = r.Resolve("broken")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	_, err = r.Resolve("undeclared")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestLoadDirEmptyDir(t *testing.T) {
	_, err := LoadDir(t.TempDir(), logger.NewNop())
	require.Error(t, err)
}

func TestLoadDirMissingDir(t *testing.T) {
	_, err := LoadDir("testdata/does-not-exist", logger.NewNop())
	require.Error(t, err)
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	r, err := LoadDir("testdata/templates", logger.NewNop())
	require.NoError(t, err)

	tmpl, err := r.Resolve("PPOMPPU")
	require.NoError(t, err)
	assert.Equal(t, "ppomppu", tmpl.Key)
}

func TestCommunitiesExcludesRegenerateTemplates(t *testing.T) {
	r, err := LoadDir("testdata/templates", logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"ppomppu"}, r.Communities())
}

func TestNewRegistryRejectsInvalidTemplate(t *testing.T) {
	_, err := NewRegistry([]*Template{{
		Key:          "bad",
		SystemPrompt: "상품명: {productName}, 미정의: {mysteryValue}",
	}})
	require.Error(t, err)

	_, err = NewRegistry([]*Template{{
		Key:          "empty",
		SystemPrompt: "   ",
	}})
	require.Error(t, err)
}
