package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTag_WithMetadata(t *testing.T) {
	tag, err := NewTag("Machine Learning")
	require.NoError(t, err)
	assert.Equal(t, "machine-learning", tag.Slug)
	assert.Equal(t, "Machine Learning", tag.Name)
	require.NotNil(t, tag.Meta)
	assert.Equal(t, CategoryComputerScience, tag.Category())
	assert.Contains(t, tag.RelatedSlugs(), "python")
}

func TestNewTag_AliasResolvesMetadata(t *testing.T) {
	tag, err := NewTag("golang")
	require.NoError(t, err)
	// slug 保持输入的规范化形式，元数据走别名解析
	assert.Equal(t, "golang", tag.Slug)
	require.NotNil(t, tag.Meta)
	assert.Equal(t, "Go", tag.Name)
}

func TestNewTag_WithoutMetadata(t *testing.T) {
	tag, err := NewTag("Quantum Chromodynamics")
	require.NoError(t, err)
	assert.Nil(t, tag.Meta)
	assert.Equal(t, "quantum-chromodynamics", tag.Slug)
	assert.Equal(t, "Quantum Chromodynamics", tag.Name) // slug 推导的展示名
	assert.Equal(t, CategoryGeneral, tag.Category())
	assert.Empty(t, tag.Icon())
}

func TestNewTag_Invalid(t *testing.T) {
	_, err := NewTag("")
	assert.Error(t, err)
	_, err = NewTag("!!!")
	assert.Error(t, err)
}

func TestMakeTags_SkipsInvalid(t *testing.T) {
	tags := MakeTags([]string{"javascript", "", "   ", "python"})
	require.Len(t, tags, 2)
	assert.Equal(t, "javascript", tags[0].Slug)
	assert.Equal(t, "python", tags[1].Slug)
}

func TestMakeTags_Deduplicates(t *testing.T) {
	tags := MakeTags([]string{"Machine Learning", "machine-learning"})
	assert.Len(t, tags, 1)
}

func TestTag_Equal(t *testing.T) {
	a, _ := NewTag("Machine Learning")
	b, _ := NewTag("machine-learning")
	c, _ := NewTag("python")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("mathematics")
	require.NoError(t, err)
	assert.Equal(t, CategoryMathematics, c)

	_, err = NewCategory("astrology")
	assert.Error(t, err)
}

func TestNewDifficulty(t *testing.T) {
	d, err := NewDifficulty("intermediate")
	require.NoError(t, err)
	assert.Equal(t, DifficultyIntermediate, d)

	_, err = NewDifficulty("expert")
	assert.Error(t, err)
}
