package text_test

import (
	"testing"

	"github.com/KirkDiggler/quakecraft-arsenal/internal/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyled_DoesNotMutateOriginal(t *testing.T) {
	base := text.Translatable("weapon.quakecraft.shooter")
	styled := base.Styled(func(s text.Style) text.Style { return s.WithItalic(false) })

	assert.Nil(t, base.Style.Italic)
	require.NotNil(t, styled.Style.Italic)
	assert.False(t, *styled.Style.Italic)
	assert.False(t, styled.Style.IsItalic())
	assert.True(t, styled.IsTranslatable())
}

func TestLiteral(t *testing.T) {
	lit := text.Literal("Rifle").Styled(func(s text.Style) text.Style {
		return s.WithBold(true).WithColor("gold")
	})

	assert.False(t, lit.IsTranslatable())
	assert.Equal(t, "Rifle", lit.String())
	assert.Equal(t, "gold", lit.Style.Color)
	require.NotNil(t, lit.Style.Bold)
	assert.True(t, *lit.Style.Bold)
}
