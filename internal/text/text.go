// Package text holds display text attached to item stacks.
package text

// Style carries the formatting applied to a Text. Nil fields inherit the
// client default (item names render italic when custom-named).
type Style struct {
	Italic *bool  `json:"italic,omitempty"`
	Bold   *bool  `json:"bold,omitempty"`
	Color  string `json:"color,omitempty"`
}

// WithItalic returns a copy with the italic flag set
func (s Style) WithItalic(italic bool) Style {
	s.Italic = &italic
	return s
}

// WithBold returns a copy with the bold flag set
func (s Style) WithBold(bold bool) Style {
	s.Bold = &bold
	return s
}

// WithColor returns a copy with the color set
func (s Style) WithColor(color string) Style {
	s.Color = color
	return s
}

// IsItalic reports the explicit italic flag; unset counts as false
func (s Style) IsItalic() bool {
	return s.Italic != nil && *s.Italic
}

// Text is either a translation key resolved per locale or a literal string.
// Texts are values; styling returns a new Text.
type Text struct {
	Key     string `json:"translate,omitempty"`
	Literal string `json:"text,omitempty"`
	Style   Style  `json:"style"`
}

// Translatable creates a text resolved through the localization catalog
func Translatable(key string) Text {
	return Text{Key: key}
}

// Literal creates a text that renders verbatim
func Literal(s string) Text {
	return Text{Literal: s}
}

// Styled returns a copy with fn applied to the style
func (t Text) Styled(fn func(Style) Style) Text {
	t.Style = fn(t.Style)
	return t
}

// IsTranslatable reports whether the text needs a catalog lookup
func (t Text) IsTranslatable() bool {
	return t.Key != ""
}

// String returns the raw key or literal, without localization
func (t Text) String() string {
	if t.IsTranslatable() {
		return t.Key
	}
	return t.Literal
}
