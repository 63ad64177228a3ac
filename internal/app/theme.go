package app

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mdpad/internal/renderer/highlight"
)

// tagTokens maps markdown style tags to the chroma token whose colours
// they borrow.
var tagTokens = map[highlight.Tag]chroma.TokenType{
	highlight.TagText:           chroma.Text,
	highlight.TagHeadingMarker:  chroma.GenericSubheading,
	highlight.TagHeading:        chroma.GenericHeading,
	highlight.TagEmphasisMarker: chroma.Punctuation,
	highlight.TagEmphasis:       chroma.GenericEmph,
	highlight.TagStrongMarker:   chroma.Punctuation,
	highlight.TagStrong:         chroma.GenericStrong,
	highlight.TagCodeMarker:     chroma.Punctuation,
	highlight.TagCode:           chroma.LiteralStringBacktick,
	highlight.TagFence:          chroma.CommentPreproc,
	highlight.TagFenceInfo:      chroma.NameLabel,
	highlight.TagCodeBlock:      chroma.LiteralStringBacktick,
	highlight.TagLinkMarker:     chroma.Punctuation,
	highlight.TagLinkText:       chroma.NameTag,
	highlight.TagLinkURL:        chroma.LiteralStringOther,
	highlight.TagImageMarker:    chroma.NameTag,
	highlight.TagListMarker:     chroma.Keyword,
	highlight.TagQuoteMarker:    chroma.Comment,
	highlight.TagRule:           chroma.CommentPreproc,
}

// codeTokens maps fenced-language token categories to chroma tokens.
var codeTokens = map[string]chroma.TokenType{
	"keyword":     chroma.Keyword,
	"name":        chroma.Name,
	"string":      chroma.LiteralString,
	"number":      chroma.LiteralNumber,
	"literal":     chroma.Literal,
	"operator":    chroma.Operator,
	"punctuation": chroma.Punctuation,
	"comment":     chroma.Comment,
	"generic":     chroma.Generic,
}

// Theme resolves style tags to terminal styles using a chroma style.
type Theme struct {
	name      string
	base      tcell.Style
	selection tcell.Style
	status    tcell.Style
	tags      map[highlight.Tag]tcell.Style
}

// NewTheme builds a theme from the named chroma style. Unknown names use
// chroma's fallback style.
func NewTheme(name string) *Theme {
	style := styles.Get(name)

	bg := style.Get(chroma.Background)
	base := tcell.StyleDefault.
		Foreground(chromaToTcell(bg.Colour)).
		Background(chromaToTcell(bg.Background))

	t := &Theme{
		name:   style.Name,
		base:   base,
		status: base.Reverse(true),
		tags:   make(map[highlight.Tag]tcell.Style, len(tagTokens)+len(codeTokens)),
	}

	if hl := style.Get(chroma.LineHighlight); hl.Background.IsSet() && hl.Background != bg.Background {
		t.selection = base.Background(chromaToTcell(hl.Background))
	} else {
		t.selection = base.Reverse(true)
	}

	for tag, tt := range tagTokens {
		t.tags[tag] = entryStyle(base, style.Get(tt))
	}
	for category, tt := range codeTokens {
		t.tags[highlight.CodeTag(category)] = entryStyle(base, style.Get(tt))
	}
	return t
}

// Name returns the chroma style name.
func (t *Theme) Name() string {
	return t.name
}

// Base returns the style for unstyled cells.
func (t *Theme) Base() tcell.Style {
	return t.base
}

// Selection returns the style for selected text.
func (t *Theme) Selection() tcell.Style {
	return t.selection
}

// Status returns the status line style.
func (t *Theme) Status() tcell.Style {
	return t.status
}

// Style returns the terminal style for a span tag.
func (t *Theme) Style(tag highlight.Tag) tcell.Style {
	if s, ok := t.tags[tag]; ok {
		return s
	}
	if _, ok := tag.CodeCategory(); ok {
		return t.tags[highlight.TagCodeBlock]
	}
	if s, ok := t.tags[tag.Base()]; ok {
		return s
	}
	return t.base
}

func entryStyle(base tcell.Style, entry chroma.StyleEntry) tcell.Style {
	s := base
	if entry.Colour.IsSet() {
		s = s.Foreground(chromaToTcell(entry.Colour))
	}
	if entry.Background.IsSet() {
		s = s.Background(chromaToTcell(entry.Background))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}

func chromaToTcell(c chroma.Colour) tcell.Color {
	if !c.IsSet() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
