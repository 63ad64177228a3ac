package highlight

import "strings"

// Tag names the markdown construct a span belongs to.
type Tag string

// Style tags.
const (
	TagText           Tag = "text"
	TagHeadingMarker  Tag = "heading.marker"
	TagHeading        Tag = "heading"
	TagEmphasisMarker Tag = "emphasis.marker"
	TagEmphasis       Tag = "emphasis"
	TagStrongMarker   Tag = "strong.marker"
	TagStrong         Tag = "strong"
	TagCodeMarker     Tag = "code.marker"
	TagCode           Tag = "code"
	TagFence          Tag = "fence"
	TagFenceInfo      Tag = "fence.info"
	TagCodeBlock      Tag = "codeblock"
	TagLinkMarker     Tag = "link.marker"
	TagLinkText       Tag = "link.text"
	TagLinkURL        Tag = "link.url"
	TagImageMarker    Tag = "image.marker"
	TagListMarker     Tag = "list.marker"
	TagQuoteMarker    Tag = "quote.marker"
	TagRule           Tag = "rule"
)

// codeTagPrefix prefixes tags produced by fenced-language lexing.
const codeTagPrefix = "code."

// CodeTag returns the tag for a fenced-language token category such as
// "keyword" or "comment".
func CodeTag(category string) Tag {
	return Tag(codeTagPrefix + strings.ToLower(category))
}

// String returns the tag name.
func (t Tag) String() string {
	return string(t)
}

// Base returns the construct without its ".marker", ".info" or category
// suffix: "heading.marker" and "heading" both return "heading".
func (t Tag) Base() Tag {
	if i := strings.IndexByte(string(t), '.'); i >= 0 {
		return t[:i]
	}
	return t
}

// IsMarker reports whether the tag covers markdown syntax characters
// rather than content.
func (t Tag) IsMarker() bool {
	return strings.HasSuffix(string(t), ".marker")
}

// CodeCategory returns the fenced-language token category of a tag made
// by CodeTag, such as "keyword".
func (t Tag) CodeCategory() (string, bool) {
	if t == TagCodeMarker || !strings.HasPrefix(string(t), codeTagPrefix) {
		return "", false
	}
	return string(t[len(codeTagPrefix):]), true
}

// Span is a run of line text sharing one tag.
type Span struct {
	Text  string
	Style Tag
}

// HighlightedLine is the render data for one line.
type HighlightedLine struct {
	// LineNumber is 1-based.
	LineNumber int
	Spans      []Span
}

// Text returns the concatenation of the line's spans.
func (l HighlightedLine) Text() string {
	switch len(l.Spans) {
	case 0:
		return ""
	case 1:
		return l.Spans[0].Text
	}
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// spanList accumulates spans, merging neighbours with the same tag and
// dropping empty text.
type spanList []Span

func (l *spanList) add(text string, tag Tag) {
	if text == "" {
		return
	}
	if n := len(*l); n > 0 && (*l)[n-1].Style == tag {
		(*l)[n-1].Text += text
		return
	}
	*l = append(*l, Span{Text: text, Style: tag})
}
