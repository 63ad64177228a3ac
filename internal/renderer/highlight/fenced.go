package highlight

import (
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// fenceLexers resolves and caches chroma lexers by fence language.
type fenceLexers struct {
	mu     sync.Mutex
	byLang map[string]chroma.Lexer
}

var sharedFenceLexers = &fenceLexers{byLang: make(map[string]chroma.Lexer)}

// get returns the lexer for lang, or nil when chroma has none.
func (f *fenceLexers) get(lang string) chroma.Lexer {
	if lang == "" {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if lx, ok := f.byLang[lang]; ok {
		return lx
	}
	lx := lexers.Get(lang)
	if lx != nil {
		lx = chroma.Coalesce(lx)
	}
	f.byLang[lang] = lx
	return lx
}

// lexFencedLine splits a code block line into chroma token spans. It
// returns nil when the language is unknown or the tokens do not
// reproduce the line, in which case the caller keeps the plain
// codeblock span.
func lexFencedLine(line, lang string) []Span {
	if line == "" {
		return nil
	}
	lx := sharedFenceLexers.get(lang)
	if lx == nil {
		return nil
	}
	it, err := lx.Tokenise(&chroma.TokeniseOptions{State: "root"}, line)
	if err != nil {
		return nil
	}

	var spans spanList
	remaining := len(line)
	for _, tok := range it.Tokens() {
		v := tok.Value
		if len(v) > remaining {
			// Lexers that require a trailing newline append one.
			v = v[:remaining]
		}
		if v == "" {
			continue
		}
		spans.add(v, categoryTag(tok.Type))
		remaining -= len(v)
		if remaining == 0 {
			break
		}
	}

	if remaining != 0 || concat(spans) != line {
		return nil
	}
	return spans
}

func concat(spans []Span) string {
	return HighlightedLine{Spans: spans}.Text()
}

// categoryTag maps a chroma token type to its "code.<category>" tag.
func categoryTag(tt chroma.TokenType) Tag {
	switch tt.Category() {
	case chroma.Keyword:
		return CodeTag("keyword")
	case chroma.Name:
		return CodeTag("name")
	case chroma.Literal:
		if tt.InSubCategory(chroma.LiteralString) {
			return CodeTag("string")
		}
		if tt.InSubCategory(chroma.LiteralNumber) {
			return CodeTag("number")
		}
		return CodeTag("literal")
	case chroma.Operator:
		return CodeTag("operator")
	case chroma.Punctuation:
		return CodeTag("punctuation")
	case chroma.Comment:
		return CodeTag("comment")
	case chroma.Generic:
		return CodeTag("generic")
	}
	return TagCodeBlock
}
