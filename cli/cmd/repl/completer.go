package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/flagset/env"
	"github.com/ardnew/flagset/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "types", "clear", "quit"}

// isWordBoundary reports whether r delimits a completion word: whitespace,
// the path separator, braces, and item separators.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', ':', '{', '}', '|', ',':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// position describes where a completion word sits within an invocation.
type position struct {
	parent string // Path segments preceding the word, joined with "::"
	inList bool   // Word is an item inside the braces of parent
}

// locate classifies the word starting at wordStart. Inside an open brace the
// word is an item of the type named before the brace; otherwise it is the
// next path segment after the "::"-terminated prefix.
func locate(input string, wordStart int) position {
	prefix := input[:wordStart]

	if open := strings.LastIndexByte(prefix, '{'); open > strings.LastIndexByte(prefix, '}') {
		return position{parent: trimPath(prefix[:open]), inList: true}
	}

	if !strings.HasSuffix(strings.TrimRight(prefix, " \t"), lang.PathSep) {
		return position{}
	}

	return position{parent: trimPath(prefix)}
}

// trimPath normalizes "a :: b ::" to "a::b".
func trimPath(s string) string {
	var segs []string

	for seg := range strings.SplitSeq(s, lang.PathSep) {
		if seg = strings.TrimSpace(seg); seg != "" {
			segs = append(segs, seg)
		}
	}

	return strings.Join(segs, lang.PathSep)
}

// candidates returns the completions valid at pos: the flags of the named
// type inside braces, otherwise the distinct path segments that follow
// pos.parent among the loaded types.
func candidates(tbl *env.Table, pos position) []string {
	if tbl == nil {
		return nil
	}

	if pos.inList {
		typ, ok := tbl.Lookup(pos.parent)
		if !ok {
			return nil
		}

		return slices.Clone(typ.Names)
	}

	prefix := pos.parent
	if prefix != "" {
		prefix += lang.PathSep
	}

	var out []string

	for _, path := range tbl.Paths() {
		rest, ok := strings.CutPrefix(path, prefix)
		if !ok || rest == "" {
			continue
		}

		next, _, _ := strings.Cut(rest, lang.PathSep)
		if !slices.Contains(out, next) {
			out = append(out, next)
		}
	}

	return out
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. An empty word after "::" or "{" lists every candidate.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	var cands []string

	if m.mode == modeCtrl {
		if word == "" {
			return nil, wordStart, wordEnd
		}

		cands = ctrlCommands
	} else {
		pos := locate(input, wordStart)
		cands = candidates(m.table, pos)

		if word == "" {
			if pos.parent == "" && !pos.inList {
				return nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(cands))
			for i, c := range cands {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, wordStart, wordEnd
		}
	}

	if len(cands) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, cands), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := suggestionStyle.Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = selectedStyle.Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
