package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/klauspost/readahead"
)

// ParseReader parses an invocation read from r.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Invocation, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses an invocation from s.
//
// On failure the returned error wraps one of [ErrEmptyPath],
// [ErrMalformedPath], [ErrMalformedList], or [ErrTrailingInput] and reports
// the position of the offending token. No partial result is returned.
func ParseString(
	ctx context.Context,
	s string,
	opts ...Option,
) (*Invocation, error) {
	o := makeOptions(opts...)

	if o.cache {
		return parseCached(ctx, s, o)
	}

	return parse(ctx, s, o)
}

// SetArray parses s and returns its qualified elements in source order
// without resolving or combining them.
func SetArray(
	ctx context.Context,
	s string,
	opts ...Option,
) ([]Element, error) {
	inv, err := ParseString(ctx, s, opts...)
	if err != nil {
		return nil, err
	}

	return inv.Elements(), nil
}

func parse(ctx context.Context, s string, o options) (*Invocation, error) {
	p := &parser{
		input: []byte(s),
		line:  1,
		col:   1,
		opts:  o,
	}

	inv, err := p.parseInvocation()
	if err != nil {
		o.logger.TraceContext(ctx, "parse failed",
			slog.String("source", s),
			slog.Any("error", err))

		return nil, err
	}

	inv.Source = s

	o.logger.TraceContext(ctx, "parse complete",
		slog.String("path", inv.Path.String()),
		slog.Int("item_count", len(inv.Items)),
		slog.String("separator", inv.Separator().String()))

	return inv, nil
}

// parser holds the parser state.
type parser struct {
	input []byte
	pos   int
	line  int
	col   int
	opts  options
}

// parseInvocation parses: Path '{' ItemList? '}' EOF.
func (p *parser) parseInvocation() (*Invocation, error) {
	p.skipWhitespaceAndComments()

	inv := &Invocation{Pos: p.position()}

	if p.eof() || p.peek() == '{' || p.peekN(2) == PathSep {
		return nil, ErrEmptyPath.WithPosition(p.position()).
			Wrap(errors.New("expected path segment before '{'"))
	}

	path, err := p.parsePath(nil)
	if err != nil {
		return nil, err
	}

	inv.Path = path

	err = p.parseList(inv)
	if err != nil {
		return nil, err
	}

	p.skipWhitespaceAndComments()

	if !p.eof() {
		return nil, ErrTrailingInput.WithPosition(p.position()).
			With(slog.String("found", string(p.peek())))
	}

	return inv, nil
}

// parsePath parses (Identifier '::')+, accumulating segments into acc until
// the opening brace is reached.
func (p *parser) parsePath(acc Path) (Path, error) {
	p.skipWhitespaceAndComments()

	if p.peek() == '{' && len(acc) > 0 {
		return acc, nil
	}

	pos := p.position()

	if p.eof() {
		return nil, ErrMalformedPath.WithPosition(pos).
			Wrap(errors.New("unexpected end of input, expected '{'"))
	}

	seg, err := p.parseIdentifier()
	if err != nil {
		return nil, ErrMalformedPath.WithPosition(pos).Wrap(err)
	}

	p.skipWhitespaceAndComments()

	if p.peekN(2) != PathSep {
		return nil, ErrMalformedPath.WithPosition(p.position()).
			Wrapf("expected '::' after %q", seg)
	}

	p.advanceN(2)

	return p.parsePath(append(acc, seg))
}

// parseList parses '{' ItemList? '}'.
func (p *parser) parseList(inv *Invocation) error {
	open := p.position()

	p.advance() // '{'
	p.skipWhitespaceAndComments()

	if p.peek() == '}' {
		p.advance()

		return nil
	}

	return p.parseItems(inv, open)
}

// parseItems parses Identifier (Sep ItemList | '}'), appending each item
// to inv in encounter order.
func (p *parser) parseItems(inv *Invocation, open Position) error {
	p.skipWhitespaceAndComments()

	pos := p.position()

	switch {
	case p.eof():
		return ErrMalformedList.WithPosition(open).
			Wrap(errors.New("unmatched '{'"))

	case p.peek() == '}':
		// Only reachable directly after a separator.
		return ErrMalformedList.WithPosition(pos).
			Wrapf("trailing separator %q", inv.Seps[len(inv.Seps)-1].String())

	case p.peek() == '{':
		return ErrMalformedList.WithPosition(pos).
			Wrap(errors.New("nested brace groups are not supported"))
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return ErrMalformedList.WithPosition(pos).Wrap(err)
	}

	inv.Items = append(inv.Items, Item{Name: name, Pos: pos})

	p.skipWhitespaceAndComments()

	if p.eof() {
		return ErrMalformedList.WithPosition(open).
			Wrap(errors.New("unmatched '{'"))
	}

	ch := p.peek()

	if ch == '}' {
		p.advance()

		return nil
	}

	sep, ok := separatorOf(ch)
	if !ok {
		return ErrMalformedList.WithPosition(p.position()).
			Wrapf("unrecognized separator %q", string(ch))
	}

	if !p.opts.mixed && len(inv.Seps) > 0 && inv.Seps[0] != sep {
		return ErrMalformedList.WithPosition(p.position()).
			Wrapf("mixed separators %q and %q", inv.Seps[0].String(), sep.String())
	}

	inv.Seps = append(inv.Seps, sep)

	p.advance()

	return p.parseItems(inv, open)
}

// parseIdentifier parses a plain identifier. A lone '_' is not an
// identifier.
func (p *parser) parseIdentifier() (string, error) {
	start := p.pos

	if p.eof() {
		return "", errors.New("expected identifier, found end of input")
	}

	if !isIdentifierStart(p.peek()) {
		return "", errors.New(
			"expected identifier, found " + strconv.QuoteRune(p.peek()),
		)
	}

	p.advance()

	for !p.eof() && isIdentifierContinue(p.peek()) {
		p.advance()
	}

	id := string(p.input[start:p.pos])
	if id == "_" {
		return "", errors.New("'_' is not a valid identifier")
	}

	return id, nil
}

// IsIdentifier reports whether s is a valid path segment or item name.
func IsIdentifier(s string) bool {
	p := &parser{input: []byte(s), line: 1, col: 1}

	_, err := p.parseIdentifier()

	return err == nil && p.eof()
}

// Helper methods

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

func (p *parser) peekN(n int) string {
	if p.pos+n > len(p.input) {
		return string(p.input[p.pos:])
	}

	return string(p.input[p.pos : p.pos+n])
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) advanceN(n int) {
	for range n {
		p.advance()
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

func (p *parser) skipWhitespaceAndComments() {
	for {
		for !p.eof() && unicode.IsSpace(p.peek()) {
			p.advance()
		}

		switch p.peekN(2) {
		case "//":
			for !p.eof() && p.peek() != '\n' {
				p.advance()
			}

		case "/*":
			p.advanceN(2)

			for !p.eof() && p.peekN(2) != "*/" {
				p.advance()
			}

			p.advanceN(2)

		default:
			return
		}
	}
}

// Character classification

func isIdentifierStart(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
	) || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
		unicode.Mn, // Mark, Nonspacing
		unicode.Mc, // Mark, Spacing Combining
		unicode.Nd, // Number, Decimal Digit
		unicode.Pc, // Punctuation, Connector
		unicode.Other_ID_Continue,
	)
}
