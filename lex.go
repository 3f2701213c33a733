package facalc

import (
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	kind tokenKind
	text string
	// val and pct are set for tokenNum: the parsed value and whether the
	// literal carried a % suffix.
	val float64
	pct bool
	pos int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input line.
	tokenEOF
	// tokenNum is a numeric literal, possibly percent-suffixed.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent
	// tokenOp is an arithmetic operator.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenSep is the function argument separator, a comma.
	tokenSep
	// tokenAssign is the assignment sign.
	tokenAssign
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	case tokenAssign:
		return "Assign"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

// lexLine scans one input line into tokens. The returned slice always ends
// with an EOF token. Positions count runes from 1.
func lexLine(src string) ([]lexToken, error) {
	rs := []rune(src)
	var toks []lexToken
	i := 0
	for i < len(rs) {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case '0' <= r && r <= '9', r == '.':
			tok, next, err := scanNum(rs, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case r == '_', unicode.IsLetter(r):
			start := i
			for i < len(rs) && identRune(rs[i]) {
				i++
			}
			toks = append(toks, lexToken{kind: tokenIdent, text: string(rs[start:i]), pos: start + 1})
		case r == ',':
			toks = append(toks, lexToken{kind: tokenSep, text: ",", pos: i + 1})
			i++
		case r == '=':
			toks = append(toks, lexToken{kind: tokenAssign, text: "=", pos: i + 1})
			i++
		case r == '(':
			toks = append(toks, lexToken{kind: tokenOpen, text: "(", pos: i + 1})
			i++
		case r == ')':
			toks = append(toks, lexToken{kind: tokenClose, text: ")", pos: i + 1})
			i++
		case strings.ContainsRune(Operators, r):
			toks = append(toks, lexToken{kind: tokenOp, text: string(r), pos: i + 1})
			i++
		case r == '%':
			// % is only legal immediately following a numeric literal, and
			// scanNum consumes it there.
			return nil, &LexError{Text: "%", Kind: "percent", Col: i + 1}
		default:
			return nil, &LexError{Text: string(r), Col: i + 1}
		}
	}
	toks = append(toks, lexToken{kind: tokenEOF, pos: len(rs) + 1})
	return toks, nil
}

func identRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanNum scans a numeric literal starting at rs[start], including an
// optional trailing % sign. It returns the token and the index of the first
// unconsumed rune.
func scanNum(rs []rune, start int) (lexToken, int, error) {
	var b strings.Builder
	var dig, dot, e, le, ed bool
	i := start
scan:
	for i < len(rs) {
		r := rs[i]
		switch {
		case '0' <= r && r <= '9':
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		case r == '.':
			if dot || e {
				b.WriteRune(r)
				return lexToken{}, 0, &LexError{Text: b.String(), Kind: "number", Col: start + 1}
			}
			dot = true
			le = false
		case r == 'e', r == 'E':
			if !dig || e {
				b.WriteRune(r)
				return lexToken{}, 0, &LexError{Text: b.String(), Kind: "number", Col: start + 1}
			}
			e = true
			le = true
		case r == '+', r == '-':
			// A sign is part of the number only immediately after an
			// exponent marker; anywhere else it is an operator.
			if !le {
				break scan
			}
			le = false
		default:
			break scan
		}
		b.WriteRune(r)
		i++
	}
	if (!dig && !ed) || (e && !ed) {
		return lexToken{}, 0, &LexError{Text: b.String(), Kind: "number", Col: start + 1}
	}
	tok := lexToken{kind: tokenNum, text: b.String(), pos: start + 1}
	if i < len(rs) && rs[i] == '%' {
		tok.pct = true
		tok.text += "%"
		i++
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return lexToken{}, 0, &LexError{Text: b.String(), Kind: "number", Col: start + 1}
	}
	tok.val = v
	return tok, i, nil
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be
	// "number", "percent", or the empty string (if a token kind hadn't been
	// decided).
	Kind string
	// Col is the rune column at which the bad token starts.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	switch err.Kind {
	case "":
		return "invalid character at " + pos + ": " + strconv.Quote(err.Text)
	case "percent":
		return "% not following a number at " + pos
	default:
		return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
	}
}

func (err *LexError) Pos() int {
	return err.Col
}
