package facalc

// Line = Assign | Expr
// Assign = ident '=' Expr
// Expr = num | name | Call | Neg | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = ident '(' [ Expr { ',' Expr } ] ')'
// Neg = '-' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr (right-associative)

// Expr is a parsed input line: a single expression, or an assignment to a
// variable. Arity of function calls is not checked here; that is the
// evaluator's concern.
type Expr struct {
	// n is the root node of the line.
	n *node
}

// Parse parses a single input line.
func Parse(src string) (*Expr, error) {
	toks, err := lexLine(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	// Assignment is only legal as the top-level form "name = expr".
	if toks[0].kind == tokenIdent && toks[1].kind == tokenAssign {
		p.i = 2
		rhs, err := p.parseTerm(exprprec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, p.noExpr()
		}
		if err := p.expectEOF(); err != nil {
			return nil, err
		}
		return &Expr{n: &node{kind: nodeAssign, name: toks[0].text, left: rhs}}, nil
	}
	n, err := p.parseTerm(exprprec)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, p.noExpr()
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return &Expr{n: n}, nil
}

// Assignment reports whether the parsed line is an assignment, and if so,
// the target name.
func (e *Expr) Assignment() (string, bool) {
	if e.n.kind == nodeAssign {
		return e.n.name, true
	}
	return "", false
}

// String creates a fully parenthesized representation of the parsed line.
func (e *Expr) String() string {
	return e.n.String()
}

type parser struct {
	toks []lexToken
	i    int
}

// next consumes and returns the current token. The EOF token is never
// consumed, so next at the end of input is idempotent.
func (p *parser) next() lexToken {
	tok := p.toks[p.i]
	if tok.kind != tokenEOF {
		p.i++
	}
	return tok
}

func (p *parser) peek() lexToken {
	return p.toks[p.i]
}

// parseTerm parses a subexpression whose operators all bind more tightly
// than until. If the input is an empty subexpression, the result is nil with
// no error; callers create the error in contexts where that is illegal.
func (p *parser) parseTerm(until operator) (*node, error) {
	n, err := p.parseLHS(until)
	if err != nil || n == nil {
		return n, err
	}
	for {
		tok := p.peek()
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
			}
			if !prec.moreBinding(until) {
				return n, nil
			}
			p.i++
			rhs, err := p.parseTerm(prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, p.noExpr()
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenClose, tokenSep, tokenAssign, tokenEOF:
			// End of this subexpression; the caller decides whether the
			// terminator is legal.
			return n, nil
		case tokenNum, tokenIdent, tokenOpen:
			return nil, &TrailingError{Col: tok.pos, Token: tok.text}
		default:
			panic("facalc: unknown token: " + tok.String())
		}
	}
}

// parseLHS parses the first component of a term, where operators are unary
// and any encountered token must be valid as the start of a subexpression.
func (p *parser) parseLHS(until operator) (*node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNum:
		return &node{kind: nodeNum, val: tok.val, pct: tok.pct}, nil
	case tokenIdent:
		if p.peek().kind == tokenOpen {
			p.i++
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &node{kind: nodeCall, name: tok.text, args: args}, nil
		}
		return &node{kind: nodeName, name: tok.text}, nil
	case tokenOp:
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y parses as x^(-y). Just use the enclosing operator's
			// precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := p.parseTerm(prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, p.noExpr()
		}
		return &node{kind: nodeNeg, left: rhs}, nil
	case tokenOpen:
		n, err := p.parseTerm(exprprec)
		if err != nil {
			return nil, err
		}
		end := p.next()
		if end.kind != tokenClose {
			if end.kind == tokenSep {
				return nil, &SeparatorError{Col: end.pos, Sep: end.text}
			}
			if end.kind == tokenAssign {
				return nil, &AssignError{Col: end.pos}
			}
			return nil, &BracketError{Col: end.pos, Left: "("}
		}
		if n == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n.grouped = true
		return n, nil
	case tokenClose, tokenSep:
		p.i--
		return nil, nil
	case tokenAssign:
		return nil, &AssignError{Col: tok.pos}
	case tokenEOF:
		return nil, nil
	default:
		panic("facalc: unknown token: " + tok.String())
	}
}

// parseArgs parses a parenthesized list of zero or more comma-separated
// arguments; the open paren is already consumed.
func (p *parser) parseArgs() ([]*node, error) {
	if p.peek().kind == tokenClose {
		// Empty argument list. Whether the function accepts zero arguments
		// is the evaluator's concern.
		p.i++
		return nil, nil
	}
	var args []*node
	for {
		a, err := p.parseTerm(exprprec)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, p.noExpr()
		}
		args = append(args, a)
		switch end := p.next(); end.kind {
		case tokenClose:
			return args, nil
		case tokenSep:
			// Next argument.
		case tokenAssign:
			return nil, &AssignError{Col: end.pos}
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: "("}
		default:
			panic("facalc: parseArgs ended on " + end.String())
		}
	}
}

// noExpr returns an error appropriate for a missing subexpression, based on
// the token that ended it.
func (p *parser) noExpr() error {
	switch tok := p.peek(); tok.kind {
	case tokenEOF:
		return &EmptyExpressionError{Col: tok.pos}
	case tokenClose:
		return &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenSep:
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenAssign:
		return &AssignError{Col: tok.pos}
	default:
		return &EmptyExpressionError{Col: tok.pos, End: tok.text}
	}
}

// expectEOF checks that the whole line was consumed.
func (p *parser) expectEOF() error {
	switch tok := p.peek(); tok.kind {
	case tokenEOF:
		return nil
	case tokenClose:
		return &BracketError{Col: tok.pos, Right: tok.text}
	case tokenSep:
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenAssign:
		return &AssignError{Col: tok.pos}
	default:
		return &TrailingError{Col: tok.pos, Token: tok.text}
	}
}

type operator struct {
	// prec is the precedence value. Lower is less binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such
// binary operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
