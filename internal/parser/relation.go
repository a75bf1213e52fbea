// Package parser turns a query string into the raw parse tree. The grammar
// requires explicit parentheses around every comparison and every composite,
// so each production is selected by a single byte of lookahead and parsing
// never backtracks.
package parser

// CompareOp identifies the comparison kind of a leaf.
type CompareOp int

const (
	OpEqual     CompareOp = iota // =  exact equality
	OpEqualFold                  // ~  case-insensitive equality
	OpGreater                    // >
	OpLess                       // <
	OpWildcard                   // *  shell-style wildcard
	OpRegex                      // $  regular expression
	OpAny                        // ?  membership in an array
	OpNull                       // -  null/none test
)

// Comparison is a single parenthesized field test. Target holds the operand
// of a binary comparison, Targets holds the candidates of OpAny, and OpNull
// carries neither.
type Comparison struct {
	Op      CompareOp
	Field   string
	Target  string
	Targets []string
}

// Relation is the raw parse tree of a parenthesized relation.
//
// This is a sealed interface - only types in this package implement it.
// A side that parsed as a bare comparison appears as Group; a side that
// parsed as a nested relation appears as And, Or, or Not, so the tree
// records which grammar alternative matched each operand.
type Relation interface {
	relationNode() // Marker method - seals interface to this package
}

// Group wraps a comparison standing on its own: "(" comparison ")".
type Group struct{ Comparison Comparison }

// And is the conjunction of two parenthesized operands.
type And struct{ Left, Right Relation }

// Or is the disjunction of two parenthesized operands.
type Or struct{ Left, Right Relation }

// Not is the negation of a single parenthesized operand.
type Not struct{ Target Relation }

func (Group) relationNode() {}
func (And) relationNode()   {}
func (Or) relationNode()    {}
func (Not) relationNode()   {}

// Parse parses a complete query string into the raw parse tree. Input left
// over after a well-formed top-level relation is a syntax error.
func Parse(input string) (Relation, error) {
	s := &scanner{input: input}
	rel, err := s.relation()
	if err != nil {
		return nil, err
	}
	if !s.eof() {
		return nil, s.errf("end of input")
	}
	return rel, nil
}

// relation dispatches on the token after "(": a text literal starts a
// comparison, "(" starts a binary relation, "!" starts a negation.
func (s *scanner) relation() (Relation, error) {
	if err := s.expect('('); err != nil {
		return nil, err
	}
	s.space0()

	var rel Relation
	switch s.peek() {
	case '"':
		c, err := s.comparison()
		if err != nil {
			return nil, err
		}
		rel = Group{Comparison: c}
	case '(':
		left, err := s.relation()
		if err != nil {
			return nil, err
		}
		s.space0()
		op := s.peek()
		if op != '&' && op != '|' {
			return nil, s.errf("'&' or '|'")
		}
		s.pos++
		s.space0()
		right, err := s.relation()
		if err != nil {
			return nil, err
		}
		if op == '&' {
			rel = And{Left: left, Right: right}
		} else {
			rel = Or{Left: left, Right: right}
		}
	case '!':
		s.pos++
		s.space0()
		target, err := s.relation()
		if err != nil {
			return nil, err
		}
		rel = Not{Target: target}
	default:
		return nil, s.errf("comparison, group, or '!'")
	}

	s.space0()
	if err := s.expect(')'); err != nil {
		return nil, err
	}
	return rel, nil
}

// comparison scans the body of a comparison after its opening parenthesis:
// the field text, one operator, and whatever operand the operator calls for.
func (s *scanner) comparison() (Comparison, error) {
	field, err := s.text()
	if err != nil {
		return Comparison{}, err
	}
	s.space0()
	if s.eof() {
		return Comparison{}, s.errf("comparison operator")
	}

	op := s.input[s.pos]
	s.pos++
	switch op {
	case '=', '~', '>', '<', '*', '$':
		s.space0()
		target, err := s.text()
		if err != nil {
			return Comparison{}, err
		}
		return Comparison{Op: compareOp(op), Field: field, Target: target}, nil
	case '?':
		s.space0()
		targets, err := s.array()
		if err != nil {
			return Comparison{}, err
		}
		return Comparison{Op: OpAny, Field: field, Targets: targets}, nil
	case '-':
		return Comparison{Op: OpNull, Field: field}, nil
	default:
		s.pos--
		return Comparison{}, s.errf("comparison operator")
	}
}

func compareOp(op byte) CompareOp {
	switch op {
	case '=':
		return OpEqual
	case '~':
		return OpEqualFold
	case '>':
		return OpGreater
	case '<':
		return OpLess
	case '*':
		return OpWildcard
	default: // '$'
		return OpRegex
	}
}
