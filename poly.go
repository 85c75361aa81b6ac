// Package gopoly provides a sparse integer polynomial in one variable.
//
// Design goals:
//   - Canonical form after every operation (descending exponents, no duplicates, no zeros)
//   - Operands are never mutated by Add, Multiply or Derivative
//   - Deterministic, stable text, LaTeX and JSON output
//   - Embeddable in Go services, CLI tools, and agent backends
package gopoly

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// Term
// ============================================================

// Term is one coefficient*x^exponent summand.
type Term struct {
	Coef int `json:"coef"`
	Exp  int `json:"exp"`
}

var (
	ErrZeroCoefficient  = errors.New("gopoly: zero coefficient")
	ErrNegativeExponent = errors.New("gopoly: negative exponent")
)

// ValidateTerm reports why InsertTerm would drop the term, or nil if it would be kept.
func ValidateTerm(coef, exp int) error {
	if coef == 0 {
		return fmt.Errorf("term (%d, %d): %w", coef, exp, ErrZeroCoefficient)
	}
	if exp < 0 {
		return fmt.Errorf("term (%d, %d): %w", coef, exp, ErrNegativeExponent)
	}
	return nil
}

// ============================================================
// Polynomial
// ============================================================

// Polynomial is an ordered term sequence kept in canonical form.
// The zero value is the zero polynomial.
type Polynomial struct{ terms []Term }

func New() *Polynomial { return &Polynomial{} }

// FromTerms inserts each term in order, with the same drop rules as InsertTerm.
func FromTerms(terms ...Term) *Polynomial {
	p := New()
	for _, t := range terms {
		p.InsertTerm(t.Coef, t.Exp)
	}
	return p
}

// InsertTerm adds coef*x^exp. Zero coefficients and negative exponents are ignored.
func (p *Polynomial) InsertTerm(coef, exp int) {
	if coef == 0 || exp < 0 {
		return
	}
	p.terms = append([]Term{{Coef: coef, Exp: exp}}, p.terms...)
	p.terms = normalize(p.terms)
}

// InsertTermStrict is InsertTerm that reports invalid terms instead of ignoring them.
func (p *Polynomial) InsertTermStrict(coef, exp int) error {
	if err := ValidateTerm(coef, exp); err != nil {
		return err
	}
	p.InsertTerm(coef, exp)
	return nil
}

func (p *Polynomial) Terms() []Term {
	out := make([]Term, len(p.terms))
	copy(out, p.terms)
	return out
}

func (p *Polynomial) Len() int     { return len(p.terms) }
func (p *Polynomial) IsZero() bool { return len(p.terms) == 0 }
func (p *Polynomial) Clone() *Polynomial {
	return &Polynomial{terms: p.Terms()}
}

// Degree returns the leading exponent, or -1 for the zero polynomial.
func (p *Polynomial) Degree() int {
	if p.IsZero() {
		return -1
	}
	return p.terms[0].Exp
}

func (p *Polynomial) LeadingTerm() (Term, bool) {
	if p.IsZero() {
		return Term{}, false
	}
	return p.terms[0], true
}

func (p *Polynomial) Coefficient(exp int) int {
	for _, t := range p.terms {
		if t.Exp == exp {
			return t.Coef
		}
		if t.Exp < exp {
			break
		}
	}
	return 0
}

func (p *Polynomial) Equal(other *Polynomial) bool {
	if len(p.terms) != len(other.terms) {
		return false
	}
	for i, t := range p.terms {
		if other.terms[i] != t {
			return false
		}
	}
	return true
}

// Eval evaluates the polynomial at x using Horner's rule over the sparse terms.
func (p *Polynomial) Eval(x int) int {
	if p.IsZero() {
		return 0
	}
	acc := 0
	prev := p.terms[0].Exp
	for _, t := range p.terms {
		acc *= ipow(x, prev-t.Exp)
		acc += t.Coef
		prev = t.Exp
	}
	return acc * ipow(x, prev)
}

func ipow(base, n int) int {
	result := 1
	for n > 0 {
		if n&1 == 1 {
			result *= base
		}
		base *= base
		n >>= 1
	}
	return result
}

// ============================================================
// Arithmetic
// ============================================================

func (p *Polynomial) Add(other *Polynomial) *Polynomial {
	terms := make([]Term, 0, len(p.terms)+len(other.terms))
	terms = append(terms, p.terms...)
	terms = append(terms, other.terms...)
	return &Polynomial{terms: normalize(terms)}
}

func (p *Polynomial) Multiply(other *Polynomial) *Polynomial {
	terms := make([]Term, 0, len(p.terms)*len(other.terms))
	for _, a := range p.terms {
		for _, b := range other.terms {
			terms = append(terms, Term{Coef: a.Coef * b.Coef, Exp: a.Exp + b.Exp})
		}
	}
	return &Polynomial{terms: normalize(terms)}
}

func (p *Polynomial) Derivative() *Polynomial {
	terms := make([]Term, 0, len(p.terms))
	for _, t := range p.terms {
		if t.Exp == 0 {
			continue
		}
		terms = append(terms, Term{Coef: t.Coef * t.Exp, Exp: t.Exp - 1})
	}
	return &Polynomial{terms: normalize(terms)}
}

// DerivativeN applies Derivative n times. n <= 0 returns a copy.
func (p *Polynomial) DerivativeN(n int) *Polynomial {
	result := p.Clone()
	for i := 0; i < n && !result.IsZero(); i++ {
		result = result.Derivative()
	}
	return result
}

// normalize sorts by descending exponent, merges equal exponents and drops zero
// coefficients. It reuses the backing array of terms.
func normalize(terms []Term) []Term {
	sort.SliceStable(terms, func(i, j int) bool { return terms[i].Exp > terms[j].Exp })
	out := terms[:0]
	for _, t := range terms {
		if n := len(out); n > 0 && out[n-1].Exp == t.Exp {
			out[n-1].Coef += t.Coef
			continue
		}
		out = append(out, t)
	}
	kept := out[:0]
	for _, t := range out {
		if t.Coef != 0 {
			kept = append(kept, t)
		}
	}
	return kept
}

// ============================================================
// Rendering
// ============================================================

func (p *Polynomial) String() string { return p.Format("x") }

// Format renders the polynomial using variable as the indeterminate.
func (p *Polynomial) Format(variable string) string {
	return p.render(func(sb *strings.Builder, exp int) {
		sb.WriteString(variable)
		if exp > 1 {
			sb.WriteString("^")
			sb.WriteString(strconv.Itoa(exp))
		}
	})
}

func (p *Polynomial) LaTeX() string {
	return p.render(func(sb *strings.Builder, exp int) {
		sb.WriteString("x")
		if exp > 1 {
			sb.WriteString("^{")
			sb.WriteString(strconv.Itoa(exp))
			sb.WriteString("}")
		}
	})
}

func (p *Polynomial) render(writeVar func(sb *strings.Builder, exp int)) string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.terms {
		switch {
		case i == 0 && t.Coef < 0:
			sb.WriteString("-")
		case i > 0 && t.Coef < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		abs := t.Coef
		if abs < 0 {
			abs = -abs
		}
		if abs != 1 || t.Exp == 0 {
			sb.WriteString(strconv.Itoa(abs))
		}
		if t.Exp > 0 {
			writeVar(&sb, t.Exp)
		}
	}
	return sb.String()
}
