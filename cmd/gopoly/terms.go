package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/njchilds90/gopoly"
)

// parseTerm reads a "coef:exp" pair.
func parseTerm(s string) (gopoly.Term, error) {
	coefStr, expStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return gopoly.Term{}, fmt.Errorf("term %q: want coef:exp", s)
	}
	coef, err := strconv.Atoi(strings.TrimSpace(coefStr))
	if err != nil {
		return gopoly.Term{}, fmt.Errorf("term %q: bad coefficient: %w", s, err)
	}
	exp, err := strconv.Atoi(strings.TrimSpace(expStr))
	if err != nil {
		return gopoly.Term{}, fmt.Errorf("term %q: bad exponent: %w", s, err)
	}
	return gopoly.Term{Coef: coef, Exp: exp}, nil
}

// buildPoly inserts the given pairs in order. In strict mode the first invalid
// term is an error.
func buildPoly(pairs []string, strict bool) (*gopoly.Polynomial, error) {
	p := gopoly.New()
	for _, s := range pairs {
		t, err := parseTerm(s)
		if err != nil {
			return nil, err
		}
		if strict {
			if err := p.InsertTermStrict(t.Coef, t.Exp); err != nil {
				return nil, err
			}
			continue
		}
		p.InsertTerm(t.Coef, t.Exp)
	}
	return p, nil
}
