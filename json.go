package gopoly

import (
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// JSON Serialization
// ============================================================

func (p *Polynomial) toJSON() map[string]interface{} {
	terms := make([]interface{}, len(p.terms))
	for i, t := range p.terms {
		terms[i] = map[string]interface{}{"coef": t.Coef, "exp": t.Exp}
	}
	return map[string]interface{}{"type": "poly", "terms": terms}
}

func ToJSON(p *Polynomial) (string, error) {
	b, err := json.Marshal(p.toJSON())
	return string(b), err
}

func (p *Polynomial) MarshalJSON() ([]byte, error) { return json.Marshal(p.toJSON()) }

func (p *Polynomial) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("poly: %w", err)
	}
	decoded, err := FromJSON(raw)
	if err != nil {
		return err
	}
	p.terms = decoded.terms
	return nil
}

// FromJSON decodes {"type":"poly","terms":[{"coef":c,"exp":e},...]}.
// Invalid terms are dropped exactly as InsertTerm drops them.
func FromJSON(data map[string]interface{}) (*Polynomial, error) {
	return fromJSON(data, false)
}

// FromJSONStrict is FromJSON that rejects zero coefficients and negative exponents.
func FromJSONStrict(data map[string]interface{}) (*Polynomial, error) {
	return fromJSON(data, true)
}

func fromJSON(data map[string]interface{}, strict bool) (*Polynomial, error) {
	if data == nil {
		return nil, fmt.Errorf("polynomial must be an object")
	}
	if typAny, ok := data["type"]; ok {
		if typ, ok := typAny.(string); !ok || typ != "poly" {
			return nil, fmt.Errorf("field 'type' must be \"poly\"")
		}
	}
	rawTerms, ok := data["terms"]
	if !ok {
		return nil, fmt.Errorf("poly: missing \"terms\"")
	}
	if rawTerms == nil {
		return New(), nil
	}
	list, ok := rawTerms.([]interface{})
	if !ok {
		return nil, fmt.Errorf("poly: \"terms\" must be an array")
	}
	p := New()
	for i, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("poly: terms[%d] must be an object", i)
		}
		coef, err := intField(m, "coef")
		if err != nil {
			return nil, fmt.Errorf("poly: terms[%d]: %w", i, err)
		}
		exp, err := intField(m, "exp")
		if err != nil {
			return nil, fmt.Errorf("poly: terms[%d]: %w", i, err)
		}
		if strict {
			if err := p.InsertTermStrict(coef, exp); err != nil {
				return nil, fmt.Errorf("poly: terms[%d]: %w", i, err)
			}
			continue
		}
		p.InsertTerm(coef, exp)
	}
	return p, nil
}

func intField(m map[string]interface{}, key string) (int, error) {
	v, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("missing %q", key)
	}
	return toInt(v, key)
}

func toInt(v interface{}, key string) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, fmt.Errorf("%q must be an integer", key)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%q must be an integer", key)
		}
		return int(i), nil
	}
	return 0, fmt.Errorf("%q must be a number", key)
}
