package gopoly

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall dispatches a tool request. Errors are reported in ToolResponse.Error.
func HandleToolCall(req ToolRequest) (resp ToolResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			resp = ToolResponse{Error: fmt.Sprintf("internal error: %v", rec)}
		}
	}()

	strict := false
	if v, ok := req.Params["strict"]; ok {
		b, ok := v.(bool)
		if !ok {
			return errResp(fmt.Errorf("param strict must be a boolean"))
		}
		strict = b
	}
	getPoly := func(key string) (*Polynomial, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		p, err := fromJSON(m, strict)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", key, err)
		}
		return p, nil
	}
	getInt := func(key string) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		return toInt(v, key)
	}
	unary := func(op func(p *Polynomial) *Polynomial) ToolResponse {
		p, err := getPoly("p")
		if err != nil {
			return errResp(err)
		}
		return polyResp(op(p))
	}
	binary := func(op func(p, q *Polynomial) *Polynomial) ToolResponse {
		p, err := getPoly("p")
		if err != nil {
			return errResp(err)
		}
		q, err := getPoly("q")
		if err != nil {
			return errResp(err)
		}
		return polyResp(op(p, q))
	}

	switch req.Tool {
	case "normalize":
		return unary(func(p *Polynomial) *Polynomial { return p })
	case "to_string":
		p, err := getPoly("p")
		if err != nil {
			return errResp(err)
		}
		variable := "x"
		if v, ok := req.Params["var"]; ok {
			s, ok := v.(string)
			if !ok || s == "" {
				return errResp(fmt.Errorf("param var must be a non-empty string"))
			}
			variable = s
		}
		return ToolResponse{String: p.Format(variable)}
	case "to_latex":
		p, err := getPoly("p")
		if err != nil {
			return errResp(err)
		}
		return ToolResponse{LaTeX: p.LaTeX()}
	case "add":
		return binary((*Polynomial).Add)
	case "multiply":
		return binary((*Polynomial).Multiply)
	case "derivative":
		return unary((*Polynomial).Derivative)
	case "derivative_n":
		n, err := getInt("n")
		if err != nil {
			return errResp(err)
		}
		if n < 0 {
			return errResp(fmt.Errorf("param n must be non-negative"))
		}
		return unary(func(p *Polynomial) *Polynomial { return p.DerivativeN(n) })
	case "degree":
		p, err := getPoly("p")
		if err != nil {
			return errResp(err)
		}
		return ToolResponse{Result: p.Degree(), String: p.String()}
	case "eval":
		p, err := getPoly("p")
		if err != nil {
			return errResp(err)
		}
		x, err := getInt("x")
		if err != nil {
			return errResp(err)
		}
		return ToolResponse{Result: p.Eval(x), String: p.String()}
	case "mcp_spec":
		return ToolResponse{Result: json.RawMessage(MCPToolSpec())}
	}
	return errResp(fmt.Errorf("unknown tool: %s", req.Tool))
}

func errResp(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

func polyResp(p *Polynomial) ToolResponse {
	return ToolResponse{Result: p.toJSON(), String: p.String(), LaTeX: p.LaTeX()}
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	poly := map[string]string{"p": "object", "strict": "boolean"}
	pair := map[string]string{"p": "object", "q": "object", "strict": "boolean"}
	tools := []map[string]interface{}{
		ts("normalize", "Return the canonical form of a polynomial", []string{"p"}, poly),
		ts("to_string", "Render a polynomial as text. Optional var (string)", []string{"p"}, map[string]string{"p": "object", "var": "string", "strict": "boolean"}),
		ts("to_latex", "Render a polynomial as LaTeX", []string{"p"}, poly),
		ts("add", "Sum p + q", []string{"p", "q"}, pair),
		ts("multiply", "Product p * q", []string{"p", "q"}, pair),
		ts("derivative", "First derivative d/dx", []string{"p"}, poly),
		ts("derivative_n", "nth derivative. Requires n (int)", []string{"p", "n"}, map[string]string{"p": "object", "n": "integer", "strict": "boolean"}),
		ts("degree", "Degree of p (-1 for the zero polynomial)", []string{"p"}, poly),
		ts("eval", "Value of p at integer x", []string{"p", "x"}, map[string]string{"p": "object", "x": "integer", "strict": "boolean"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
