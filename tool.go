package symcalc

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================
// Tool interface
// ============================================================

type ToolRequest struct {
	Tool   string                     `json:"tool"`
	Params map[string]json.RawMessage `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Defaults applied when a request omits the numeric budget.
const (
	DefaultMaxOrder    uint64 = 4
	DefaultTaylorOrder uint64 = 5
)

// MaxDerivativeOrder bounds the "n" accepted by the derivative tool.
const MaxDerivativeOrder uint64 = 64

// ExpansionResult is the "taylor" tool payload.
type ExpansionResult struct {
	Coefficients []*Expr `json:"coefficients"`
	Residual     *Expr   `json:"residual"`
	Polynomial   *Expr   `json:"polynomial"`
}

// LimitResult is the "limit" tool payload. Value is set only for the
// normal class.
type LimitResult struct {
	Kind  string `json:"kind"`
	Value *Expr  `json:"value,omitempty"`
}

type toolParams map[string]json.RawMessage

func (p toolParams) expr(key string) (*Expr, error) {
	raw, ok := p[key]
	if !ok {
		return nil, errors.Errorf("missing param: %s", key)
	}
	e, err := FromJSON(raw)
	if err != nil {
		return nil, errors.WithMessagef(err, "param %s", key)
	}
	return e, nil
}

func (p toolParams) variable(key string) (Variable, error) {
	raw, ok := p[key]
	if !ok {
		return Variable{}, errors.Errorf("missing param: %s", key)
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil || name == "" {
		return Variable{}, errors.Errorf("param %s must be a non-empty string", key)
	}
	return Variable{Name: name}, nil
}

func (p toolParams) variables(key string) ([]Variable, error) {
	raw, ok := p[key]
	if !ok {
		return nil, errors.Errorf("missing param: %s", key)
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, errors.Errorf("param %s must be an array of strings", key)
	}
	vars := make([]Variable, len(names))
	for i, n := range names {
		if n == "" {
			return nil, errors.Errorf("param %s[%d] must be a non-empty string", key, i)
		}
		vars[i] = Variable{Name: n}
	}
	return vars, nil
}

func (p toolParams) order(key string, def uint64) (uint64, error) {
	raw, ok := p[key]
	if !ok {
		return def, nil
	}
	var n uint64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, errors.Errorf("param %s must be a non-negative integer", key)
	}
	return n, nil
}

func (p toolParams) env(key string) (Env, error) {
	raw, ok := p[key]
	if !ok {
		return Env{}, nil
	}
	var env Env
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errors.Errorf("param %s must map names to numbers", key)
	}
	return env, nil
}

// HandleToolCall runs one named operation. Failures are reported in
// ToolResponse.Error; it never panics on malformed parameters.
func HandleToolCall(req ToolRequest) ToolResponse {
	p := toolParams(req.Params)
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }
	respond := func(e *Expr) ToolResponse {
		return ToolResponse{Result: e, LaTeX: e.LaTeX(), String: e.String()}
	}

	switch req.Tool {
	case "aggregate":
		e, err := p.expr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(e.Aggregate())

	case "substitute":
		e, err := p.expr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := p.variable("var")
		if err != nil {
			return fail(err)
		}
		val, err := p.expr("value")
		if err != nil {
			return fail(err)
		}
		return respond(e.Substitute(v, val))

	case "derivative":
		e, err := p.expr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := p.variable("var")
		if err != nil {
			return fail(err)
		}
		n, err := p.order("n", 1)
		if err != nil {
			return fail(err)
		}
		if n > MaxDerivativeOrder {
			return fail(errors.Errorf("param n must be at most %d", MaxDerivativeOrder))
		}
		return respond(e.DerivativeN(v, int(n)))

	case "gradient":
		e, err := p.expr("expr")
		if err != nil {
			return fail(err)
		}
		vars, err := p.variables("vars")
		if err != nil {
			return fail(err)
		}
		grad := e.Gradient(vars...)
		strs := make([]string, len(grad))
		for i, g := range grad {
			strs[i] = g.String()
		}
		return ToolResponse{Result: grad, String: strings.Join(strs, ", ")}

	case "evaluate":
		e, err := p.expr("expr")
		if err != nil {
			return fail(err)
		}
		env, err := p.env("env")
		if err != nil {
			return fail(err)
		}
		f, err := e.Evaluate(env)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: f, String: FromNumber(RealOf(f)).String()}

	case "limit":
		e, err := p.expr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := p.variable("var")
		if err != nil {
			return fail(err)
		}
		to, err := p.expr("to")
		if err != nil {
			return fail(err)
		}
		maxOrder, err := p.order("max_order", DefaultMaxOrder)
		if err != nil {
			return fail(err)
		}
		c, err := e.Limit(v, to, maxOrder)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: LimitResult{Kind: c.Kind.String(), Value: c.Value}, String: c.String()}

	case "taylor":
		e, err := p.expr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := p.variable("var")
		if err != nil {
			return fail(err)
		}
		at := Zero()
		if _, ok := p["at"]; ok {
			if at, err = p.expr("at"); err != nil {
				return fail(err)
			}
		}
		order, err := p.order("order", DefaultTaylorOrder)
		if err != nil {
			return fail(err)
		}
		pe, err := e.TaylorExpansion(v, at, order)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{
			Result: ExpansionResult{Coefficients: pe.Coefficients, Residual: pe.Residual, Polynomial: pe.Polynomial()},
			String: pe.String(),
		}

	case "schema":
		return ToolResponse{String: ToolSpec()}
	}
	return ToolResponse{Error: "unknown tool: " + req.Tool}
}

// ToolSpec describes every tool accepted by HandleToolCall as a JSON schema
// document.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("aggregate", "Fold constants and apply identity rules", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("substitute", "Replace a variable with an expression", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "object"}),
		ts("derivative", "n-th derivative with respect to var (default n=1)", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string", "n": "integer"}),
		ts("gradient", "Partial derivatives with respect to each of vars", []string{"expr", "vars"}, map[string]string{"expr": "object", "vars": "array"}),
		ts("evaluate", "Evaluate numerically under env (name -> number)", []string{"expr"}, map[string]string{"expr": "object", "env": "object"}),
		ts("limit", "Limit class of expr as var approaches to", []string{"expr", "var", "to"}, map[string]string{"expr": "object", "var": "string", "to": "object", "max_order": "integer"}),
		ts("taylor", "Taylor expansion about at (default 0) up to order (default 5)", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string", "at": "object", "order": "integer"}),
		ts("schema", "Return this tool schema", []string{}, map[string]string{}),
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
