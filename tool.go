package symdiff

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// maxOrder caps the derivative order a tool call may request.
const maxOrder = 32

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result      interface{}  `json:"result,omitempty"`
	LaTeX       string       `json:"latex,omitempty"`
	String      string       `json:"string,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// HandleToolCall dispatches a tool request. The "domain" param selects the
// scalar type: "real" (default) or "complex".
func HandleToolCall(req ToolRequest) ToolResponse {
	domain := "real"
	if v, ok := req.Params["domain"]; ok {
		s, ok := v.(string)
		if !ok {
			return ToolResponse{Error: "param domain must be a string"}
		}
		domain = s
	}
	switch domain {
	case "real":
		return handleTool[Real](req)
	case "complex":
		return handleTool[Complex](req)
	}
	return ToolResponse{Error: fmt.Sprintf("unknown domain: %s", domain)}
}

func handleTool[T Scalar[T]](req ToolRequest) ToolResponse {
	// Expressions arrive either as text or as a ToJSON object.
	getExpr := func(key string) (Expr[T], error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		switch val := v.(type) {
		case string:
			return Parse[T](val)
		case map[string]interface{}:
			return FromJSON[T](val)
		}
		return nil, fmt.Errorf("invalid type for param %s", key)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("param %s must be a non-empty string", key)
		}
		return s, nil
	}
	getVars := func(key string) (map[string]T, error) {
		out := map[string]T{}
		v, ok := req.Params[key]
		if !ok {
			return out, nil
		}
		raw, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be an object", key)
		}
		var z T
		for name, val := range raw {
			var text string
			switch x := val.(type) {
			case string:
				text = x
			case float64:
				text = fmt.Sprint(x)
			default:
				return nil, fmt.Errorf("param %s.%s must be a number or string", key, name)
			}
			s, err := z.Parse(text)
			if err != nil {
				return nil, fmt.Errorf("param %s.%s: invalid value %q", key, name, text)
			}
			out[name] = s
		}
		return out, nil
	}
	respond := func(e Expr[T]) ToolResponse {
		return ToolResponse{Result: e.toJSON(), LaTeX: e.LaTeX(), String: e.String()}
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "parse":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(e)

	case "simplify":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(e.Simplify())

	case "evaluate":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		vars, err := getVars("vars")
		if err != nil {
			return fail(err)
		}
		env := NewEnv(vars, nil)
		v, err := e.Eval(env)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: v.String(), String: v.String(), Diagnostics: env.Diagnostics()}

	case "differentiate":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		n := 1
		if nAny, ok := req.Params["order"]; ok {
			nF, ok := nAny.(float64)
			if !ok {
				return ToolResponse{Error: "param order must be a number"}
			}
			if math.IsNaN(nF) || math.IsInf(nF, 0) || nF != math.Trunc(nF) {
				return ToolResponse{Error: "param order must be an integer"}
			}
			if nF < 1 || nF > maxOrder {
				return ToolResponse{Error: fmt.Sprintf("param order must be between 1 and %d", maxOrder)}
			}
			n = int(nF)
		}
		return respond(DiffN(e, v, n))

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		value, err := getExpr("value")
		if err != nil {
			return fail(err)
		}
		return respond(e.Sub(v, value))

	case "gradient":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		names := sortedSymbols(e)
		grad := Gradient(e, names)
		result := make(map[string]interface{}, len(names))
		strs := make([]string, len(names))
		for i, g := range grad {
			result[names[i]] = g.String()
			strs[i] = g.String()
		}
		return ToolResponse{Result: result, String: fmt.Sprint(strs)}

	case "free_symbols":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		names := sortedSymbols(e)
		return ToolResponse{Result: names, String: fmt.Sprint(names)}

	case "tool_spec":
		return ToolResponse{Result: ToolSpec(), String: "tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

func sortedSymbols[T Scalar[T]](e Expr[T]) []string {
	set := FreeSymbols(e)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ============================================================
// Tool spec
// ============================================================

func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("parse", "Parse expression text into a tree", []string{"expr"}, map[string]string{"expr": "string", "domain": "string"}),
		ts("simplify", "Apply identity simplification rules", []string{"expr"}, map[string]string{"expr": "string", "domain": "string"}),
		ts("evaluate", "Evaluate under vars {name: value}", []string{"expr"}, map[string]string{"expr": "string", "vars": "object", "domain": "string"}),
		ts("differentiate", "Derivative d/dvar. Optional order (int)", []string{"expr", "var"}, map[string]string{"expr": "string", "var": "string", "order": "integer", "domain": "string"}),
		ts("substitute", "Replace var with value, without simplifying", []string{"expr", "var", "value"}, map[string]string{"expr": "string", "var": "string", "value": "string", "domain": "string"}),
		ts("gradient", "Partial derivatives for every free symbol", []string{"expr"}, map[string]string{"expr": "string", "domain": "string"}),
		ts("free_symbols", "Return free symbol names", []string{"expr"}, map[string]string{"expr": "string", "domain": "string"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
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
