package symplot

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

// PlotResult is the result payload of the "plot" tool.
type PlotResult struct {
	Polylines []Polyline `json:"polylines"`
}

func HandleToolCall(req ToolRequest) ToolResponse {
	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return FromJSON(val)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getNumber := func(key string) (float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		n, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("param %s must be a number", key)
		}
		return n, nil
	}
	// subs is optional: an object of name -> number or expression object.
	getSubs := func(key string) (Substitutions, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, nil
		}
		raw, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be an object", key)
		}
		subs := make(Substitutions, len(raw))
		for name, val := range raw {
			switch t := val.(type) {
			case float64:
				subs[name] = C(t)
			case map[string]interface{}:
				e, err := FromJSON(t)
				if err != nil {
					return nil, fmt.Errorf("param %s[%s]: %w", key, name, err)
				}
				subs[name] = e
			default:
				return nil, fmt.Errorf("param %s[%s] must be a number or expression", key, name)
			}
		}
		return subs, nil
	}

	respondAll := func(results []Expr) ToolResponse {
		objs := make([]map[string]interface{}, len(results))
		strs := ""
		for i, r := range results {
			objs[i] = r.toJSON()
			if i > 0 {
				strs += "; "
			}
			strs += r.String()
		}
		latex := ""
		if len(results) == 1 {
			latex = results[0].LaTeX()
		}
		return ToolResponse{Result: objs, LaTeX: latex, String: strs}
	}

	switch req.Tool {
	case "simplify":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		subs, err := getSubs("subs")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondAll(e.Simplify(subs))

	case "variables":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: FreeVariables(e)}

	case "to_latex":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		if dep, err := getString("dependent"); err == nil {
			eq := Eq(dep, e)
			return ToolResponse{LaTeX: eq.LaTeX(), String: eq.String()}
		}
		return ToolResponse{LaTeX: e.LaTeX(), String: e.String()}

	case "to_string":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{String: e.String()}

	case "evaluate":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		name, err := getString("var")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		value, err := getNumber("value")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondAll(e.Simplify(Substitutions{name: C(value)}))

	case "plot":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		lo, err := getNumber("min")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		hi, err := getNumber("max")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		step, err := getNumber("step")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		lines, err := Plot(e, NewRange(lo, hi), step)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{
			Result: PlotResult{Polylines: lines},
			String: fmt.Sprintf("%d polyline(s)", len(lines)),
		}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

func MCPToolSpec() string {
	tools := []map[string]interface{}{
		ts("simplify", "Substitute and fold constants; returns every candidate", []string{"expr"}, map[string]string{"expr": "object", "subs": "object"}),
		ts("variables", "Return free variable names", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("to_latex", "Convert to LaTeX; with dependent, renders an equation", []string{"expr"}, map[string]string{"expr": "object", "dependent": "string"}),
		ts("to_string", "Parenthesized display form", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("evaluate", "Bind var to value and simplify", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "number"}),
		ts("plot", "Sample over [min,max] and return polylines", []string{"expr", "min", "max", "step"}, map[string]string{"expr": "object", "min": "number", "max": "number", "step": "number"}),
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
