package flow

import (
	"encoding/json"
	"fmt"
)

// Operation is one step of a Flow program body. Concrete types are
// unexported; programs are built only by decoding JSON via Parse.
type Operation interface {
	validate(ctx *valCtx) error
	execute(in *Interpreter, scope *Scope) (Signal, error)
}

// Value is an expression that evaluates to a Literal.
type Value interface {
	validate(ctx *valCtx) error
	evaluate(in *Interpreter, scope *Scope) (Literal, error)
}

// Function is a named subroutine with its own parameter list.
type Function struct {
	Args       []string
	Operations []Operation
}

// Program is a parsed, not-yet-validated Flow AST: the top-level
// functions, globals, and entrypoint operations (§3).
type Program struct {
	Functions map[string]*Function
	Globals   map[string]Literal
	Entry     []Operation
}

// Parse decodes a JSON document into a Program without validating it;
// call (*Program).Validate to check it.
func Parse(data []byte) (*Program, error) {
	var wire struct {
		Functions map[string]struct {
			Args       []string          `json:"args"`
			Operations []json.RawMessage `json:"operations"`
		} `json:"functions"`
		Globals    map[string]Literal `json:"globals"`
		Operations []json.RawMessage  `json:"operations"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("flow: decode program: %w", err)
	}

	p := &Program{
		Functions: make(map[string]*Function, len(wire.Functions)),
		Globals:   wire.Globals,
	}
	if p.Globals == nil {
		p.Globals = map[string]Literal{}
	}
	for name, raw := range wire.Functions {
		ops, err := decodeOperations(raw.Operations)
		if err != nil {
			return nil, fmt.Errorf("flow: decode function %q: %w", name, err)
		}
		p.Functions[name] = &Function{Args: raw.Args, Operations: ops}
	}
	entry, err := decodeOperations(wire.Operations)
	if err != nil {
		return nil, fmt.Errorf("flow: decode entrypoint: %w", err)
	}
	p.Entry = entry
	return p, nil
}

func decodeOperations(raw []json.RawMessage) ([]Operation, error) {
	out := make([]Operation, 0, len(raw))
	for _, r := range raw {
		op, err := decodeOperation(r)
		if err != nil {
			return nil, err
		}
		out = append(out, op)
	}
	return out, nil
}

func decodeOperation(raw json.RawMessage) (Operation, error) {
	var peek struct {
		Op string `json:"op"`
	}
	if err := json.Unmarshal(raw, &peek); err != nil {
		return nil, fmt.Errorf("decode operation: %w", err)
	}

	switch peek.Op {
	case "end":
		return endOp{}, nil
	case "return":
		var w struct {
			Result json.RawMessage `json:"result"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		result, err := decodeValue(w.Result)
		if err != nil {
			return nil, err
		}
		return returnOp{Result: result}, nil
	case "break":
		return breakOp{}, nil
	case "if":
		var w struct {
			Condition json.RawMessage   `json:"condition"`
			Truthy    []json.RawMessage `json:"truthy"`
			Falsy     []json.RawMessage `json:"falsy"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		cond, err := decodeValue(w.Condition)
		if err != nil {
			return nil, err
		}
		truthy, err := decodeOperations(w.Truthy)
		if err != nil {
			return nil, err
		}
		falsy, err := decodeOperations(w.Falsy)
		if err != nil {
			return nil, err
		}
		return ifOp{Condition: cond, Truthy: truthy, Falsy: falsy}, nil
	case "for":
		var w struct {
			Start      json.RawMessage   `json:"start"`
			End        json.RawMessage   `json:"end"`
			Index      string            `json:"index"`
			Operations []json.RawMessage `json:"operations"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		start, err := decodeValue(w.Start)
		if err != nil {
			return nil, err
		}
		end, err := decodeValue(w.End)
		if err != nil {
			return nil, err
		}
		body, err := decodeOperations(w.Operations)
		if err != nil {
			return nil, err
		}
		return forOp{Start: start, End: end, Index: w.Index, Body: body}, nil
	case "variable":
		var w struct {
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		val, err := decodeValue(w.Value)
		if err != nil {
			return nil, err
		}
		return variableOp{Name: w.Name, Value: val}, nil
	case "functioncall":
		var w struct {
			Name string            `json:"name"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		args, err := decodeValues(w.Args)
		if err != nil {
			return nil, err
		}
		return functionCallOp{Name: w.Name, Args: args}, nil
	case "brightness":
		var w struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		val, err := decodeValue(w.Value)
		if err != nil {
			return nil, err
		}
		return brightnessOp{Value: val}, nil
	case "fill":
		red, green, blue, err := decodeRGB(raw)
		if err != nil {
			return nil, err
		}
		return fillOp{Red: red, Green: green, Blue: blue}, nil
	case "set":
		var w struct {
			Index json.RawMessage `json:"index"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		index, err := decodeValue(w.Index)
		if err != nil {
			return nil, err
		}
		red, green, blue, err := decodeRGB(raw)
		if err != nil {
			return nil, err
		}
		return setOp{Index: index, Red: red, Green: green, Blue: blue}, nil
	case "show":
		return showOp{}, nil
	case "sleep":
		var w struct {
			Duration json.RawMessage `json:"duration"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		dur, err := decodeValue(w.Duration)
		if err != nil {
			return nil, err
		}
		return sleepOp{Duration: dur}, nil
	default:
		return nil, fmt.Errorf("flow: unknown operation %q", peek.Op)
	}
}

func decodeRGB(raw json.RawMessage) (red, green, blue Value, err error) {
	var w struct {
		Red   json.RawMessage `json:"red"`
		Green json.RawMessage `json:"green"`
		Blue  json.RawMessage `json:"blue"`
	}
	if err = json.Unmarshal(raw, &w); err != nil {
		return nil, nil, nil, err
	}
	if red, err = decodeValue(w.Red); err != nil {
		return nil, nil, nil, err
	}
	if green, err = decodeValue(w.Green); err != nil {
		return nil, nil, nil, err
	}
	if blue, err = decodeValue(w.Blue); err != nil {
		return nil, nil, nil, err
	}
	return red, green, blue, nil
}

func decodeValues(raw []json.RawMessage) ([]Value, error) {
	out := make([]Value, 0, len(raw))
	for _, r := range raw {
		v, err := decodeValue(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeValue(raw json.RawMessage) (Value, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("decode value: missing value")
	}
	var peek struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &peek); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}

	switch peek.Type {
	case "variable":
		var w struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return variableExpr{Name: w.Name}, nil
	case "literal":
		var w struct {
			Value Literal `json:"value"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return literalExpr{Value: w.Value}, nil
	case "unary-expression":
		var w struct {
			Operator UnaryOperator   `json:"operator"`
			Value    json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		v, err := decodeValue(w.Value)
		if err != nil {
			return nil, err
		}
		return unaryExpr{Operator: w.Operator, Value: v}, nil
	case "binary-expression":
		var w struct {
			Operator BinaryOperator  `json:"operator"`
			Lhs      json.RawMessage `json:"lhs"`
			Rhs      json.RawMessage `json:"rhs"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		lhs, err := decodeValue(w.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeValue(w.Rhs)
		if err != nil {
			return nil, err
		}
		return binaryExpr{Operator: w.Operator, Lhs: lhs, Rhs: rhs}, nil
	case "comparison":
		var w struct {
			Comparator Comparator      `json:"comparator"`
			Lhs        json.RawMessage `json:"lhs"`
			Rhs        json.RawMessage `json:"rhs"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		lhs, err := decodeValue(w.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeValue(w.Rhs)
		if err != nil {
			return nil, err
		}
		return comparisonExpr{Comparator: w.Comparator, Lhs: lhs, Rhs: rhs}, nil
	case "function-call":
		var w struct {
			Name string            `json:"name"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		args, err := decodeValues(w.Args)
		if err != nil {
			return nil, err
		}
		return functionCallExpr{Name: w.Name, Args: args}, nil
	default:
		return nil, fmt.Errorf("flow: unknown value type %q", peek.Type)
	}
}
