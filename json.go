package symdiff

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON Serialization
// ============================================================

func (n *Num[T]) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.val.String()}
}

func (s *Sym[T]) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.name}
}

func (b *BinOp[T]) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":  "binop",
		"op":    b.op.String(),
		"left":  b.left.toJSON(),
		"right": b.right.toJSON(),
	}
}

func (f *Func[T]) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": string(f.name), "arg": f.arg.toJSON()}
}

// ToJSON encodes the tree structure of e.
func ToJSON[T Scalar[T]](e Expr[T]) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// FromJSON decodes a tree produced by ToJSON. The tree is rebuilt as is,
// without simplification.
func FromJSON[T Scalar[T]](data map[string]interface{}) (Expr[T], error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (Expr[T], error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := FromJSON[T](m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return e, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		val, err := subString("value")
		if err != nil {
			return nil, err
		}
		var z T
		v, err := z.Parse(val)
		if err != nil {
			return nil, fmt.Errorf("invalid num value: %s", val)
		}
		return N(v), nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return S[T](name), nil

	case "binop":
		opStr, err := subString("op")
		if err != nil {
			return nil, err
		}
		op := Op(opStr[0])
		if len(opStr) != 1 || !op.valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, opStr)
		}
		left, err := subObj("left")
		if err != nil {
			return nil, err
		}
		right, err := subObj("right")
		if err != nil {
			return nil, err
		}
		return binOf(op, left, right), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		fn := FuncName(name)
		if !fn.valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
		}
		arg, err := subObj("arg")
		if err != nil {
			return nil, err
		}
		return funcOf(fn, arg), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

// ParseJSON decodes the text form of ToJSON.
func ParseJSON[T Scalar[T]](s string) (Expr[T], error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil, err
	}
	return FromJSON[T](data)
}
