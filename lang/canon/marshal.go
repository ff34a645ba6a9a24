package canon

import "encoding/json"

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// ToMap converts the program to a native Go map structure.
func (p *Program) ToMap() map[string]any {
	return map[string]any{"body": p.Body.ToNative()}
}

// ToNative converts a gate chain to native Go types.
func (g *Gate) ToNative() map[string]any {
	if g.Traced() {
		return map[string]any{
			"trace": g.Trace.String(),
			"inner": g.Inner.ToNative(),
		}
	}

	return map[string]any{"block": g.Block.ToNative()}
}

// ToNative converts a block to native Go types. Empty entry lists are omitted.
func (b *Block) ToNative() map[string]any {
	m := map[string]any{
		"kind":  b.Kind.String(),
		"shape": b.Shape.String(),
	}

	if len(b.Bindings) > 0 {
		bindings := make([]any, len(b.Bindings))
		for i, bind := range b.Bindings {
			bindings[i] = bind.ToNative()
		}

		m["bindings"] = bindings
	}

	if len(b.Values) > 0 {
		values := make([]any, len(b.Values))
		for i, v := range b.Values {
			values[i] = v.ToNative()
		}

		m["values"] = values
	}

	if len(b.Pairs) > 0 {
		pairs := make([]any, len(b.Pairs))
		for i, pair := range b.Pairs {
			pairs[i] = map[string]any{
				"key":   pair.Key.ToNative(),
				"value": pair.Value.ToNative(),
			}
		}

		m["pairs"] = pairs
	}

	return m
}

// ToNative converts a binding to native Go types.
func (b *Binding) ToNative() map[string]any {
	m := map[string]any{
		"target": b.Target.String(),
		"mask":   b.Mask.Kind.String(),
		"body":   b.Body.ToNative(),
	}

	if b.Args != nil {
		m["args"] = b.Args.String()
	}

	if b.Mask.Pattern != nil {
		m["exposing"] = b.Mask.Pattern.String()
	}

	return m
}

// ToNative converts an expression to native Go types. Literals convert to
// their native value; every other expression converts to a single-key map
// naming its kind.
func (e *Expr) ToNative() any {
	switch e.Kind {
	case ExprLiteral:
		return e.Literal.Native()

	case ExprRef:
		return map[string]any{"ref": e.Ref.String()}

	case ExprGate:
		return map[string]any{"gate": e.Gate.ToNative()}

	case ExprApply:
		return map[string]any{"apply": map[string]any{
			"func": e.Apply.Func.ToNative(),
			"arg":  e.Apply.Arg.ToNative(),
		}}

	case ExprProject:
		return map[string]any{"project": map[string]any{
			"from": e.Project.From.ToNative(),
			"name": e.Project.Name.String(),
		}}

	case ExprMatch:
		arms := make([]any, len(e.Match.Arms))
		for i, arm := range e.Match.Arms {
			arms[i] = map[string]any{
				"pattern": arm.Pattern.String(),
				"body":    arm.Body.ToNative(),
			}
		}

		return map[string]any{"match": map[string]any{
			"on":   e.Match.On.ToNative(),
			"arms": arms,
		}}

	default:
		return nil
	}
}
