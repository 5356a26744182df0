package operation

// Schema returns the JSON Schema of the operation's arguments.
func (d Descriptor) Schema() map[string]any {
	return objectSchema(d.Params)
}

func objectSchema(params []Param) map[string]any {
	props := make(map[string]any, len(params))
	required := []string{}
	for _, p := range params {
		props[p.Name] = p.schema()
		if p.Required {
			required = append(required, p.Name)
		}
	}
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func (p Param) schema() map[string]any {
	var s map[string]any
	switch p.Kind {
	case KindString:
		s = map[string]any{"type": "string"}
		if len(p.Enum) > 0 {
			s["enum"] = p.Enum
		}
	case KindInteger:
		s = map[string]any{"type": "integer"}
		if p.Min != nil {
			s["minimum"] = *p.Min
		}
		if p.Max != nil {
			s["maximum"] = *p.Max
		}
	case KindBoolean:
		s = map[string]any{"type": "boolean"}
	case KindStringArray:
		s = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	case KindStringMap:
		s = map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}}
	case KindObjectArray:
		s = map[string]any{"type": "array", "items": objectSchema(p.Items)}
	default:
		s = map[string]any{}
	}
	if p.MinItems > 0 {
		s["minItems"] = p.MinItems
	}
	if p.Description != "" {
		s["description"] = p.Description
	}
	return s
}
