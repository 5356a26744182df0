package eagle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Params is an ordered mapping from wire field name to value. Fields that were
// never set are absent; a field set to "" or 0 is present and sent as such.
// A nil *Params is valid and empty.
type Params struct {
	keys []string
	vals map[string]any
}

// NewParams returns an empty mapping.
func NewParams() *Params {
	return &Params{vals: make(map[string]any)}
}

// Set stores v under key. A new key is appended; an existing key keeps its position.
func (p *Params) Set(key string, v any) *Params {
	if p.vals == nil {
		p.vals = make(map[string]any)
	}
	if _, ok := p.vals[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.vals[key] = v
	return p
}

func (p *Params) Has(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p.vals[key]
	return ok
}

func (p *Params) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.vals[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// MarshalJSON encodes the mapping as a JSON object with keys in insertion order.
func (p *Params) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(p.vals[k])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Query encodes the mapping as URL query values. Slices repeat the key once per element.
func (p *Params) Query() url.Values {
	q := url.Values{}
	if p == nil {
		return q
	}
	for _, k := range p.keys {
		switch v := p.vals[k].(type) {
		case []string:
			for _, s := range v {
				q.Add(k, s)
			}
		case []any:
			for _, e := range v {
				q.Add(k, queryString(e))
			}
		default:
			q.Add(k, queryString(v))
		}
	}
	return q
}

func queryString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
