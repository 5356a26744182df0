package operation

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// ArgsFromQuery converts query string values into typed arguments for d.
// Keys that d does not declare are kept as strings so Build can reject them.
func ArgsFromQuery(d Descriptor, q url.Values) (map[string]any, error) {
	args := make(map[string]any, len(q))
	for key, vals := range q {
		if len(vals) == 0 {
			continue
		}
		i := slices.IndexFunc(d.Params, func(p Param) bool { return p.Name == key })
		if i < 0 {
			args[key] = vals[0]
			continue
		}
		p := d.Params[i]
		switch p.Kind {
		case KindString:
			args[key] = vals[0]
		case KindInteger:
			n, err := strconv.ParseInt(strings.TrimSpace(vals[0]), 10, 64)
			if err != nil {
				return nil, invalid("%s must be an integer", key)
			}
			args[key] = n
		case KindBoolean:
			b, err := strconv.ParseBool(vals[0])
			if err != nil {
				return nil, invalid("%s must be a boolean", key)
			}
			args[key] = b
		case KindStringArray:
			args[key] = append([]string(nil), vals...)
		default:
			return nil, invalid("%s cannot be passed as a query parameter", key)
		}
	}
	return args, nil
}
