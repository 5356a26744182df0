package operation

import (
	"context"

	"eagle-mcp/internal/eagle"
)

// Invoke builds the parameters for d and performs the operation. The returned
// error is non-nil only when args fail validation, in which case nothing is
// sent to Eagle. Upstream failures are reported in the response envelope.
func Invoke(ctx context.Context, c *eagle.Client, d Descriptor, args map[string]any) (eagle.Response, error) {
	params, err := d.Build(args)
	if err != nil {
		return eagle.Response{}, err
	}
	if d.Run != nil {
		return d.Run(ctx, c, params), nil
	}
	return c.Do(ctx, eagle.Request{
		Method: d.Method,
		Path:   d.Path,
		Params: params,
		Binary: d.Binary,
	}), nil
}
