package mount

import (
	"encoding/json"
	"fmt"
)

// argsContextKey is where the argument binder stores coerced parameters
const argsContextKey = "gild.args"

// Args returns the coerced parameters bound for the request, keyed by
// parameter name. Returns an empty map when no binder ran.
func Args(c Ctx) map[string]interface{} {
	if v := c.Get(argsContextKey); v != nil {
		if args, ok := v.(map[string]interface{}); ok {
			return args
		}
	}
	return map[string]interface{}{}
}

// Arg returns one coerced parameter with its concrete type. Fails when the
// parameter was not bound or holds a different type.
func Arg[T any](c Ctx, name string) (T, error) {
	var zero T
	v, ok := Args(c)[name]
	if !ok {
		return zero, fmt.Errorf("no argument %q bound for this request", name)
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("argument %q is %T, not %T", name, v, zero)
	}
	return typed, nil
}

// ArgOr returns one coerced parameter, or the fallback when it is absent
// or holds a different type
func ArgOr[T any](c Ctx, name string, fallback T) T {
	v, err := Arg[T](c, name)
	if err != nil {
		return fallback
	}
	return v
}

// DecodeJSON unmarshals the request body into v. Returns a 400 HttpError
// on malformed input so handlers can return it directly.
func DecodeJSON(c Ctx, v interface{}) error {
	raw, err := c.Body()
	if err != nil {
		return ErrBadRequest("cannot read request body")
	}
	if len(raw) == 0 {
		return ErrBadRequest("request body is empty")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return NewHttpErrorWithDetails(400, "malformed JSON body", err.Error())
	}
	return nil
}
