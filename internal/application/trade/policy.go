package trade

import (
	"errors"
	"strings"

	"github.com/Knetic/govaluate"
)

// EvaluatePolicy evaluates a commissioner-defined trade policy
// expression against the proposal parameters. Empty policy returns
// true. Supports "true"/"false" literals.
func EvaluatePolicy(policy string, params map[string]interface{}) (bool, error) {
	expr := strings.TrimSpace(policy)
	if expr == "" {
		return true, nil
	}
	switch strings.ToLower(expr) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	evaluable, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return false, err
	}
	result, err := evaluable.Evaluate(numericParams(params))
	if err != nil {
		return false, err
	}
	switch v := result.(type) {
	case bool:
		return v, nil
	default:
		return false, errors.New("trade policy did not evaluate to boolean")
	}
}

// numericParams widens integer parameters to float64, the only numeric
// type govaluate's comparators accept.
func numericParams(params map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		switch n := v.(type) {
		case int:
			out[k] = float64(n)
		case int64:
			out[k] = float64(n)
		default:
			out[k] = v
		}
	}
	return out
}
