package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
)

// formulaFunctions are available inside template quantity formulas, e.g.
// "ceil(totalArea / 2.88) * 4".
var formulaFunctions = map[string]govaluate.ExpressionFunction{
	"ceil":  unaryFormulaFunc("ceil", math.Ceil),
	"floor": unaryFormulaFunc("floor", math.Floor),
	"round": unaryFormulaFunc("round", math.Round),
	"sqrt":  unaryFormulaFunc("sqrt", math.Sqrt),
	"max": func(args ...interface{}) (interface{}, error) {
		return foldFormulaArgs("max", args, math.Max)
	},
	"min": func(args ...interface{}) (interface{}, error) {
		return foldFormulaArgs("min", args, math.Min)
	},
}

// EvaluateQuantity evaluates a template quantity formula against the
// physical drivers of a project. The result must be a finite, non-negative
// number.
func EvaluateQuantity(formula string, params map[string]interface{}) (float64, error) {
	formula = strings.TrimSpace(formula)
	if formula == "" {
		return 0, errors.New("quantity formula is empty")
	}

	expr, err := govaluate.NewEvaluableExpressionWithFunctions(formula, formulaFunctions)
	if err != nil {
		return 0, fmt.Errorf("parse formula %q: %w", formula, err)
	}

	result, err := expr.Evaluate(params)
	if err != nil {
		return 0, fmt.Errorf("evaluate formula %q: %w", formula, err)
	}

	qty, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("formula %q did not produce a number", formula)
	}
	if !isFinite(qty) || qty < 0 {
		return 0, fmt.Errorf("formula %q produced invalid quantity %v", formula, qty)
	}
	return qty, nil
}

func unaryFormulaFunc(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%s expects a number", name)
		}
		return fn(v), nil
	}
}

func foldFormulaArgs(name string, args []interface{}, fn func(a, b float64) float64) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s expects at least 1 argument", name)
	}
	var acc float64
	for i, a := range args {
		v, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("%s expects numbers", name)
		}
		if i == 0 {
			acc = v
			continue
		}
		acc = fn(acc, v)
	}
	return acc, nil
}
