package lua

import (
	"math"

	backend "github.com/Shopify/go-lua"
)

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var functions = map[string]backend.Function{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"exp":   unary(math.Exp),
	"sqrt":  unary(math.Sqrt),
	"cbrt":  unary(math.Cbrt),
	"log10": unary(math.Log10),
	"abs":   unary(math.Abs),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"log":   logarithm,
	"min":   fold(math.Min),
	"max":   fold(math.Max),
}

func registerBuiltins(l *backend.State) {
	for name, fn := range functions {
		l.Register(name, fn)
	}
	for name, c := range constants {
		l.PushNumber(c)
		l.SetGlobal(name)
	}
}

func unary(fn func(float64) float64) backend.Function {
	return func(l *backend.State) int {
		l.PushNumber(fn(backend.CheckNumber(l, 1)))
		return 1
	}
}

// logarithm is the natural log, or log base b when called as log(x, b).
func logarithm(l *backend.State) int {
	x := backend.CheckNumber(l, 1)
	if l.Top() >= 2 {
		b := backend.CheckNumber(l, 2)
		l.PushNumber(math.Log(x) / math.Log(b))
		return 1
	}
	l.PushNumber(math.Log(x))
	return 1
}

func fold(fn func(a, b float64) float64) backend.Function {
	return func(l *backend.State) int {
		acc := backend.CheckNumber(l, 1)
		for i := 2; i <= l.Top(); i++ {
			acc = fn(acc, backend.CheckNumber(l, i))
		}
		l.PushNumber(acc)
		return 1
	}
}
