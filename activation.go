package sinenet

import (
	"math"
	"sort"
)

// Func is a scalar function used either as the network's activation
// or as the target being approximated.
type Func func(float64) float64

// tanh activation function
func tanh(x float64) float64 {
	return math.Tanh(x)
}

// sine target function
func sin(x float64) float64 {
	return math.Sin(x)
}

var funcs = map[string]Func{
	"tanh": tanh,
	"sin":  sin,
}

// Lookup returns the function registered under the given name.
func Lookup(name string) (f Func, ok bool) {
	f, ok = funcs[name]
	return
}

// FuncNames returns the registered function names in sorted order.
func FuncNames() (names []string) {
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
