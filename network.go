package sinenet

import (
	"encoding/json"

	"github.com/emicklei/dot"
	. "github.com/stevegt/goadapt"
)

// Network is a trained single-hidden-layer network: one hidden node
// per center, each computing activation(x - center), summed into a
// single output with the learned weights.
type Network struct {
	Name       string
	Activation string // name of the activation function
	Window     string
	Centers    Vector
	Weights    Vector // may hold NaN or Inf after a diverged run
	activation Func
	lo, hi     int
}

// init resolves the activation function and the center window.
func (n *Network) init() (err error) {
	defer Return(&err)
	Assert(len(n.Weights) == len(n.Centers), "weights %d centers %d", len(n.Weights), len(n.Centers))
	f, ok := funcs[n.Activation]
	Assert(ok, "unknown activation function: %s", n.Activation)
	if n.Window == "" {
		n.Window = WindowOriginal
	}
	Assert(n.Window == WindowOriginal || n.Window == WindowFull, "unknown window: %s", n.Window)
	n.activation = f
	n.lo, n.hi = centerRange(n.Window, len(n.Centers))
	return
}

// Save serializes the network to a JSON string.  Non-finite weights
// are kept; see Vector.
func (n *Network) Save() (out string) {
	buf, err := json.MarshalIndent(n, "", "  ")
	Assert(err == nil, "error marshaling network: %v", err)
	out = string(buf)
	return
}

// Load deserializes a network from a JSON string.
func Load(txt string) (n *Network, err error) {
	defer Return(&err)
	n = &Network{}
	err = json.Unmarshal([]byte(txt), n)
	Ck(err)
	err = n.init()
	Ck(err)
	return
}

// Clone returns a deep copy of the network, giving it a new name.
func (n *Network) Clone(newName string) (clone *Network) {
	clone, err := Load(n.Save())
	Ck(err)
	clone.Name = newName
	return
}

// Predict executes the forward function of the network for x.
func (n *Network) Predict(x float64) float64 {
	return evaluate(n.Weights, n.Centers, n.activation, x, n.lo, n.hi)
}

// PredictAll returns Predict for each of xs.
func (n *Network) PredictAll(xs []float64) (ys []float64) {
	ys = make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = n.Predict(x)
	}
	return
}

// Dot renders the network as a graphviz digraph.  Hidden nodes whose
// center lies outside the forward window are drawn dashed with no
// edge to the output.
func (n *Network) Dot() string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")
	g.Attr("label", n.Name)
	in := g.Node("x").Attr("shape", "circle")
	out := g.Node("y").Attr("shape", "doublecircle")
	for j, center := range n.Centers {
		h := g.Node(Spf("h%d", j)).Label(Spf("%s(x-%.4g)", n.Activation, center))
		g.Edge(in, h)
		if j < n.lo || j >= n.hi {
			h.Attr("style", "dashed")
			continue
		}
		g.Edge(h, out, Spf("%.4g", n.Weights[j]))
	}
	return g.String()
}
