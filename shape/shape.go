package shape

import (
	"os"
	"strconv"
	"strings"

	. "github.com/stevegt/goadapt"
	"github.com/stevegt/sinenet"
	"github.com/xiam/sexpr/ast"
	"github.com/xiam/sexpr/parser"
)

// Shape is the s-expression form of a training run's configuration:
//
//	(name (k 20) (n 20) (maxIter 20000) (eta 0.01) (eps 0.001) (C 2)
//	      (activation tanh) (target sin) (window original) (seed 42))
//
// Every setting is optional and defaults to sinenet.DefaultConfig().
type Shape struct {
	Name   string
	Config sinenet.Config
}

// keys lists the recognized settings in the order String emits them.
var keys = []string{"k", "n", "maxIter", "eta", "eps", "C", "activation", "target", "window", "seed", "verbose", "logEvery"}

func (s *Shape) String() (out string) {
	cfg := s.Config
	parts := []string{s.Name}
	for _, key := range keys {
		var val string
		switch key {
		case "k":
			val = strconv.Itoa(cfg.K)
		case "n":
			val = strconv.Itoa(cfg.N)
		case "maxIter":
			val = strconv.Itoa(cfg.MaxIter)
		case "eta":
			val = formatFloat(cfg.Eta)
		case "eps":
			val = formatFloat(cfg.Eps)
		case "C":
			val = formatFloat(cfg.C)
		case "activation":
			val = cfg.Activation
		case "target":
			val = cfg.Target
		case "window":
			val = cfg.Window
		case "seed":
			val = strconv.FormatInt(cfg.Seed, 10)
		case "verbose":
			if !cfg.Verbose {
				continue
			}
			val = "true"
		case "logEvery":
			if !cfg.Verbose {
				continue
			}
			val = strconv.Itoa(cfg.LogEvery)
		}
		parts = append(parts, Spf("(%s %s)", key, val))
	}
	out = Spf("(%s)", strings.Join(parts, " "))
	return
}

// formatFloat always includes a decimal point so the value reads
// back as a float.
func formatFloat(f float64) string {
	txt := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(txt, ".") {
		txt += ".0"
	}
	return txt
}

// SyntaxError is a syntax error.
type SyntaxError struct {
	msg  string
	node *ast.Node
}

func (e *SyntaxError) Error() string {
	return Spf("[shape:%s] %s:\n%s", e.node.Token().Pos, e.msg, e.node.String())
}

// synck raises a syntax err if cond is false.
func synck(node *ast.Node, cond bool, args ...interface{}) {
	if !cond {
		msg := FormatArgs(args...)
		panic(&SyntaxError{msg, node})
	}
}

// ParseFile reads and parses a shape file.
func ParseFile(path string) (s *Shape, err error) {
	defer Return(&err)
	buf, err := os.ReadFile(path)
	Ck(err)
	s, err = Parse(string(buf))
	Ck(err)
	return
}

// Parse parses a shape and validates the resulting configuration.
func Parse(txt string) (s *Shape, err error) {
	defer Return(&err)
	root, err := parser.Parse([]byte(txt))
	Ck(err)

	// root is a list
	synck(root, root.Type() == ast.NodeTypeList, "root is not a list")
	// root has one child
	children := root.List()
	synck(root, len(children) == 1, "root has %d children", len(children))
	// root's child is an expression
	expr := children[0]
	synck(expr, expr.Type() == ast.NodeTypeExpression, "root's child is not an expression")
	s, err = parseShape(expr)
	Ck(err)
	err = s.Config.Validate()
	Ck(err)
	return
}

func parseShape(n *ast.Node) (s *Shape, err error) {
	defer Return(&err)
	s = &Shape{Config: sinenet.DefaultConfig()}
	children := n.List()
	synck(n, len(children) > 0, "missing name")
	synck(children[0], children[0].Type() == ast.NodeTypeSymbol, "name is not a symbol")
	s.Name = children[0].Encode()
	seen := make(map[string]bool)
	for _, child := range children[1:] {
		synck(child, child.Type() == ast.NodeTypeExpression, "setting is not an expression")
		setting := child.List()
		synck(child, len(setting) == 2, "setting needs a key and one value")
		synck(setting[0], setting[0].Type() == ast.NodeTypeSymbol, "key is not a symbol")
		key := setting[0].Encode()
		synck(setting[0], !seen[key], "duplicate key %s", key)
		seen[key] = true
		parseSetting(&s.Config, key, setting[1])
	}
	return
}

func parseSetting(cfg *sinenet.Config, key string, val *ast.Node) {
	switch key {
	case "k":
		cfg.K = parseInt(val)
	case "n":
		cfg.N = parseInt(val)
	case "maxIter":
		cfg.MaxIter = parseInt(val)
	case "logEvery":
		cfg.LogEvery = parseInt(val)
	case "seed":
		synck(val, val.Type() == ast.NodeTypeInt, "%s is not an integer", val.Encode())
		seed, err := strconv.ParseInt(val.Encode(), 10, 64)
		synck(val, err == nil, "%v", err)
		cfg.Seed = seed
	case "eta":
		cfg.Eta = parseFloat(val)
	case "eps":
		cfg.Eps = parseFloat(val)
	case "C":
		cfg.C = parseFloat(val)
	case "activation":
		cfg.Activation = parseName(val)
	case "target":
		cfg.Target = parseName(val)
	case "window":
		cfg.Window = parseName(val)
	case "verbose":
		b, err := strconv.ParseBool(parseName(val))
		synck(val, err == nil, "%v", err)
		cfg.Verbose = b
	default:
		synck(val, false, "unknown key %s", key)
	}
}

func parseInt(n *ast.Node) int {
	synck(n, n.Type() == ast.NodeTypeInt, "%s is not an integer", n.Encode())
	i, err := strconv.Atoi(n.Encode())
	synck(n, err == nil, "%v", err)
	return i
}

func parseFloat(n *ast.Node) float64 {
	synck(n, n.Type() == ast.NodeTypeInt || n.Type() == ast.NodeTypeFloat, "%s is not a number", n.Encode())
	f, err := strconv.ParseFloat(n.Encode(), 64)
	synck(n, err == nil, "%v", err)
	return f
}

func parseName(n *ast.Node) (name string) {
	switch n.Type() {
	case ast.NodeTypeSymbol:
		name = n.Encode()
	case ast.NodeTypeString:
		var err error
		name, err = strconv.Unquote(n.Encode())
		synck(n, err == nil, "%v", err)
	default:
		synck(n, false, "%s is not a name", n.Encode())
	}
	return
}
