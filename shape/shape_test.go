package shape

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	. "github.com/stevegt/goadapt"
	"github.com/stevegt/sinenet"
)

func TestParse(t *testing.T) {
	txt := "(fit (k 30) (n 12) (maxIter 500) (eta 0.05) (eps 0.0001) (C 4) (activation tanh) (target sin) (window full) (seed 42))"
	s, err := Parse(txt)
	Tassert(t, err == nil, err)
	Tassert(t, s.Name == "fit", "name %s", s.Name)
	cfg := s.Config
	Tassert(t, cfg.K == 30, cfg.K)
	Tassert(t, cfg.N == 12, cfg.N)
	Tassert(t, cfg.MaxIter == 500, cfg.MaxIter)
	Tassert(t, cfg.Eta == 0.05, cfg.Eta)
	Tassert(t, cfg.Eps == 0.0001, cfg.Eps)
	Tassert(t, cfg.C == 4, cfg.C)
	Tassert(t, cfg.Activation == "tanh", cfg.Activation)
	Tassert(t, cfg.Target == "sin", cfg.Target)
	Tassert(t, cfg.Window == sinenet.WindowFull, cfg.Window)
	Tassert(t, cfg.Seed == 42, cfg.Seed)
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse("(fit (k 5))")
	Tassert(t, err == nil, err)
	def := sinenet.DefaultConfig()
	cfg := s.Config
	Tassert(t, cfg.K == 5, cfg.K)
	Tassert(t, cfg.N == def.N && cfg.MaxIter == def.MaxIter, cfg)
	Tassert(t, cfg.Eta == def.Eta && cfg.Eps == def.Eps && cfg.C == def.C, cfg)
	Tassert(t, cfg.Window == sinenet.WindowOriginal, cfg.Window)
}

func TestParseErrors(t *testing.T) {
	for _, txt := range []string{
		"(fit (bogus 1))",
		"(fit (k))",
		"(fit (k 1 2))",
		"(fit (k 2.5))",
		"(fit (k 20) (k 20))",
		"(fit (eta fast))",
		"(fit k 20)",
		"(fit (k 20)) (again)",
	} {
		_, err := Parse(txt)
		Tassert(t, err != nil, "%s: expected error", txt)
	}

	// syntactically fine but not a valid configuration
	_, err := Parse("(fit (k 1))")
	Tassert(t, errors.Is(err, sinenet.ErrInvalidConfig), err)
	_, err = Parse("(fit (activation relu))")
	Tassert(t, errors.Is(err, sinenet.ErrInvalidConfig), err)
}

func TestString(t *testing.T) {
	txt := "(fit (k 20) (n 20) (maxIter 20000) (eta 0.01) (eps 0.001) (C 2.0) (activation tanh) (target sin) (window original) (seed 7))"
	s, err := Parse(txt)
	Tassert(t, err == nil, err)
	got := s.String()
	Tassert(t, got == txt, "\nwant %s\ngot  %s", txt, got)

	s2, err := Parse(got)
	Tassert(t, err == nil, err)
	Tassert(t, s2.Config == s.Config, "\nwant %#v\ngot  %#v", s.Config, s2.Config)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fit.shape")
	err := os.WriteFile(path, []byte("(fit (n 8) (seed 3))\n"), 0644)
	Tassert(t, err == nil, err)
	s, err := ParseFile(path)
	Tassert(t, err == nil, err)
	Tassert(t, s.Config.N == 8 && s.Config.Seed == 3, s.Config)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.shape"))
	Tassert(t, err != nil, "missing file should fail")
}
