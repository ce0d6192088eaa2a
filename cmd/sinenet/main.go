// Command sinenet fits a single-hidden-layer tanh network to sin(x)
// on (0,1] and prints the target and learned outputs.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	. "github.com/stevegt/goadapt"
	"github.com/stevegt/sinenet"
	"github.com/stevegt/sinenet/shape"
	"github.com/stevegt/sinenet/store"
	"github.com/stevegt/sinenet/trace"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	outPath    string
	dotPath    string
	tracePath  string
	modelPath  string
	storeKind  string
	dbPath     string
	quiet      bool
	pause      bool
}

// parseArgs builds the run configuration: defaults, then the shape
// file if one is given, then any flags set on the command line.
func parseArgs(args []string) (sh *shape.Shape, opts options, err error) {
	defer Return(&err)
	def := sinenet.DefaultConfig()
	fs := flag.NewFlagSet("sinenet", flag.ContinueOnError)
	k := fs.Int("k", def.K, "training sample count")
	n := fs.Int("n", def.N, "center count plus one")
	maxIter := fs.Int("maxIter", def.MaxIter, "iteration budget")
	eta := fs.Float64("eta", def.Eta, "initial learning rate")
	eps := fs.Float64("eps", def.Eps, "early-stop loss threshold")
	c := fs.Float64("C", def.C, "learning-rate decay divisor")
	seed := fs.Int64("seed", def.Seed, "PRNG seed (default: wall clock)")
	activation := fs.String("activation", def.Activation, "activation function")
	target := fs.String("target", def.Target, "target function")
	window := fs.String("window", def.Window, "summation window: original or full")
	verbose := fs.Bool("v", false, "log training progress")
	logEvery := fs.Int("logEvery", def.LogEvery, "iterations between progress lines")
	fs.StringVar(&opts.configPath, "config", "", "shape file holding the configuration")
	fs.StringVar(&opts.outPath, "out", "", "also write the report to this file")
	fs.StringVar(&opts.dotPath, "dot", "", "write a graphviz diagram of the trained network")
	fs.StringVar(&opts.tracePath, "trace", "", "write a binary trace of every iteration")
	fs.StringVar(&opts.modelPath, "model", "", "write the trained network as JSON")
	fs.StringVar(&opts.storeKind, "store", "", "run store backend: sqlite, or memory (kept only until exit)")
	fs.StringVar(&opts.dbPath, "db", "sinenet.db", "sqlite database path")
	fs.BoolVar(&opts.quiet, "q", false, "do not print the report to stdout")
	fs.BoolVar(&opts.pause, "pause", false, "wait for return before exiting when run from a terminal")
	err = fs.Parse(args)
	Ck(err)
	if fs.NArg() > 0 {
		return nil, opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	sh = &shape.Shape{Name: "sinenet", Config: def}
	if opts.configPath != "" {
		sh, err = shape.ParseFile(opts.configPath)
		Ck(err)
	}
	cfg := &sh.Config
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "k":
			cfg.K = *k
		case "n":
			cfg.N = *n
		case "maxIter":
			cfg.MaxIter = *maxIter
		case "eta":
			cfg.Eta = *eta
		case "eps":
			cfg.Eps = *eps
		case "C":
			cfg.C = *c
		case "seed":
			cfg.Seed = *seed
		case "activation":
			cfg.Activation = *activation
		case "target":
			cfg.Target = *target
		case "window":
			cfg.Window = *window
		case "v":
			cfg.Verbose = *verbose
		case "logEvery":
			cfg.LogEvery = *logEvery
		}
	})
	return
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) (err error) {
	defer Return(&err)
	sh, opts, err := parseArgs(args)
	Ck(err)

	t, err := sinenet.NewTrainer(sh.Config)
	Ck(err)
	if opts.tracePath != "" {
		t.Trace = trace.New(sh.Name)
	}
	res := t.Run()

	if !opts.quiet {
		err = sinenet.Report(stdout, res.Targets, res.Outputs)
		Ck(err)
		_, err = fmt.Fprintf(stdout, "\n%s after %d iterations, loss %.6g, eta %.6g\n", res.State, res.Iteration, res.Loss, res.Eta)
		Ck(err)
	}
	if opts.outPath != "" {
		err = sinenet.ReportFile(opts.outPath, res.Targets, res.Outputs)
		Ck(err)
	}
	if opts.dotPath != "" {
		err = os.WriteFile(opts.dotPath, []byte(res.Network.Dot()), 0644)
		Ck(err)
	}
	if opts.modelPath != "" {
		err = os.WriteFile(opts.modelPath, []byte(res.Network.Save()), 0644)
		Ck(err)
	}
	if opts.tracePath != "" {
		err = os.WriteFile(opts.tracePath, t.Trace.AsBytes(), 0644)
		Ck(err)
	}
	if opts.storeKind != "" {
		err = saveRun(ctx, opts, sh, res, stdout)
		Ck(err)
	}

	if opts.pause && isTerminal(stdin) {
		_, err = fmt.Fprintln(stdout, "Press return to close.")
		Ck(err)
		_, _ = bufio.NewReader(stdin).ReadString('\n')
	}
	return
}

func saveRun(ctx context.Context, opts options, sh *shape.Shape, res *sinenet.Result, stdout io.Writer) (err error) {
	defer Return(&err)
	st, err := store.NewStore(opts.storeKind, opts.dbPath)
	Ck(err)
	defer func() {
		cerr := store.CloseIfSupported(st)
		if err == nil {
			err = cerr
		}
	}()
	err = st.Init(ctx)
	Ck(err)
	rec := store.NewRun(sh.String(), res)
	err = st.SaveRun(ctx, rec)
	Ck(err)
	if !opts.quiet {
		_, err = fmt.Fprintf(stdout, "saved run %s\n", rec.ID)
		Ck(err)
	}
	return
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
