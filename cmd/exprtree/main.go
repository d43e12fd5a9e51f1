package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/exprtree"
)

func main() {
	var (
		given    []string
		varsname string
		fraction bool
		tree     bool
		asJSON   bool
		strict   bool
		verbose  bool
	)
	flag.Func("given", "name=value variable definition (any number of times)", func(s string) error {
		given = append(given, s)
		return nil
	})
	flag.StringVar(&varsname, "vars", "", "YAML file mapping variable names to values")
	flag.BoolVar(&fraction, "fraction", false, "print constants as fractions")
	flag.BoolVar(&tree, "tree", false, "print expressions as trees")
	flag.BoolVar(&asJSON, "json", false, "print expressions as JSON")
	flag.BoolVar(&strict, "strict", false, "fail on unbound variables and division by zero")
	flag.BoolVar(&verbose, "v", false, "log evaluation details")
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "exprtree",
		Level:  hclog.Info,
		Output: os.Stderr,
	})
	if verbose {
		logger.SetLevel(hclog.Debug)
	}

	vars, err := definitions(varsname, given)
	if err != nil {
		logger.Error("bad variable definitions", "error", err)
		os.Exit(1)
	}
	opts := []exprtree.ContextOption{
		exprtree.SetVar('x', 78),
		exprtree.SetVars(vars),
		exprtree.Logger(logger.Named("eval")),
	}
	if strict {
		opts = append(opts, exprtree.StrictNames(), exprtree.StrictDivision())
	}
	ctx := exprtree.NewContext(opts...)

	mode := exprtree.Decimal
	if fraction {
		mode = exprtree.Fraction
	}
	trees := demo()
	for _, root := range trees {
		logger.Debug("evaluating", "expr", root.String(), "nodes", root.NodeCount(), "depth", root.Depth())
		switch {
		case asJSON:
			b, err := json.Marshal(root)
			if err != nil {
				logger.Error("encoding JSON", "expr", root.String(), "error", err)
				continue
			}
			fmt.Printf("%s\n", b)
		case tree:
			fmt.Print(exprtree.Tree(root, mode))
		default:
			fmt.Println(root.Render(mode))
		}
		r, err := ctx.Eval(root)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Printf("= %f\n", r)
	}
	for _, root := range trees {
		n, err := exprtree.Release(root)
		if err != nil {
			logger.Error("releasing", "error", err)
			continue
		}
		logger.Debug("released", "nodes", n)
	}
}

// demo builds the demonstration expressions.
func demo() []*exprtree.Node {
	x := exprtree.Must(exprtree.Variable('x'))
	y1 := exprtree.Must(exprtree.Variable('y'))
	y2 := exprtree.Must(exprtree.Variable('y'))
	return []*exprtree.Node{
		exprtree.Must(exprtree.Operator('/', exprtree.Constant(5), x)),
		exprtree.Constant(.1285548112),
		exprtree.Must(exprtree.Operator('/',
			exprtree.Must(exprtree.Function("log", exprtree.Constant(8), 2)),
			exprtree.Must(exprtree.Operator('-', y1, y2)),
		)),
	}
}

// definitions collects variable values from a YAML file, if named, then from
// name=value definitions. Every bad definition is reported.
func definitions(file string, given []string) (map[byte]float64, error) {
	vars := make(map[byte]float64)
	var errs *multierror.Error
	if file != "" {
		m, err := readVars(file)
		if err != nil {
			return nil, err
		}
		for k, v := range m {
			errs = multierror.Append(errs, define(vars, k, v))
		}
	}
	for _, s := range given {
		name, val, ok := strings.Cut(s, "=")
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf(`variable definitions must be "name=value", not %q`, s))
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("value of %s: %w", strings.TrimSpace(name), err))
			continue
		}
		errs = multierror.Append(errs, define(vars, strings.TrimSpace(name), v))
	}
	return vars, errs.ErrorOrNil()
}

func define(vars map[byte]float64, name string, val float64) error {
	if len(name) != 1 {
		return fmt.Errorf("variable names are single letters, not %q", name)
	}
	var b exprtree.Bindings
	if err := b.Set(name[0], val); err != nil {
		return err
	}
	vars[name[0]] = val
	return nil
}

func readVars(name string) (map[string]float64, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var m map[string]float64
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return m, nil
}
