package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/on-the-ground/categor_ive_go/internal/inspect"
	"github.com/on-the-ground/categor_ive_go/internal/logging"
	"github.com/on-the-ground/categor_ive_go/setcat"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what the persistent flags resolve to.
type app struct {
	out        io.Writer
	configPath string
	logLevel   string
	dump       bool
	limit      int

	logger   *zap.Logger
	universe *setcat.Universe
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	rootCmd := &cobra.Command{
		Use:   "setcat",
		Short: "Build finite constructions in the category of sets",
		Long: `setcat builds products, coproducts, exponentials and power objects over
carriers given as comma-separated strings and prints the resulting carrier.

Examples:
  setcat product --left 0,1 --right x,y,z
  setcat exponential --base 0,1 --codomain a,b
  setcat power --anchor a,b,c --dump`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML file with engine limits (default: SETCAT_* environment)")
	flags.StringVar(&a.logLevel, "log-level", string(logging.LogInfo), "debug, info, warn or error")
	flags.BoolVar(&a.dump, "dump", false, "dump the full report structure")
	flags.IntVar(&a.limit, "limit", inspect.DefaultLimit, "maximum number of elements to print")

	rootCmd.AddCommand(
		a.productCmd(),
		a.coproductCmd(),
		a.exponentialCmd(),
		a.powerCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var (
		cfg setcat.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = setcat.LoadConfigFile(a.configPath)
	} else {
		cfg, err = setcat.LoadConfigFromEnv()
	}
	if err != nil {
		return err
	}
	a.logger, err = logging.NewLogger(logging.LogLevel(a.logLevel))
	if err != nil {
		return err
	}
	a.universe = setcat.NewUniverse(setcat.WithConfig(cfg), setcat.WithLogger(a.logger))
	logging.Log(a.logger, logging.LogDebug, "universe ready", map[string]interface{}{
		"command":          cmd.Name(),
		"max_materialized": cfg.MaxMaterialized,
		"max_exponential":  cfg.MaxExponential,
	})
	return nil
}

func (a *app) productCmd() *cobra.Command {
	var left, right []string
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Print the product of two carriers",
		RunE: func(*cobra.Command, []string) error {
			l := setcat.MakeTaggedCarrier(a.universe, tagOf(left), left...)
			r := setcat.MakeTaggedCarrier(a.universe, tagOf(right), right...)
			p := setcat.Product(a.universe, l, r)
			return a.print(inspect.NewReport(p.Object, a.limit))
		},
	}
	cmd.Flags().StringSliceVar(&left, "left", nil, "elements of the left factor")
	cmd.Flags().StringSliceVar(&right, "right", nil, "elements of the right factor")
	return cmd
}

func (a *app) coproductCmd() *cobra.Command {
	var left, right []string
	cmd := &cobra.Command{
		Use:   "coproduct",
		Short: "Print the coproduct of two carriers",
		RunE: func(*cobra.Command, []string) error {
			l := setcat.MakeTaggedCarrier(a.universe, tagOf(left), left...)
			r := setcat.MakeTaggedCarrier(a.universe, tagOf(right), right...)
			c := setcat.Coproduct(a.universe, l, r)
			return a.print(inspect.NewReport(c.Object, a.limit))
		},
	}
	cmd.Flags().StringSliceVar(&left, "left", nil, "elements of the left summand")
	cmd.Flags().StringSliceVar(&right, "right", nil, "elements of the right summand")
	return cmd
}

func (a *app) exponentialCmd() *cobra.Command {
	var base, codomain []string
	cmd := &cobra.Command{
		Use:   "exponential",
		Short: "Print every function from base to codomain",
		RunE: func(*cobra.Command, []string) error {
			b := setcat.MakeTaggedCarrier(a.universe, tagOf(base), base...)
			c := setcat.MakeTaggedCarrier(a.universe, tagOf(codomain), codomain...)
			e := setcat.Exponential(a.universe, b, c)
			return a.print(inspect.NewReport(e.Object, a.limit))
		},
	}
	cmd.Flags().StringSliceVar(&base, "base", nil, "elements of the base")
	cmd.Flags().StringSliceVar(&codomain, "codomain", nil, "elements of the codomain")
	return cmd
}

func (a *app) powerCmd() *cobra.Command {
	var anchor []string
	cmd := &cobra.Command{
		Use:   "power",
		Short: "Print every subset of a carrier with its characteristic",
		RunE: func(*cobra.Command, []string) error {
			c := setcat.MakeTaggedCarrier(a.universe, tagOf(anchor), anchor...)
			po := setcat.PowerObject[string](a.universe, c)
			report := inspect.NewReport(po.Power, a.limit)
			for i, f := range setcat.Take(po.Power, len(report.Elements)) {
				chi, err := po.Characteristic(f)
				if err != nil {
					return err
				}
				inclusion, err := setcat.SubsetFromCharacteristic(a.universe, chi)
				if err != nil {
					return err
				}
				subset := inspect.Elements(inclusion.Domain(), 0)
				report.Elements[i] = fmt.Sprintf("{%s}  χ=%s", strings.Join(subset, ", "), report.Elements[i])
			}
			return a.print(report)
		},
	}
	cmd.Flags().StringSliceVar(&anchor, "anchor", nil, "elements of the anchor carrier")
	return cmd
}

func (a *app) print(r inspect.Report) error {
	if a.dump {
		spew.Fdump(a.out, r)
		return nil
	}
	return r.Write(a.out)
}

func tagOf(elems []string) string {
	return "{" + strings.Join(elems, ",") + "}"
}
