package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cualbondi/osmptparser/internal/config"
	"github.com/cualbondi/osmptparser/internal/errs"
	"github.com/cualbondi/osmptparser/internal/featurebuilder"
	"github.com/cualbondi/osmptparser/internal/geojson"
	"github.com/cualbondi/osmptparser/internal/logging"
	"github.com/cualbondi/osmptparser/internal/pbfsource"
	"github.com/cualbondi/osmptparser/internal/resolver"
	"github.com/cualbondi/osmptparser/internal/tagfilter"
)

var (
	version = "dev"

	filterExpr string
	ptv2       bool
	adminAreas bool
	cpus       int
	gap        float64
	debug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errs.IsFatal(err) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

var rootCmd = &cobra.Command{
	Use:     "osmptparser <input.pbf>",
	Short:   "Extract public-transport routes and tag-filtered areas from an OSM PBF extract",
	Args:    cobra.ExactArgs(1),
	Version: version,
	RunE:    run,
}

func init() {
	rootCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "tag filter expression (mutually exclusive with -p/-a)")
	rootCmd.Flags().BoolVarP(&ptv2, "filter-ptv2", "p", false, "use the fixed PTv2 public-transport profile")
	rootCmd.Flags().BoolVarP(&adminAreas, "filter-aa", "a", false, "use the fixed administrative-areas profile")
	rootCmd.Flags().IntVarP(&cpus, "cpus", "c", 0, "worker count; 0 = host CPUs")
	rootCmd.Flags().Float64VarP(&gap, "gap", "g", 150.0, "join tolerance in meters")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv()
	logging.Init(logging.Config{Debug: debug})
	log := logging.Global()

	cfg, err := config.LoadDefaults()
	if err != nil {
		return err
	}
	cfg.InputPath = args[0]
	cfg.CPUs = firstNonZeroInt(cpus, cfg.CPUs)
	if cmd.Flags().Changed("gap") {
		cfg.Gap = gap
	}

	if err := resolveMode(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.WithField("input", cfg.AbsInputPath()).
		WithField("mode", cfg.Mode).
		WithField("cpus", cfg.CPUs).
		WithField("gap", cfg.Gap).
		Info("starting parse")

	filter, err := tagfilter.Compile(cfg.FilterExpr)
	if err != nil {
		return err
	}

	src := pbfsource.NewFileSource(cfg.InputPath, cfg.CPUs)
	res := resolver.New(src, cfg.CPUs, filter)

	ctx := context.Background()
	store, err := res.Resolve(ctx)
	if err != nil {
		return errs.WrapConfig(err, "resolving PBF")
	}

	log.WithField("relations", len(store.Relations)).
		WithField("relation_ways", len(store.RelationWays)).
		WithField("standalone_ways", len(store.StandaloneWays)).
		WithField("nodes", len(store.Nodes)).
		Info("passes complete")

	builder := featurebuilder.New(store, cfg.CPUs)

	writer := geojson.NewArrayWriter(os.Stdout)
	if err := writer.Open(); err != nil {
		return err
	}

	switch cfg.Mode {
	case config.ModePTv2:
		for _, pt := range builder.PublicTransports(cfg.Gap) {
			raw, err := geojson.EncodePublicTransport(pt)
			if err != nil {
				return err
			}
			if err := writer.WriteElement(raw); err != nil {
				return err
			}
		}
	case config.ModeAreas:
		areas, err := builder.Areas(cfg.Gap)
		if err != nil {
			return err
		}
		for _, area := range areas {
			feature, ok := geojson.EncodeArea(area)
			if !ok {
				continue
			}
			raw, err := feature.MarshalJSON()
			if err != nil {
				return err
			}
			if err := writer.WriteElement(raw); err != nil {
				return err
			}
		}
	}

	return writer.Close()
}

// resolveMode implements spec.md §4.7's CLI mode-selection decision,
// restored from original_source/src/bin.rs: -p selects the PTv2 profile,
// -a selects the administrative-areas convenience profile, and otherwise
// -f's expression drives areas mode. Exactly one of the three may be set.
func resolveMode(cfg *config.Config) error {
	selected := 0
	if filterExpr != "" {
		selected++
	}
	if ptv2 {
		selected++
	}
	if adminAreas {
		selected++
	}
	if selected > 1 {
		return errs.ConfigError("-f, -p, and -a are mutually exclusive")
	}

	switch {
	case ptv2:
		cfg.Mode = config.ModePTv2
		cfg.FilterExpr = config.PTv2FilterExpr
	case adminAreas:
		cfg.Mode = config.ModeAreas
		cfg.FilterExpr = config.AdminAreaFilterExpr
	default:
		cfg.Mode = config.ModeAreas
		cfg.FilterExpr = filterExpr
	}
	return nil
}

func firstNonZeroInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
