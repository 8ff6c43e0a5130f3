package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/covercheck-dev/covercheck/internal/catalog"
	"github.com/covercheck-dev/covercheck/internal/config"
	"github.com/covercheck-dev/covercheck/internal/coverage"
	"github.com/covercheck-dev/covercheck/internal/feed"
	"github.com/covercheck-dev/covercheck/internal/mock"
	"github.com/covercheck-dev/covercheck/internal/model"
	"github.com/covercheck-dev/covercheck/internal/routing"
)

// inputOptions holds the flags shared by the analysis commands.
type inputOptions struct {
	configPath   string
	catalogPath  string
	holdingsPath string
	capKRW       int64 // --cap, 0 = use config
	legacyCap    bool  // select protection.legacy_cap instead of protection.cap
	seed         int64 // mock seed, used when no --holdings file is given
	count        int   // mock count, used when no --holdings file is given
}

func addInputFlags(cmd *cobra.Command, opts *inputOptions) {
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default covercheck.yaml when present)")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "insured-product catalog CSV (default built-in catalog)")
	cmd.Flags().StringVar(&opts.holdingsPath, "holdings", "", "holdings CSV (default generated mock data)")
	cmd.Flags().Int64Var(&opts.capKRW, "cap", 0, "protection cap per license in KRW (overrides config)")
	cmd.Flags().BoolVar(&opts.legacyCap, "legacy-cap", false, "use the pre-raise protection cap from config")
	cmd.Flags().Int64Var(&opts.seed, "seed", 42, "mock holdings seed")
	cmd.Flags().IntVar(&opts.count, "count", 40, "mock holdings count")
}

// inputs is everything an analysis command operates on, loaded once per run.
type inputs struct {
	cfg            *config.Config
	index          *catalog.Index
	entries        []model.CatalogEntry
	holdings       []model.Holding
	offers         []model.RateOffer
	cap            decimal.Decimal
	catalogSource  string
	holdingsSource string
}

// loadInputs resolves catalog and holdings for one command run. A missing
// --catalog falls back to the built-in catalog, a missing --holdings to
// deterministic mock data, so every command works out of the box.
func loadInputs(log zerolog.Logger, cfg *config.Config, opts inputOptions) (*inputs, error) {
	in := &inputs{cfg: cfg, offers: routing.DefaultOffers()}

	in.entries = catalog.DefaultEntries()
	in.catalogSource = "builtin"
	if opts.catalogPath != "" {
		entries, skipped, err := feed.LoadCatalogFile(opts.catalogPath)
		if err != nil {
			return nil, err
		}
		if skipped > 0 {
			log.Warn().Int("skipped", skipped).Str("file", opts.catalogPath).Msg("catalog rows skipped")
		}
		in.entries = entries
		in.catalogSource = opts.catalogPath
	}
	in.index = catalog.NewIndex(in.entries)

	in.holdings = mock.Generate(mock.Options{Seed: opts.seed, Count: opts.count})
	in.holdingsSource = fmt.Sprintf("mock seed=%d", opts.seed)
	if opts.holdingsPath != "" {
		holdings, skipped, err := feed.LoadHoldingsFile(opts.holdingsPath)
		if err != nil {
			return nil, err
		}
		if skipped > 0 {
			log.Warn().Int("skipped", skipped).Str("file", opts.holdingsPath).Msg("holding rows skipped")
		}
		in.holdings = holdings
		in.holdingsSource = opts.holdingsPath
	}

	// Cap precedence: --cap beats --legacy-cap beats the config default.
	in.cap = decimal.NewFromInt(cfg.Protection.Cap)
	if opts.legacyCap {
		in.cap = decimal.NewFromInt(cfg.Protection.LegacyCap)
	}
	if opts.capKRW > 0 {
		in.cap = decimal.NewFromInt(opts.capKRW)
	}

	return in, nil
}

func (in *inputs) demoRate() decimal.Decimal {
	return decimal.NewFromInt(in.cfg.FX.USDKRW)
}

func (in *inputs) coverageParams() coverage.Params {
	return coverage.Params{Cap: in.cap, DemoRate: in.demoRate()}
}

func (in *inputs) routingParams() routing.Params {
	return routing.Params{
		Cap:              in.cap,
		LiquidityReserve: decimal.NewFromInt(in.cfg.Routing.LiquidityReserve),
		OfferCeiling:     decimal.NewFromInt(in.cfg.Routing.OfferCeiling),
		DemoRate:         in.demoRate(),
	}
}
