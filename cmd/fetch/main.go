package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"quantpulse/internal/config"
	"quantpulse/internal/httpx"
	"quantpulse/internal/logger"
	"quantpulse/internal/provider"
	"quantpulse/internal/provider/yahoo"
	"quantpulse/internal/quote"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	asJSON     bool
	timeout    int
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "fetch SYMBOL [SYMBOL...]",
		Short:        "Fetch and format NSE quotes from Yahoo Finance",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if opts.timeout > 0 {
				cfg.Server.RequestTimeoutSec = opts.timeout
			}
			log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			hc := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
			fetcher := yahoo.NewClient(
				yahoo.WithHTTPClient(hc),
				yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
				yahoo.WithCrumb(cfg.Yahoo.Crumb, cfg.Yahoo.Cookie),
			)
			return run(cmd.Context(), cmd.OutOrStdout(), fetcher, log, args, opts.asJSON)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print formatted quotes as JSON")
	cmd.Flags().IntVar(&opts.timeout, "timeout", 0, "request timeout seconds (overrides config)")
	return cmd
}

// run fetches every symbol and prints the ones that resolved. It fails only
// when none did.
func run(ctx context.Context, out io.Writer, fetcher provider.QuoteFetcher, log logrus.FieldLogger, symbols []string, asJSON bool) error {
	svc := quote.NewService(fetcher, log)
	quotes := make([]quote.Formatted, 0, len(symbols))
	for _, s := range symbols {
		q, err := svc.Get(ctx, strings.ToUpper(strings.TrimSpace(s)))
		if err != nil {
			var nf *quote.NotFoundError
			if errors.As(err, &nf) {
				log.Warnf("%s (%s)", nf.Message(), nf.Hint)
			}
			continue
		}
		quotes = append(quotes, q)
	}
	if len(quotes) == 0 {
		return fmt.Errorf("no quotes for %s", strings.Join(symbols, ","))
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(quotes)
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Symbol", "Company", "Price", "Change", "Change %", "Volume", "Market Cap", "State"})
	table.SetAutoWrapText(false)
	for _, q := range quotes {
		table.Append([]string{
			q.Symbol,
			q.CompanyName,
			fmt.Sprintf("%.2f %s", q.CurrentPrice, q.Currency),
			fmt.Sprintf("%+.2f", q.Change),
			fmt.Sprintf("%+.2f%%", q.ChangePercent),
			q.VolumeFormatted,
			q.MarketCapFormatted,
			q.MarketState,
		})
	}
	table.Render()
	return nil
}
