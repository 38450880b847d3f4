package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/cloudx-io/openlot/config"
	"github.com/cloudx-io/openlot/derive"
	"github.com/cloudx-io/openlot/lot"
	"github.com/cloudx-io/openlot/lotapi"
	"github.com/cloudx-io/openlot/reactive"
	"github.com/cloudx-io/openlot/refresh"
)

// plainTextHandler is a simple slog handler that writes plain text to stdout
// without timestamps or log levels - appropriate for CLI output
type plainTextHandler struct{}

func (*plainTextHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (*plainTextHandler) Handle(_ context.Context, r slog.Record) error {
	_, err := fmt.Fprintln(os.Stdout, r.Message)
	return err
}

func (h *plainTextHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *plainTextHandler) WithGroup(_ string) slog.Handler {
	return h
}

var out = slog.New(&plainTextHandler{})

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var updates stringList

	// Define CLI flags
	var (
		lotInput         = flag.String("lot", "", "Lot payload JSON (file path or inline JSON)")
		configPath       = flag.String("config", "", "Path to TOML config file")
		outputFormat     = flag.String("format", "", "Output format: text, json or cbor (overrides config)")
		bidPrefix        = flag.String("bid-prefix", "", "Text before the current bid (overrides config)")
		missingBidPrefix = flag.String("missing-bid-prefix", "", "Text before the opening bid (overrides config)")
		watch            = flag.Bool("watch", false, "Keep refreshing from the last update until interrupted")
		help             = flag.Bool("help", false, "Show usage information")
	)
	flag.Var(&updates, "update", "Refresh payload JSON (file path or inline JSON); repeatable")

	flag.Parse()

	// Show help
	if *help || *lotInput == "" {
		showUsage()
		if *lotInput == "" && !*help {
			fmt.Fprintf(os.Stderr, "\nError: --lot is required\n")
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(2)
	}
	setIfNotEmpty(&cfg.Display.Format, *outputFormat)
	setIfNotEmpty(&cfg.Display.BidPrefix, *bidPrefix)
	setIfNotEmpty(&cfg.Display.MissingBidPrefix, *missingBidPrefix)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	data, err := readJSONInput(*lotInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading lot: %v\n", err)
		os.Exit(2)
	}
	payload, err := lotapi.DecodePayload(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding lot: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, payload, updates, *watch, logger); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func run(ctx context.Context, cfg *config.Config, payload lot.Payload, updates []string, watch bool, logger *slog.Logger) error {
	record := lot.FromPayload(payload)
	engine := derive.NewEngine(record,
		derive.WithBidPrefixes(cfg.Display.BidPrefix, cfg.Display.MissingBidPrefix),
		derive.WithLogger(logger),
	)
	defer engine.Close()

	format := strings.ToLower(cfg.Display.Format)
	if format == "text" {
		subs := traceChanges(engine)
		defer func() {
			for _, sub := range subs {
				sub.Unsubscribe()
			}
		}()
	}

	refresher := refresh.New(record, newSequenceFetcher(updates), cfg.Refresh.Interval.Duration, logger)

	for range updates {
		result, err := refresher.RefreshOnce(ctx)
		if err != nil {
			return err
		}
		logger.Debug("update applied", slog.Bool("changed", result.Changed))
	}

	if !watch {
		return printSnapshot(format, lotapi.NewSnapshot(record, engine.Snapshot()))
	}

	// Every derived value feeds one combined snapshot, printed on each change.
	snapshots := reactive.NewComputed(record.Graph(), func() lotapi.Snapshot {
		return lotapi.NewSnapshot(record, engine.Snapshot())
	},
		engine.EstimateString(), engine.NumberOfBids(), engine.NumberOfBidsWithReserve(),
		engine.LotNumberLabel(), engine.ForSale(), engine.CurrentBid(),
	)
	defer snapshots.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return refresher.Run(gctx)
	})
	g.Go(func() error {
		for snapshot := range reactive.Watch[lotapi.Snapshot](gctx, snapshots) {
			if err := printSnapshot(format, snapshot); err != nil {
				return err
			}
		}
		return gctx.Err()
	})
	return g.Wait()
}

// traceChanges prints every value each derived value emits.
func traceChanges(engine *derive.Engine) []*reactive.Subscription {
	named := []struct {
		name  string
		value reactive.Value[string]
	}{
		{"estimate", engine.EstimateString()},
		{"bids", engine.NumberOfBids()},
		{"bids_with_reserve", engine.NumberOfBidsWithReserve()},
		{"lot_number", engine.LotNumberLabel()},
		{"current_bid", engine.CurrentBid()},
	}

	subs := make([]*reactive.Subscription, 0, len(named)+1)
	for _, n := range named {
		subs = append(subs, n.value.Subscribe(func(v string) {
			out.Info(fmt.Sprintf("%-18s %s", n.name+":", v))
		}))
	}
	subs = append(subs, engine.ForSale().Subscribe(func(v bool) {
		out.Info(fmt.Sprintf("%-18s %v", "for_sale:", v))
	}))
	return subs
}

// sequenceFetcher returns each configured payload in turn, then keeps
// returning the last one. Files are re-read on every fetch.
type sequenceFetcher struct {
	mu     sync.Mutex
	inputs []string
	next   int
}

func newSequenceFetcher(inputs []string) *sequenceFetcher {
	return &sequenceFetcher{inputs: inputs}
}

func (f *sequenceFetcher) Fetch(_ context.Context, _ string) (lot.Payload, error) {
	f.mu.Lock()
	if len(f.inputs) == 0 {
		f.mu.Unlock()
		return nil, errors.New("no update payloads configured")
	}
	input := f.inputs[min(f.next, len(f.inputs)-1)]
	f.next++
	f.mu.Unlock()

	data, err := readJSONInput(input)
	if err != nil {
		return nil, err
	}
	return lotapi.DecodePayload(data)
}

func readJSONInput(input string) ([]byte, error) {
	// Try reading as file first
	if data, err := os.ReadFile(input); err == nil {
		return data, nil
	}
	// Treat as inline JSON
	return []byte(input), nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func printSnapshot(format string, snapshot lotapi.Snapshot) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		out.Info(string(data))
	case "cbor":
		encoded, err := lotapi.EncodeSnapshotURLSafe(snapshot)
		if err != nil {
			return err
		}
		out.Info(encoded)
	default:
		outputText(snapshot)
	}
	return nil
}

func outputText(s lotapi.Snapshot) {
	out.Info("")
	out.Info("Lot Summary")
	out.Info("===========")
	out.Info(fmt.Sprintf("  Lot:                %s %s", s.LotID, s.LotNumberLabel))
	out.Info(fmt.Sprintf("  Current Bid:        %s", s.CurrentBid))
	out.Info(fmt.Sprintf("  Bids:               %s", s.NumberOfBidsWithReserve))
	out.Info(fmt.Sprintf("  Estimate:           %s", s.EstimateString))
	out.Info(fmt.Sprintf("  For Sale:           %v", s.ForSale))
	out.Info(fmt.Sprintf("  Fingerprint:        %s", s.Fingerprint))
}

func showUsage() {
	fmt.Println("Live Lot Watcher")
	fmt.Println()
	fmt.Println("Builds a live lot from a payload, applies refresh payloads in order, and")
	fmt.Println("prints every derived value as it changes.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  lot-watcher --lot <json> [--update <json>]... [options]")
	fmt.Println()
	fmt.Println("Required Flags:")
	fmt.Println("  --lot <json>                      Initial lot payload")
	fmt.Println()
	fmt.Println("Optional Flags:")
	fmt.Println("  --update <json>                   Refresh payload, repeatable, applied in order")
	fmt.Println("  --watch                           Keep refreshing from the last update until interrupted")
	fmt.Println("  --config <path>                   TOML config file")
	fmt.Println("  --format <text|json|cbor>         Output format (default: text)")
	fmt.Println("  --bid-prefix <text>               Text before the current bid")
	fmt.Println("  --missing-bid-prefix <text>       Text before the opening bid")
	fmt.Println("  --help                            Show this help message")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  OPENLOT_LOG_LEVEL, OPENLOT_FORMAT, OPENLOT_BID_PREFIX,")
	fmt.Println("  OPENLOT_MISSING_BID_PREFIX, OPENLOT_REFRESH_INTERVAL")
}
