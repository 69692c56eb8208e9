package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/adspostx/moments-go/config"
	"github.com/adspostx/moments-go/moments"
	"github.com/adspostx/moments-go/observability"
)

func main() {
	logger, err := observability.InitLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()

	var accountID string
	var baseURL string
	var payloadArg string
	var dev bool
	var fireDisplay bool
	flag.StringVar(&accountID, "account", cfg.AccountID, "account id / SDK key")
	flag.StringVar(&baseURL, "url", cfg.BaseURL, "offers endpoint base URL")
	flag.StringVar(&payloadArg, "payload", "", "extra body fields as k=v,k=v")
	flag.BoolVar(&dev, "dev", cfg.Development, "mark the fetch as a development request")
	flag.BoolVar(&fireDisplay, "fire-display", false, "fire the display pixel of each returned offer")
	flag.Parse()

	if accountID == "" {
		fmt.Fprintln(os.Stderr, "account required")
		os.Exit(1)
	}

	profile, ok := moments.ProfileByName(cfg.Profile)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown profile %q\n", cfg.Profile)
		os.Exit(1)
	}

	ctx := context.Background()
	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, logger, cfg.ServiceName, cfg.OTLPEndpoint, cfg.TracingSampleRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "init tracing: %v\n", err)
			os.Exit(1)
		}
		defer shutdown()
	}

	client := moments.NewClient(
		profile,
		baseURL,
		moments.StaticUserAgent(cfg.UserAgent),
		cfg.FetchTimeout,
		cfg.BeaconTimeout,
		logger,
		observability.NewPrometheusRegistry(),
	)

	resp, err := client.FetchOffers(ctx, moments.RequestParams{
		AccountID:     accountID,
		CampaignID:    cfg.CampaignID,
		IsDevelopment: dev,
		Payload:       parsePayload(payloadArg),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch offers: %v\n", err)
		os.Exit(1)
	}

	if resp.Error != "" {
		fmt.Fprintf(os.Stderr, "api error: %s\n", resp.Error)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintf(os.Stderr, "encode response: %v\n", err)
		os.Exit(1)
	}

	if fireDisplay && resp.HasOffers() {
		for i := range resp.Data.Offers {
			client.FireOfferBeacon(ctx, &resp.Data.Offers[i], moments.BeaconDisplay)
		}
	}
}

// parsePayload turns "k=v,k=v" into a payload map. Malformed entries are
// skipped.
func parsePayload(arg string) map[string]string {
	if arg == "" {
		return nil
	}
	payload := make(map[string]string)
	for _, pair := range strings.Split(arg, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			continue
		}
		payload[k] = v
	}
	return payload
}
