// Command stub_server runs a local stand-in for the offers API so the demo
// CLI and host integrations can be exercised without touching the vendor
// endpoint. It serves a canned offer list whose beacon URLs point back at
// its own /beacon sink.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adspostx/moments-go/moments"
	"github.com/adspostx/moments-go/observability"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	logger, err := observability.InitLoggerWithService("moments-stub")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var port string
	var offerCount int
	flag.StringVar(&port, "port", "8788", "listen port")
	flag.IntVar(&offerCount, "offers", 2, "number of offers to serve")
	flag.Parse()

	if err := run(logger, port, offerCount); err != nil {
		logger.Error("stub server error", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, port string, offerCount int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base := "http://localhost:" + port

	r := mux.NewRouter()
	r.HandleFunc("/native/v2/offers.json", offersHandler(logger, base, offerCount)).Methods("POST")
	r.HandleFunc("/beacon", beaconHandler(logger)).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.Info("Stub offers server running", zap.String("addr", srv.Addr))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func offersHandler(logger *zap.Logger, base string, offerCount int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := r.URL.Query().Get("api_key")
		if account == "" {
			account = r.URL.Query().Get("accountId")
		}
		if account == "" {
			http.Error(w, `{"error":"account required"}`, http.StatusBadRequest)
			return
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, `{"error":"bad body"}`, http.StatusBadRequest)
			return
		}

		logger.Info("offers request",
			zap.String("account", account),
			zap.String("ua", r.Header.Get("User-Agent")),
			zap.Bool("dev", body["dev"] == "1"))

		offers := make([]moments.Offer, 0, offerCount)
		for i := 1; i <= offerCount; i++ {
			id := fmt.Sprintf("stub-%d", i)
			offers = append(offers, moments.Offer{
				ID:          id,
				Title:       fmt.Sprintf("Stub offer %d", i),
				Description: "A locally served offer for integration testing",
				ClickURL:    base + "/beacon?kind=click&offer=" + id,
				CTAYes:      "Yes please",
				CTANo:       "No thanks",
				Pixel:       base + "/beacon?kind=display&offer=" + id,
				AdvPixelURL: base + "/beacon?kind=adv&offer=" + id,
				Beacons: moments.OfferBeacons{
					Close:         base + "/beacon?kind=close&offer=" + id,
					NoThanksClick: base + "/beacon?kind=no_thanks&offer=" + id,
				},
			})
		}

		resp := moments.OfferResponse{
			Data: &moments.OfferData{
				Offers: offers,
				Styles: json.RawMessage(`{"popup":{"background":"#ffffff"}}`),
			},
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Warn("encode offers response", zap.Error(err))
		}
	}
}

func beaconHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Info("beacon received",
			zap.String("kind", r.URL.Query().Get("kind")),
			zap.String("offer", r.URL.Query().Get("offer")),
			zap.String("ua", r.Header.Get("User-Agent")))
		w.WriteHeader(http.StatusNoContent)
	}
}
