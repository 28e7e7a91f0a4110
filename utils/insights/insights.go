package insights

import (
	"fmt"
	"net/http"
	"time"

	"getrich-notifier/models/constants"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Probes interface {
	ListenAndServe()
}

type Impl struct {
	port    int
	isAlive func() bool
}

func NewProbes(isAlive func() bool) *Impl {
	return &Impl{
		port:    viper.GetInt(constants.ProbePort),
		isAlive: isAlive,
	}
}

// ListenAndServe starts the probe listener in the background. The root
// endpoint answers a fixed "running" body for any request, which is all the
// hosting platform's liveness probe needs.
func (probes *Impl) ListenAndServe() {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "running")
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if !probes.isAlive() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "ready")
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", probes.port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Int("port", probes.port).Msg("Probe listener started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Probe listener stopped")
		}
	}()
}
