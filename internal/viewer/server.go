package viewer

import (
	"context"
	"net/http"
	"time"

	"github.com/fleetglass/route-animator/internal/logging"
	"github.com/fleetglass/route-animator/internal/observability"
)

// Server hosts the viewer endpoints: the WebSocket stream, liveness,
// and Prometheus metrics.
type Server struct {
	log     logging.Logger
	httpSrv *http.Server
}

// NewMux wires the viewer routes onto a fresh ServeMux.
func NewMux(hub *Hub, metrics *observability.ViewerCollector) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

// NewServer builds the HTTP server for the given address.
func NewServer(addr string, hub *Hub, metrics *observability.ViewerCollector, log logging.Logger) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{
		log: log,
		httpSrv: &http.Server{
			Addr:              addr,
			Handler:           NewMux(hub, metrics),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// ListenAndServe blocks until the server stops. A graceful Shutdown is
// reported as nil.
func (s *Server) ListenAndServe() error {
	s.log.Info(context.Background(), "viewer listening", logging.String("addr", s.httpSrv.Addr))
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
