package viewer

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMuxHealthAndMetrics(t *testing.T) {
	hub, _, metrics := newTestHub(t)
	srv := httptest.NewServer(NewMux(hub, metrics))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("/healthz = %d %q, want 200 ok", resp.StatusCode, body)
	}

	metrics.FrameDropped()
	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "viewer_frames_dropped_total 1") {
		t.Fatalf("/metrics missing dropped-frame counter:\n%s", body)
	}
}

func TestServeWSRejectsPlainHTTP(t *testing.T) {
	hub, _, metrics := newTestHub(t)
	srv := httptest.NewServer(NewMux(hub, metrics))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ws")
	if err != nil {
		t.Fatalf("GET /ws: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		t.Fatalf("/ws accepted a non-upgrade request")
	}
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("ClientCount = %d after failed upgrade, want 0", got)
	}
}
