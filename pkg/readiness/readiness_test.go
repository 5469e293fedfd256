package readiness

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gridboard/gridboard/pkg/log"
	"github.com/gridboard/gridboard/pkg/types"
)

func TestMain(m *testing.M) {
	log.Init(log.Config{Level: log.ErrorLevel, JSONOutput: true, Output: io.Discard})
	os.Exit(m.Run())
}

func TestStatusFromEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"site_a": "green", "site_b": "red", "site_c": "drain"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Minute, time.Second)

	assert.Equal(t, types.ReadinessGreen, client.Status("site_a"))
	assert.Equal(t, types.ReadinessRed, client.Status("site_b"))
	// Unrecognized status strings degrade to none
	assert.Equal(t, types.ReadinessNone, client.Status("site_c"))
	// Unknown sites degrade to none
	assert.Equal(t, types.ReadinessNone, client.Status("site_x"))
}

func TestStatusCaching(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"site_a": "green"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Minute, time.Second)

	client.Status("site_a")
	client.Status("site_a")
	client.Status("site_b")

	assert.Equal(t, 1, calls)
}

func TestStatusEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Minute, time.Second)

	assert.Equal(t, types.ReadinessNone, client.Status("site_a"))
}

func TestStatusNoEndpoint(t *testing.T) {
	client := NewClient("", time.Minute, time.Second)
	assert.Equal(t, types.ReadinessNone, client.Status("site_a"))
}

func TestStatic(t *testing.T) {
	src := Static{"site_a": types.ReadinessYellow}

	assert.Equal(t, types.ReadinessYellow, src.Status("site_a"))
	assert.Equal(t, types.ReadinessNone, src.Status("site_b"))
}
