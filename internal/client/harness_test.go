package client

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"blogapi/internal/api"
	"blogapi/internal/engine"
	"blogapi/internal/model"
)

type systemUnderTest struct {
	BaseURL  string
	external bool
	shutdown func()
}

func (s *systemUnderTest) Close() {
	if s.shutdown != nil {
		s.shutdown()
	}
}

// requireFresh skips tests that depend on an exact starting data set.
func (s *systemUnderTest) requireFresh(t *testing.T) {
	t.Helper()
	if s.external {
		t.Skip("test needs a freshly seeded in-process server")
	}
}

// startSystemUnderTest runs the full router in-process, seeded with seed.
// BLOG_SERVER_URL points the tests at an already running server instead.
func startSystemUnderTest(t *testing.T, seed ...model.Post) *systemUnderTest {
	t.Helper()

	if url := os.Getenv("BLOG_SERVER_URL"); url != "" {
		t.Logf("BLOG_SERVER_URL set; using existing server at %s", url)
		return &systemUnderTest{BaseURL: url, external: true}
	}

	srv := api.NewServer(engine.NewMemoryStore(seed...), api.ServerOptions{})
	ts := httptest.NewServer(srv.Handler())
	return &systemUnderTest{
		BaseURL:  ts.URL,
		shutdown: ts.Close,
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
