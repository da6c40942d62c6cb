package server

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneulsoft/markserve/pkg/config"
	"github.com/haneulsoft/markserve/pkg/search"
	"github.com/haneulsoft/markserve/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "marks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	engine, err := search.NewEngine(s, search.Options{})
	require.NoError(t, err)
	return NewServer(s, engine, config.DefaultConfig(), "")
}

// Reloaded configs arrive on the watcher goroutine while handlers read
// limits from the current one; both sides must stay race-free and each
// snapshot must be internally consistent.
func TestApplyConfigConcurrent(t *testing.T) {
	srv := newTestServer(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			cfg := config.DefaultConfig()
			cfg.Server.MaxLimit = 16 + i
			cfg.Search.Threshold = 0.5
			srv.applyConfig(cfg)
		}
	}()
	for i := 0; i < 200; i++ {
		cfg := srv.snapshotConfig()
		assert.GreaterOrEqual(t, cfg.Server.MaxLimit, 16)
		assert.NotZero(t, cfg.Search.Threshold)
	}
	<-done

	final := srv.snapshotConfig()
	assert.Equal(t, 215, final.Server.MaxLimit)
}
