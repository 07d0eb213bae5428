package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spinewalk/internal/eventbus"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := NewConfigService(filepath.Join(t.TempDir(), "nope", "config.toml"))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	cs := NewConfigService(filepath.Join(t.TempDir(), "config.toml"))
	_, err := cs.LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cs := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.UI.TOCWidth = 40
	cfg.UI.ShowMetadata = true
	cfg.Reader.StartAt = "chapter-3"
	require.NoError(t, cs.Save(cfg))

	loaded, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, path, cs.Path())
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[reader]
start_at = "first"
`), 0644))

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)
	assert.Equal(t, StartAtFirst, cfg.Reader.StartAt)
	assert.True(t, cfg.Reader.PagerVimKeys)
	assert.True(t, cfg.UI.ShowTOC)
	assert.Equal(t, 28, cfg.UI.TOCWidth)
}

func TestInvalidFiles(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("version = ["), 0644))
	_, err := NewConfigService(broken).Load()
	assert.Error(t, err)

	negative := filepath.Join(dir, "negative.toml")
	require.NoError(t, os.WriteFile(negative, []byte("[ui]\ntoc_width = -3\n"), 0644))
	_, err = NewConfigService(negative).Load()
	assert.ErrorContains(t, err, "toc_width")
}

func TestBusEvents(t *testing.T) {
	bus := eventbus.New(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "config.toml")

	events := make(chan eventbus.DomainEvent, 2)
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) { events <- e })
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { events <- e })

	cs := NewConfigServiceWithBus(path, bus)
	require.NoError(t, cs.Save(DefaultConfig()))
	_, err := cs.Load()
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		select {
		case <-events:
		case <-time.After(time.Second):
			t.Fatal("missing config event")
		}
	}
	bus.Close()
}

func TestExists(t *testing.T) {
	cs := NewConfigService(filepath.Join(t.TempDir(), "config.toml"))
	assert.False(t, Exists(cs))
	require.NoError(t, cs.Save(DefaultConfig()))
	assert.True(t, Exists(cs))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path := DefaultPath()
	assert.Equal(t, "config.toml", filepath.Base(path))
	assert.Equal(t, "spinewalk", filepath.Base(filepath.Dir(path)))
}
