package app

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/eventhub/internal/domain"
	"github.com/tejashwikalptaru/eventhub/internal/testutil"
)

func testConfig() Config {
	config := DefaultConfig()
	config.LogLevel = slog.LevelWarn
	config.LogFormat = "text"
	return config
}

// mailer is a queueable target that reports each call on a channel.
type mailer struct {
	sent chan []any
}

func (m *mailer) ShouldQueue() bool { return true }

func (m *mailer) Call(method string, args ...any) error {
	if method != "send" {
		return domain.ErrMethodNotFound
	}
	m.sent <- args
	return nil
}

func TestNewApplication(t *testing.T) {
	app, err := NewApplication(testConfig())
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.NotNil(t, app.GetDispatcher())
	assert.NotNil(t, app.GetContainer())
	assert.NotNil(t, app.GetTypes())
	assert.NotNil(t, app.GetWorker())

	assert.NoError(t, app.Shutdown())
}

func TestNewApplicationRejectsInvalidConfig(t *testing.T) {
	config := testConfig()
	config.QueueWorkers = 0

	_, err := NewApplication(config)
	assert.Error(t, err)
}

func TestApplicationLifecycle(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	app, err := NewApplication(testConfig())
	require.NoError(t, err)

	require.NoError(t, app.Start(context.Background()))
	// Starting twice is a no-op
	require.NoError(t, app.Start(context.Background()))

	assert.NoError(t, app.Shutdown())
	// Shutdown again should not block or fail
	assert.NoError(t, app.Shutdown())

	assert.Error(t, app.Start(context.Background()))
}

func TestQueuedListenerRunsOnWorkerPool(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	app, err := NewApplication(testConfig())
	require.NoError(t, err)
	require.NoError(t, app.Start(context.Background()))

	m := &mailer{sent: make(chan []any, 1)}
	app.GetContainer().Instance("Mailer", m)

	d := app.GetDispatcher()
	d.Listen("user.*", domain.TargetRef("Mailer@send"))

	require.NoError(t, d.Fire("user.registered", "taylor", 42))

	select {
	case args := <-m.sent:
		assert.Equal(t, []any{"taylor", int64(42)}, args)
	case <-time.After(5 * time.Second):
		t.Fatal("queued listener never ran")
	}

	require.NoError(t, app.Shutdown())
	assert.Equal(t, uint64(1), app.GetWorker().Stats().Processed)
}

func TestQueuedListenerRunsInline(t *testing.T) {
	config := testConfig()
	config.InlineQueue = true

	app, err := NewApplication(config)
	require.NoError(t, err)
	defer app.Shutdown()

	m := &mailer{sent: make(chan []any, 1)}
	app.GetContainer().Instance("Mailer", m)

	d := app.GetDispatcher()
	d.Listen("user.registered", domain.TargetRef("Mailer@send"))

	require.NoError(t, d.Fire("user.registered", "taylor"))
	assert.Equal(t, []any{"taylor"}, <-m.sent)
}

type orderShipped struct {
	ID string
}

func TestTypedEventsThroughTable(t *testing.T) {
	app, err := NewApplication(testConfig())
	require.NoError(t, err)
	defer app.Shutdown()

	require.NoError(t, app.GetTypes().Register(orderShipped{}, domain.TypeInfo{
		Name:      "OrderShipped",
		Tags:      []domain.EventName{"ShouldNotify"},
		Ancestors: []domain.EventName{"OrderEvent"},
	}))

	var mu sync.Mutex
	var seen []string
	record := func(label string) domain.Descriptor {
		return domain.Func(func(args ...any) error {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, label+":"+args[0].(orderShipped).ID)
			return nil
		})
	}

	d := app.GetDispatcher()
	d.Listen("OrderEvent", record("ancestor"))
	d.Listen("ShouldNotify", record("tag"))
	d.Listen("OrderShipped", record("own"))

	require.NoError(t, d.Fire(orderShipped{ID: "A-1"}))
	assert.Equal(t, []string{"own:A-1", "tag:A-1", "ancestor:A-1"}, seen)
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("EVENTHUB_LOG_LEVEL", "")
	t.Setenv("EVENTHUB_LOG_FORMAT", "")

	config := DefaultConfig()

	assert.Equal(t, slog.LevelInfo, config.LogLevel)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, 4, config.QueueWorkers)
	assert.Equal(t, 256, config.QueueBuffer)
	assert.False(t, config.InlineQueue)
	assert.NoError(t, config.Validate())
}

func TestLoadConfigFlags(t *testing.T) {
	config, err := LoadConfig([]string{
		"-log-level", "debug",
		"-log-format", "json",
		"-queue-workers", "8",
		"-queue-buffer", "1024",
		"-inline-queue",
	})
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, config.LogLevel)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, 8, config.QueueWorkers)
	assert.Equal(t, 1024, config.QueueBuffer)
	assert.True(t, config.InlineQueue)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("EVENTHUB_QUEUE_WORKERS", "2")
	t.Setenv("EVENTHUB_LOG_LEVEL", "warn")

	config, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, 2, config.QueueWorkers)
	assert.Equal(t, slog.LevelWarn, config.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig([]string{"-log-level", "loud"})
	assert.Error(t, err)

	_, err = LoadConfig([]string{"-queue-buffer", "0"})
	assert.Error(t, err)

	_, err = LoadConfig([]string{"-log-format", "xml"})
	assert.Error(t, err)
}

func TestVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.Contains(t, info.FullString(), "EventHub")

	info.GitTag = "v1.2.3"
	assert.Contains(t, info.FullString(), "v1.2.3")
}
