package registry

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmtlog/fmtlog/pkg/format"
	"github.com/fmtlog/fmtlog/pkg/level"
	"github.com/fmtlog/fmtlog/pkg/logger"
	"github.com/fmtlog/fmtlog/pkg/sink"
	"github.com/fmtlog/fmtlog/pkg/sink/fake"
)

func consoleConfig(fs *fake.Sink) logger.Config {
	return logger.Config{
		Threshold: level.Info,
		Pattern:   "{%message}",
		Sinks:     []sink.Sink{fs},
	}
}

func TestDefault_LazyAndStable(t *testing.T) {
	r := New()
	first := r.Default()
	require.NotNil(t, first)
	assert.Equal(t, DefaultName, first.Name())
	assert.Equal(t, level.Info, first.Level())

	assert.Same(t, first, r.Default(), "default logger is created once")

	viaLookup, err := r.Lookup(DefaultName)
	require.NoError(t, err)
	assert.Same(t, first, viaLookup)
}

func TestRegister_ThenLookup(t *testing.T) {
	r := New()
	fs := fake.NewSink()

	registered, err := r.Register("console", consoleConfig(fs))
	require.NoError(t, err)

	found, err := r.Lookup("console")
	require.NoError(t, err)
	assert.Same(t, registered, found)
}

func TestRegister_ReplacePreservesIdentity(t *testing.T) {
	r := New()
	fs := fake.NewSink()

	first, err := r.Register("console", consoleConfig(fs))
	require.NoError(t, err)

	// A reference obtained before re-registration...
	earlier, err := r.Lookup("console")
	require.NoError(t, err)

	cfg := consoleConfig(fs)
	cfg.Threshold = level.Error
	second, err := r.Register("console", cfg)
	require.NoError(t, err)

	// ...is the same logger, now reconfigured.
	assert.Same(t, first, second)
	assert.Equal(t, level.Error, earlier.Level())

	// And a SetLevel through the lookup is visible everywhere.
	earlier.SetLevel(level.Debug)
	assert.Equal(t, level.Debug, first.Level())
	assert.Equal(t, level.Debug, second.Level())
}

func TestRegister_StrictMode(t *testing.T) {
	r := New(WithStrict())
	fs := fake.NewSink()

	_, err := r.Register("console", consoleConfig(fs))
	require.NoError(t, err)

	_, err = r.Register("console", consoleConfig(fs))
	require.Error(t, err)
	var dup *DuplicateNameError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "console", dup.Name)
}

func TestRegister_InvalidConfigLeavesRegistryUntouched(t *testing.T) {
	r := New()
	fs := fake.NewSink()

	bad := consoleConfig(fs)
	bad.Pattern = "{%bogus}"
	_, err := r.Register("broken", bad)
	require.Error(t, err)
	assert.True(t, format.IsKind(err, format.KindUnresolvedPlaceholder))

	_, err = r.Lookup("broken")
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestRegister_InvalidReplaceKeepsExistingConfig(t *testing.T) {
	r := New()
	fs := fake.NewSink()

	first, err := r.Register("console", consoleConfig(fs))
	require.NoError(t, err)

	bad := consoleConfig(fs)
	bad.Pattern = "{%bogus}"
	_, err = r.Register("console", bad)
	require.Error(t, err)

	assert.Equal(t, level.Info, first.Level())
	require.NoError(t, first.Info("still works"))
	assert.Equal(t, []string{"still works"}, fs.Lines())
}

func TestLookup_NotFound(t *testing.T) {
	r := New()
	_, err := r.Lookup("ghost")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "ghost", nf.Name)
}

func TestGetOrCreate(t *testing.T) {
	r := New()

	created, err := r.GetOrCreate("worker")
	require.NoError(t, err)
	assert.Equal(t, "worker", created.Name())

	again, err := r.GetOrCreate("worker")
	require.NoError(t, err)
	assert.Same(t, created, again)

	_, err = r.GetOrCreate("")
	assert.ErrorIs(t, err, logger.ErrEmptyName)
}

func TestGetOrCreate_OptionsApplyOnCreationOnly(t *testing.T) {
	r := New()

	var observed atomic.Int32
	created, err := r.GetOrCreate("instrumented",
		logger.WithFormatObserver(func(level.Level) { observed.Add(1) }))
	require.NoError(t, err)

	require.NoError(t, created.Info("counted"))
	assert.Equal(t, int32(1), observed.Load())

	// A second call returns the existing logger; new options are ignored.
	again, err := r.GetOrCreate("instrumented",
		logger.WithFormatObserver(func(level.Level) { observed.Add(100) }))
	require.NoError(t, err)
	assert.Same(t, created, again)

	require.NoError(t, again.Info("counted again"))
	assert.Equal(t, int32(2), observed.Load())
}

func TestNamesAndDrop(t *testing.T) {
	r := New()
	fs := fake.NewSink()
	_, err := r.Register("beta", consoleConfig(fs))
	require.NoError(t, err)
	_, err = r.Register("alpha", consoleConfig(fs))
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta"}, r.Names())

	assert.True(t, r.Drop("alpha"))
	assert.False(t, r.Drop("alpha"))
	assert.Equal(t, []string{"beta"}, r.Names())

	r.DropAll()
	assert.Empty(t, r.Names())
}

func TestFlushAll(t *testing.T) {
	r := New()
	fs := fake.NewSink()
	_, err := r.Register("console", consoleConfig(fs))
	require.NoError(t, err)

	require.NoError(t, r.FlushAll())
	assert.Equal(t, 1, fs.FlushCount())
}

func TestConcurrentAccess(t *testing.T) {
	r := New()
	fs := fake.NewSink()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = r.Register("shared", consoleConfig(fs))
				_, _ = r.Lookup("shared")
				_ = r.Default()
				_, _ = r.GetOrCreate("other")
			}
		}()
	}
	wg.Wait()

	// Exactly one logger per name survives the races.
	l1, err := r.Lookup("shared")
	require.NoError(t, err)
	l2, err := r.Lookup("shared")
	require.NoError(t, err)
	assert.Same(t, l1, l2)
}

func TestProcessRegistry_Singleton(t *testing.T) {
	assert.Same(t, Process(), Process())
}
