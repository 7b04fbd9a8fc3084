package logger

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmtlog/fmtlog/pkg/format"
	"github.com/fmtlog/fmtlog/pkg/level"
	"github.com/fmtlog/fmtlog/pkg/pattern"
	"github.com/fmtlog/fmtlog/pkg/sink"
	"github.com/fmtlog/fmtlog/pkg/sink/fake"
)

var fixedTime = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func newTestLogger(t *testing.T, cfg Config, opts ...Option) (*Logger, *fake.Sink) {
	t.Helper()
	fs := fake.NewSink()
	if cfg.Name == "" {
		cfg.Name = "test"
	}
	if cfg.Pattern == "" {
		cfg.Pattern = "{%message}"
	}
	cfg.Sinks = append(cfg.Sinks, fs)
	opts = append(opts, WithClock(fixedClock))
	l, err := New(cfg, opts...)
	require.NoError(t, err)
	return l, fs
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = New(Config{Name: "x", Pattern: "{%bogus}"})
	require.Error(t, err)
	assert.True(t, format.IsKind(err, format.KindUnresolvedPlaceholder))
}

func TestLog_MessageFormatting(t *testing.T) {
	l, fs := newTestLogger(t, Config{})

	require.NoError(t, l.Info("{} + {} = {}", format.Int(1), format.Int(2), format.Int(3)))
	assert.Equal(t, "1 + 2 = 3", fs.Last())

	require.NoError(t, l.Info("Float value: {:.4f}", format.Float(3.14159265359)))
	assert.Equal(t, "Float value: 3.1416", fs.Last())

	// A bare {} through a %message-only pattern is an exact round-trip.
	require.NoError(t, l.Info("{}", format.String("verbatim payload")))
	assert.Equal(t, "verbatim payload", fs.Last())
}

func TestLog_FullPattern(t *testing.T) {
	l, fs := newTestLogger(t, Config{
		Name:           "console",
		Pattern:        "[{%time:%H:%M:%S}] [{%level}] [{%name}] {%message}",
		PatternOptions: []pattern.Option{pattern.WithLocation(time.UTC)},
	})

	require.NoError(t, l.Warn("careful"))
	assert.Equal(t, "[14:07:09] [WARN ] [console] careful", fs.Last())
}

func TestLog_FilteringShortCircuit(t *testing.T) {
	var engineCalls atomic.Int32
	l, fs := newTestLogger(t, Config{Threshold: level.Info},
		WithFormatObserver(func(level.Level) { engineCalls.Add(1) }))

	require.NoError(t, l.Debug("expensive {}", format.Int(1)))
	assert.Zero(t, engineCalls.Load(), "suppressed call must not reach the engine")
	assert.Empty(t, fs.Lines())

	require.NoError(t, l.Info("cheap"))
	assert.Equal(t, int32(1), engineCalls.Load())
	assert.Equal(t, []string{"cheap"}, fs.Lines())
}

func TestLog_FormatErrorSurfaced(t *testing.T) {
	l, fs := newTestLogger(t, Config{})

	err := l.Info("{missing}")
	require.Error(t, err)
	assert.True(t, format.IsKind(err, format.KindUnresolvedPlaceholder))
	assert.Empty(t, fs.Lines(), "failed render must not reach sinks")
}

func TestLog_FailingSinkDoesNotBlockHealthyOne(t *testing.T) {
	broken := fake.NewSink()
	broken.FailWrites(errors.New("device gone"))
	healthy := fake.NewSink()

	l, err := New(Config{
		Name:    "dual",
		Pattern: "{%message}",
		Sinks:   []sink.Sink{broken, healthy},
	}, WithClock(fixedClock))
	require.NoError(t, err)

	logErr := l.Info("still delivered")
	assert.Equal(t, []string{"still delivered"}, healthy.Lines())

	failed := FailedSinks(logErr)
	require.Len(t, failed, 1)
	assert.Equal(t, 0, failed[0].Index)
	assert.Equal(t, "dual", failed[0].Logger)
	assert.ErrorContains(t, failed[0].Err, "device gone")
}

func TestLog_AllSinksHealthyReturnsNil(t *testing.T) {
	l, _ := newTestLogger(t, Config{})
	err := l.Info("fine")
	assert.NoError(t, err)
	assert.Nil(t, FailedSinks(err))
}

func TestSetLevel_TakesEffectForSubsequentCalls(t *testing.T) {
	l, fs := newTestLogger(t, Config{Threshold: level.Info})

	require.NoError(t, l.Debug("hidden"))
	l.SetLevel(level.Debug)
	require.NoError(t, l.Debug("visible"))
	require.NoError(t, l.Trace("still hidden"))

	assert.Equal(t, []string{"visible"}, fs.Lines())
	assert.Equal(t, level.Debug, l.Level())
}

func TestSetPattern_InvalidLeavesStateUntouched(t *testing.T) {
	l, fs := newTestLogger(t, Config{})
	before := l.Pattern()

	err := l.SetPattern("{%nope}")
	require.Error(t, err)
	assert.Equal(t, before, l.Pattern())

	require.NoError(t, l.Info("unchanged"))
	assert.Equal(t, "unchanged", fs.Last())
}

func TestSetPattern_Valid(t *testing.T) {
	l, fs := newTestLogger(t, Config{Name: "app"})

	require.NoError(t, l.SetPattern("{%name}: {%message}"))
	require.NoError(t, l.Info("with custom pattern!"))
	assert.Equal(t, "app: with custom pattern!", fs.Last())
}

func TestLogAt_SourceRenderedOnlyWhenPatternAsks(t *testing.T) {
	withSource, fs1 := newTestLogger(t, Config{Pattern: "{%message} ({%source})"})
	without, fs2 := newTestLogger(t, Config{})

	src := Source{File: "/tmp/app/main.go", Line: 42, Function: "main.main"}
	require.NoError(t, withSource.LogAt(level.Info, src, "started"))
	require.NoError(t, without.LogAt(level.Info, src, "started"))

	assert.Equal(t, "started (main.go:42)", fs1.Last())
	assert.Equal(t, "started", fs2.Last())
}

func TestCaller_CapturesThisFile(t *testing.T) {
	src := Caller(0)
	assert.Equal(t, "logger_test.go", filepathBase(src.File))
	assert.Greater(t, src.Line, 0)
	assert.Contains(t, src.Function, "TestCaller_CapturesThisFile")
}

func filepathBase(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' || p[i] == '\\' {
			return p[i+1:]
		}
	}
	return p
}

func TestFlush(t *testing.T) {
	l, fs := newTestLogger(t, Config{})
	require.NoError(t, l.Flush())
	assert.Equal(t, 1, fs.FlushCount())

	fs.FailFlushes(errors.New("flush refused"))
	err := l.Flush()
	require.Error(t, err)
	require.Len(t, FailedSinks(err), 1)
}

func TestLog_ColorHintPropagates(t *testing.T) {
	l, fs := newTestLogger(t, Config{
		Pattern:        "{%level} {%message}",
		PatternOptions: []pattern.Option{pattern.WithLevelColors()},
	})

	require.NoError(t, l.Info("tinted"))
	hints := fs.ColorHints()
	require.Len(t, hints, 1)
	assert.True(t, hints[0])
}

func TestLog_ConcurrentWithReconfiguration(t *testing.T) {
	l, fs := newTestLogger(t, Config{Threshold: level.Trace})

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					_ = l.Info("tick {}", format.Int(1))
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		l.SetLevel(level.Debug)
		_ = l.SetPattern("{%message}")
		l.SetLevel(level.Trace)
	}
	close(stop)
	wg.Wait()

	for _, line := range fs.Lines() {
		assert.Equal(t, "tick 1", line)
	}
}

func TestReconfigure_PreservesIdentity(t *testing.T) {
	l, _ := newTestLogger(t, Config{Name: "stable", Threshold: level.Info})

	newSink := fake.NewSink()
	require.NoError(t, l.Reconfigure(Config{
		Threshold: level.Error,
		Pattern:   "{%message}!",
		Sinks:     []sink.Sink{newSink},
	}))

	assert.Equal(t, "stable", l.Name())
	assert.Equal(t, level.Error, l.Level())

	require.NoError(t, l.Error("rewired"))
	assert.Equal(t, []string{"rewired!"}, newSink.Lines())

	err := l.Reconfigure(Config{Pattern: "{%broken}"})
	require.Error(t, err)
	assert.Equal(t, level.Error, l.Level(), "failed reconfigure must not mutate")
}
