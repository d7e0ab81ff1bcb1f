package container_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/governa-io/governa/framework/container"
)

// ── test services ─────────────────────────────────────────────────────────────

type stubLogger struct {
	name string
}

type stubRepository struct {
	logger *stubLogger
}

type stubService struct {
	repo *stubRepository
}

func registerThreeTier(t *testing.T, c *container.Container) *stubLogger {
	t.Helper()

	logger := &stubLogger{name: "root"}
	require.NoError(t, c.Instance("logger", logger))

	require.NoError(t, c.Singleton("repository", func(r *container.Resolver) (any, error) {
		l, err := container.Use[*stubLogger](r, "logger")
		if err != nil {
			return nil, err
		}
		return &stubRepository{logger: l}, nil
	}))

	require.NoError(t, c.BindConcrete("service", func(r *container.Resolver) (any, error) {
		repo, err := container.Use[*stubRepository](r, "repository")
		if err != nil {
			return nil, err
		}
		return &stubService{repo: repo}, nil
	}))

	return logger
}

// ── lifetimes ─────────────────────────────────────────────────────────────────

func TestContainer_Singleton_SameInstanceOnSequentialResolves(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Singleton("svc", func(r *container.Resolver) (any, error) {
		return &stubLogger{}, nil
	}))

	first, err := container.Resolve[*stubLogger](c, "svc")
	require.NoError(t, err)
	second, err := container.Resolve[*stubLogger](c, "svc")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestContainer_Transient_DistinctInstancePerResolve(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Bind("svc", func(r *container.Resolver) (any, error) {
		return &stubLogger{}, nil
	}))

	first, err := container.Resolve[*stubLogger](c, "svc")
	require.NoError(t, err)
	second, err := container.Resolve[*stubLogger](c, "svc")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
}

func TestContainer_Instance_ReturnedAsRegistered(t *testing.T) {
	c := container.New()
	logger := &stubLogger{name: "pre-built"}
	require.NoError(t, c.Instance("logger", logger))

	got, err := container.Resolve[*stubLogger](c, "logger")
	require.NoError(t, err)
	assert.Same(t, logger, got)
}

func TestContainer_ThreeTier_TransientWrapsSharedSingletons(t *testing.T) {
	c := container.New()
	logger := registerThreeTier(t, c)

	first, err := container.Resolve[*stubService](c, "service")
	require.NoError(t, err)
	second, err := container.Resolve[*stubService](c, "service")
	require.NoError(t, err)

	assert.NotSame(t, first, second, "transient services must be distinct")
	assert.Same(t, first.repo, second.repo, "both must wrap the same repository")
	assert.Same(t, logger, first.repo.logger, "repository must wrap the registered logger")
}

// ── resolution failures ───────────────────────────────────────────────────────

func TestContainer_Make_UnregisteredFails(t *testing.T) {
	c := container.New()

	v, err := c.Make("missing")
	require.Error(t, err)
	assert.Nil(t, v, "a failed resolution must not return a default instance")

	var notRegistered *container.NotRegisteredError
	require.ErrorAs(t, err, &notRegistered)
	assert.Equal(t, "missing", notRegistered.Abstract)
}

func TestContainer_Make_DependencyFailurePropagatesUnmodified(t *testing.T) {
	c := container.New()
	boom := errors.New("checklist table unavailable")
	require.NoError(t, c.Singleton("svc", func(r *container.Resolver) (any, error) {
		return nil, boom
	}))

	_, err := c.Make("svc")
	require.ErrorIs(t, err, boom)
}

func TestContainer_Resolve_TypeMismatchFails(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Instance("logger", &stubLogger{}))

	_, err := container.Resolve[*stubRepository](c, "logger")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolved to")
}

// ── cycle detection ───────────────────────────────────────────────────────────

func TestContainer_CircularDependency_ReportsOrderedChain(t *testing.T) {
	c := container.New()

	dep := func(key string) container.Builder {
		return func(r *container.Resolver) (any, error) {
			return r.Make(key)
		}
	}
	require.NoError(t, c.Bind("a", dep("b")))
	require.NoError(t, c.Bind("b", dep("c")))
	require.NoError(t, c.Bind("c", dep("a")))

	_, err := c.Make("a")
	require.Error(t, err)

	var circular *container.CircularDependencyError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, []string{"a", "b", "c", "a"}, circular.Chain)
	assert.Equal(t, "container: circular dependency: a -> b -> c -> a", err.Error())
}

func TestContainer_SelfDependency_Detected(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Bind("a", func(r *container.Resolver) (any, error) {
		return r.Make("a")
	}))

	_, err := c.Make("a")
	var circular *container.CircularDependencyError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, []string{"a", "a"}, circular.Chain)
}

func TestContainer_DiamondDependency_IsNotACycle(t *testing.T) {
	// service → (left, right) → shared: legal, and shared must be built
	// through both paths without being flagged.
	c := container.New()
	require.NoError(t, c.Bind("shared", func(r *container.Resolver) (any, error) {
		return &stubLogger{}, nil
	}))
	side := func(r *container.Resolver) (any, error) {
		return r.Make("shared")
	}
	require.NoError(t, c.Bind("left", side))
	require.NoError(t, c.Bind("right", side))
	require.NoError(t, c.Bind("top", func(r *container.Resolver) (any, error) {
		if _, err := r.Make("left"); err != nil {
			return nil, err
		}
		return r.Make("right")
	}))

	_, err := c.Make("top")
	require.NoError(t, err)
}

func TestContainer_FailedChain_ReleasesResolutionSet(t *testing.T) {
	// x → y → z where z fails; afterwards x and y must resolve normally
	// once z is fixed — no stale cycle-tracking state may survive.
	c := container.New()
	require.NoError(t, c.Bind("x", func(r *container.Resolver) (any, error) {
		return r.Make("y")
	}))
	require.NoError(t, c.Bind("y", func(r *container.Resolver) (any, error) {
		return r.Make("z")
	}))
	require.NoError(t, c.Bind("z", func(r *container.Resolver) (any, error) {
		return nil, errors.New("z is broken")
	}))

	_, err := c.Make("x")
	require.Error(t, err)

	require.NoError(t, c.Bind("z", func(r *container.Resolver) (any, error) {
		return &stubLogger{}, nil
	}))
	_, err = c.Make("x")
	require.NoError(t, err)

	_, err = c.Make("y")
	require.NoError(t, err)
}

// ── singleton cache ───────────────────────────────────────────────────────────

func TestContainer_ClearSingletons_ForcesReconstruction(t *testing.T) {
	c := container.New()
	var built atomic.Int32
	require.NoError(t, c.Singleton("svc", func(r *container.Resolver) (any, error) {
		built.Add(1)
		return &stubLogger{}, nil
	}))

	before, err := container.Resolve[*stubLogger](c, "svc")
	require.NoError(t, err)
	require.True(t, c.Resolved("svc"))

	c.ClearSingletons()
	require.False(t, c.Resolved("svc"))

	after, err := container.Resolve[*stubLogger](c, "svc")
	require.NoError(t, err)

	assert.NotSame(t, before, after)
	assert.Equal(t, int32(2), built.Load())
}

func TestContainer_Reregistration_KeepsCachedSingleton(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Singleton("svc", func(r *container.Resolver) (any, error) {
		return &stubLogger{name: "old"}, nil
	}))

	cached, err := container.Resolve[*stubLogger](c, "svc")
	require.NoError(t, err)

	// Last registration wins for the descriptor, but the already-resolved
	// instance stays cached until an explicit clear.
	require.NoError(t, c.Singleton("svc", func(r *container.Resolver) (any, error) {
		return &stubLogger{name: "new"}, nil
	}))

	got, err := container.Resolve[*stubLogger](c, "svc")
	require.NoError(t, err)
	assert.Same(t, cached, got)

	c.ClearSingletons()
	fresh, err := container.Resolve[*stubLogger](c, "svc")
	require.NoError(t, err)
	assert.Equal(t, "new", fresh.name)
}

func TestContainer_FailedSingletonBuild_IsNotCached(t *testing.T) {
	c := container.New()
	var calls atomic.Int32
	require.NoError(t, c.Singleton("svc", func(r *container.Resolver) (any, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("first attempt fails")
		}
		return &stubLogger{}, nil
	}))

	_, err := c.Make("svc")
	require.Error(t, err)

	got, err := container.Resolve[*stubLogger](c, "svc")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

// ── concurrency ───────────────────────────────────────────────────────────────

func TestContainer_ConcurrentFirstResolve_ConstructsOnce(t *testing.T) {
	c := container.New()
	var built atomic.Int32
	require.NoError(t, c.Singleton("svc", func(r *container.Resolver) (any, error) {
		built.Add(1)
		return &stubLogger{}, nil
	}))

	const callers = 32
	results := make([]*stubLogger, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := container.Resolve[*stubLogger](c, "svc")
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), built.Load(), "constructor must run exactly once")
	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestContainer_ConcurrentTransientResolves_AreIndependent(t *testing.T) {
	c := container.New()
	registerThreeTier(t, c)

	const callers = 16
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := container.Resolve[*stubService](c, "service")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

// ── misc ──────────────────────────────────────────────────────────────────────

func TestContainer_Alias_ResolvesConcreteRegistration(t *testing.T) {
	c := container.New()
	logger := &stubLogger{}
	require.NoError(t, c.Instance("logger", logger))
	require.NoError(t, c.Alias("logger", "log.Writer"))

	got, err := container.Resolve[*stubLogger](c, "log.Writer")
	require.NoError(t, err)
	assert.Same(t, logger, got)

	assert.True(t, c.Bound("log.Writer"))
}

func TestContainer_Flush_RemovesEverything(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Instance("logger", &stubLogger{}))

	c.Flush()

	assert.False(t, c.Bound("logger"))
	_, err := c.Make("logger")
	var notRegistered *container.NotRegisteredError
	require.ErrorAs(t, err, &notRegistered)
}

func TestContainer_ResolvesItself(t *testing.T) {
	c := container.New()
	got, err := container.Resolve[*container.Container](c, "container")
	require.NoError(t, err)
	assert.Same(t, c, got)
}

func TestContainer_MustResolve_PanicsOnMiss(t *testing.T) {
	c := container.New()
	assert.Panics(t, func() {
		container.MustResolve[*stubLogger](c, "missing")
	})
}
