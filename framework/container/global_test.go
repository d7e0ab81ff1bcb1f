package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/governa-io/governa/framework/container"
)

func TestDefault_SameInstanceAcrossCalls(t *testing.T) {
	container.Reset()
	t.Cleanup(container.Reset)

	first := container.Default()
	second := container.Default()

	assert.Same(t, first, second)
}

func TestReset_DiscardsProcessWideContainer(t *testing.T) {
	container.Reset()
	t.Cleanup(container.Reset)

	before := container.Default()
	require.NoError(t, before.Instance("marker", &stubLogger{}))

	container.Reset()
	after := container.Default()

	assert.NotSame(t, before, after)
	assert.False(t, after.Bound("marker"))
}
