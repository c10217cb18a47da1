package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampWaitSeconds(t *testing.T) {
	assert.Equal(t, 1, clampWaitSeconds(0))
	assert.Equal(t, 1, clampWaitSeconds(-5))
	assert.Equal(t, 1, clampWaitSeconds(1))
	assert.Equal(t, 7, clampWaitSeconds(7))
	assert.Equal(t, 30, clampWaitSeconds(30))
	assert.Equal(t, 30, clampWaitSeconds(300))
}
