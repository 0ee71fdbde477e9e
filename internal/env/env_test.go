package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	t.Setenv("TEST_STR", "x")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DUR", "3s")

	assert.Equal(t, "x", GetEnv("TEST_STR", "d"))
	assert.Equal(t, "d", GetEnv("TEST_UNSET", "d"))
	assert.Equal(t, 42, GetInt("TEST_INT", 1))
	assert.Equal(t, 1, GetInt("TEST_BAD_INT", 1))
	assert.True(t, GetBool("TEST_BOOL", false))
	assert.False(t, GetBool("TEST_UNSET", false))
	assert.Equal(t, 3*time.Second, GetDuration("TEST_DUR", time.Second))
	assert.Equal(t, DefaultShutdownTimeout, GetDuration(EnvShutdownTimeout+"_UNSET", DefaultShutdownTimeout))

	t.Setenv(EnvExportTimeoutMinutes, "9")
	assert.Equal(t, 9, GetInt(EnvExportTimeoutMinutes, DefaultExportTimeoutMinutes))
	t.Setenv(EnvExportTimeoutMinutes, "")
	assert.Equal(t, DefaultExportTimeoutMinutes, GetInt(EnvExportTimeoutMinutes, DefaultExportTimeoutMinutes))
}
