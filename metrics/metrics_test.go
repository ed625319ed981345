package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveUnmount(nil)
		m.ObserveRemount(errors.New("fail"))
		m.SetTargets(3)
		m.AddPruned(1)
	})
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	m.ObserveUnmount(nil)
	m.ObserveUnmount(nil)
	m.ObserveUnmount(errors.New("EINVAL"))
	m.ObserveRemount(nil)
	m.SetTargets(4)
	m.AddPruned(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UnmountsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UnmountsTotal.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RemountsTotal.WithLabelValues("success")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Targets))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BackupsPruned))

	// Second registration on same registry collide
	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	m.SetTargets(2)

	filename := filepath.Join(t.TempDir(), "mountrevert.prom")
	require.NoError(t, WriteTextfile(filename, reg))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "mountrevert_targets 2"), string(data))

	assert.Error(t, WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), reg))
}
