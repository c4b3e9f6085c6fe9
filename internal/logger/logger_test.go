package logger

import (
	"github.com/maxaizer/nearby-jobs-bot/internal/config"
	"github.com/maxaizer/nearby-jobs-bot/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_PrometheusHook_ShouldCountByErrorType(t *testing.T) {
	hook := &prometheusHook{}
	before := testutil.ToFloat64(metrics.ErrorsCounter.WithLabelValues(ErrorTypeDb))
	beforeUnknown := testutil.ToFloat64(metrics.ErrorsCounter.WithLabelValues("unknown"))

	_ = hook.Fire(&log.Entry{Data: log.Fields{ErrorTypeField: ErrorTypeDb}})
	_ = hook.Fire(&log.Entry{Data: log.Fields{}})

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ErrorsCounter.WithLabelValues(ErrorTypeDb)))
	assert.Equal(t, beforeUnknown+1, testutil.ToFloat64(metrics.ErrorsCounter.WithLabelValues("unknown")))
}

func Test_ToLogrusLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, toLogrusLevel(config.LevelDebug))
	assert.Equal(t, log.WarnLevel, toLogrusLevel(config.LevelWarning))
	assert.Equal(t, log.InfoLevel, toLogrusLevel("whatever"))
}

func Test_LokiHook_Levels_ShouldRespectMinimum(t *testing.T) {
	hook := &lokiHook{minLevel: log.WarnLevel}

	assert.Equal(t, []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel, log.WarnLevel}, hook.Levels())
}
