package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	// Must not panic while the collectors are still nil.
	AddLines(LineParsed, 1)
	IncRejected("Quantity.gt")
	AddFiltered(FilterRegion, 2)
	AddAccepted(3)
	ObserveRun(ResultSuccess, time.Second)
	IncExport("csv", ResultSuccess)
}

func TestCountersAccumulate(t *testing.T) {
	Init()

	before := testutil.ToFloat64(recordsAccepted)
	AddAccepted(5)
	AddAccepted(0)  // ignored
	AddAccepted(-1) // ignored
	assert.Equal(t, before+5, testutil.ToFloat64(recordsAccepted))

	ruleBefore := testutil.ToFloat64(recordsRejected.WithLabelValues("Quantity.gt"))
	IncRejected("Quantity.gt")
	IncRejected("")
	assert.Equal(t, ruleBefore+1, testutil.ToFloat64(recordsRejected.WithLabelValues("Quantity.gt")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(recordsRejected.WithLabelValues("unknown")), 1.0)

	filterBefore := testutil.ToFloat64(recordsFiltered.WithLabelValues(FilterAmount))
	AddFiltered(FilterAmount, 4)
	assert.Equal(t, filterBefore+4, testutil.ToFloat64(recordsFiltered.WithLabelValues(FilterAmount)))
}

func TestInitIsIdempotent(t *testing.T) {
	Init()
	assert.NotPanics(t, Init)
}
