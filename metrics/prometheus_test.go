// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()
	require.False(t, Enabled())

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	Counter("noop_count").Add(1)
	CounterVec("noop_count_vec", []string{"a"}).AddWithLabel(1, map[string]string{"nonsense": "ok"})
	Gauge("noop_gauge").Set(3)
	GaugeVec("noop_gauge_vec", nil).SetWithLabel(1, nil)
	Histogram("noop_hist", nil).Observe(4)
	HistogramVec("noop_hist_vec", nil, nil).ObserveWithLabels(1, nil)

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	require.True(t, Enabled())

	count1 := Counter("count1")
	countVec := CounterVec("countVec1", []string{"zeroOrOne"})
	hist := Histogram("hist1", nil)
	gauge := Gauge("gauge1")
	gaugeVec := GaugeVec("gaugeVec1", []string{"zeroOrOne"})

	count1.Add(1)
	randCount2 := rand.N(100) + 1
	for range randCount2 {
		Counter("count2").Add(1)
	}

	histTotal := 0
	totalVec := 0
	for i := range rand.N(100) + 2 {
		label := map[string]string{"zeroOrOne": strconv.Itoa(i % 2)}
		hist.Observe(int64(i))
		countVec.AddWithLabel(int64(i), label)
		gaugeVec.AddWithLabel(int64(i), label)
		gauge.Add(int64(i))
		histTotal += i
		totalVec += i
	}

	m := gather(t)
	require.Equal(t, float64(1), m["restake_metrics_count1"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(randCount2), m["restake_metrics_count2"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(histTotal), m["restake_metrics_hist1"].Metric[0].GetHistogram().GetSampleSum())
	require.Equal(t, float64(totalVec), m["restake_metrics_gauge1"].Metric[0].GetGauge().GetValue())

	sumCountVec := m["restake_metrics_countVec1"].Metric[0].GetCounter().GetValue() +
		m["restake_metrics_countVec1"].Metric[1].GetCounter().GetValue()
	require.Equal(t, float64(totalVec), sumCountVec)

	sumGaugeVec := m["restake_metrics_gaugeVec1"].Metric[0].GetGauge().GetValue() +
		m["restake_metrics_gaugeVec1"].Metric[1].GetGauge().GetValue()
	require.Equal(t, float64(totalVec), sumGaugeVec)

	gaugeVec.SetWithLabel(5, map[string]string{"zeroOrOne": "0"})
	m = gather(t)
	found := false
	for _, metric := range m["restake_metrics_gaugeVec1"].Metric {
		if metric.GetLabel()[0].GetValue() == "0" {
			require.Equal(t, float64(5), metric.GetGauge().GetValue())
			found = true
		}
	}
	require.True(t, found)
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()

	for _, a := range []any{
		Gauge("noopGauge"),
		GaugeVec("noopGauge", nil),
		Counter("noopCounter"),
		CounterVec("noopCounter", nil),
		Histogram("noopHist", nil),
		HistogramVec("noopHist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazyGaugeVec", nil)
	lazyCounter := LazyLoadCounter("lazyCounter")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogram := LazyLoadHistogram("lazyHistogram", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazyHistogramVec", nil, nil)

	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramMeter{}, lazyHistogram())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}
