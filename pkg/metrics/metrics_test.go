package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry and custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithPrometheusRegistry(registry),
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
			)

			Convey("Then metric names use the configured namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.renders.WithLabelValues("bar-chart", "svg").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(strings.Join(names, ","), ShouldContainSubstring, "test_unit_renders_total")
			})
		})

		Convey("When options carry empty values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry), WithNamespace(""), WithHistogramBuckets(nil), WithPrometheusRegistry(nil))

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "vizpages")
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
				So(manager.registry, ShouldEqual, registry)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording dataset, render and tooltip metrics", func() {
			before := testutil.ToFloat64(globalManager.datasetLoads.WithLabelValues("heat-map", "file", "ok"))
			RecordDatasetLoad("heat-map", "file", "ok")
			RecordDatasetLoadDuration("heat-map", "file", 3)
			UpdateDatasetBytes("heat-map", 1024)
			UpdateMarks("heat-map", 3153)
			RecordRender("heat-map", "html")
			RecordRenderDuration("heat-map", "html", 12)
			RecordTooltipTransition("heat-map", "shown")
			RecordHTTPRequest("pages", "GET", "200")
			RecordHTTPRequestDuration("pages", "GET", "200", 4)
			RecordErrorByComponent("loader", "fetch")
			RecordErrorByEndpoint("pages", "GET", "not_found")

			Convey("Then the counters and gauges reflect the calls", func() {
				So(testutil.ToFloat64(globalManager.datasetLoads.WithLabelValues("heat-map", "file", "ok")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.marksPerPage.WithLabelValues("heat-map")), ShouldEqual, float64(3153))
				So(testutil.ToFloat64(globalManager.datasetBytes.WithLabelValues("heat-map")), ShouldEqual, float64(1024))
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}

func TestSystemGauges(t *testing.T) {
	Convey("Given the global manager", t, func() {
		UpdateReadyPages(3)
		UpdateSystemMemoryUsage(2048)
		UpdateSystemGoroutineCount(12)
		RecordSystemGCPauseTime(0.5)

		So(testutil.ToFloat64(globalManager.readyPages), ShouldEqual, float64(3))
		So(testutil.ToFloat64(globalManager.memoryUsage), ShouldEqual, float64(2048))
		So(testutil.ToFloat64(globalManager.goroutines), ShouldEqual, float64(12))
		So(testutil.ToFloat64(globalManager.gcPauseTime), ShouldEqual, 0.5)
	})
}
