package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should use the default namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "pxp")
				So(manager.subsystem, ShouldEqual, "stats")
			})
		})

		Convey("When recording on a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))
			manager.storeQueryErrors.WithLabelValues("teams").Inc()

			Convey("Then metrics should carry the namespace and operation label", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, mf := range families {
					if mf.GetName() != "pxp_stats_store_query_errors_total" {
						continue
					}
					found = true
					labels := map[string]string{}
					for _, lp := range mf.GetMetric()[0].GetLabel() {
						labels[lp.GetName()] = lp.GetValue()
					}
					So(labels["operation"], ShouldEqual, "teams")
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording store queries", func() {
			before := testutil.ToFloat64(globalManager.storeRowsReturned.WithLabelValues("list_events"))
			RecordStoreQuery("list_events", 3.5, 25)
			RecordStoreQuery("list_events", 1.0, 5)

			Convey("Then returned rows accumulate per operation", func() {
				after := testutil.ToFloat64(globalManager.storeRowsReturned.WithLabelValues("list_events"))
				So(after-before, ShouldEqual, 30)
			})
		})

		Convey("When recording store errors", func() {
			before := testutil.ToFloat64(globalManager.storeQueryErrors.WithLabelValues("player_summary"))
			RecordStoreError("player_summary")

			Convey("Then the error counter increments", func() {
				after := testutil.ToFloat64(globalManager.storeQueryErrors.WithLabelValues("player_summary"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When sessions are acquired and released", func() {
			before := testutil.ToFloat64(globalManager.storeSessionsOpen)
			IncStoreSessions()
			IncStoreSessions()
			DecStoreSessions()

			Convey("Then the gauge tracks the open count", func() {
				So(testutil.ToFloat64(globalManager.storeSessionsOpen)-before, ShouldEqual, 1)
				DecStoreSessions()
			})
		})

		Convey("When recording ingestion batches", func() {
			rowsBefore := testutil.ToFloat64(globalManager.ingestRowsLoaded)
			batchesBefore := testutil.ToFloat64(globalManager.ingestBatchesTotal)
			RecordIngestBatch(1000)
			RecordIngestBatch(250)

			Convey("Then rows and batches are counted", func() {
				So(testutil.ToFloat64(globalManager.ingestRowsLoaded)-rowsBefore, ShouldEqual, 1250)
				So(testutil.ToFloat64(globalManager.ingestBatchesTotal)-batchesBefore, ShouldEqual, 2)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					RecordHTTPRequest("events", "GET", "200")
					RecordHTTPRequestDuration("events", "GET", "200", 12.0)
					RecordErrorByEndpoint("players", "GET", "not_found")
					RecordErrorByType("not_found", "medium")
					RecordErrorLatency("http", "server_error", 40.0)
					RecordIngestError()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.4)
				}, ShouldNotPanic)
			})
		})

		Convey("When gathering the custom registry", func() {
			families, err := GetRegistry().Gather()

			Convey("Then service metrics are exposed", func() {
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
