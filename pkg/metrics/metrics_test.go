package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager, err := NewManager()

			Convey("Then it gets a private registry", func() {
				So(err, ShouldBeNil)
				So(manager.Registry(), ShouldNotBeNil)
			})
		})

		Convey("When two managers share a registry", func() {
			registry := prometheus.NewRegistry()
			_, err := NewManager(WithPrometheusRegistry(registry))
			So(err, ShouldBeNil)
			_, err = NewManager(WithPrometheusRegistry(registry))

			Convey("Then the second fails to register", func() {
				So(errors.Is(err, ErrRegister), ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			manager, err := NewManager(
				WithNamespace("test_ns"),
				WithSubsystem("test_sub"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRuntimeCollectors(true),
			)

			Convey("Then metric names carry the namespace", func() {
				So(err, ShouldBeNil)
				manager.RecordCacheHit()
				families, err := manager.Registry().Gather()
				So(err, ShouldBeNil)
				var found bool
				for _, f := range families {
					if f.GetName() == "test_ns_test_sub_cache_hits_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager", t, func() {
		m, err := NewManager()
		So(err, ShouldBeNil)

		Convey("When recording derivations", func() {
			m.RecordDerivation("paladin", "S", 2.5)
			m.RecordDerivation("paladin", "S", 1.5)
			m.RecordDerivation("wizard", "A", 1)
			m.RecordDerivationError("missing_placement")

			Convey("Then counters move by label", func() {
				So(testutil.ToFloat64(m.derivations.WithLabelValues("paladin", "S")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.derivations.WithLabelValues("wizard", "A")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.derivationErrors.WithLabelValues("missing_placement")), ShouldEqual, 1)
			})
		})

		Convey("When recording queue activity", func() {
			m.UpdateQueueCapacity(10)
			m.UpdateQueueSize(3)
			m.RecordQueueEnqueue()
			m.RecordQueueEnqueueError()
			m.RecordBatch(4, 1)

			Convey("Then gauges and counters reflect it", func() {
				So(testutil.ToFloat64(m.queueCapacity), ShouldEqual, 10)
				So(testutil.ToFloat64(m.queueSize), ShouldEqual, 3)
				So(testutil.ToFloat64(m.queueEnqueue), ShouldEqual, 1)
				So(testutil.ToFloat64(m.queueErrors), ShouldEqual, 1)
				So(testutil.ToFloat64(m.batchRejections), ShouldEqual, 1)
			})
		})

		Convey("When counting requests and errors", func() {
			m.RecordRequest()
			m.RecordRequest()
			m.RecordErrorResponse()

			Convey("Then the plain totals add up", func() {
				req, errs := m.Totals()
				So(req, ShouldEqual, 2)
				So(errs, ShouldEqual, 1)
			})
		})

		Convey("When scraping the handler", func() {
			m.RecordHTTPRequest("/api/health", "GET", "200", 1.2)
			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

			Convey("Then the exposition contains the request counter", func() {
				So(rec.Code, ShouldEqual, 200)
				So(strings.Contains(rec.Body.String(), "astrohero_api_http_requests_total"), ShouldBeTrue)
			})
		})
	})
}

func TestDisabledAndNilManager(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		m, err := NewManager(WithMetricsEnabled(false))
		So(err, ShouldBeNil)

		Convey("Then Prometheus metrics stay untouched but totals still count", func() {
			m.RecordCacheMiss()
			m.RecordRequest()
			So(testutil.ToFloat64(m.cacheMisses), ShouldEqual, 0)
			req, _ := m.Totals()
			So(req, ShouldEqual, 1)
		})
	})

	Convey("Given a nil manager", t, func() {
		var m *Manager

		Convey("Then every method is a no-op", func() {
			So(func() {
				m.RecordRequest()
				m.RecordErrorResponse()
				m.RecordDerivation("bard", "C", 1)
				m.RecordChartError()
				m.UpdateWorkerCount(3)
				m.RecordWorkerLatency(1)
				m.RecordError("/", "X")
			}, ShouldNotPanic)
			req, errs := m.Totals()
			So(req+errs, ShouldEqual, 0)
			So(m.Registry(), ShouldBeNil)
		})
	})
}
