package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	applicationsSubmittedTotal atomic.Uint64
	applicationsAdmittedTotal  atomic.Uint64
	applicationsRejectedTotal  atomic.Uint64
	testsCompletedTotal        atomic.Uint64

	cvScore   = newHistogram([]float64{15, 30, 40, 50, 60, 75, 80, 90, 100})
	testScore = newHistogram([]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100})
)

// IncApplicationSubmitted increments the submissions counter and records the
// CV score the screening produced.
func IncApplicationSubmitted(score int) {
	applicationsSubmittedTotal.Add(1)
	cvScore.Observe(float64(score))
}

// IncApplicationAdmitted increments the admitted counter.
func IncApplicationAdmitted() {
	applicationsAdmittedTotal.Add(1)
}

// IncApplicationRejected increments the rejected counter.
func IncApplicationRejected() {
	applicationsRejectedTotal.Add(1)
}

// IncTestCompleted increments the graded tests counter and records the score.
func IncTestCompleted(score float64) {
	testsCompletedTotal.Add(1)
	testScore.Observe(score)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "applications_submitted_total", "Total applications submitted", applicationsSubmittedTotal.Load())
	writeCounter(&buf, "applications_admitted_total", "Total applications admitted to the test", applicationsAdmittedTotal.Load())
	writeCounter(&buf, "applications_rejected_total", "Total applications rejected at screening", applicationsRejectedTotal.Load())
	writeCounter(&buf, "tests_completed_total", "Total technical tests graded", testsCompletedTotal.Load())
	writeHistogram(&buf, "cv_score", "CV screening score distribution", cvScore.Snapshot())
	writeHistogram(&buf, "test_score", "Technical test score distribution", testScore.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
