package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/ticketapp/internal/calculator"
)

func TestRecordOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordOperation("tickets.create", "ok", time.Millisecond)
	c.RecordOperation("tickets.create", "ok", time.Millisecond)
	c.RecordOperation("tickets.create", "validation", time.Millisecond)

	if got := testutil.ToFloat64(c.operations.WithLabelValues("tickets.create", "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.operations.WithLabelValues("tickets.create", "validation")); got != 1 {
		t.Errorf("validation count = %v, want 1", got)
	}
}

func TestRecordLogin(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	c.RecordLogin(true)
	c.RecordLogin(false)
	c.RecordLogin(false)

	if got := testutil.ToFloat64(c.logins.WithLabelValues("failure")); got != 2 {
		t.Errorf("failures = %v, want 2", got)
	}
}

func TestSetTicketCounts(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	c.SetTicketCounts(calculator.Summary{Total: 3, Open: 2, Closed: 1})

	if got := testutil.ToFloat64(c.tickets.WithLabelValues("open")); got != 2 {
		t.Errorf("open = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.tickets.WithLabelValues("in_progress")); got != 0 {
		t.Errorf("in_progress = %v, want 0", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordLogin(true)

	path := filepath.Join(t.TempDir(), "ticketapp.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), `ticketapp_logins_total{outcome="success"} 1`) {
		t.Errorf("metrics file missing login counter:\n%s", data)
	}

	if err := WriteTextfile("", reg); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}
