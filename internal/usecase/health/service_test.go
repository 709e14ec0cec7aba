package health

import (
	"context"
	"errors"
	"testing"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type checker struct{ err error }

func (c checker) HealthCheck(context.Context) error { return c.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(pinger{}, pinger{}, checker{})
	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Fatalf("status: got %s", report.Status)
	}
	if len(report.Checks) != 3 {
		t.Errorf("expected 3 checks, got %d", len(report.Checks))
	}
}

func TestCheck_DegradedOnCacheFailure(t *testing.T) {
	svc := New(pinger{}, pinger{err: errors.New("down")}, nil)
	report := svc.Check(context.Background())

	if report.Status != Degraded {
		t.Fatalf("status: got %s", report.Status)
	}
	if report.Checks["cache"] != CheckError {
		t.Errorf("cache check: got %s", report.Checks["cache"])
	}
	if report.Checks["database"] != CheckOK {
		t.Errorf("database check: got %s", report.Checks["database"])
	}
}

func TestCheck_OptionalComponentsSkipped(t *testing.T) {
	svc := New(pinger{}, nil, nil)
	report := svc.Check(context.Background())

	if len(report.Checks) != 1 {
		t.Fatalf("expected only the database check, got %v", report.Checks)
	}
}
