package cron

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestRegistry_Register_Jobs(t *testing.T) {
	ran := false
	Register("testregistryjob", "@every 1h", func(args ...string) {
		ran = true
	})
	defer Unregister("testregistryjob")

	jobs := Jobs()
	j, ok := jobs["testregistryjob"]
	if !ok {
		t.Fatal("testregistryjob not in Jobs()")
	}
	if j.Schedule != "@every 1h" {
		t.Errorf("Schedule = %q, want @every 1h", j.Schedule)
	}
	j.Run()
	if !ran {
		t.Error("Run did not execute")
	}
}

func TestRegistry_Register_DuplicatePanics(t *testing.T) {
	Register("dupjob", "@hourly", func(...string) {})
	defer Unregister("dupjob")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate")
		}
	}()
	Register("dupjob", "@daily", func(...string) {})
}

type countingRefresher struct{ calls int }

func (r *countingRefresher) RefreshAll(context.Context) error {
	r.calls++
	return nil
}

func TestRegisterCatalogRefresh(t *testing.T) {
	r := &countingRefresher{}
	RegisterCatalogRefresh(r, zap.NewNop())
	defer Unregister(CatalogRefreshJob)

	j, ok := Jobs()[CatalogRefreshJob]
	if !ok {
		t.Fatal("catalogrefresh not registered")
	}
	if j.Schedule != "@every 10m" {
		t.Errorf("Schedule = %q, want @every 10m", j.Schedule)
	}
	j.Run()
	if r.calls != 1 {
		t.Errorf("calls = %d, want 1", r.calls)
	}
}

func TestRegistry_EnvOverridesSchedule(t *testing.T) {
	t.Setenv("CRON_OVERRIDDENJOB", "@every 1m")
	Register("overriddenjob", "@hourly", func(...string) {})
	defer Unregister("overriddenjob")

	if got := Jobs()["overriddenjob"].Schedule; got != "@every 1m" {
		t.Errorf("Schedule = %q, want @every 1m", got)
	}
}
