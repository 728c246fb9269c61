package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/kbukum/fetchkit/component"
	"github.com/kbukum/fetchkit/config"
	"github.com/kbukum/fetchkit/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	started  bool
	stopped  bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(context.Context) error {
	m.started = true
	return m.startErr
}
func (m *mockComponent) Stop(context.Context) error {
	m.stopped = true
	return m.stopErr
}
func (m *mockComponent) Health(context.Context) component.Health {
	return m.health
}

func healthy(name string) *mockComponent {
	return &mockComponent{name: name, health: component.Health{Name: name, Status: component.StatusHealthy}}
}

func newTestApp(t *testing.T) (*App[*testConfig], *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	app, err := NewApp(&testConfig{ServiceConfig: config.ServiceConfig{Name: "fetch-cli"}},
		WithLogger(logger.NewWithWriter(&buf, "debug")), WithVersion("1.2.3"))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app, &buf
}

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)
	if app.Name != "fetch-cli" || app.Version != "1.2.3" {
		t.Errorf("unexpected app identity: %s %s", app.Name, app.Version)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected defaults applied, got environment %q", app.Cfg.Environment)
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	_, err := NewApp(&testConfig{})
	if err == nil {
		t.Fatal("expected validation error for missing name")
	}
}

func TestRunTask(t *testing.T) {
	app, _ := newTestApp(t)
	comp := healthy("api")
	if err := app.RegisterComponent(comp); err != nil {
		t.Fatal(err)
	}

	var order []string
	app.OnStart(func(context.Context) error { order = append(order, "start"); return nil })
	app.OnStop(func(context.Context) error { order = append(order, "stop"); return nil })

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		if !comp.started {
			t.Error("component must be started before the task runs")
		}
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}
	if !comp.stopped {
		t.Error("component must be stopped after the task")
	}
	if len(order) != 3 || order[0] != "start" || order[1] != "task" || order[2] != "stop" {
		t.Errorf("unexpected hook order: %v", order)
	}
}

func TestRunTask_TaskErrorWins(t *testing.T) {
	app, _ := newTestApp(t)
	comp := healthy("api")
	comp.stopErr = errors.New("stop failed")
	_ = app.RegisterComponent(comp)

	taskErr := errors.New("task failed")
	err := app.RunTask(context.Background(), func(context.Context) error { return taskErr })
	if !errors.Is(err, taskErr) {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRunTask_StopErrorReported(t *testing.T) {
	app, _ := newTestApp(t)
	comp := healthy("api")
	comp.stopErr = errors.New("stop failed")
	_ = app.RegisterComponent(comp)

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil {
		t.Error("expected shutdown error")
	}
}

func TestRunTask_StartFailure(t *testing.T) {
	app, _ := newTestApp(t)
	comp := healthy("api")
	comp.startErr = errors.New("boom")
	_ = app.RegisterComponent(comp)

	ran := false
	err := app.RunTask(context.Background(), func(context.Context) error { ran = true; return nil })
	if err == nil || ran {
		t.Errorf("expected start failure to skip the task, err=%v ran=%v", err, ran)
	}
}

func TestReadyCheck(t *testing.T) {
	app, buf := newTestApp(t)
	sick := &mockComponent{name: "db", health: component.Health{Name: "db", Status: component.StatusUnhealthy, Message: "down"}}
	_ = app.RegisterComponent(healthy("api"))
	_ = app.RegisterComponent(sick)

	if err := app.ReadyCheck(context.Background()); err == nil {
		t.Error("expected ready check to fail")
	}

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("unhealthy components must not abort the task: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Ready check reported issues")) {
		t.Errorf("expected ready check warning in logs: %s", buf.String())
	}
}

func TestShutdown_StopHooksAllRunInReverse(t *testing.T) {
	app, _ := newTestApp(t)

	var order []string
	flushErr := errors.New("flush failed")
	app.OnStop(
		func(context.Context) error { order = append(order, "tracer"); return nil },
		func(context.Context) error { order = append(order, "meter"); return flushErr },
	)

	err := app.Shutdown()
	if !errors.Is(err, flushErr) {
		t.Errorf("expected hook error, got %v", err)
	}
	if len(order) != 2 || order[0] != "meter" || order[1] != "tracer" {
		t.Errorf("unexpected stop order: %v", order)
	}
}
