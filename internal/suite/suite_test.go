package suite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"specrun/internal/domain"
	"specrun/internal/execution"
	"specrun/internal/manifest"
)

// events records the order of loader and runner calls
type events []string

type fakeLoader struct {
	log     *events
	err     error
	targets []string
}

func (l *fakeLoader) Load(ctx context.Context, targets []string, done func()) error {
	l.targets = targets
	*l.log = append(*l.log, "load")
	if l.err != nil {
		return l.err
	}
	*l.log = append(*l.log, "loaded")
	done()
	return nil
}

// asyncLoader returns before calling done, the way an AMD require schedules
// its callback; calls sets how many times done fires
type asyncLoader struct {
	calls int
}

func (l *asyncLoader) Load(ctx context.Context, targets []string, done func()) error {
	go func() {
		time.Sleep(10 * time.Millisecond)
		for i := 0; i < l.calls; i++ {
			done()
		}
	}()
	return nil
}

type fakeRunner struct {
	log       *events
	name      string
	available bool
	calls     int
}

func (r *fakeRunner) Name() string    { return r.name }
func (r *fakeRunner) Available() bool { return r.available }
func (r *fakeRunner) Run(ctx context.Context, targets []string) domain.RunResult {
	r.calls++
	*r.log = append(*r.log, "run:"+r.name)
	return domain.RunResult{Runner: r.name, Targets: targets, Success: true}
}

func TestSuite_Run(t *testing.T) {
	m := manifest.Default()

	t.Run("runs once after loading completes", func(t *testing.T) {
		var log events
		l := &fakeLoader{log: &log}
		headless := &fakeRunner{log: &log, name: execution.HeadlessRunner, available: true}
		standard := &fakeRunner{log: &log, name: execution.StandardRunner, available: true}

		result, err := New(m, l, headless, standard).Run(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if diff := cmp.Diff(events{"load", "loaded", "run:headless"}, log); diff != "" {
			t.Errorf("event order mismatch (-want +got):\n%s", diff)
		}
		if headless.calls != 1 || standard.calls != 0 {
			t.Errorf("expected exactly one headless run, got headless=%d standard=%d", headless.calls, standard.calls)
		}
		if diff := cmp.Diff(m.Targets(), l.targets); diff != "" {
			t.Errorf("loaded targets mismatch (-want +got):\n%s", diff)
		}
		if result.Runner != execution.HeadlessRunner {
			t.Errorf("expected headless result, got %s", result.Runner)
		}
	})

	t.Run("falls back to standard runner", func(t *testing.T) {
		var log events
		headless := &fakeRunner{log: &log, name: execution.HeadlessRunner}
		standard := &fakeRunner{log: &log, name: execution.StandardRunner, available: true}

		result, err := New(m, &fakeLoader{log: &log}, headless, standard).Run(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Runner != execution.StandardRunner || standard.calls != 1 || headless.calls != 0 {
			t.Errorf("expected one standard run, got %s (headless=%d standard=%d)", result.Runner, headless.calls, standard.calls)
		}
	})

	t.Run("load failure is returned unmodified and nothing runs", func(t *testing.T) {
		var log events
		loadErr := errors.New("load ../../test/mocha/js/widgets/tabs_widget.spec.js: file does not exist")
		runner := &fakeRunner{log: &log, name: execution.StandardRunner, available: true}

		_, err := New(m, &fakeLoader{log: &log, err: loadErr}, runner).Run(context.Background())
		if err != loadErr {
			t.Errorf("expected loader error unmodified, got %v", err)
		}
		if runner.calls != 0 {
			t.Errorf("expected no run, got %d", runner.calls)
		}
	})

	t.Run("no runner available", func(t *testing.T) {
		var log events
		runner := &fakeRunner{log: &log, name: execution.HeadlessRunner}

		_, err := New(m, &fakeLoader{log: &log}, runner).Run(context.Background())
		if !errors.Is(err, execution.ErrNoRunner) {
			t.Errorf("expected ErrNoRunner, got %v", err)
		}
	})
}

// slowRunner outlives the context deadline before returning
type slowRunner struct{}

func (slowRunner) Name() string    { return execution.StandardRunner }
func (slowRunner) Available() bool { return true }
func (slowRunner) Run(ctx context.Context, targets []string) domain.RunResult {
	<-ctx.Done()
	return domain.RunResult{Runner: execution.StandardRunner, TimedOut: true, Error: ctx.Err()}
}

func TestSuite_Run_PastDeadline(t *testing.T) {
	var log events
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	result, err := New(manifest.Default(), &fakeLoader{log: &log}, slowRunner{}).Run(ctx)
	if err != nil {
		t.Fatalf("expected the timed out result, got error %v", err)
	}
	if !result.TimedOut {
		t.Errorf("expected timed out result, got %+v", result)
	}
}

func TestSuite_Run_AsyncLoader(t *testing.T) {
	m := manifest.Default()

	t.Run("waits for a callback fired after Load returns", func(t *testing.T) {
		var log events
		runner := &fakeRunner{log: &log, name: execution.StandardRunner, available: true}

		result, err := New(m, &asyncLoader{calls: 2}, runner).Run(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runner.calls != 1 {
			t.Errorf("expected exactly one run, got %d", runner.calls)
		}
		if result.Runner != execution.StandardRunner {
			t.Errorf("expected standard result, got %q", result.Runner)
		}
	})

	t.Run("callback never fires", func(t *testing.T) {
		var log events
		runner := &fakeRunner{log: &log, name: execution.StandardRunner, available: true}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := New(m, &asyncLoader{}, runner).Run(ctx)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected deadline exceeded, got %v", err)
		}
		if runner.calls != 0 {
			t.Errorf("expected no run, got %d", runner.calls)
		}
	})
}

func TestSuite_Plan(t *testing.T) {
	var log events
	m := manifest.Default()
	s := New(m, &fakeLoader{log: &log},
		&fakeRunner{log: &log, name: execution.HeadlessRunner},
		&fakeRunner{log: &log, name: execution.StandardRunner, available: true},
	)

	p := s.Plan()
	if p.Runner != execution.StandardRunner {
		t.Errorf("expected standard runner, got %s", p.Runner)
	}
	if len(p.Targets) != len(m.Targets()) || len(p.Excluded) != 1 {
		t.Errorf("unexpected plan %+v", p)
	}
	if len(log) != 0 {
		t.Errorf("plan should not load or run anything, got %v", log)
	}
}

func TestSuite_Narrow(t *testing.T) {
	var log events
	m := manifest.Default()
	s := New(m, &fakeLoader{log: &log})

	sort := m.Resolve("/widgets/sort_widget.spec.js")
	network := m.Resolve("/widgets/network_widget.spec.js")
	similar := m.Resolve("/widgets/similar_widget.spec.js")
	s.Narrow([]string{network, similar, sort})

	if diff := cmp.Diff([]string{sort, network}, s.Targets()); diff != "" {
		t.Errorf("narrowed targets mismatch (-want +got):\n%s", diff)
	}
}
