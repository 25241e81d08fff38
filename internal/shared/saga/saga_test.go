package saga

import (
	"context"
	"errors"
	"testing"
)

func TestExecuteForwardOnly(t *testing.T) {
	var calls []string
	steps := []Step{
		{
			Name:       "first",
			Run:        func(context.Context) error { calls = append(calls, "run_first"); return nil },
			Compensate: func(context.Context) error { calls = append(calls, "comp_first"); return nil },
		},
		{
			Name:       "second",
			Run:        func(context.Context) error { calls = append(calls, "run_second"); return nil },
			Compensate: func(context.Context) error { calls = append(calls, "comp_second"); return nil },
		},
	}

	if err := Execute(context.Background(), nil, "test_saga", steps); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(calls) != 2 || calls[0] != "run_first" || calls[1] != "run_second" {
		t.Fatalf("expected forward calls only, got %v", calls)
	}
}

func TestExecuteCompensatesInReverse(t *testing.T) {
	stepErr := errors.New("step three broke")
	var calls []string
	steps := []Step{
		{
			Name:       "first",
			Run:        func(context.Context) error { return nil },
			Compensate: func(context.Context) error { calls = append(calls, "comp_first"); return nil },
		},
		{
			Name:       "second",
			Run:        func(context.Context) error { return nil },
			Compensate: func(context.Context) error { calls = append(calls, "comp_second"); return nil },
		},
		{
			Name:       "third",
			Run:        func(context.Context) error { return stepErr },
			Compensate: func(context.Context) error { calls = append(calls, "comp_third"); return nil },
		},
	}

	err := Execute(context.Background(), nil, "test_saga", steps)
	if !errors.Is(err, stepErr) {
		t.Fatalf("expected originating step error, got %v", err)
	}
	if len(calls) != 2 || calls[0] != "comp_second" || calls[1] != "comp_first" {
		t.Fatalf("expected reverse compensation [comp_second comp_first], got %v", calls)
	}
}

func TestExecuteFailedStepNotCompensated(t *testing.T) {
	compensated := false
	steps := []Step{
		{
			Name:       "only",
			Run:        func(context.Context) error { return errors.New("boom") },
			Compensate: func(context.Context) error { compensated = true; return nil },
		},
	}

	if err := Execute(context.Background(), nil, "test_saga", steps); err == nil {
		t.Fatal("expected error")
	}
	if compensated {
		t.Fatal("failed step's own compensation must not run")
	}
}

func TestExecuteContinuesPastFailingCompensation(t *testing.T) {
	stepErr := errors.New("step three broke")
	var calls []string
	steps := []Step{
		{
			Name:       "first",
			Run:        func(context.Context) error { return nil },
			Compensate: func(context.Context) error { calls = append(calls, "comp_first"); return nil },
		},
		{
			Name:       "second",
			Run:        func(context.Context) error { return nil },
			Compensate: func(context.Context) error { calls = append(calls, "comp_second"); return errors.New("undo failed") },
		},
		{
			Name: "third",
			Run:  func(context.Context) error { return stepErr },
		},
	}

	err := Execute(context.Background(), nil, "test_saga", steps)
	if !errors.Is(err, stepErr) {
		t.Fatalf("caller must see the originating step error, got %v", err)
	}
	if len(calls) != 2 || calls[0] != "comp_second" || calls[1] != "comp_first" {
		t.Fatalf("every succeeded step must get a compensation attempt, got %v", calls)
	}
}

func TestExecuteSkipsNilCompensation(t *testing.T) {
	var calls []string
	steps := []Step{
		{
			Name:       "first",
			Run:        func(context.Context) error { return nil },
			Compensate: func(context.Context) error { calls = append(calls, "comp_first"); return nil },
		},
		{
			Name: "second",
			Run:  func(context.Context) error { return nil },
		},
		{
			Name: "third",
			Run:  func(context.Context) error { return errors.New("boom") },
		},
	}

	if err := Execute(context.Background(), nil, "test_saga", steps); err == nil {
		t.Fatal("expected error")
	}
	if len(calls) != 1 || calls[0] != "comp_first" {
		t.Fatalf("expected only comp_first, got %v", calls)
	}
}
