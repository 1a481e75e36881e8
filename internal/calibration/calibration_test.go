package calibration

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/qcalc/internal/errors"
)

func TestCalibrate(t *testing.T) {
	t.Parallel()
	report, err := Calibrate(context.Background(), Options{
		Sizes:    []int{6, 12},
		Divisors: []int{2},
		Repeats:  1,
	})
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if len(report.Measurements) != 2 {
		t.Fatalf("got %d measurements, want 2", len(report.Measurements))
	}
	for _, m := range report.Measurements {
		if m.K != m.N/2 || m.Naive < 0 || m.Cyclo < 0 {
			t.Errorf("measurement %+v", m)
		}
	}
	if len(report.Crossovers) != 1 || report.Crossovers[0].Divisor != 2 {
		t.Errorf("crossovers = %v", report.Crossovers)
	}
	if report.Elapsed <= 0 {
		t.Error("elapsed should be positive")
	}
}

func TestCalibrateCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Calibrate(ctx, Options{Sizes: []int{10}, Divisors: []int{2}, Repeats: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestFindCrossovers(t *testing.T) {
	t.Parallel()
	ms := []Measurement{
		{Point: Point{N: 10, Divisor: 2}, Naive: 1, Cyclo: 2},
		{Point: Point{N: 20, Divisor: 2}, Naive: 5, Cyclo: 3},
		{Point: Point{N: 30, Divisor: 2}, Naive: 4, Cyclo: 6},
		{Point: Point{N: 40, Divisor: 2}, Naive: 9, Cyclo: 4},
		{Point: Point{N: 50, Divisor: 2}, Naive: 20, Cyclo: 5},
		{Point: Point{N: 10, Divisor: 4}, Naive: 1, Cyclo: 2},
		{Point: Point{N: 20, Divisor: 4}, Naive: 2, Cyclo: 3},
		{Point: Point{N: 10, Divisor: 8}, Naive: 3, Cyclo: 1},
	}
	got := findCrossovers(ms, []int{2, 4, 8})
	want := []Crossover{{Divisor: 2, N: 40}, {Divisor: 4, N: 0}, {Divisor: 8, N: 10}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("crossover %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRunCalibration(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultProfileFileName)

	previous := NewProfile()
	previous.Crossovers = []Crossover{{Divisor: 2, N: 12}}
	if err := previous.SaveProfile(path); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	code := RunCalibration(context.Background(), &out, Options{
		Sizes:       []int{6, 12},
		Divisors:    []int{2},
		Repeats:     1,
		ProfilePath: path,
	})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output:\n%s", code, out.String())
	}
	for _, want := range []string{"Calibration Summary", "cyclo_polynomial", "k = n/2", "previous run: n >= 12", "Profile saved to"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out.String())
		}
	}

	saved, loaded := LoadOrCreateProfile(path)
	if !loaded || saved.GridPoints != 2 || saved.IsStale(time.Minute) {
		t.Errorf("saved profile = %+v", saved)
	}
}

func TestRunCalibrationCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if code := RunCalibration(ctx, &out, Options{Sizes: []int{10}, Repeats: 1}); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}
