package contrast

import (
	"errors"
	"math"
	"testing"
)

func TestRatioOfTones(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"black on white", 0, 100, 21},
		{"white on black", 100, 0, 21},
		{"same tone", 50, 50, 1},
		{"clamped", -20, 140, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RatioOfTones(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RatioOfTones(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLighterHitsRatio(t *testing.T) {
	for tone := 0.0; tone <= 100; tone += 5 {
		for ratio := 1.0; ratio <= 21; ratio += 0.5 {
			got, ok := Lighter(tone, ratio)
			if !ok {
				continue
			}
			if got < tone {
				t.Errorf("Lighter(%v, %v) = %v, not lighter", tone, ratio, got)
			}
			if r := RatioOfTones(tone, got); math.Abs(r-ratio) > 0.05 {
				t.Errorf("RatioOfTones(%v, Lighter(%v, %v)) = %v", tone, tone, ratio, r)
			}
		}
	}
}

func TestDarkerHitsRatio(t *testing.T) {
	for tone := 0.0; tone <= 100; tone += 5 {
		for ratio := 1.0; ratio <= 21; ratio += 0.5 {
			got, ok := Darker(tone, ratio)
			if !ok {
				continue
			}
			if got > tone {
				t.Errorf("Darker(%v, %v) = %v, not darker", tone, ratio, got)
			}
			if r := RatioOfTones(tone, got); math.Abs(r-ratio) > 0.05 {
				t.Errorf("RatioOfTones(%v, Darker(%v, %v)) = %v", tone, tone, ratio, r)
			}
		}
	}
}

func TestUnreachable(t *testing.T) {
	if v, ok := Lighter(100, 1.5); ok || v != -1 {
		t.Errorf("Lighter(100, 1.5) = %v, %v, want -1, false", v, ok)
	}
	if v, ok := Darker(0, 1.5); ok || v != -1 {
		t.Errorf("Darker(0, 1.5) = %v, %v, want -1, false", v, ok)
	}
	if v, ok := Lighter(50, 21); ok {
		t.Errorf("Lighter(50, 21) = %v, want failure", v)
	}
	if got := LighterUnsafe(90, 7); got != 100 {
		t.Errorf("LighterUnsafe(90, 7) = %v, want 100", got)
	}
	if got := DarkerUnsafe(10, 7); got != 0 {
		t.Errorf("DarkerUnsafe(10, 7) = %v, want 0", got)
	}
}

func TestLighterKnownValue(t *testing.T) {
	// Tone 40 against 4.5 lands just above tone 86 on the lighter side.
	got, ok := Lighter(40, 4.5)
	if !ok {
		t.Fatal("Lighter(40, 4.5) failed")
	}
	if got < 80 || got > 95 {
		t.Errorf("Lighter(40, 4.5) = %v, want in (80, 95)", got)
	}
}

func TestForTone(t *testing.T) {
	tests := []struct {
		name       string
		tone       float64
		wantDarker bool
	}{
		{"light tone goes darker", 90, true},
		{"dark tone goes lighter", 10, false},
		{"mid tone goes lighter", 45, false},
		{"mid-light tone goes darker", 60, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ForTone(tt.tone, 4.5)
			if !ok {
				t.Fatalf("ForTone(%v, 4.5) failed", tt.tone)
			}
			if (got < tt.tone) != tt.wantDarker {
				t.Errorf("ForTone(%v, 4.5) = %v, wantDarker %v", tt.tone, got, tt.wantDarker)
			}
			if !Meets(tt.tone, got, 4.5) {
				t.Errorf("ForTone(%v, 4.5) = %v does not meet 4.5", tt.tone, got)
			}
		})
	}
	if _, ok := ForTone(50, 21); ok {
		t.Error("ForTone(50, 21) should fail in both directions")
	}
}

func TestCheckRatio(t *testing.T) {
	for _, r := range []float64{1, 4.5, 21} {
		if err := CheckRatio(r); err != nil {
			t.Errorf("CheckRatio(%v) = %v, want nil", r, err)
		}
	}
	for _, r := range []float64{0.5, 21.5, -1} {
		if err := CheckRatio(r); !errors.Is(err, ErrRatioOutOfRange) {
			t.Errorf("CheckRatio(%v) = %v, want ErrRatioOutOfRange", r, err)
		}
	}
}

func TestOutOfRangePanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrRatioOutOfRange) {
			t.Errorf("recover() = %v, want ErrRatioOutOfRange", r)
		}
	}()
	Lighter(50, 22)
}
