package saver

import (
	"math"
	"testing"
)

func TestStarBrightness(t *testing.T) {
	tests := []struct {
		name    string
		d, z    float64
		want    float64
		epsilon float64
	}{
		{"far away", 0, 0, 0, 0},
		{"closest on centre", 0, 1, 1, 1e-12},
		{"outside radius", 0.05, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := starBrightness(tt.d, tt.z); math.Abs(got-tt.want) > tt.epsilon {
				t.Errorf("starBrightness(%v, %v) = %v, want %v", tt.d, tt.z, got, tt.want)
			}
		})
	}
}

func TestStarBrightness_GrowsWithApproach(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 20; i++ {
		z := float64(i) / 20
		b := starBrightness(0.0005, z)
		if b < prev {
			t.Fatalf("brightness drops at z=%v: %v < %v", z, b, prev)
		}
		prev = b
	}
}

// starAt returns the point of layer 0 that sits exactly on the star of cell.
func starAt(cell Vec2) Vec2 {
	return cell.Add(Hash2(cell)).Mul(1.0 / 10)
}

func TestStarfield_DistantStarInvisible(t *testing.T) {
	s := NewStarfield(DefaultStarfield)
	cell := V2(3, 2)
	p := starAt(cell)

	speed := 0.1 + 0.25*0.3
	tm := (1.01 - Hash(cell)) / speed // z ≈ 0.01

	st := s.layerStar(tm, p, 0)
	if math.Abs(st.z-0.01) > 1e-6 {
		t.Fatalf("z = %v, want 0.01", st.z)
	}
	if st.bright > 1e-3 {
		t.Errorf("brightness at z≈0 = %v, want ≈0", st.bright)
	}
}

func TestStarfield_NearStarBright(t *testing.T) {
	s := NewStarfield(DefaultStarfield)
	cell := V2(3, 2)
	p := starAt(cell)

	speed := 0.1 + 0.25*0.3
	tm := (1.99 - Hash(cell)) / speed // z ≈ 0.99

	st := s.layerStar(tm, p, 0)
	if st.dist > 1e-9 {
		t.Fatalf("dist = %v, want 0", st.dist)
	}
	if st.bright < 0.95 {
		t.Errorf("brightness at z≈0.99 = %v, want ≈0.98", st.bright)
	}
	if st.tint.R <= 0 || st.tint.B <= 0 {
		t.Errorf("tint = %v, want a visible color", st.tint)
	}
}

func TestStarfield_Configure(t *testing.T) {
	s := NewStarfield(DefaultStarfield)
	e, err := s.Configure(Options{"layers": 20, "speed": 2.5, "cool": []any{0.0, 0.0, 1.0}})
	if err != nil {
		t.Fatalf("Configure() = %v", err)
	}
	cfg := e.(*Starfield).Config()
	if cfg.Layers != 8 {
		t.Errorf("Layers = %d, want 8 (clamped)", cfg.Layers)
	}
	if cfg.Speed != 2.5 {
		t.Errorf("Speed = %v, want 2.5", cfg.Speed)
	}
	if cfg.Cool != NewRGB(0, 0, 1) {
		t.Errorf("Cool = %v, want (0, 0, 1)", cfg.Cool)
	}

	if _, err := s.Configure(Options{"warm": []any{2.0, 0.0, 0.0}}); err == nil {
		t.Error("Configure() with an out-of-range color should fail")
	}
}
