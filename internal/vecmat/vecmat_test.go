package vecmat

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v", got)
	}
}

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		a, b, want Vec3
	}{
		{Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{Vec3{0, 1, 0}, Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{Vec3{1, 0, 0}, Vec3{1, 0, 0}, Vec3{0, 0, 0}},
	}
	for _, tt := range tests {
		if got := tt.a.Cross(tt.b); got != tt.want {
			t.Errorf("Cross(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVec3_Norm(t *testing.T) {
	if got := (Vec3{3, 4, 0}).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm = %v, want 5", got)
	}
}

func TestVec3_IsValid(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsValid() {
		t.Error("finite vector reported invalid")
	}
	if (Vec3{math.NaN(), 0, 0}).IsValid() {
		t.Error("NaN vector reported valid")
	}
	if (Vec3{0, math.Inf(1), 0}).IsValid() {
		t.Error("Inf vector reported valid")
	}
}

func TestMat3_Apply(t *testing.T) {
	if got := Identity().Apply(Vec3{1, 2, 3}); got != (Vec3{1, 2, 3}) {
		t.Errorf("identity apply = %v", got)
	}

	rot := Rotation(Vec3{0, 0, 1}, math.Pi/2)
	got := rot.Apply(Vec3{1, 0, 0})
	want := Vec3{0, 1, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("rotated x-axis = %v, want %v", got, want)
		}
	}
}

func TestMat3_ApplyTranspose(t *testing.T) {
	rot := Rotation(Vec3{0, 0, 1}, 0.7)
	v := Vec3{0.3, -1.2, 2.5}
	// Rᵀ(Rv) == v for rotations
	back := rot.ApplyTranspose(rot.Apply(v))
	for i := range v {
		if math.Abs(back[i]-v[i]) > 1e-12 {
			t.Fatalf("round trip = %v, want %v", back, v)
		}
	}
}

func TestRotation_Orthonormal(t *testing.T) {
	axes := []Vec3{{1, 0, 0}, {0, 1, 0}, {1, 1, 1}, {0.2, -0.5, 0.8}}
	for _, axis := range axes {
		r := Rotation(axis, 1.1)
		// each row should be unit length and rows mutually orthogonal
		for i := 0; i < 3; i++ {
			row := Vec3{r[i][0], r[i][1], r[i][2]}
			if math.Abs(row.Norm()-1) > 1e-12 {
				t.Fatalf("row %d of rotation about %v not unit: %v", i, axis, row)
			}
			for j := i + 1; j < 3; j++ {
				other := Vec3{r[j][0], r[j][1], r[j][2]}
				if math.Abs(row.Dot(other)) > 1e-12 {
					t.Fatalf("rows %d,%d not orthogonal for axis %v", i, j, axis)
				}
			}
		}
	}
}

func TestRotation_ZeroAxis(t *testing.T) {
	if got := Rotation(Vec3{}, 1.0); got != Identity() {
		t.Errorf("zero axis rotation = %v, want identity", got)
	}
}
