// Package vecmat provides the small fixed-size vector and matrix types used
// by rod state arrays. Vec3 and Mat3 are value types: assignment and
// indexing copy, which is what constraint snapshots rely on.
package vecmat

import "math"

type Vec3 [3]float64

type Mat3 [3][3]float64

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v[0] * f, v[1] * f, v[2] * f}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Identity returns the 3x3 identity matrix.
func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Apply computes m * v.
func (m Mat3) Apply(v Vec3) Vec3 {
	var out Vec3
	for i := 0; i < 3; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

// ApplyTranspose computes mᵀ * v.
func (m Mat3) ApplyTranspose(v Vec3) Vec3 {
	var out Vec3
	for i := 0; i < 3; i++ {
		out[i] = m[0][i]*v[0] + m[1][i]*v[1] + m[2][i]*v[2]
	}
	return out
}

// Mul computes m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return out
}

// Rotation builds the rotation matrix for a rotation of angle radians about
// axis (Rodrigues formula). A zero axis yields the identity.
func Rotation(axis Vec3, angle float64) Mat3 {
	n := axis.Norm()
	if n == 0 || angle == 0 {
		return Identity()
	}
	u := axis.Scale(1 / n)
	c := math.Cos(angle)
	s := math.Sin(angle)
	oneC := 1 - c

	return Mat3{
		{c + u[0]*u[0]*oneC, u[0]*u[1]*oneC - u[2]*s, u[0]*u[2]*oneC + u[1]*s},
		{u[1]*u[0]*oneC + u[2]*s, c + u[1]*u[1]*oneC, u[1]*u[2]*oneC - u[0]*s},
		{u[2]*u[0]*oneC - u[1]*s, u[2]*u[1]*oneC + u[0]*s, c + u[2]*u[2]*oneC},
	}
}
