package rod

import (
	"fmt"
	"math"

	"github.com/pierremaillar/rodsim/internal/vecmat"
)

// Rod is a discretized slender body: nodes carrying position, velocity and
// mass, and elements carrying an orientation frame and angular velocity.
// A straight rod has one element fewer than nodes. A ring rod reserves its
// trailing node and trailing element as ghosts mirroring node 0 and element
// 0, so the closing segment is an ordinary spring running from the last
// distinct node to the ghost. Elements resist stretch with a linear spring
// about their rest length. External loads accumulate per stage and are
// consumed by UpdateAccelerations.
type Rod struct {
	positions  []vecmat.Vec3
	velocities []vecmat.Vec3
	directors  []vecmat.Mat3
	omegas     []vecmat.Vec3

	accelerations []vecmat.Vec3
	alphas        []vecmat.Vec3

	extForces  []vecmat.Vec3
	extTorques []vecmat.Vec3

	restLengths []float64
	nodeMass    float64
	elemInertia float64
	stiffness   float64

	ring bool
}

// Params configures rod construction.
type Params struct {
	Nodes     int     // node count, >= 2 (>= 4 for rings, whose last node is a ghost)
	Length    float64 // total rest length, > 0
	Mass      float64 // total mass, > 0
	Stiffness float64 // stretch spring constant per element, > 0
	Inertia   float64 // rotational inertia per element; defaults to node mass
}

func (p Params) validate(minNodes int) error {
	if p.Nodes < minNodes {
		return fmt.Errorf("rod: need at least %d nodes, got %d", minNodes, p.Nodes)
	}
	if p.Length <= 0 {
		return fmt.Errorf("rod: length must be positive, got %g", p.Length)
	}
	if p.Mass <= 0 {
		return fmt.Errorf("rod: mass must be positive, got %g", p.Mass)
	}
	if p.Stiffness <= 0 {
		return fmt.Errorf("rod: stiffness must be positive, got %g", p.Stiffness)
	}
	return nil
}

// NewStraight builds a straight rod from start along direction (normalized
// internally), with directors aligned so the third frame axis is the
// tangent.
func NewStraight(start, direction vecmat.Vec3, p Params) (*Rod, error) {
	if err := p.validate(2); err != nil {
		return nil, err
	}
	n := direction.Norm()
	if n == 0 {
		return nil, fmt.Errorf("rod: direction must be nonzero")
	}
	tangent := direction.Scale(1 / n)

	r := alloc(p.Nodes, p.Nodes-1, p)
	step := p.Length / float64(p.Nodes-1)
	for i := range r.positions {
		r.positions[i] = start.Add(tangent.Scale(step * float64(i)))
	}
	frame := frameFromTangent(tangent)
	for i := range r.directors {
		r.directors[i] = frame
		r.restLengths[i] = step
	}
	return r, nil
}

// NewRing builds a closed ring of radius derived from the rest length, lying
// in the plane normal to the z axis and centered at center. The trailing node
// and trailing element are ghosts mirroring node 0 and element 0; the
// periodic-boundary synchronizer injected at finalize keeps them coherent.
// The closing segment itself is a real element between the last distinct
// node and the ghost, framed along its own chord.
func NewRing(center vecmat.Vec3, p Params) (*Rod, error) {
	if err := p.validate(4); err != nil {
		return nil, err
	}
	r := alloc(p.Nodes, p.Nodes, p)
	r.ring = true

	// mass lumps over the distinct nodes; the ghost carries none of it
	distinct := p.Nodes - 1
	r.nodeMass = p.Mass / float64(distinct)
	if p.Inertia <= 0 {
		r.elemInertia = r.nodeMass
	}

	radius := p.Length / (2 * math.Pi)
	for i := 0; i < distinct; i++ {
		theta := 2 * math.Pi * float64(i) / float64(distinct)
		r.positions[i] = center.Add(vecmat.Vec3{radius * math.Cos(theta), radius * math.Sin(theta), 0})
	}
	r.positions[distinct] = r.positions[0]

	for i := 0; i < distinct; i++ {
		chord := r.positions[(i+1)%distinct].Sub(r.positions[i])
		r.directors[i] = frameFromTangent(chord.Scale(1 / chord.Norm()))
		r.restLengths[i] = chord.Norm()
	}
	r.directors[distinct] = r.directors[0]
	r.restLengths[distinct] = r.restLengths[0]
	return r, nil
}

func alloc(nodes, elems int, p Params) *Rod {
	r := &Rod{
		positions:     make([]vecmat.Vec3, nodes),
		velocities:    make([]vecmat.Vec3, nodes),
		directors:     make([]vecmat.Mat3, elems),
		omegas:        make([]vecmat.Vec3, elems),
		accelerations: make([]vecmat.Vec3, nodes),
		alphas:        make([]vecmat.Vec3, elems),
		extForces:     make([]vecmat.Vec3, nodes),
		extTorques:    make([]vecmat.Vec3, elems),
		restLengths:   make([]float64, elems),
		nodeMass:      p.Mass / float64(nodes),
		stiffness:     p.Stiffness,
		elemInertia:   p.Inertia,
	}
	if r.elemInertia <= 0 {
		r.elemInertia = r.nodeMass
	}
	return r
}

// frameFromTangent builds an orthonormal frame whose last row is tangent.
func frameFromTangent(tangent vecmat.Vec3) vecmat.Mat3 {
	ref := vecmat.Vec3{0, 0, 1}
	if math.Abs(tangent.Dot(ref)) > 0.99 {
		ref = vecmat.Vec3{0, 1, 0}
	}
	normal := ref.Cross(tangent)
	normal = normal.Scale(1 / normal.Norm())
	binormal := tangent.Cross(normal)
	return vecmat.Mat3{
		{normal[0], normal[1], normal[2]},
		{binormal[0], binormal[1], binormal[2]},
		{tangent[0], tangent[1], tangent[2]},
	}
}

// State accessors; the returned slices alias live state by design.

func (r *Rod) Positions() []vecmat.Vec3         { return r.positions }
func (r *Rod) Directors() []vecmat.Mat3         { return r.directors }
func (r *Rod) Velocities() []vecmat.Vec3        { return r.velocities }
func (r *Rod) AngularVelocities() []vecmat.Vec3 { return r.omegas }

// RingTopology reports whether the rod is a closed ring.
func (r *Rod) RingTopology() bool { return r.ring }

// ExternalForces exposes the per-node load accumulator for forcing
// operators.
func (r *Rod) ExternalForces() []vecmat.Vec3 { return r.extForces }

// ExternalTorques exposes the per-element torque accumulator.
func (r *Rod) ExternalTorques() []vecmat.Vec3 { return r.extTorques }

// NumNodes reports the node count, including the ghost node for rings.
func (r *Rod) NumNodes() int { return len(r.positions) }

// NodeMass reports the lumped mass per node.
func (r *Rod) NodeMass() float64 { return r.nodeMass }

// ResetLoads zeroes the external load accumulators ahead of a synchronize
// stage.
func (r *Rod) ResetLoads() {
	for i := range r.extForces {
		r.extForces[i] = vecmat.Vec3{}
	}
	for i := range r.extTorques {
		r.extTorques[i] = vecmat.Vec3{}
	}
}

// UpdateAccelerations combines internal stretch forces with the accumulated
// external loads into nodal and element accelerations. For rings the closing
// spring's reaction accumulates on the ghost node and is folded back onto
// node 0, which is the same material point; the ghost slots then mirror the
// seam so subsequent stages see coherent state. Loads accumulated directly
// on ghost slots are discarded.
func (r *Rod) UpdateAccelerations(_ float64) {
	for i := range r.accelerations {
		r.accelerations[i] = vecmat.Vec3{}
	}
	last := len(r.positions) - 1
	for i := 0; i < last; i++ {
		d := r.positions[i+1].Sub(r.positions[i])
		length := d.Norm()
		if length == 0 {
			continue
		}
		f := d.Scale(r.stiffness * (length - r.restLengths[i]) / length)
		r.accelerations[i] = r.accelerations[i].Add(f)
		r.accelerations[i+1] = r.accelerations[i+1].Sub(f)
	}
	if r.ring {
		r.accelerations[0] = r.accelerations[0].Add(r.accelerations[last])
	}
	invMass := 1 / r.nodeMass
	for i := range r.accelerations {
		r.accelerations[i] = r.accelerations[i].Add(r.extForces[i]).Scale(invMass)
	}
	invInertia := 1 / r.elemInertia
	for i := range r.alphas {
		r.alphas[i] = r.extTorques[i].Scale(invInertia)
	}
	if r.ring {
		r.accelerations[last] = r.accelerations[0]
		r.alphas[len(r.alphas)-1] = r.alphas[0]
	}
}

// KinematicStep advances positions by velocity and rotates directors by the
// element angular velocity over dt.
func (r *Rod) KinematicStep(dt float64) {
	for i := range r.positions {
		r.positions[i] = r.positions[i].Add(r.velocities[i].Scale(dt))
	}
	for i := range r.directors {
		w := r.omegas[i]
		angle := w.Norm() * dt
		if angle == 0 {
			continue
		}
		r.directors[i] = vecmat.Rotation(w, angle).Mul(r.directors[i])
	}
}

// DynamicStep advances velocities and angular velocities by the current
// accelerations over dt.
func (r *Rod) DynamicStep(dt float64) {
	for i := range r.velocities {
		r.velocities[i] = r.velocities[i].Add(r.accelerations[i].Scale(dt))
	}
	for i := range r.omegas {
		r.omegas[i] = r.omegas[i].Add(r.alphas[i].Scale(dt))
	}
}

// KineticEnergy sums the translational kinetic energy over the distinct
// nodes; a ring's ghost node duplicates node 0 and is not counted.
func (r *Rod) KineticEnergy() float64 {
	vs := r.velocities
	if r.ring {
		vs = vs[:len(vs)-1]
	}
	e := 0.0
	for _, v := range vs {
		e += 0.5 * r.nodeMass * v.Dot(v)
	}
	return e
}
