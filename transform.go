package sapling

import "math"

const degToRad = math.Pi / 180

// Transform holds a node's local affine state and its cached local and world
// matrices.
//
// The local matrix is recomputed only when one of the inputs changed. The
// world matrix is recomputed only when the parent's world ID differs from
// the one seen last time; there is no top-down dirty flag for world matrices.
type Transform struct {
	Position *ObservablePoint
	Pivot    *ObservablePoint
	Scale    *ObservablePoint
	Skew     *ObservablePoint // degrees

	rotation float64 // radians

	rotateMatrix Matrix
	skewMatrix   Matrix
	scaleMatrix  Matrix

	local   Matrix
	world   Matrix
	worldID string

	localDirty bool
	parentID   string
}

// NewTransform returns an identity transform with scale (1, 1).
func NewTransform() *Transform {
	t := &Transform{
		rotateMatrix: IdentityMatrix(),
		skewMatrix:   IdentityMatrix(),
		scaleMatrix:  IdentityMatrix(),
		local:        IdentityMatrix(),
		world:        IdentityMatrix(),
		worldID:      identityID,
	}
	t.Position = newObservablePoint(t.onChange, 0, 0)
	t.Pivot = newObservablePoint(t.onChange, 0, 0)
	t.Scale = newObservablePoint(t.onScaleChange, 1, 1)
	t.Skew = newObservablePoint(t.onSkewChange, 0, 0)
	return t
}

// identityParent stands in for the root's missing parent. Never mutated.
var identityParent = NewTransform()

func (t *Transform) onChange(_, _ float64) {
	t.localDirty = true
}

func (t *Transform) onScaleChange(sx, sy float64) {
	t.scaleMatrix = ScaleMatrix(sx, sy)
	t.localDirty = true
}

func (t *Transform) onSkewChange(sx, sy float64) {
	t.skewMatrix = SkewMatrix(sx*degToRad, sy*degToRad)
	t.localDirty = true
}

// Rotation returns the rotation in degrees.
func (t *Transform) Rotation() float64 {
	return t.rotation / degToRad
}

// SetRotation sets the rotation in degrees.
func (t *Transform) SetRotation(deg float64) {
	t.rotation = deg * degToRad
	t.rotateMatrix = RotationMatrix(t.rotation)
	t.localDirty = true
}

// LocalMatrix returns the cached local matrix. Call UpdateLocalMatrix first
// if inputs may have changed.
func (t *Transform) LocalMatrix() Matrix {
	return t.local
}

// WorldMatrix returns the cached world matrix.
func (t *Transform) WorldMatrix() Matrix {
	return t.world
}

// WorldID returns the change token of the cached world matrix.
func (t *Transform) WorldID() string {
	return t.worldID
}

// UpdateLocalMatrix recomputes the local matrix if any input changed.
//
// Composition: rotate, then skew, then scale into the linear part; the pivot
// is pushed through that part so the translation maps pivot onto position;
// finally a translation by the pivot is prepended.
func (t *Transform) UpdateLocalMatrix() {
	if !t.localDirty {
		return
	}
	m := IdentityMatrix()
	m.Append(t.rotateMatrix).Append(t.skewMatrix).Append(t.scaleMatrix)

	px, py := t.Pivot.x, t.Pivot.y
	newPivotX := m.A*px + m.C*py
	newPivotY := m.B*px + m.D*py
	tx := t.Position.x - newPivotX
	ty := t.Position.y - newPivotY

	t.local.Set(m.A, m.B, m.C, m.D, tx, ty).Prepend(TranslationMatrix(px, py))
	t.localDirty = false
	t.parentID = ""
}

// UpdateWorldMatrix recomputes world = parent.world * local unless the
// parent's world ID matches the last one seen.
func (t *Transform) UpdateWorldMatrix(parent *Transform) {
	pid := parent.worldID
	if t.parentID == pid {
		return
	}
	t.world = Multiply(parent.world, t.local)
	t.worldID = t.world.ID()
	t.parentID = pid
}

// UpdateTransform refreshes the local matrix if needed, then the world
// matrix against parent.
func (t *Transform) UpdateTransform(parent *Transform) {
	t.UpdateLocalMatrix()
	t.UpdateWorldMatrix(parent)
}

// copyInputsFrom copies position, pivot, scale, skew and rotation from src.
func (t *Transform) copyInputsFrom(src *Transform) {
	t.Position.Set(src.Position.x, src.Position.y)
	t.Pivot.Set(src.Pivot.x, src.Pivot.y)
	t.Scale.Set(src.Scale.x, src.Scale.y)
	t.Skew.Set(src.Skew.x, src.Skew.y)
	t.SetRotation(src.Rotation())
}
