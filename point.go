package sapling

// ObservablePoint is a 2D point that notifies its owner when it changes.
// Transform uses it for position, pivot, scale and skew so that any mutation
// invalidates the cached local matrix.
type ObservablePoint struct {
	x, y     float64
	onChange func(x, y float64)
}

func newObservablePoint(onChange func(x, y float64), x, y float64) *ObservablePoint {
	return &ObservablePoint{x: x, y: y, onChange: onChange}
}

// X returns the x component.
func (p *ObservablePoint) X() float64 { return p.x }

// Y returns the y component.
func (p *ObservablePoint) Y() float64 { return p.y }

// Point returns the current value as a plain Point.
func (p *ObservablePoint) Point() Point { return Point{p.x, p.y} }

// Set assigns both components. The owner is notified only if the value changed.
func (p *ObservablePoint) Set(x, y float64) {
	if p.x == x && p.y == y {
		return
	}
	p.x, p.y = x, y
	p.notify()
}

// SetX assigns the x component.
func (p *ObservablePoint) SetX(x float64) {
	p.Set(x, p.y)
}

// SetY assigns the y component.
func (p *ObservablePoint) SetY(y float64) {
	p.Set(p.x, y)
}

func (p *ObservablePoint) notify() {
	if p.onChange != nil {
		p.onChange(p.x, p.y)
	}
}
