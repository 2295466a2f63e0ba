package sapling

// syntheticPointerEvent is one queued host notification. Coordinates are in
// stage space, exactly as a real pointer would report them.
type syntheticPointerEvent struct {
	native  string
	x, y    float64
	button  MouseButton
	buttons uint8
}

func (s *Scene) inject(native string, x, y float64, button MouseButton, buttons uint8) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		native: native, x: x, y: y, button: button, buttons: buttons,
	})
}

// InjectMove queues a pointer move to (x, y). The held buttons are those
// left pressed by earlier injected presses.
func (s *Scene) InjectMove(x, y float64) {
	s.inject("pointermove", x, y, MouseButtonLeft, s.injectButtons)
}

// InjectPress queues a left-button press at (x, y).
func (s *Scene) InjectPress(x, y float64) {
	s.InjectButtonPress(x, y, MouseButtonLeft)
}

// InjectButtonPress queues a press of button at (x, y).
func (s *Scene) InjectButtonPress(x, y float64, button MouseButton) {
	s.injectButtons |= buttonMask(button)
	s.inject("pointerdown", x, y, button, s.injectButtons)
}

// InjectRelease queues a left-button release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.InjectButtonRelease(x, y, MouseButtonLeft)
}

// InjectButtonRelease queues a release of button at (x, y).
func (s *Scene) InjectButtonRelease(x, y float64, button MouseButton) {
	s.injectButtons &^= buttonMask(button)
	s.inject("pointerup", x, y, button, s.injectButtons)
}

// InjectClick queues a move, press and release at the same point. Consumes
// three frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectMove(x, y)
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes `frames` frames. Minimum frames
// is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectLeave queues the pointer leaving the surface.
func (s *Scene) InjectLeave() {
	s.inject("pointerleave", 0, 0, MouseButtonLeft, s.injectButtons)
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput dispatches one queued event. Returns true if an event
// was consumed, in which case real input is skipped for the frame.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.events.HandlePointer(evt.native, evt.x, evt.y, evt.button, evt.buttons)
	return true
}

func buttonMask(b MouseButton) uint8 {
	switch b {
	case MouseButtonRight:
		return ButtonsRight
	case MouseButtonMiddle:
		return ButtonsMiddle
	default:
		return ButtonsLeft
	}
}
