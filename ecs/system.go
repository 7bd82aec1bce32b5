package ecs

// System is one update step run by the Scheduler once per frame.
// Systems may declare Query and Singleton fields; the Scheduler wires them to
// its Storage on registration. Any other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
