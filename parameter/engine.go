package parameter

import "time"

// Frame loop timing
const (
	// FrameUpdateInterval is the host frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// FrameOverrunTolerance is how far past its interval a frame may run before being counted as overrun
	FrameOverrunTolerance = 2 * time.Millisecond
)

// Event queue limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)

// Sandbox defaults
const (
	// SandboxAgents is the default agent population
	SandboxAgents = 6

	// SandboxStepInterval is how often an agent advances one waypoint
	SandboxStepInterval = 120 * time.Millisecond

	// SandboxBraiding adds loops to the generated maze
	SandboxBraiding = 0.35
)
