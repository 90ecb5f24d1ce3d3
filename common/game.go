package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TickRate is the fixed simulation rate; every system receives
	// dt = 1/TickRate.
	TickRate = 60.0

	// Gravity is vertical acceleration in units/s^2, negative down.
	Gravity = -24.0
)
