package graphics

// Context defines the interface for the canvas an OpenGL context renders into.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	// GetSize returns the logical canvas size, the value shaders see as resolution.
	GetSize() (int, int)
	// GetFramebufferSize returns the size in device pixels, used for the viewport.
	GetFramebufferSize() (int, int)
	Time() float64
}
