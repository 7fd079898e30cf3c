package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	Mode  string // One of [Modes]; empty disables profiling
	Path  string // Output directory
	Quiet bool   // Suppress pkg/profile's own log output
}

// Start begins profiling and returns a [Stopper] that must be called to flush
// the profile. It is a no-op if Mode is empty or unsupported, or if the
// binary was built without [Tag].
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
