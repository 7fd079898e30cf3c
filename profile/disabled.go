//go:build !pprof

package profile

// Modes returns no modes when built without [Tag].
func Modes() []string { return nil }

func start(Profiler) Stopper { return ignore{} }
