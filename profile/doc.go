// Package profile provides optional runtime profiling for flagset.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag ([Tag]). Without the tag, [Modes] is empty and
// [Profiler.Start] returns a no-op.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Profiles are written to Path with names matching the mode, e.g.
// cpu.pprof, and can be inspected with "go tool pprof". The pprof build
// also registers the [net/http/pprof] handlers on the default mux.
//
// Supported modes: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
// thread, and trace.
package profile
