// Package profile records runtime profiles of nana commands with
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag ([Tag]). Without
// it, [Config.Start] returns a [Stopper] that does nothing and the
// pkg/profile dependency is not linked.
//
// # Modes
//
// [Modes] lists the profiles that can be recorded: allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread and trace. An empty mode disables
// profiling.
//
// # Sessions
//
// A session is a [Config] built from options:
//
//	stop := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithDir(dir),
//		profile.WithLabel("check"),
//	).Start()
//	defer stop.Stop()
//
// Profiles of each command land in their own subdirectory of the output
// directory, so "nana check" and "nana fmt resolved" do not overwrite each
// other's cpu.pprof. [Config.Path] reports the directory.
//
// # Command line
//
//	go build -tags pprof .
//	./nana --pprof-mode cpu check big.yaml
//	./nana --pprof-mode heap --pprof-dir ./profiles fmt resolved big.yaml
//	go tool pprof -http=: ./profiles/fmt-resolved/mem.pprof
//
// The default output directory is "pprof" under the nana cache directory.
// Block and mutex profiles raise the runtime sampling rates while they run,
// which slows resolution of large programs noticeably.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
