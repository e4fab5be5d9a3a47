// Package registry implements the native in-process measurement backend.
//
// [New] builds a [Registry] with the built-in clock components registered:
// wall_clock, cpu_clock, user_clock, and sys_clock read the monotonic and
// getrusage clocks in seconds, and cuda_event is a host-side event-pair
// stand-in reporting milliseconds. [WithComponent] registers additional
// factories.
//
// When the host cannot provide a CPU time source, [New] fails and callers
// degrade to the inert backend from [NewNoop], which resolves every name
// to a component that measures nothing.
package registry
