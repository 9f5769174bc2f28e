package cmn

import "go.uber.org/atomic"

// Config is the small set of process-wide knobs: the per-worker
// element capacity and the log verbosity. Populated once at startup
// from CLI flags and treated as read-mostly thereafter.
type Config struct {
	MaxSize   int
	Verbosity int
}

type globalConfigOwner struct {
	ptr atomic.Pointer[Config]
}

// Get returns the current config. Lock-free on the read path.
func (g *globalConfigOwner) Get() *Config {
	c := g.ptr.Load()
	if c == nil {
		return &Config{}
	}
	return c
}

// Put atomically replaces the config. Called once by cmd/coordinator
// after parsing flags.
func (g *globalConfigOwner) Put(c *Config) {
	g.ptr.Store(c)
}

// GCO is the process-wide Global Config Owner.
var GCO = &globalConfigOwner{}
