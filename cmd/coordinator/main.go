// Command coordinator runs the coordinator rank as a standalone TCP
// process, talking to the client and every worker over
// transport.TCPBus.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli"

	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cmn"
	"github.com/nagielhachem/Distributed-Memory/cmn/nlog"
	"github.com/nagielhachem/Distributed-Memory/coord"
	"github.com/nagielhachem/Distributed-Memory/stats"
	"github.com/nagielhachem/Distributed-Memory/transport"
)

func main() {
	app := cli.NewApp()
	app.Name = "coordinator"
	app.Usage = "run the distributed array store's coordinator rank"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "listen", Usage: "address to listen on, e.g. :9001", Required: true},
		cli.StringFlag{Name: "client-addr", Usage: "client's address", Required: true},
		cli.StringSliceFlag{Name: "worker-addr", Usage: "worker address, repeatable in ascending worker-ordinal order"},
		cli.IntFlag{Name: "max-size", Usage: "per-worker element capacity", Required: true},
		cli.IntFlag{Name: "verbose", Usage: "log verbosity (0-3)"},
		cli.IntFlag{Name: "compress-threshold", Usage: "lz4-compress payloads above this many bytes", Value: 1 << 16},
		cli.StringFlag{Name: "metrics-listen", Usage: "address to serve /metrics on; empty disables it"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		nlog.Errorf("coordinator: %v", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	nlog.SetVerbosity(nlog.Verbosity(c.Int("verbose")))
	cmn.GCO.Put(&cmn.Config{MaxSize: c.Int("max-size"), Verbosity: c.Int("verbose")})

	workerAddrs := c.StringSlice("worker-addr")
	if len(workerAddrs) == 0 {
		return fmt.Errorf("coordinator: at least one --worker-addr is required")
	}

	peers := map[apc.Rank]string{apc.RankClient: c.String("client-addr")}
	for i, addr := range workerAddrs {
		peers[apc.WorkerRank(i)] = addr
	}

	bus, err := transport.NewTCPBus(apc.RankCoordinator, c.String("listen"), peers, c.Int("compress-threshold"))
	if err != nil {
		return err
	}
	defer bus.Close(apc.RankCoordinator)

	if addr := c.String("metrics-listen"); addr != "" {
		go serveMetrics(addr)
	}

	cd := coord.NewCoordinator(bus, len(workerAddrs), c.Int("max-size"))
	return cd.Run()
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(stats.Registry(), promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		nlog.Errorf("coordinator: metrics server: %v", err)
	}
}
