// Command worker runs one worker rank as a standalone TCP process,
// holding local element storage addressed only by the coordinator.
package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cmn/nlog"
	"github.com/nagielhachem/Distributed-Memory/transport"
	"github.com/nagielhachem/Distributed-Memory/worker"
)

func main() {
	app := cli.NewApp()
	app.Name = "worker"
	app.Usage = "run one worker rank of the distributed array store"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "ordinal", Usage: "zero-based worker ordinal (rank = ordinal + 2)", Required: true},
		cli.StringFlag{Name: "listen", Usage: "address to listen on, e.g. :9010", Required: true},
		cli.StringFlag{Name: "coordinator-addr", Usage: "coordinator's address", Required: true},
		cli.IntFlag{Name: "verbose", Usage: "log verbosity (0-3)"},
		cli.IntFlag{Name: "compress-threshold", Usage: "lz4-compress payloads above this many bytes", Value: 1 << 16},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		nlog.Errorf("worker: %v", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	nlog.SetVerbosity(nlog.Verbosity(c.Int("verbose")))

	self := apc.WorkerRank(c.Int("ordinal"))
	peers := map[apc.Rank]string{apc.RankCoordinator: c.String("coordinator-addr")}

	bus, err := transport.NewTCPBus(self, c.String("listen"), peers, c.Int("compress-threshold"))
	if err != nil {
		return err
	}
	defer bus.Close(self)

	return worker.New(bus, self).Run()
}
