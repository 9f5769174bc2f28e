// Command client is a one-shot CLI against a running coordinator: each
// invocation opens a connection, issues a single request, prints the
// result, and exits. Only the "close" subcommand sends the wire close
// tag, so the coordinator and workers keep running across invocations.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/client"
	"github.com/nagielhachem/Distributed-Memory/cluster/meta"
	"github.com/nagielhachem/Distributed-Memory/cmn/cos"
	"github.com/nagielhachem/Distributed-Memory/cmn/nlog"
	"github.com/nagielhachem/Distributed-Memory/transport"
)

var commonFlags = []cli.Flag{
	cli.StringFlag{Name: "listen", Usage: "address to listen on, e.g. :9020", Required: true},
	cli.StringFlag{Name: "coordinator-addr", Usage: "coordinator's address", Required: true},
}

func main() {
	app := cli.NewApp()
	app.Name = "client"
	app.Usage = "issue one request to a running distributed array store"
	app.Commands = []cli.Command{
		{Name: "alloc", Flags: append(commonFlags, cli.IntFlag{Name: "size", Required: true}), Action: withClient(allocCmd)},
		{Name: "read", Flags: append(commonFlags, sliceFlags()...), Action: withClient(readCmd)},
		{Name: "write", Flags: append(append(commonFlags, sliceFlags()...), cli.StringFlag{Name: "values", Usage: "comma-separated ints, or a single int to broadcast", Required: true}), Action: withClient(writeCmd)},
		{Name: "delete", Flags: append(commonFlags, cli.Int64SliceFlag{Name: "key", Required: true}), Action: withClient(deleteCmd)},
		{Name: "close", Flags: commonFlags, Action: withClient(closeCmd)},
	}

	if err := app.Run(os.Args); err != nil {
		nlog.Errorf("client: %v", err)
		os.Exit(1)
	}
}

func sliceFlags() []cli.Flag {
	return []cli.Flag{
		cli.Int64Flag{Name: "key", Required: true},
		cli.IntFlag{Name: "start"},
		cli.IntFlag{Name: "stop", Value: meta.StopUnresolved},
		cli.IntFlag{Name: "step", Value: 1},
	}
}

func sliceFromFlags(c *cli.Context) meta.Slice {
	return meta.Slice{
		Key:   meta.BlockId(c.Int64("key")),
		Start: c.Int("start"),
		Stop:  c.Int("stop"),
		Step:  c.Int("step"),
	}
}

func withClient(fn func(*cli.Context, *client.Client) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		bus, err := transport.NewTCPBus(apc.RankClient, c.String("listen"), map[apc.Rank]string{
			apc.RankCoordinator: c.String("coordinator-addr"),
		}, 1<<16)
		if err != nil {
			return err
		}
		defer bus.Close(apc.RankClient)
		return fn(c, client.New(bus))
	}
}

func allocCmd(c *cli.Context, cl *client.Client) error {
	id, err := cl.Allocate(c.Int("size"))
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

func readCmd(c *cli.Context, cl *client.Client) error {
	blocks, err := cl.Read([]meta.Slice{sliceFromFlags(c)})
	if err != nil {
		return err
	}
	fmt.Println(string(cos.MustMarshal(blocks)))
	return nil
}

func writeCmd(c *cli.Context, cl *client.Client) error {
	value, err := parseValue(c.String("values"))
	if err != nil {
		return err
	}
	return cl.Write([]meta.Slice{sliceFromFlags(c)}, value)
}

func parseValue(raw string) (client.Value, error) {
	parts := strings.Split(raw, ",")
	xs := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return client.Value{}, fmt.Errorf("client: invalid value %q: %w", p, err)
		}
		xs[i] = n
	}
	if len(xs) == 1 {
		return client.ScalarValue(xs[0]), nil
	}
	return client.SeriesValue(xs), nil
}

func deleteCmd(c *cli.Context, cl *client.Client) error {
	raw := c.Int64Slice("key")
	ids := make([]meta.BlockId, len(raw))
	for i, v := range raw {
		ids[i] = meta.BlockId(v)
	}
	return cl.Delete(ids)
}

func closeCmd(_ *cli.Context, cl *client.Client) error {
	return cl.Close()
}
