// cnhash computes CryptoNight (cn/0) digests from the command line.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pilipandr770/cryptonight"
)

func main() {
	app := &cli.App{
		Name:  "cnhash",
		Usage: "compute CryptoNight (cn/0) digests",
		Commands: []*cli.Command{
			{
				Name:  "sum",
				Usage: "hash a hex-encoded blob, or stdin if no blob is given",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "hex",
						Usage: "hex-encoded input blob",
					},
				},
				Action: sumAction,
			},
			{
				Name:  "try",
				Usage: "hash a mining blob with a nonce and compare against a target",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "blob",
						Usage:    "hex-encoded block template blob (at most 256 bytes)",
						Required: true,
					},
					&cli.UintFlag{
						Name:  "nonce",
						Usage: "nonce to write at blob offset 39",
					},
					&cli.Uint64Flag{
						Name:  "target",
						Usage: "64-bit share target",
						Value: math.MaxUint64,
					},
				},
				Action: tryAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "cnhash:", err)
		os.Exit(1)
	}
}

func sumAction(c *cli.Context) error {
	var (
		input []byte
		err   error
	)
	if s := c.String("hex"); s != "" {
		input, err = hex.DecodeString(s)
		if err != nil {
			return fmt.Errorf("decode input: %w", err)
		}
	} else {
		input, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	fmt.Printf("%x\n", cryptonight.Sum(input))
	return nil
}

func tryAction(c *cli.Context) error {
	blob, err := hex.DecodeString(c.String("blob"))
	if err != nil {
		return fmt.Errorf("decode blob: %w", err)
	}

	sum, ok, err := cryptonight.TryHash(blob, uint32(c.Uint("nonce")), c.Uint64("target"))
	if err != nil {
		return err
	}

	fmt.Printf("%x\n", sum)
	if !ok {
		return cli.Exit("target not met", 2)
	}
	fmt.Println("target met")
	return nil
}
