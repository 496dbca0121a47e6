package headerchaincli

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/services/headerchain"
	"github.com/bitcoin-sv/headerchain/services/relay"
	"github.com/bitcoin-sv/headerchain/settings"
	jsoniter "github.com/json-iterator/go"
	"github.com/ordishs/go-utils"
	"github.com/urfave/cli/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "initialize the chain on a running server",
		Flags: []cli.Flag{
			addressFlag,
			senderFlag,
			&cli.Uint64Flag{
				Name:  "start-height",
				Usage: "height of the anchor block (default headerchain_startHeight)",
			},
			&cli.StringFlag{
				Name:  "start-hash",
				Usage: "anchor block hash, 64 hex characters in wire byte order (default headerchain_startHash)",
			},
			&cli.StringFlag{
				Name:  "bits",
				Usage: "minimum difficulty as compact bits, decimal or 0x prefixed hex (default headerchain_minDifficultyBits)",
			},
			&cli.Uint64Flag{
				Name:  "min-update-length",
				Usage: "minimum headers per update (default headerchain_minUpdateLength)",
			},
		},
		Action: func(c *cli.Context) error {
			tSettings := settings.NewSettings()

			req, err := initRequestFromFlags(c, tSettings)
			if err != nil {
				return err
			}

			client, err := newClient(c, tSettings)
			if err != nil {
				return err
			}

			if err = client.Initialize(c.Context, senderOrDefault(c, tSettings.ClientName), req); err != nil {
				return err
			}

			return printInfo(c, client)
		},
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "submit a batch of consecutive hex encoded block headers",
		ArgsUsage: "[header...]",
		Flags: []cli.Flag{
			addressFlag,
			senderFlag,
			&cli.StringFlag{
				Name:  "file",
				Usage: "read headers from a file, one per line; - reads stdin",
			},
		},
		Action: func(c *cli.Context) error {
			tSettings := settings.NewSettings()

			headers, err := headersFromInput(c)
			if err != nil {
				return err
			}

			client, err := newClient(c, tSettings)
			if err != nil {
				return err
			}

			if err = client.UpdateBlockOffset(c.Context, senderOrDefault(c, tSettings.ClientName), headers); err != nil {
				return err
			}

			return printInfo(c, client)
		},
	}
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "show the chain state of a running server",
		Flags: []cli.Flag{addressFlag},
		Action: func(c *cli.Context) error {
			client, err := newClient(c, settings.NewSettings())
			if err != nil {
				return err
			}

			return printInfo(c, client)
		},
	}
}

func relayCommand() *cli.Command {
	return &cli.Command{
		Name:  "relay",
		Usage: "feed a running server with headers from the configured bitcoin node",
		Flags: []cli.Flag{
			addressFlag,
			&cli.BoolFlag{
				Name:  "once",
				Usage: "run a single sync and exit",
			},
		},
		Action: func(c *cli.Context) error {
			tSettings := settings.NewSettings()
			logger := newLogger(tSettings, "relay")

			client, err := newClient(c, tSettings)
			if err != nil {
				return err
			}

			source, err := relay.NewRPCSource(tSettings)
			if err != nil {
				return err
			}

			r := relay.New(logger, tSettings, source, client)

			if c.Bool("once") {
				n, err := r.Sync(c.Context)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(c.App.Writer, "submitted %d headers\n", n)

				return nil
			}

			return r.Start(c.Context, make(chan struct{}))
		},
	}
}

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:  "digest",
		Usage: "hash a block header and check its proof of work",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "header", Usage: "160 hex character serialized header"},
			&cli.Uint64Flag{Name: "version", Value: 1},
			&cli.StringFlag{Name: "prev", Usage: "previous block hash, display order"},
			&cli.StringFlag{Name: "merkle", Usage: "merkle root, display order"},
			&cli.Uint64Flag{Name: "time"},
			&cli.StringFlag{Name: "bits", Usage: "compact bits as 8 hex characters"},
			&cli.Uint64Flag{Name: "nonce"},
		},
		Action: func(c *cli.Context) error {
			header, err := headerFromFlags(c)
			if err != nil {
				return err
			}

			out := c.App.Writer
			_, _ = fmt.Fprintf(out, "header: %s\n", header.Hex())
			_, _ = fmt.Fprintf(out, "digest: %s\n", header.HashHex())
			_, _ = fmt.Fprintf(out, "hash:   %s\n", header.Hash().String())
			_, _ = fmt.Fprintf(out, "target: %s\n", header.Target().Text(16))
			_, _ = fmt.Fprintf(out, "pow:    %t\n", header.HasMetTargetDifficulty())

			return nil
		},
	}
}

func targetCommand() *cli.Command {
	return &cli.Command{
		Name:      "target",
		Usage:     "expand compact difficulty bits into a target",
		ArgsUsage: "<bits>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.NewInvalidArgumentError("expected exactly one bits argument")
			}

			compact, err := parseBits(c.Args().First())
			if err != nil {
				return err
			}

			nBit := model.NewNBitFromUint32(compact)

			out := c.App.Writer
			_, _ = fmt.Fprintf(out, "bits:       %s (%d)\n", nBit.String(), compact)
			_, _ = fmt.Fprintf(out, "target:     %s\n", nBit.CalculateTarget().Text(16))
			_, _ = fmt.Fprintf(out, "difficulty: %s\n", nBit.CalculateDifficulty().Text('f', 8))

			return nil
		},
	}
}

func defaultInitRequest(tSettings *settings.Settings) *model.InitRequest {
	return &model.InitRequest{
		StartHeight:       tSettings.HeaderChain.StartHeight,
		StartHash:         tSettings.HeaderChain.StartHash,
		MinDifficultyBits: tSettings.HeaderChain.MinDifficultyBits,
		MinUpdateLength:   tSettings.HeaderChain.MinUpdateLength,
	}
}

func initRequestFromFlags(c *cli.Context, tSettings *settings.Settings) (*model.InitRequest, error) {
	req := defaultInitRequest(tSettings)

	if c.IsSet("start-height") {
		height, err := toUint32(c.Uint64("start-height"), "start-height")
		if err != nil {
			return nil, err
		}

		req.StartHeight = height
	}

	if c.IsSet("start-hash") {
		req.StartHash = c.String("start-hash")
	}

	if c.IsSet("bits") {
		bits, err := parseBits(c.String("bits"))
		if err != nil {
			return nil, err
		}

		req.MinDifficultyBits = bits
	}

	if c.IsSet("min-update-length") {
		length, err := toUint32(c.Uint64("min-update-length"), "min-update-length")
		if err != nil {
			return nil, err
		}

		req.MinUpdateLength = length
	}

	return req, nil
}

// parseBits accepts decimal, 0x prefixed hex or bare 8 character hex.
func parseBits(s string) (uint32, error) {
	if len(s) == 8 && !strings.HasPrefix(s, "0x") {
		if v, err := strconv.ParseUint(s, 16, 32); err == nil {
			return uint32(v), nil
		}
	}

	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.NewInvalidArgumentError("invalid bits %q", s, err)
	}

	return uint32(v), nil
}

func toUint32(v uint64, name string) (uint32, error) {
	if v > uint64(^uint32(0)) {
		return 0, errors.NewInvalidArgumentError("%s %d does not fit in 32 bits", name, v)
	}

	return uint32(v), nil
}

func headerFromFlags(c *cli.Context) (*model.BlockHeader, error) {
	if c.IsSet("header") {
		return model.NewBlockHeaderFromString(c.String("header"))
	}

	version, err := toUint32(c.Uint64("version"), "version")
	if err != nil {
		return nil, err
	}

	timestamp, err := toUint32(c.Uint64("time"), "time")
	if err != nil {
		return nil, err
	}

	nonce, err := toUint32(c.Uint64("nonce"), "nonce")
	if err != nil {
		return nil, err
	}

	return model.NewBlockHeaderFromFields(version, c.String("prev"), c.String("merkle"), timestamp, c.String("bits"), nonce)
}

func headersFromInput(c *cli.Context) ([]string, error) {
	headers := c.Args().Slice()

	if file := c.String("file"); file != "" {
		var r io.Reader = os.Stdin

		if file != "-" {
			f, err := os.Open(file)
			if err != nil {
				return nil, errors.NewInvalidArgumentError("cannot open %s", file, err)
			}
			defer f.Close()

			r = f
		}

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
				headers = append(headers, line)
			}
		}

		if err := scanner.Err(); err != nil {
			return nil, errors.NewInvalidArgumentError("cannot read %s", file, err)
		}
	}

	if len(headers) == 0 {
		return nil, errors.NewInvalidArgumentError("no headers given")
	}

	return headers, nil
}

func senderOrDefault(c *cli.Context, fallback string) string {
	if sender := c.String("sender"); sender != "" {
		return sender
	}

	return fallback
}

func newClient(c *cli.Context, tSettings *settings.Settings) (*headerchain.Client, error) {
	logger := newLogger(tSettings, "client")

	if address := c.String("address"); address != "" {
		u, err := url.Parse(address)
		if err != nil {
			return nil, errors.NewConfigurationError("invalid address %q", address, err)
		}

		return headerchain.NewClientWithAddress(logger, u, tSettings.HeaderChain.APIPrefix), nil
	}

	return headerchain.NewClient(logger, tSettings)
}

func printInfo(c *cli.Context, client headerchain.ClientI) error {
	info, err := client.GetContractInfo(c.Context)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return errors.NewProcessingError("failed to encode info", err)
	}

	out := c.App.Writer
	_, _ = fmt.Fprintln(out, string(b))

	if hash, err := model.DecodeHex(info.CurrHash); err == nil {
		_, _ = fmt.Fprintf(out, "tip: %s at height %d\n", utils.ReverseAndHexEncodeSlice(hash), uint64(info.StartHeight)+uint64(info.CurrOffset))
	}

	return nil
}
