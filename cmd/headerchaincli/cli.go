// Package headerchaincli is the command line entry point: it runs the header chain server and
// relay, and talks to a running server.
package headerchaincli

import (
	"io"
	"os"

	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/urfave/cli/v2"
)

const progname = "headerchain"

// NewApp builds the command tree. Output of the client commands goes to out.
func NewApp(version, commit string, out io.Writer) *cli.App {
	return &cli.App{
		Name:                 progname,
		Usage:                "Proof-of-work header chain verifier",
		Version:              version + " (" + commit + ")",
		Writer:               out,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			serveCommand(),
			initCommand(),
			updateCommand(),
			infoCommand(),
			relayCommand(),
			digestCommand(),
			targetCommand(),
		},
	}
}

func Start(args []string, version, commit string) error {
	return NewApp(version, commit, os.Stdout).Run(args)
}

func newLogger(tSettings *settings.Settings, service string) ulogger.Logger {
	return ulogger.InitLogger(service, tSettings.LogLevel, tSettings.LoggerType)
}

var senderFlag = &cli.StringFlag{
	Name:    "sender",
	Usage:   "identity sent in the X-Sender header",
	EnvVars: []string{"HEADERCHAIN_SENDER"},
}

var addressFlag = &cli.StringFlag{
	Name:  "address",
	Usage: "base URL of the header chain server (default headerchain_httpAddress)",
}
