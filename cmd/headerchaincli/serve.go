package headerchaincli

import (
	"context"
	"net/http"
	_ "net/http/pprof" //nolint:gosec
	"os/signal"
	"syscall"

	"github.com/bitcoin-sv/headerchain/services/headerchain"
	"github.com/bitcoin-sv/headerchain/services/relay"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/stores/chainstate"
	"github.com/bitcoin-sv/headerchain/tracing"
	"github.com/ordishs/gocore"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the header chain server",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "relay",
				Usage: "also run a relay feeding the server from the configured bitcoin node",
			},
			&cli.BoolFlag{
				Name:  "init",
				Usage: "initialize the chain from the headerchain_start* settings when it is empty",
			},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	tSettings := settings.NewSettings()
	logger := newLogger(tSettings, progname)

	stats := gocore.Config().Stats()
	logger.Infof("STATS\n%s\nVERSION\n-------\n%s\n\n", stats, c.App.Version)

	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if profilerAddr, ok := gocore.Config().Get("profilerAddr"); ok && profilerAddr != "" {
		go func() {
			logger.Infof("Starting profiler on http://%s/debug/pprof", profilerAddr)
			//nolint:gosec
			if err := http.ListenAndServe(profilerAddr, nil); err != nil {
				logger.Warnf("profiler stopped: %v", err)
			}
		}()
	}

	if err := tracing.InitTracer(tSettings); err != nil {
		logger.Warnf("failed to initialize tracer: %v", err)
	}

	store, err := chainstate.NewStore(logger, tSettings, tSettings.HeaderChain.StoreURL)
	if err != nil {
		return err
	}

	server := headerchain.New(logger.New("hchain"), tSettings, store)

	if err = server.Init(ctx); err != nil {
		_ = store.Close()
		return err
	}

	if c.Bool("init") && server.State() == headerchain.StateUninitialized {
		if err = server.Initialize(ctx, tSettings.ClientName, defaultInitRequest(tSettings)); err != nil {
			_ = server.Stop(context.Background())
			return err
		}
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start(gCtx, make(chan struct{}))
	})

	if c.Bool("relay") {
		source, err := relay.NewRPCSource(tSettings)
		if err != nil {
			_ = server.Stop(context.Background())
			return err
		}

		r := relay.New(logger.New("relay"), tSettings, source, server)

		g.Go(func() error {
			return r.Start(gCtx, make(chan struct{}))
		})
	}

	err = g.Wait()

	logger.Infof("shutting down")

	if stopErr := server.Stop(context.Background()); stopErr != nil {
		logger.Errorf("error stopping server: %v", stopErr)
	}

	if shutdownErr := tracing.ShutdownTracer(context.Background(), logger); shutdownErr != nil {
		logger.Errorf("error shutting down tracer: %v", shutdownErr)
	}

	return err
}
