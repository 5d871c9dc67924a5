package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
	"github.com/goliatone/go-contactform/pkg/schedule"
)

// errRejected makes the process exit with status 1 without printing an
// error; the command already reported why.
var errRejected = errors.New("submission rejected")

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg    *config.Config
	logger *zap.Logger
	driver tui.PromptDriver
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut}
}

// promptDriver returns the injected driver, or a survey driver bound to the
// app streams when they are terminal files.
func (a *app) promptDriver() tui.PromptDriver {
	if a.driver != nil {
		return a.driver
	}
	in, inOK := a.in.(terminal.FileReader)
	out, outOK := a.out.(terminal.FileWriter)
	if !inOK || !outOK {
		return nil
	}
	return tui.NewSurveyDriverWithStdio(in, out, a.errOut)
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags(), config.WithLogger(logging.BootstrapLogger()))
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := logging.BuildLogger(cfg.LogLevel, cfg.Env)
		if err != nil {
			return err
		}
		a.logger = logger
	}
	a.logger.Debug("configuration loaded",
		zap.String("source", cfg.Source),
		zap.Duration("reset_delay", cfg.ResetDelay),
		zap.Bool("strict_contract", cfg.StrictContract),
	)
	return nil
}

// sink logs accepted payloads, behind the contract guard when strict.
func (a *app) sink(ctx context.Context) (orchestrator.Sink, error) {
	sink := orchestrator.LogSink(a.logger)
	if !a.cfg.StrictContract {
		return sink, nil
	}
	contract, err := openapi.Load(ctx)
	if err != nil {
		return nil, err
	}
	return openapi.Guard(contract, sink, a.logger), nil
}

func (a *app) registry() (*render.Registry, error) {
	themeCfg, err := config.LoadRendererTheme(a.cfg)
	if err != nil {
		return nil, err
	}
	options := []vanilla.Option{}
	if themeCfg != nil {
		options = append(options, vanilla.WithTheme(themeCfg))
	}
	html, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(html, tui.NewRenderer(tui.DefaultTheme())), nil
}

// newForm builds a form for a command. A nil scheduler uses real time.
func (a *app) newForm(ctx context.Context, scheduler schedule.Scheduler, extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	sink, err := a.sink(ctx)
	if err != nil {
		return nil, fmt.Errorf("configure sink: %w", err)
	}
	registry, err := a.registry()
	if err != nil {
		return nil, fmt.Errorf("configure renderers: %w", err)
	}

	options := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithResetDelay(a.cfg.ResetDelay),
		orchestrator.WithSink(sink),
		orchestrator.WithRegistry(registry),
	}
	if scheduler != nil {
		options = append(options, orchestrator.WithScheduler(scheduler))
	}
	options = append(options, extra...)
	return orchestrator.New(options...), nil
}

// frozenClock never fires on its own, so snapshots taken after a submission
// still show the accepted state.
func frozenClock() schedule.Scheduler {
	return schedule.NewManual(time.Unix(0, 0))
}
