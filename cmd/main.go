// chatkeys - turn chat commands into timed key presses
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatkeys/internal/action"
	"chatkeys/internal/api"
	"chatkeys/internal/chat"
	"chatkeys/internal/config"
	"chatkeys/internal/control"
	"chatkeys/internal/debounce"
	"chatkeys/internal/dispatch"
	"chatkeys/internal/fatal"
	"chatkeys/internal/hotkey"
	"chatkeys/internal/input"
	"chatkeys/internal/keys"
	"chatkeys/internal/log"
	"chatkeys/internal/osutils"
	"chatkeys/internal/protocol"
	"chatkeys/internal/sentry"

	"github.com/spf13/cobra"
)

// shutdownTimeout bounds how long outstanding releases and the ingest
// server get to finish after exit is requested.
const shutdownTimeout = 2 * time.Second

var (
	version    = "0.1.0"
	configPath string
	dryRun     bool

	rootCmd = &cobra.Command{
		Use:   "chatkeys",
		Short: "chatkeys - press keys when chat asks for it",
		Long: `chatkeys reads chat messages and, when a message matches a configured
action, presses the action's keys, holds them and releases them.

Press the exit key once to shut down, twice to force it. The pause key
toggles dispatching on and off.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runService(cmd.OutOrStdout(), os.Stdin)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the configuration file")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log key events instead of injecting them")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal.Exit(fatal.CodeError, "chatkeys", err)
	}
}

// loadConfig loads the configuration. A missing file is replaced by the
// template and reported as an error so the user edits it first.
func loadConfig() (*config.Config, error) {
	mgr := config.NewManager(configPath)
	cfg, err := mgr.Load()
	if errors.Is(err, config.ErrTemplateCreated) {
		return nil, fmt.Errorf("%s not found, a template was written there; edit it and start again", mgr.Path())
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyLogLevel(name string) {
	if name == "" {
		log.WarningLog.Printf("log_level not found using '%s'", config.DefaultLogLevel)
		log.SetLevel(log.LevelInfo)
		return
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		log.WarningLog.Printf("Problem setting log_level, ignoring... (%v)", err)
		log.SetLevel(log.LevelInfo)
		return
	}
	log.SetLevel(lvl)
}

// sentryWriter forwards enabled log levels to Sentry as breadcrumbs.
func sentryWriter(l log.Level, w io.Writer) io.Writer {
	switch l {
	case log.LevelError:
		return sentry.NewWriter(w, sentry.LevelError)
	case log.LevelWarn:
		return sentry.NewWriter(w, sentry.LevelWarning)
	case log.LevelInfo:
		return sentry.NewWriter(w, sentry.LevelInfo)
	default:
		return w
	}
}

func newEmitter() input.Emitter {
	if dryRun {
		log.InfoLog.Println("Service: dry run, no keys will be injected")
		return input.DryRun{}
	}
	if err := osutils.CheckInjectionRights(); err != nil {
		log.WarningLog.Printf("Service: %v", err)
	}
	return input.NewInjector()
}

// service is everything runService wires together.
type service struct {
	cfg      *config.Config
	table    *action.Table
	state    *control.State
	engine   *dispatch.Engine
	listener *control.Listener
	ingest   *api.Server
	source   chat.Source
}

func runService(stdout io.Writer, stdin io.Reader) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := log.Initialize(cfg.LogPath()); err != nil {
		log.WarningLog.Printf("Service: %v, logging to stderr only", err)
	}
	defer log.Close()
	applyLogLevel(cfg.LogLevel)

	if err := sentry.Init(cfg.SentryDSN, version); err != nil {
		log.WarningLog.Printf("Service: sentry disabled: %v", err)
	}
	defer sentry.Flush()
	defer sentry.RecoverPanic()
	if sentry.IsEnabled() {
		log.SetWrapper(sentryWriter)
		defer log.SetWrapper(nil)
	}

	log.InfoLog.Printf("Service: chatkeys %s starting", version)

	ctx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	svc, err := newService(ctx, cfg, newEmitter(), hotkey.New, stdin)
	if err != nil {
		return err
	}
	sentry.SetContext(cfg.Channel, svc.table.Len())

	// After the first exit request a second Ctrl+C gets the default
	// behaviour and kills the process.
	context.AfterFunc(svc.state.Context(), stopSignals)

	return svc.run(stdout)
}

// newService validates cfg and builds every component. Only the ingest
// server is started here, so a taken port fails before anything else runs.
func newService(ctx context.Context, cfg *config.Config, emitter input.Emitter, newCapture func(...keys.Input) hotkey.Capture, stdin io.Reader) (*service, error) {
	table, err := action.Build(cfg)
	if err != nil {
		return nil, err
	}
	if missing := input.Unsupported(emitter, table.Inputs()); len(missing) > 0 {
		return nil, fmt.Errorf("%w: keys not supported on this platform: %v", action.ErrBuild, missing)
	}

	ctrl, err := control.ResolveKeys(cfg.ControlKeys.Exit, cfg.ControlKeys.Pause)
	if err != nil {
		return nil, err
	}

	state := control.NewState(ctx)
	s := &service{cfg: cfg, table: table, state: state}

	s.engine = dispatch.New(table, debounce.New(), emitter, state, dispatch.Options{
		Settle:     cfg.Settle(),
		OnFatal:    fatal.Handler("Dispatch"),
		OnDispatch: s.onDispatch,
	})

	s.listener = control.NewListener(state, ctrl, newCapture, func(code int) {
		fatal.Exit(code, "Control: exit pressed twice, forcing exit", nil)
	})

	var sources []chat.Source
	if addr := cfg.IngestAddr(); addr != "" {
		s.ingest = api.NewServer(cfg.Ingest.Token, s.status)
		if err := s.ingest.Start(addr); err != nil {
			return nil, fmt.Errorf("start ingest server: %w", err)
		}
		sources = append(sources, s.ingest)
	}
	if cfg.ReadStdin() && stdin != nil {
		sources = append(sources, chat.NewLineSource(stdin, "stdin"))
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no chat source, enable ingest.listen or ingest.stdin", config.ErrInvalid)
	}
	s.source = chat.Merge(sources...)

	return s, nil
}

// run consumes chat until exit is requested or every source has ended, then
// waits a bounded time for outstanding releases.
func (s *service) run(stdout io.Writer) error {
	if err := s.listener.Start(); err != nil {
		log.WarningLog.Printf("Service: control keys unavailable: %v", err)
	} else {
		defer s.listener.Stop()
	}

	log.InfoLog.Printf("Service: %d actions for channel %s", s.table.Len(), s.cfg.Channel)
	if s.ingest != nil {
		log.InfoLog.Printf("Service: accepting chat on http://%s/api/chat", s.ingest.Addr())
	}

	runErr := make(chan error, 1)
	go func() {
		runErr <- chat.Run(s.state.Context(), s.source, s.cfg.Channel, s.handle, stdout)
	}()

	var err error
	select {
	case <-s.state.Done():
		log.InfoLog.Println("Service: shutting down...")
		// no token may be handled once shutdown starts waiting on releases
		err = <-runErr
	case err = <-runErr:
		if err == nil {
			log.InfoLog.Println("Service: all chat sources ended, shutting down...")
		}
	}

	s.shutdown()
	return err
}

func (s *service) shutdown() {
	if s.ingest != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := s.ingest.Shutdown(ctx); err != nil {
			log.WarningLog.Printf("Service: ingest shutdown: %v", err)
		}
		cancel()
	}
	if !s.engine.Wait(shutdownTimeout) {
		log.WarningLog.Println("Service: releases still pending at exit")
	}
	log.InfoLog.Println("Service: stopped")
}

func (s *service) handle(text string) {
	outcome := s.engine.Handle(text)
	log.DebugLog.Printf("Service: %q -> %s", text, outcome)
}

func (s *service) onDispatch(a action.Action) {
	log.InfoLog.Printf("Service: %s", a)
	if s.ingest != nil {
		s.ingest.BroadcastDispatch(a)
	}
}

func (s *service) status() protocol.StatusPayload {
	st := s.engine.Status()
	return protocol.StatusPayload{
		Paused:   st.Paused,
		Exiting:  st.Exiting,
		InFlight: st.InFlight,
		Actions:  st.Actions,
	}
}
