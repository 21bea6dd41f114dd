package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"heartrisk/internal/bootstrap"
	intakeinadapter "heartrisk/internal/modules/intake/adapter/in"
	intakedto "heartrisk/internal/modules/intake/dto"
	"heartrisk/internal/platform/config"
	apperrors "heartrisk/internal/platform/errors"
	"heartrisk/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOptions struct {
	configPath string
	baseURL    string
	timeout    time.Duration
	logLevel   string
	logPath    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "heartrisk",
		Short:         "Heart attack risk intake and advisor chat",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file")
	flags.StringVar(&opts.baseURL, "base-url", config.DefaultBaseURL, "advisory backend base URL")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (0 waits indefinitely)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: trace|debug|info|warn|error")
	flags.StringVar(&opts.logPath, "log-file", "", "write logs to this file")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newPredictCmd(opts))
	root.AddCommand(newDeriveCmd(opts))
	root.AddCommand(newChatCmd(opts))
	return root
}

// resolveConfig layers the config file under explicitly set flags.
func resolveConfig(cmd *cobra.Command, opts *globalOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogPath = opts.logPath
	}
	return config.New(cfg.BaseURL, cfg.Timeout, cfg.LogLevel, cfg.LogPath)
}

func loadApp(cmd *cobra.Command, opts *globalOptions, logOut io.Writer) (*bootstrap.App, hclog.Logger, io.Closer, error) {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, closer, err := logging.New(cfg.LogLevel, cfg.LogPath, logOut)
	if err != nil {
		return nil, nil, nil, err
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		_ = closer.Close()
		return nil, nil, nil, err
	}
	return app, logger, closer, nil
}

func runTUI(cmd *cobra.Command, opts *globalOptions) error {
	// stderr belongs to the alt screen; logs go to --log-file or nowhere
	app, _, closer, err := loadApp(cmd, opts, io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()
	return bootstrap.RunTUI(app)
}

func newTUICmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive intake form and advisor chat",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func newPredictCmd(opts *globalOptions) *cobra.Command {
	var inputPath, dob string
	var watch bool
	values := make(map[string]*string, len(intakedto.NumericFields))
	flagValues := make(map[string]*bool, len(intakedto.FlagFields))

	predict := &cobra.Command{
		Use:   "predict [--input form.yaml] [--watch]",
		Short: "Submit the intake form for a risk prediction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if watch && strings.TrimSpace(inputPath) == "" {
				return fmt.Errorf("--watch requires --input")
			}
			app, logger, closer, err := loadApp(cmd, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			overlay := func(form intakedto.FormInput) intakedto.FormInput {
				return overlayFlags(cmd, form, dob, values, flagValues)
			}
			form := intakedto.FormInput{}
			if inputPath != "" {
				if form, err = intakeinadapter.LoadFormFile(inputPath); err != nil {
					return err
				}
			}
			if !watch {
				out, err := app.IntakeCLI.Submit(cmd.Context(), overlay(form))
				if err != nil {
					return err
				}
				printPrediction(cmd.OutOrStdout(), out)
				return nil
			}
			return watchPredict(cmd, app, logger, inputPath, overlay(form), overlay)
		},
	}

	f := predict.Flags()
	f.StringVar(&inputPath, "input", "", "YAML form file")
	f.BoolVar(&watch, "watch", false, "re-submit whenever the input file changes")
	f.StringVar(&dob, "dob", "", "date of birth (YYYY-MM-DD)")
	for _, field := range intakedto.NumericFields {
		values[field.Name] = f.String(flagName(field.Name), "", field.Label)
	}
	for _, flag := range intakedto.FlagFields {
		flagValues[flag.Name] = f.Bool(flagName(flag.Name), false, flag.Label)
	}
	return predict
}

// watchPredict submits once, then again on every change of the form file.
// Changes arriving while a prediction is outstanding are skipped.
func watchPredict(cmd *cobra.Command, app *bootstrap.App, logger hclog.Logger, path string, initial intakedto.FormInput, overlay func(intakedto.FormInput) intakedto.FormInput) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	var mu sync.Mutex
	var wg sync.WaitGroup
	submit := func(form intakedto.FormInput) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := app.IntakeCLI.Submit(ctx, form)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, apperrors.ErrBusy):
				logger.Info("change skipped, prediction in flight", "path", path)
			case err != nil:
				_, _ = fmt.Fprintf(out, "prediction failed: %v\n", err)
			default:
				printPrediction(out, res)
			}
		}()
	}

	submit(initial)
	err := intakeinadapter.WatchFormFile(ctx, path,
		func(ev intakeinadapter.FormEvent) {
			if app.IntakeCLI.Busy() {
				logger.Info("change skipped, prediction in flight", "path", ev.Path)
				return
			}
			submit(overlay(ev.Form))
		},
		func(err error) {
			logger.Warn("form file unreadable", "path", path, "error", err)
		},
	)
	wg.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newDeriveCmd(opts *globalOptions) *cobra.Command {
	var dob, weight, height string
	derive := &cobra.Command{
		Use:   "derive --dob <date> --weight <kg> --height <cm>",
		Short: "Print the age and BMI the form would submit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, closer, err := loadApp(cmd, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()
			out, err := app.IntakeCLI.Derive(cmd.Context(), dob, weight, height)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "age=%d bmi=%.2f\n", out.Age, out.BMI)
			return nil
		},
	}
	derive.Flags().StringVar(&dob, "dob", "", "date of birth (YYYY-MM-DD)")
	derive.Flags().StringVar(&weight, "weight", "", "weight in kg")
	derive.Flags().StringVar(&height, "height", "", "height in cm")
	return derive
}

func newChatCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the advisor one question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, closer, err := loadApp(cmd, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()
			out, err := app.ChatCLI.Send(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if out.Skipped {
				return fmt.Errorf("message is empty")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "you: %s\n", out.User.Text)
			if out.Stale {
				return fmt.Errorf("reply arrived after a newer message and was dropped")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "advisor: %s\n", out.Reply.Text)
			return nil
		},
	}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func flagName(wire string) string {
	return strings.ReplaceAll(wire, "_", "-")
}

// overlayFlags applies explicitly set command-line values over a form.
func overlayFlags(cmd *cobra.Command, form intakedto.FormInput, dob string, values map[string]*string, flags map[string]*bool) intakedto.FormInput {
	out := intakedto.FormInput{
		DateOfBirth: form.DateOfBirth,
		Values:      make(map[string]string, len(values)),
		Flags:       make(map[string]bool, len(flags)),
	}
	for k, v := range form.Values {
		out.Values[k] = v
	}
	for k, v := range form.Flags {
		out.Flags[k] = v
	}
	set := cmd.Flags()
	if set.Changed("dob") {
		out.DateOfBirth = dob
	}
	for name, v := range values {
		if set.Changed(flagName(name)) {
			out.Values[name] = *v
		}
	}
	for name, v := range flags {
		if set.Changed(flagName(name)) {
			out.Flags[name] = *v
		}
	}
	return out
}

func printPrediction(w io.Writer, out intakedto.PredictionOutput) {
	_, _ = fmt.Fprintf(w, "request=%s prediction=%d message=%q\n", out.RequestID, out.Prediction, out.Message)
	_, _ = fmt.Fprintf(w, "no_risk=%.1f%% risk=%.1f%% age=%d bmi=%.2f at=%s\n", out.NoRisk*100, out.Risk*100, out.Age, out.BMI, out.SubmittedAt)
}
