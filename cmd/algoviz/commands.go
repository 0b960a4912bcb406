package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/san-kum/algoviz/internal/automation"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/embed"
	"github.com/san-kum/algoviz/internal/generator"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/render"
	"github.com/san-kum/algoviz/internal/session"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultWidth = 80

// input is the algorithm plus the data and params a command runs it with.
type input struct {
	algo   generator.Algorithm
	data   []step.Value
	params map[string]any
}

// resolveInput layers the config file, the first preset, --preset, --input
// and --param, later sources winning.
func resolveInput(cmd *cobra.Command, args []string) (*input, error) {
	name := cfg.Algorithm
	if len(args) > 0 {
		name = args[0]
	}
	algo, err := registry.Get(name)
	if err != nil {
		return nil, err
	}

	in := &input{algo: algo, params: map[string]any{}}
	if cfg.Algorithm == algo.Name {
		in.data = step.CloneValues(cfg.Data)
		for k, v := range cfg.Params {
			in.params[k] = v
		}
	} else if presets := config.ListPresets(algo.Name); len(presets) > 0 {
		p := config.GetPreset(algo.Name, presets[0])
		in.data, in.params = p.Data, p.Params
	}

	if cmd.Flags().Changed("preset") {
		p := config.GetPreset(algo.Name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s (try: %s)", preset, algo.Name, strings.Join(config.ListPresets(algo.Name), ", "))
		}
		in.data, in.params = p.Data, p.Params
	}
	if cmd.Flags().Changed("input") {
		in.data, err = parseData(algo, dataFlag)
		if err != nil {
			return nil, err
		}
	}
	for k, raw := range paramFlag {
		spec, ok := algo.Param(k)
		if !ok {
			return nil, fmt.Errorf("%s has no parameter %q", algo.Name, k)
		}
		v, err := spec.Parse(raw)
		if err != nil {
			return nil, err
		}
		in.params[k] = v
	}

	logger.Debug("resolved input", "algorithm", algo.Name, "items", len(in.data), "params", in.params)
	return in, nil
}

// parseData splits a comma separated list into items of the algorithm's
// data type.
func parseData(algo generator.Algorithm, raw string) ([]step.Value, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	data := make([]step.Value, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if algo.Data != generator.Number {
			data = append(data, step.Text(p))
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", session.ErrInvalidNumber, p)
		}
		data = append(data, step.Int(n))
	}
	return data, nil
}

func visualizerFlags(cmd *cobra.Command) config.Visualizer {
	vis := cfg.Visualizer
	if cmd.Flags().Changed("speed") {
		vis.Speed = speed
	}
	return vis
}

func baseInterval(cmd *cobra.Command) time.Duration {
	if cmd.Flags().Changed("interval") {
		return time.Duration(interval) * time.Millisecond
	}
	return cfg.BaseInterval()
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func frameOptions(title string, vis config.Visualizer) render.Options {
	opts := render.OptionsFrom(vis, cfg.Theme)
	opts.Title = title
	opts.Width = terminalWidth()
	opts.Renderer = render.NewRenderer(os.Stdout)
	return opts
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func openStore() *storage.Store {
	return storage.New(cfg.DataDir).WithLogger(logger)
}

func playAlgorithm(cmd *cobra.Command, args []string) error {
	in, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}
	vis := visualizerFlags(cmd)
	v, err := session.New(in.algo, in.data, in.params, vis, session.WithLogger(logger))
	if err != nil {
		return err
	}

	if err := autoplay(v.Store(), frameOptions(in.algo.Title, vis), baseInterval(cmd)); err != nil {
		return err
	}

	if save {
		runID, err := openStore().Save(in.algo.Name, v.Data(), v.Params(), v.Store().Steps())
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Printf("run saved: %s\n", runID)
	}
	return nil
}

// autoplay draws the first frame and plays the rest in place until the
// sequence ends or the process is interrupted.
func autoplay(s *player.Store, opts render.Options, base time.Duration) error {
	ctx, cancel := signalContext()
	defer cancel()

	live := tui.NewLive(os.Stdout, opts, frameRate)
	live.Start()
	defer live.Stop()

	live.Draw(s)
	err := player.Autoplay(ctx, s, player.AutoplayOptions{BaseInterval: base, OnStep: live.OnStep})
	if errors.Is(err, context.Canceled) {
		fmt.Println("\ninterrupted")
		return nil
	}
	return err
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDATA\tPARAMS\tSUMMARY")
	for _, algo := range registry.List() {
		params := make([]string, 0, len(algo.Params))
		for _, p := range algo.Params {
			params = append(params, fmt.Sprintf("%s=%v", p.Name, p.Default))
		}
		data := string(algo.Data)
		if algo.Table != nil {
			data = "derived"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", algo.Name, data, strings.Join(params, " "), algo.Summary)
	}
	return w.Flush()
}

func printSteps(cmd *cobra.Command, args []string) error {
	in, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}
	f, err := storage.ParseFormat(format)
	if err != nil {
		return err
	}

	data, seq, err := in.algo.Run(in.data, in.params)
	if err != nil {
		return err
	}
	run := storage.Run{
		Meta: storage.RunMetadata{
			Algorithm: in.algo.Name,
			Timestamp: time.Now(),
			Data:      data,
			Params:    in.params,
			Steps:     len(seq),
			Result:    storage.FinalResult(seq),
		},
		Sequence: seq,
	}

	if save {
		run.Meta.ID, err = openStore().Save(in.algo.Name, data, in.params, seq)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "run saved: %s\n", run.Meta.ID)
	}
	return storage.Export(os.Stdout, f, run)
}

func traceAlgorithm(cmd *cobra.Command, args []string) error {
	in, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}
	vis := cfg.Visualizer
	v, err := session.New(in.algo, in.data, in.params, vis, session.WithLogger(logger))
	if err != nil {
		return err
	}
	s := v.Store()
	width := terminalWidth()

	switch {
	case markdown:
		md := render.Markdown(in.algo.Title, v.Data(), s.Steps())
		out, err := render.RenderMarkdown(md, "auto", width)
		if err != nil {
			return err
		}
		fmt.Print(out)
	case animate:
		if err := autoplay(s, frameOptions(in.algo.Title, vis), cfg.BaseInterval()); err != nil {
			return err
		}
	default:
		opts := frameOptions(in.algo.Title, vis)
		for {
			fmt.Println(render.Frame(s, opts))
			if s.IsAtEnd() {
				break
			}
			s.Next()
		}
	}

	if stats {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\nMETRIC\tVALUE")
		for _, r := range metrics.Collect(s.Steps(), metrics.Standard(len(v.Data()))...) {
			fmt.Fprintf(w, "%s\t%g\n", r.Name, r.Value)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if plotVar != "" {
		chart, err := render.Plot(s.Steps(), plotVar, min(width-10, 60), 10)
		if err != nil {
			return fmt.Errorf("%w (numeric variables: %s)", err, strings.Join(render.NumericVars(s.Steps()), ", "))
		}
		fmt.Println()
		fmt.Println(chart)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := openStore().List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tSTEPS\tRESULT\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", r.ID, r.Algorithm, r.Steps, r.Result, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	f, err := storage.ParseFormat(format)
	if err != nil {
		return err
	}
	run, err := openStore().LoadRun(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	if err := storage.Export(out, f, *run); err != nil {
		return err
	}
	if output != "" {
		fmt.Printf("exported %s to %s\n", run.Meta.ID, output)
	}
	return nil
}

func playRun(cmd *cobra.Command, args []string) error {
	run, err := openStore().LoadRun(args[0])
	if err != nil {
		return err
	}
	vis := visualizerFlags(cmd)
	v := session.NewStatic(run.Meta.Data, run.Sequence, vis, session.WithLogger(logger))
	return autoplay(v.Store(), frameOptions(run.Meta.Algorithm, vis), baseInterval(cmd))
}

func inspectDocument(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	specs, err := embed.Parse(f)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		fmt.Printf("no <%s> tags in %s\n", embed.TagName, args[0])
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSOURCE\tITEMS\tSTEPS\tRESULT\tINTERACTIVE")
	for i, spec := range specs {
		source := spec.Algorithm
		if spec.Steps != "" {
			source = spec.Steps
		}
		v, err := session.FromSpec(spec, registry, session.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(w, "%d\t%s\t-\t-\terror: %v\t-\n", i, source, err)
			continue
		}
		seq := v.Store().Steps()
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%t\n", i, source, len(v.Data()), len(seq), storage.FinalResult(seq), v.Interactive())
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	runner := &automation.Runner{Registry: registry, Store: openStore(), Log: logger}
	results, err := runner.RunScenario(ctx, scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tALGORITHM\tSTEPS\tRESULT\tRUN")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", i+1, r.Algorithm, r.Steps, r.Result, r.RunID)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	in, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	runner := &automation.Runner{Registry: registry, Log: logger}
	results, err := runner.RunSweep(ctx, &automation.ParameterSweep{
		Algorithm: in.algo.Name,
		Data:      in.data,
		Params:    in.params,
		ParamName: sweepParam,
		Min:       sweepMin,
		Max:       sweepMax,
		Stride:    sweepStep,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTEPS\tRESULT\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%s\n", r.Value, r.Steps, r.Result)
	}
	return w.Flush()
}

func runRandom(cmd *cobra.Command, args []string) error {
	algo, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	params := map[string]any{}
	for k, raw := range paramFlag {
		spec, ok := algo.Param(k)
		if !ok {
			return fmt.Errorf("%s has no parameter %q", algo.Name, k)
		}
		if params[k], err = spec.Parse(raw); err != nil {
			return err
		}
	}
	ctx, cancel := signalContext()
	defer cancel()

	runner := &automation.Runner{Registry: registry, Log: logger}
	results, err := runner.RunRandomTrials(ctx, &automation.RandomTrials{
		Algorithm: algo.Name,
		Params:    params,
		Size:      trialSize,
		Trials:    trials,
		Seed:      trialSeed,
	})
	if err != nil {
		return err
	}

	lo, hi, mean := automation.StepStats(results)
	total := 0
	for _, r := range results {
		total += r.Comparisons
	}
	fmt.Printf("%s: %d trials of %d items\n", algo.Name, len(results), trialSize)
	fmt.Printf("  steps  min %d  max %d  mean %.1f\n", lo, hi, mean)
	if len(results) > 0 {
		fmt.Printf("  comparisons  mean %.1f\n", float64(total)/float64(len(results)))
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	in, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}
	v, err := session.New(in.algo, in.data, in.params, cfg.Visualizer, session.WithLogger(logger))
	if err != nil {
		return err
	}
	s := v.Store()
	target := stepAt
	if target < 0 {
		target = s.Len() - 1
	}
	if !s.Goto(target) {
		return fmt.Errorf("step %d out of range (0-%d)", target, s.Len()-1)
	}

	opts := render.OptionsFrom(cfg.Visualizer, cfg.Theme)
	opts.Title = in.algo.Title
	svg := render.SVG(s, opts)

	if output == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote step %d/%d to %s\n", target+1, s.Len(), output)
	return nil
}
