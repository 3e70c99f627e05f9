package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Makepad-fr/spinwin/internal/auth"
	"github.com/Makepad-fr/spinwin/internal/config"
	"github.com/Makepad-fr/spinwin/internal/generate"
	"github.com/Makepad-fr/spinwin/internal/generate/llm"
	"github.com/Makepad-fr/spinwin/internal/logger"
	"github.com/Makepad-fr/spinwin/internal/model"
	"github.com/Makepad-fr/spinwin/internal/store/preset"
	"github.com/Makepad-fr/spinwin/internal/tui"
	"github.com/Makepad-fr/spinwin/internal/ui"
	"github.com/Makepad-fr/spinwin/internal/wheel"
)

// Options carry root flags, config and the process streams.
type Options struct {
	Config  config.Config
	Version string

	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Overridable for tests.
	RNG         wheel.RNG
	Generator   generate.Generator
	Interactive func(tui.Options) (wheel.State, error)
}

type runner struct {
	opt Options
	log *slog.Logger
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Interactive == nil {
		opt.Interactive = tui.Run
	}

	cmd, a := "play", args
	if len(args) > 0 {
		cmd, a = args[0], args[1:]
	}

	// The TUI owns the terminal, so it only logs to LOG_FILE.
	var fallback io.Writer = opt.Stderr
	if cmd == "play" {
		fallback = nil
	}
	log, closeLog, err := logger.New(logger.Config{
		Level:   opt.Config.LogLevel,
		Format:  opt.Config.LogFormat,
		File:    opt.Config.LogFile,
		Version: opt.Version,
	}, fallback)
	if err != nil {
		ui.Fail(opt.Stderr, "logger: "+err.Error())
		return 1
	}
	defer closeLog()
	slog.SetDefault(log)

	r := &runner{opt: opt, log: log}

	switch cmd {
	case "help", "-h", "--help":
		r.printHelp()
		return 0
	case "play":
		return r.doPlay(a)
	case "once":
		return r.doOnce(a)
	case "slices":
		return r.doSlices(a)
	case "svg":
		return r.doSVG(a)
	case "generate", "gen":
		return r.doGenerate(a)
	case "auth":
		if len(a) == 0 {
			r.fail("usage: spin auth <login|logout|status>")
			return 2
		}
		switch a[0] {
		case "login":
			return r.doAuthLogin()
		case "logout":
			return r.doAuthLogout()
		case "status":
			return r.doAuthStatus()
		default:
			r.fail("usage: spin auth <login|logout|status>")
			return 2
		}
	}

	r.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(opt.Stderr)
	r.printHelp()
	return 2
}

// PrintHelp writes usage to w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `spin - spin the wheel

Usage:
  spin [root flags] <subcommand> [args]

Subcommands:
  play [labels...]              Interactive wheel (default)
  once [-json] [labels...]      Spin once and print the winner
  slices [labels...]            Print slice geometry
  svg [-o file] [-rotation deg] [labels...]
                                Write the wheel as SVG
  generate [-o file] <theme...> Ask the generator for labels
  auth <login|logout|status>    Manage the generation API key

Labels come from the arguments, else SPINWIN_PRESET, else ./spinwin.json,
else a food wheel.

Examples:
  spin
  spin once Pizza Sushi Tacos
  spin svg -o wheel.svg -rotation 370 A B C D
  spin generate -o movies.json "movie night"
`)
}

func (r *runner) printHelp() { PrintHelp(r.opt.Stdout) }

func (r *runner) ok(msg string)   { ui.OK(r.opt.Stdout, msg) }
func (r *runner) fail(msg string) { ui.Fail(r.opt.Stderr, msg) }

func (r *runner) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.opt.Stderr)
	return fs
}

// labels resolves the starting option list.
func (r *runner) labels(args []string) ([]string, error) {
	if len(args) > 0 {
		return model.Compact(args), nil
	}
	if p := r.opt.Config.Preset; p != "" {
		labels, err := preset.Load(p)
		if err != nil {
			return nil, err
		}
		if labels = model.Compact(labels); len(labels) > 0 {
			return labels, nil
		}
	}
	labels, err := preset.LoadDefault()
	if err != nil {
		return nil, err
	}
	if labels = model.Compact(labels); len(labels) > 0 {
		return labels, nil
	}
	return model.DefaultLabels, nil
}

func (r *runner) generator() generate.Generator {
	if r.opt.Generator != nil {
		return r.opt.Generator
	}
	c := r.opt.Config
	client := llm.NewClient(&http.Client{}, auth.Key(), c.BaseURL, c.Model, c.FallbackModels, r.log)
	return generate.NewCached(client, c.CacheSize, c.CacheTTL, r.log)
}

func (r *runner) randomizer() *wheel.Randomizer {
	return wheel.NewRandomizer(r.opt.RNG)
}

// -------------- subcommand impls ----------------

func (r *runner) doPlay(args []string) int {
	labels, err := r.labels(args)
	if err != nil {
		r.fail("load: " + err.Error())
		return 1
	}
	c := r.opt.Config
	final, err := r.opt.Interactive(tui.Options{
		Items:      model.NewList(labels...),
		Randomizer: r.randomizer(),
		Duration:   c.SpinDuration,
		Generator:  r.generator(),
		Timeout:    c.LLMTimeout,
		Logger:     r.log,
		Theme:      ui.Current(),
	})
	if err != nil {
		r.fail("tui: " + err.Error())
		return 1
	}
	if final.Winner != nil {
		r.ok("winner: " + final.Winner.Item.Label)
	}
	return 0
}

type onceResult struct {
	Winner   string   `json:"winner"`
	Index    int      `json:"index"`
	Rotation float64  `json:"rotation"`
	Items    []string `json:"items"`
}

func (r *runner) doOnce(args []string) int {
	fs := r.flags("once")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	wait := fs.Bool("wait", false, "wait the full spin duration before resolving")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	labels, err := r.labels(fs.Args())
	if err != nil {
		r.fail("load: " + err.Error())
		return 1
	}

	d := time.Duration(0)
	if *wait {
		d = r.opt.Config.SpinDuration
	}
	m := wheel.NewMachine(model.NewList(labels...),
		wheel.WithRandomizer(r.randomizer()),
		wheel.WithDuration(d),
		wheel.WithLogger(r.log),
	)
	s := wheel.NewSession(m, wheel.WithNotices(func(n wheel.Notice) { r.fail(n.Text) }))
	defer s.Close()

	if !s.Spin() {
		return 2
	}
	ctx := logger.WithSpin(context.Background(), uint64(s.State().Token))
	ctx, cancel := context.WithTimeout(ctx, d+5*time.Second)
	defer cancel()
	st, err := s.Wait(ctx)
	if err != nil || st.Winner == nil {
		r.fail("spin did not settle")
		return 1
	}
	logger.FromContext(ctx, r.log).Debug("once resolved", "index", st.Winner.Index, "rotation", st.Rotation)

	if *asJSON {
		enc := json.NewEncoder(r.opt.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(onceResult{
			Winner:   st.Winner.Item.Label,
			Index:    st.Winner.Index,
			Rotation: st.Rotation,
			Items:    st.Items.Labels(),
		}); err != nil {
			r.fail("encode: " + err.Error())
			return 1
		}
		return 0
	}
	t := ui.Current()
	fmt.Fprintln(r.opt.Stdout, ui.Panel(
		t.Title.Render("WINNER: "+st.Winner.Item.Label),
		t.Muted.Render(fmt.Sprintf("slice %d of %d, rotation %.2f°", st.Winner.Index+1, st.Items.Len(), st.Rotation)),
	))
	return 0
}

func (r *runner) doSlices(args []string) int {
	labels, err := r.labels(args)
	if err != nil {
		r.fail("load: " + err.Error())
		return 1
	}
	if len(labels) == 0 {
		r.fail("no items")
		return 2
	}
	t := ui.Current()
	slices := wheel.ComputeSlices(model.NewList(labels...).Items())

	lines := []string{
		fmt.Sprintf("%s  %s %d  %s %.2f°",
			t.Title.Render("Slices"),
			t.Accent.Render("Total"), len(slices),
			t.Accent.Render("Span"), slices[0].Span()),
		"",
	}
	for _, s := range slices {
		flip := ""
		if s.Label.Flipped {
			flip = " flipped"
		}
		lines = append(lines, fmt.Sprintf("%s %s %-24s %7.2f° → %7.2f°  %s",
			t.Muted.Render(fmt.Sprintf("%2d.", s.Index+1)),
			ui.Swatch(s.Item.Color),
			s.Item.Label, s.Start, s.End,
			t.Muted.Render(fmt.Sprintf("label %.2f°%s", s.Label.Rotation, flip)),
		))
	}
	fmt.Fprintln(r.opt.Stdout, ui.Panel(lines...))
	return 0
}

func (r *runner) doSVG(args []string) int {
	fs := r.flags("svg")
	out := fs.String("o", "", "output file (default stdout)")
	rotation := fs.Float64("rotation", 0, "wheel rotation in degrees")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	labels, err := r.labels(fs.Args())
	if err != nil {
		r.fail("load: " + err.Error())
		return 1
	}
	items := model.NewList(labels...).Items()

	if *out == "" {
		if err := wheel.RenderSVG(r.opt.Stdout, items, *rotation, wheel.DefaultLayout); err != nil {
			r.fail("svg: " + err.Error())
			return 1
		}
		return 0
	}
	f, err := os.Create(*out)
	if err != nil {
		r.fail("svg: " + err.Error())
		return 1
	}
	if err := wheel.RenderSVG(f, items, *rotation, wheel.DefaultLayout); err != nil {
		f.Close()
		r.fail("svg: " + err.Error())
		return 1
	}
	if err := f.Close(); err != nil {
		r.fail("svg: " + err.Error())
		return 1
	}
	r.ok("wrote " + *out)
	return 0
}

func (r *runner) doGenerate(args []string) int {
	fs := r.flags("generate")
	out := fs.String("o", "", "save the labels as a preset file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	theme := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if theme == "" {
		r.fail("usage: spin generate [-o file] <theme...>")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.opt.Config.LLMTimeout)
	defer cancel()
	labels, err := r.generator().Generate(ctx, theme)
	if err == nil && len(labels) == 0 {
		err = generate.ErrEmptyResult
	}
	if err != nil {
		r.log.Error("generation failed", "theme", theme, "error", err)
		r.fail(generate.Message(err))
		if errors.Is(err, generate.ErrMissingCredential) {
			return 2
		}
		return 1
	}

	t := ui.Current()
	lines := []string{t.Title.Render(cases.Title(language.English).String(theme)), ""}
	for i, l := range labels {
		lines = append(lines, fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%2d.", i+1)), ui.Swatch(model.ColorAt(i)), l))
	}
	fmt.Fprintln(r.opt.Stdout, ui.Panel(lines...))

	if *out != "" {
		if err := preset.Save(*out, labels); err != nil {
			r.fail("save: " + err.Error())
			return 1
		}
		r.ok("saved " + *out)
	}
	return 0
}

// -------------- auth ----------------

func (r *runner) doAuthLogin() int {
	fmt.Fprint(r.opt.Stdout, "Paste your API key: ")
	sc := bufio.NewScanner(r.opt.Stdin)
	if !sc.Scan() {
		msg := "no input"
		if err := sc.Err(); err != nil {
			msg = err.Error()
		}
		fmt.Fprintln(r.opt.Stdout)
		r.fail("read key: " + msg)
		return 1
	}
	if err := auth.Set(sc.Text()); err != nil {
		if errors.Is(err, auth.ErrEmptyKey) {
			r.fail("empty key")
			return 2
		}
		r.fail("save key: " + err.Error())
		return 1
	}
	r.ok("logged in")
	return 0
}

func (r *runner) doAuthLogout() int {
	c, _ := auth.Get()
	if c != nil && c.Source != "file" {
		r.ok("key is provided by " + c.Source + " env var (nothing to delete)")
		return 0
	}
	if err := auth.Delete(); err != nil {
		r.fail("logout: " + err.Error())
		return 1
	}
	r.ok("logged out")
	return 0
}

func (r *runner) doAuthStatus() int {
	t := ui.Current()
	c, err := auth.Get()
	if err != nil {
		r.fail("status: " + err.Error())
		return 1
	}
	if c == nil {
		fmt.Fprintln(r.opt.Stdout, t.Muted.Render("not logged in"))
		fmt.Fprintln(r.opt.Stdout, "Run: spin auth login")
		return 0
	}
	lines := []string{
		"source: " + c.Source,
		"key:    " + auth.Mask(c.Key),
	}
	if !c.CreatedAt.IsZero() {
		lines = append(lines, "saved:  "+c.CreatedAt.UTC().Format(time.RFC3339))
	}
	lines = append(lines, t.Muted.Render("env override: "+strings.Join(auth.EnvKeys, ", ")))
	fmt.Fprintln(r.opt.Stdout, ui.Panel(lines...))
	return 0
}
