package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/charlotte-zhuang/wordle/config"
	"github.com/charlotte-zhuang/wordle/game"
	"github.com/charlotte-zhuang/wordle/priors"
	"github.com/charlotte-zhuang/wordle/scheduler"
	"github.com/charlotte-zhuang/wordle/storage"
	"github.com/charlotte-zhuang/wordle/weights"
	"github.com/charlotte-zhuang/wordle/wordle"
)

const usage = `usage: wordle [--config path] <command> [flags]

commands:
  convert   build the prior table from the frequency map
  solve     suggest guesses; type the feedback you got (e.g. BYGBB)
  play      play today's word
  bench     let the solver play random targets (--games N)
  stats     show recorded game statistics
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var configPath string

	flagSet := pflag.NewFlagSet("wordle", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: built-in defaults)")
	flagSet.BoolP("help", "h", false, "show help")
	flagSet.Usage = func() {
		fmt.Fprint(stderr, usage)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg.LogLevel, stderr))
	slog.Debug("config loaded", "data_dir", cfg.DataDir, "db_path", cfg.DBPath)

	command, rest := flagSet.Arg(0), flagSet.Args()[1:]
	switch command {
	case "convert":
		return runConvert(ctx, cfg, stdout)
	case "solve":
		return runSolve(ctx, cfg, stdin, stdout)
	case "play":
		return runPlay(ctx, cfg, stdin, stdout)
	case "bench":
		return runBench(ctx, cfg, rest, stdout, stderr)
	case "stats":
		return runStats(cfg, stdout)
	default:
		flagSet.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// newLogger builds a JSON logger at the configured level.
func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func runConvert(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	n, err := priors.Convert(ctx, cfg.FreqMapPath, cfg.WeightsPath, priors.Params{
		NCommon: cfg.NCommon,
		Width:   cfg.Width,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d words to %s\n", n, cfg.WeightsPath)
	return nil
}

func newSolver(cfg config.Config) (*wordle.Solver, error) {
	entries, err := weights.ReadFile(cfg.WeightsPath)
	if err != nil {
		return nil, err
	}
	return wordle.NewSolver(entries, wordle.WithWorkers(cfg.Workers))
}

func runSolve(ctx context.Context, cfg config.Config, stdin io.Reader, stdout io.Writer) error {
	solver, err := newSolver(cfg)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(stdin)
	for turn := 1; ; turn++ {
		guess, err := solver.Guess(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "guess %d: %s (%d candidates)\nfeedback> ", turn, guess, solver.Remaining())

		for {
			if !scanner.Scan() {
				fmt.Fprintln(stdout)
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "q" || line == "quit" {
				return nil
			}
			fb, err := wordle.ParseFeedback(line)
			if err != nil {
				fmt.Fprintf(stdout, "%v\nfeedback> ", err)
				continue
			}
			if fb.Solved() {
				fmt.Fprintf(stdout, "solved in %d\n", turn)
				return nil
			}
			err = solver.Update(fb)
			if err == nil {
				break
			}
			if !errors.Is(err, wordle.ErrNoCandidates) {
				return err
			}
			// Candidates are unchanged; ask again.
			fmt.Fprintf(stdout, "%v\nfeedback> ", err)
		}
	}
}

func runPlay(ctx context.Context, cfg config.Config, stdin io.Reader, stdout io.Writer) error {
	targets, err := wordle.LoadWordList(cfg.TestWordsPath)
	if err != nil {
		return err
	}
	adv, err := wordle.NewAdversary(targets, nil)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sched, err := scheduler.New(cfg.Timezone)
	if err != nil {
		return err
	}
	daily := game.NewDaily(adv, store, sched.Location())
	if err := daily.Restore(time.Now()); err != nil {
		return err
	}
	if err := sched.Daily(cfg.DailyTime, func() {
		if _, err := daily.Rotate(time.Now()); err != nil {
			slog.Error("daily rotation failed", "error", err)
		}
	}); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	rec := &gameRecorder{store: store}
	session := daily.NewSession()
	res := game.Result{Target: session.Target, PlayedAt: time.Now()}
	fmt.Fprintf(stdout, "word of %s: %d guesses allowed\n", session.Date, cfg.MaxTurns)

	scanner := bufio.NewScanner(stdin)
	for len(res.Guesses) < cfg.MaxTurns {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "guess %d> ", len(res.Guesses)+1)
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			return scanner.Err()
		}
		guess := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if guess == "q" || guess == "quit" {
			return nil
		}
		fb, err := session.Judge(guess)
		if err != nil {
			fmt.Fprintln(stdout, err)
			continue
		}
		res.Guesses = append(res.Guesses, guess)
		fmt.Fprintln(stdout, fb)
		if fb.Solved() {
			res.Solved = true
			break
		}
	}

	if res.Solved {
		fmt.Fprintf(stdout, "solved in %d\n", res.Turns())
	} else {
		fmt.Fprintf(stdout, "out of guesses, the word was %s\n", res.Target)
	}
	return rec.RecordGame(res)
}

func runBench(ctx context.Context, cfg config.Config, args []string, stdout, stderr io.Writer) error {
	var games int
	var record bool
	flagSet := pflag.NewFlagSet("bench", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.IntVarP(&games, "games", "n", 100, "number of games to play")
	flagSet.BoolVar(&record, "record", true, "store every game in the database")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	solver, err := newSolver(cfg)
	if err != nil {
		return err
	}
	targets, err := wordle.LoadWordList(cfg.TestWordsPath)
	if err != nil {
		return err
	}
	adv, err := wordle.NewAdversary(targets, nil)
	if err != nil {
		return err
	}

	var rec game.Recorder
	if record {
		store, err := storage.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = &gameRecorder{store: store}
	}

	runner := game.NewRunner(solver, adv, rec, cfg.MaxTurns)
	sum, err := runner.Bench(ctx, games)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "games: %d  solved: %d  mean guesses: %.3f\n", sum.Games, sum.Solved, sum.MeanGuesses)
	for _, k := range sum.Buckets() {
		fmt.Fprintf(stdout, "%3d: %d\n", k, sum.Histogram[k])
	}
	if len(sum.Missed) > 0 {
		fmt.Fprintf(stdout, "missed: %s\n", strings.Join(sum.Missed, " "))
	}
	return nil
}

func runStats(cfg config.Config, stdout io.Writer) error {
	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "games: %d  solved: %d  mean turns: %.3f  best: %d  worst: %d\n",
		st.Games, st.Solved, st.MeanTurns, st.BestTurns, st.WorstTurns)

	recent, err := store.RecentGames(10)
	if err != nil {
		return err
	}
	for _, g := range recent {
		status := "miss"
		if g.Solved {
			status = "ok"
		}
		fmt.Fprintf(stdout, "%s  %s  %-4s  %s\n",
			time.Unix(g.PlayedAt, 0).UTC().Format(time.DateTime), g.Target, status, strings.Join(g.Guesses, " "))
	}
	return nil
}

// --- Adapters to bridge package types ---

// gameRecorder bridges storage.Store to game.Recorder
type gameRecorder struct {
	store *storage.Store
}

func (a *gameRecorder) RecordGame(r game.Result) error {
	_, err := a.store.SaveGame(&storage.Game{
		Target:   r.Target,
		Guesses:  r.Guesses,
		Solved:   r.Solved,
		PlayedAt: r.PlayedAt.Unix(),
	})
	return err
}
