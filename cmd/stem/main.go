package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ttab/elephant-stem/internal"
	"github.com/ttab/elephant-stem/stemmer"
	"github.com/ttab/elephantine"
	"github.com/urfave/cli/v3"
)

func main() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("exiting: ",
			elephantine.LogKeyError, err)
		os.Exit(1)
	}

	languageFlag := cli.StringFlag{
		Name:    "language",
		Aliases: []string{"l"},
		Usage:   "Language name, alias or BCP 47 tag",
		Sources: cli.EnvVars("STEM_LANGUAGE"),
		Value:   "english",
	}

	runCmd := cli.Command{
		Name:        "run",
		Description: "Runs the stemming server",
		Action:      runServer,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Sources: cli.EnvVars("ADDR"),
				Value:   ":1080",
			},
			&cli.StringFlag{
				Name:    "profile-addr",
				Sources: cli.EnvVars("PROFILE_ADDR"),
				Value:   ":1081",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "debug",
			},
			&cli.IntFlag{
				Name:    "cache-size",
				Usage:   "Number of stems to cache, 0 disables the cache",
				Sources: cli.EnvVars("CACHE_SIZE"),
				Value:   65536,
			},
			&cli.IntFlag{
				Name:    "max-batch",
				Usage:   "Maximum number of words in a stem request",
				Sources: cli.EnvVars("MAX_BATCH"),
				Value:   internal.DefaultMaxBatch,
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Usage:   "Number of goroutines used per batch, defaults to GOMAXPROCS",
				Sources: cli.EnvVars("CONCURRENCY"),
			},
		},
	}

	wordCmd := cli.Command{
		Name:      "word",
		Usage:     "Stems the words given as arguments",
		ArgsUsage: "<word>...",
		Action:    stemWords,
		Flags: []cli.Flag{
			&languageFlag,
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Show the normalized word and whether any rule fired",
			},
		},
	}

	fileCmd := cli.Command{
		Name:   "file",
		Usage:  "Stems the first column of a CSV file, or every line of a text file",
		Action: stemFile,
		Flags: []cli.Flag{
			&languageFlag,
			&cli.StringFlag{
				Name:      "file",
				Usage:     "Input file, - for stdin",
				Required:  true,
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:  "csv",
				Usage: "Read the input as CSV with a header row",
			},
		},
	}

	languagesCmd := cli.Command{
		Name:   "languages",
		Usage:  "Lists the supported languages",
		Action: listLanguages,
	}

	app := cli.Command{
		Name:  "stem",
		Usage: "The Elephant stemming service",
		Commands: []*cli.Command{
			&runCmd,
			&wordCmd,
			&fileCmd,
			&languagesCmd,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("failed to run application",
			elephantine.LogKeyError, err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, c *cli.Command) error {
	var (
		addr        = c.String("addr")
		profileAddr = c.String("profile-addr")
		logLevel    = c.String("log-level")
		cacheSize   = c.Int("cache-size")
		maxBatch    = c.Int("max-batch")
		concurrency = c.Int("concurrency")
	)

	logger := elephantine.SetUpLogger(logLevel, os.Stdout)

	defer func() {
		if p := recover(); p != nil {
			slog.ErrorContext(ctx, "panic during setup",
				elephantine.LogKeyError, p,
				"stack", string(debug.Stack()),
			)

			os.Exit(2)
		}
	}()

	app, err := internal.NewApplication(ctx, internal.Parameters{
		Addr:        addr,
		ProfileAddr: profileAddr,
		Logger:      logger,
		Registerer:  prometheus.DefaultRegisterer,
		Gatherer:    prometheus.DefaultGatherer,
		CacheSize:   cacheSize,
		MaxBatch:    maxBatch,
		Concurrency: concurrency,
	})
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}

	err = app.Run(ctx)
	if err != nil {
		return fmt.Errorf("run application: %w", err)
	}

	return nil
}

func stemWords(_ context.Context, c *cli.Command) error {
	var (
		language = c.String("language")
		verbose  = c.Bool("verbose")
	)

	s, err := stemmer.Open(language)
	if err != nil {
		return fmt.Errorf("open stemmer: %w", err)
	}

	defer elephantine.SafeClose(slog.Default(), "stemmer", s)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	for _, word := range c.Args().Slice() {
		if !verbose {
			_, _ = fmt.Fprintln(tw, s.Stem(word))

			continue
		}

		res := s.StemResult(word)

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n",
			word, res.Word, res.Stem, res.Fired)
	}

	err = tw.Flush()
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

func stemFile(_ context.Context, c *cli.Command) error {
	var (
		language = c.String("language")
		file     = c.String("file")
		asCSV    = c.Bool("csv")
	)

	s, err := stemmer.Open(language)
	if err != nil {
		return fmt.Errorf("open stemmer: %w", err)
	}

	defer elephantine.SafeClose(slog.Default(), "stemmer", s)

	var in io.Reader = os.Stdin

	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}

		defer elephantine.SafeClose(slog.Default(), "input file", f)

		in = f
	}

	out := csv.NewWriter(os.Stdout)

	if asCSV {
		err = stemCSV(in, out, s)
	} else {
		err = stemLines(in, out, s)
	}

	if err != nil {
		return err
	}

	out.Flush()

	err = out.Error()
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

func stemCSV(in io.Reader, out *csv.Writer, s *stemmer.Stemmer) error {
	reader := csv.NewReader(in)

	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}

	err = out.Write(append(header, "stem"))
	if err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return fmt.Errorf("read CSV row: %w", err)
		}

		if len(row) == 0 || row[0] == "" {
			continue
		}

		err = out.Write(append(row, s.Stem(row[0])))
		if err != nil {
			return fmt.Errorf("write row for %q: %w", row[0], err)
		}
	}

	return nil
}

func stemLines(in io.Reader, out *csv.Writer, s *stemmer.Stemmer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	for line := range strings.Lines(string(data)) {
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}

		err = out.Write([]string{word, s.Stem(word)})
		if err != nil {
			return fmt.Errorf("write row for %q: %w", word, err)
		}
	}

	return nil
}

func listLanguages(_ context.Context, _ *cli.Command) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "NAME\tALIASES\tSTOP WORDS\tALGORITHM")

	for _, l := range stemmer.Languages() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%v\t%s\n",
			l.Name, strings.Join(l.Aliases, ","), l.StopWords,
			l.Description)
	}

	err := tw.Flush()
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
