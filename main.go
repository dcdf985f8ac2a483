package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arborian/logscope/filesource"
	"github.com/arborian/logscope/log"
	"github.com/arborian/logscope/screenbuffer"
)

// version is set at build time via -ldflags "-X main.version=...". It is
// left at "dev" for local builds.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalln(err.Error())
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "logscope",
		Short: "A paging log viewer for SQL and flat-file log sources",
	}
	root.AddCommand(newRunCmd(), newDumpCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the logscope version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("logscope " + version)
			return nil
		},
	}
}

func bindRunFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()
	flags.Int("page-size", defaultPageSize, "number of lines per page")
	flags.Int("buffer-size", defaultPageSize*5, "number of lines kept in the paging buffer")
	flags.Int("low-buffer-threshold", defaultPageSize, "refetch threshold, in lines, from either edge of the buffer")
	flags.String("source", "sqlite", `record source: "sqlite" or "file"`)
	flags.String("dsn", "logscope.db", "sqlite data source name, when --source=sqlite")
	flags.String("path", "", `log file path, when --source=file ("-" for stdin is accepted by dump only)`)
	flags.Bool("follow", false, "keep reading new lines appended to the file, when --source=file")

	bindConfigDefaults(v)
	v.BindPFlags(flags)
}

func newRunCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive log viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromViper(v)

			app, err := NewApplication(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			cleanupSignals := setupOsSignals(ctx, cancel)
			defer cleanupSignals()

			return app.Run(ctx)
		},
	}
	bindRunFlags(cmd, v)
	return cmd
}

func newDumpCmd() *cobra.Command {
	v := viper.New()
	var jqExpr string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print log records as JSON lines without opening the terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromViper(v)
			if cfg.Source != "file" {
				return errors.New("logscope: dump only supports --source=file")
			}

			var jqFilter *gojq.Code
			if jqExpr != "" {
				query, err := gojq.Parse(jqExpr)
				if err != nil {
					return errors.New("logscope: invalid --jq expression: " + err.Error())
				}
				jqFilter, err = gojq.Compile(query)
				if err != nil {
					return errors.New("logscope: failed to compile --jq expression: " + err.Error())
				}
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			cleanupSignals := setupOsSignals(ctx, cancel)
			defer cleanupSignals()

			path, cleanupFile, err := prepareSeekableFile(cfg.Path)
			if err != nil {
				return err
			}
			defer cleanupFile()

			return runDump(ctx, path, cfg.Follow, jqFilter)
		},
	}
	bindRunFlags(cmd, v)
	cmd.Flags().StringVar(&jqExpr, "jq", "", "jq expression applied to each record; drops records the expression evaluates to false/null for")
	return cmd
}

func runDump(parent context.Context, path string, follow bool, jqFilter *gojq.Code) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	source := filesource.NewDriver(path, follow)
	if err := source.StartConnection(ctx); err != nil {
		return err
	}
	defer source.StopConnection(ctx)

	records := make(chan screenbuffer.Record, 64)
	if follow {
		source.SetPushHandler(func(rec screenbuffer.Record) {
			select {
			case records <- rec:
			case <-ctx.Done():
			}
		})

		tty, cleanupTty, err := ensureTty()
		if err == nil {
			defer cleanupTty()
			go func() {
				for {
					r, err := tty.ReadRune()
					if err != nil {
						return
					}
					if r == 'q' {
						cancel()
						return
					}
				}
			}()
		} else {
			log.Println("logscope: dump -f running without key input:", err)
		}
	}

	// Forward-scan the whole file in one pass; filesource.Driver bounds each
	// fetch at count records, so pass a practically-unbounded count rather
	// than 0, which short-circuits to "no records" (see queryHandle.read
	// >= queryHandle.count).
	const dumpAllCount = 1 << 30
	handle, err := source.PrepareQuery(nil, false, dumpAllCount)
	if err != nil {
		return err
	}
	for {
		rec, err := source.FetchRecord(handle)
		if err != nil {
			return err
		}
		if rec == nil {
			break
		}
		if err := printRecord(*rec, jqFilter); err != nil {
			return err
		}
	}

	if !follow {
		return nil
	}

	for {
		select {
		case rec := <-records:
			if err := printRecord(rec, jqFilter); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func printRecord(rec screenbuffer.Record, jqFilter *gojq.Code) error {
	doc := map[string]any{
		"id":       rec.Id,
		"time":     rec.Time.Format(time.RFC3339),
		"level":    rec.Level,
		"facility": rec.Facility,
		"host":     rec.Host,
		"program":  rec.Program,
		"pid":      rec.Pid,
		"message":  rec.Message,
	}

	if jqFilter == nil {
		return json.NewEncoder(os.Stdout).Encode(doc)
	}

	iter := jqFilter.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, ok := v.(error); ok {
			return fmt.Errorf("logscope: jq evaluation failed: %w", err)
		}
		switch v {
		case false, nil:
			// Dropped: this output evaluated falsy, per jq's own filter
			// convention. Other outputs of the same expression may still
			// be kept, so keep draining the iterator.
		case true:
			if err := json.NewEncoder(os.Stdout).Encode(doc); err != nil {
				return err
			}
		default:
			if err := json.NewEncoder(os.Stdout).Encode(v); err != nil {
				return err
			}
		}
	}
}

// setupOsSignals turns Ctrl+C into a context cancellation instead of an
// immediate exit, so callers can unwind cleanly (restore the terminal,
// close the Record Source) before the process ends.
func setupOsSignals(ctx context.Context, cancel context.CancelFunc) (cleanup func()) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)

	cleanup = func() {
		signal.Stop(signalChan)
		cancel()
	}

	go func() {
		select {
		case <-signalChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return cleanup
}
