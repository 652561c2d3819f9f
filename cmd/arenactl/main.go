// arenactl loads source files into a fixed-size scratch arena, one scratch
// scope per file, and reports how much of the arena each file needed.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/Scarletsang/arena"
	"github.com/Scarletsang/arena/internal/mmapfile"
)

type config struct {
	Arena    arena.Config
	LogLevel string
}

func (c *config) registerFlags(f *flag.FlagSet) {
	c.Arena.RegisterFlags(f, "arena.")
	f.StringVar(&c.LogLevel, "log.level", "info", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error]")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, out io.Writer) int {
	var cfg config
	fs := flag.NewFlagSet("arenactl", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: arenactl [flags] FILE...\n")
		fs.PrintDefaults()
	}
	cfg.registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, err := newLogger(out, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(out, err)
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	a, err := arena.NewFromConfig(cfg.Arena, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to create arena", "err", err)
		return 1
	}
	defer a.Release()

	failed := 0
	for _, path := range fs.Args() {
		if err := loadFile(a, path, logger); err != nil {
			level.Error(logger).Log("msg", "failed to load file", "file", path, "err", err)
			failed++
		}
	}

	m := a.Metrics()
	level.Info(logger).Log("msg", "done", "files", fs.NArg(), "failed", failed, "capacity", humanize.IBytes(uint64(m.Capacity)), "peak", humanize.IBytes(uint64(m.Peak)), "rejected", m.Rejected)
	if failed > 0 {
		return 1
	}
	return 0
}

// loadFile copies the file at path into a scratch scope of a and reports its size.
func loadFile(a *arena.Arena, path string, logger log.Logger) error {
	f, err := mmapfile.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return a.Scratch(func() error {
		buf, err := arena.CloneBytes(a, f.Bytes())
		if err != nil {
			return errors.Wrapf(err, "copy %s into arena", humanize.IBytes(uint64(f.Len())))
		}
		level.Info(logger).Log("msg", "loaded file", "file", path, "bytes", len(buf), "lines", countLines(buf), "remaining", a.Remaining())
		return nil
	})
}

func countLines(b []byte) int {
	n := bytes.Count(b, []byte{'\n'})
	if len(b) > 0 && b[len(b)-1] != '\n' {
		n++
	}
	return n
}

func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, errors.Errorf("unrecognized log level %q", lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller), nil
}
