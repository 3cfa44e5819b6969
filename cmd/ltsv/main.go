// ltsv - convert LTSV lines to and from other record encodings.
//
// Usage:
//
//	ltsv [-config file.toml] [-from ltsv|json] [-to ltsv|json|msgpack|cbor|proto]
//	     [-skip-invalid] [-max-line n] [-log zap|logrus|zerolog|slog] [-level info] [file]
//
// Input is read one record per line from file (plain, .gz or .zst) or stdin.
// Text outputs are newline-terminated; msgpack and cbor records are written
// back to back, proto records are varint length-prefixed.
//
// Values such as nan, inf or -inf are read as floats. JSON has no encoding for
// them, so with -to json such a record fails to convert (and is skipped under
// -skip-invalid); msgpack, cbor and proto carry them as-is.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/unkn0wn-root/ltsv"
	"github.com/unkn0wn-root/ltsv/internal/config"
	"github.com/unkn0wn-root/ltsv/transcode"
)

var (
	flagConfig      = flag.String("config", "", "path to a TOML config file")
	flagFrom        = flag.String("from", "", "input format: ltsv or json")
	flagTo          = flag.String("to", "", "output format: "+strings.Join(transcode.Formats(), ", "))
	flagSkipInvalid = flag.Bool("skip-invalid", false, "log and skip records that fail to convert")
	flagMaxLine     = flag.Int("max-line", 0, "maximum input record size in bytes (negative disables)")
	flagLogger      = flag.String("log", "", "logger backend: "+strings.Join(config.Loggers, ", "))
	flagLevel       = flag.String("level", "", "log level: debug, info, warn, error")
)

var errBinaryInput = errors.New("input format must be line oriented (ltsv or json)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		fatal("%v", err)
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		fatal("logger: %v", err)
	}
	defer closeLog()

	in, closeIn, err := openInput(flag.Arg(0))
	if err != nil {
		fatal("%v", err)
	}
	defer closeIn()

	out := bufio.NewWriter(os.Stdout)
	stats, err := run(cfg, log, in, out)
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	log.Info("done", ltsv.Fields{"records": stats.converted, "skipped": stats.skipped})
	if err != nil {
		log.Error("conversion aborted", ltsv.Fields{"err": err})
		closeIn()
		closeLog()
		os.Exit(1)
	}
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "from":
			cfg.From = *flagFrom
		case "to":
			cfg.To = *flagTo
		case "skip-invalid":
			cfg.SkipInvalid = *flagSkipInvalid
		case "max-line":
			cfg.MaxLine = *flagMaxLine
		case "log":
			cfg.Logger = *flagLogger
		case "level":
			cfg.Level = *flagLevel
		}
	})
}

type stats struct {
	converted int
	skipped   int
}

func run(cfg config.Config, log ltsv.Logger, in io.Reader, out io.Writer) (stats, error) {
	var st stats
	from, to := transcode.Format(cfg.From), transcode.Format(cfg.To)
	if from.Binary() {
		return st, fmt.Errorf("%w, got %q", errBinaryInput, from)
	}
	tc, err := transcode.New(from, to, cfg.MaxLine)
	if err != nil {
		return st, err
	}
	tc.Logger = log

	r := bufio.NewReader(in)
	for lineNo := 1; ; lineNo++ {
		line, rerr := r.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return st, fmt.Errorf("read line %d: %w", lineNo, rerr)
		}
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			rec, err := tc.Convert([]byte(line))
			switch {
			case err != nil && cfg.SkipInvalid:
				st.skipped++
				log.Warn("skipping record", ltsv.Fields{"line": lineNo, "err": err})
			case err != nil:
				return st, fmt.Errorf("line %d: %w", lineNo, err)
			default:
				if err := writeRecord(out, to, rec); err != nil {
					return st, err
				}
				st.converted++
			}
		}
		if rerr == io.EOF {
			return st, nil
		}
	}
}

func writeRecord(w io.Writer, f transcode.Format, rec []byte) error {
	switch {
	case f == transcode.Proto:
		rec = append(protowire.AppendVarint(nil, uint64(len(rec))), rec...)
	case !f.Binary():
		rec = append(rec, '\n')
	}
	_, err := w.Write(rec)
	return err
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ltsv: "+format+"\n", args...)
	os.Exit(1)
}
