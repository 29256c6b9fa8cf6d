package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"

	"github.com/heathj/htmltok/parser"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type config struct {
	parser    parser.Config
	logLevel  string
	logFormat string
	output    string
	stats     bool
	noSwitch  bool
}

func (c *config) RegisterFlags(f *flag.FlagSet) {
	c.parser.RegisterFlags(f)
	f.StringVar(&c.logLevel, "log.level", "warn", "Only log messages with the given severity or above. Valid levels: trace, debug, info, warn, error.")
	f.StringVar(&c.logFormat, "log.format", "text", "Output log messages in the given format. Valid formats: text, json.")
	f.StringVar(&c.output, "output", "json", "Token output format. Valid formats: json, text.")
	f.BoolVar(&c.stats, "stats", false, "Write token and parse error counters to stderr when done.")
	f.BoolVar(&c.noSwitch, "no-switch", false, "Do not switch content models after start tags such as <script> and <title>.")
}

func (c *config) Validate() error {
	if _, err := logrus.ParseLevel(c.logLevel); err != nil {
		return err
	}
	switch c.logFormat {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format %q", c.logFormat)
	}
	switch c.output {
	case "text", "json":
	default:
		return errors.Errorf("unknown output format %q", c.output)
	}
	return c.parser.Validate()
}

func (c *config) logger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	level, _ := logrus.ParseLevel(c.logLevel)
	logger.SetLevel(level)
	if c.logFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func main() {
	cfg := config{}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "configuration validation failed"))
		os.Exit(1)
	}
	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "at most one input file may be given")
		os.Exit(1)
	}

	var err error
	if flag.NArg() == 1 {
		err = runFile(cfg, flag.Arg(0), os.Stdout, os.Stderr)
	} else {
		err = run(cfg, os.Stdin, os.Stdout, os.Stderr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// runFile tokenizes the file at path. The file is closed before it returns.
func runFile(cfg config, path string, stdout, stderr io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer f.Close()
	return run(cfg, f, stdout, stderr)
}

func run(cfg config, in io.Reader, stdout, stderr io.Writer) error {
	logger := cfg.logger(stderr)
	cfg.parser.Logger = logger

	reg := prometheus.NewRegistry()
	opts := []parser.ParserOption{parser.WithMetrics(parser.NewMetrics(reg))}
	if cfg.noSwitch {
		opts = append(opts, parser.WithoutContentModelSwitching())
	}

	p, err := parser.NewParser(in, cfg.parser, opts...)
	if err != nil {
		return err
	}
	tokens, err := p.Start()
	if err != nil {
		return err
	}
	logger.WithField("tokens", len(tokens)).Info("tokenized input")

	out := bufio.NewWriter(stdout)
	if err := writeTokens(out, cfg.output, tokens); err != nil {
		return errors.Wrap(err, "writing tokens")
	}
	if err := out.Flush(); err != nil {
		return errors.Wrap(err, "writing tokens")
	}

	if cfg.stats {
		return errors.Wrap(writeStats(stderr, reg), "writing stats")
	}
	return nil
}

func writeTokens(w io.Writer, format string, tokens []*parser.Token) error {
	if format == "text" {
		for _, t := range tokens {
			if _, err := fmt.Fprintf(w, "%d:%d\t%s\n", t.Line, t.Column, t); err != nil {
				return err
			}
		}
		return nil
	}

	enc := json.NewEncoder(w)
	for _, t := range tokens {
		v := t.HTML5Lib()
		if t.TokenType == parser.ParseErrorToken {
			v = []string{"ParseError", t.Data}
		}
		if v == nil {
			continue
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

func writeStats(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
