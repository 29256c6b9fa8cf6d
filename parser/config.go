package parser

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ContentModel decides how '<' and '&' are treated in the data state.
type ContentModel uint

const (
	PCDATA ContentModel = iota
	RCDATA
	CDATA
	PLAINTEXT
)

func (c ContentModel) String() string {
	switch c {
	case PCDATA:
		return "PCDATA"
	case RCDATA:
		return "RCDATA"
	case CDATA:
		return "CDATA"
	case PLAINTEXT:
		return "PLAINTEXT"
	default:
		return fmt.Sprintf("ContentModel(%d)", uint(c))
	}
}

// ParseContentModel parses a content model name, ignoring case.
func ParseContentModel(s string) (ContentModel, error) {
	switch strings.ToUpper(s) {
	case "PCDATA":
		return PCDATA, nil
	case "RCDATA":
		return RCDATA, nil
	case "CDATA":
		return CDATA, nil
	case "PLAINTEXT":
		return PLAINTEXT, nil
	default:
		return PCDATA, errors.Errorf("unknown content model %q", s)
	}
}

// Set implements flag.Value.
func (c *ContentModel) Set(s string) error {
	cm, err := ParseContentModel(s)
	if err != nil {
		return err
	}
	*c = cm
	return nil
}

// Config configures a tokenization run.
type Config struct {
	// InitialContentModel is the content model the run starts in.
	InitialContentModel ContentModel
	// LastStartTag seeds the name RCDATA and CDATA end tags must match, as if
	// a start tag of that name had just been emitted.
	LastStartTag string
	// Logger receives state-transition traces at trace level and emitted
	// tokens at debug level. Defaults to a logrus logger at warn level on
	// stderr.
	Logger *logrus.Logger
	// DisableCoalescing makes every state handle one character per step.
	DisableCoalescing bool
}

// RegisterFlags registers the tokenizer flags on f.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	f.Var(&cfg.InitialContentModel, "content-model", "Initial content model: PCDATA, RCDATA, CDATA or PLAINTEXT.")
	f.StringVar(&cfg.LastStartTag, "last-start-tag", "", "Name of the start tag RCDATA and CDATA end tags must match.")
	f.BoolVar(&cfg.DisableCoalescing, "no-coalesce", false, "Process one character per state-machine step.")
}

// Validate checks the configuration.
func (cfg *Config) Validate() error {
	if cfg.InitialContentModel > PLAINTEXT {
		return errors.Errorf("invalid content model %d", uint(cfg.InitialContentModel))
	}
	for _, r := range cfg.LastStartTag {
		if !isASCIIAlpha(r) {
			return errors.Errorf("last start tag %q must consist of ASCII letters", cfg.LastStartTag)
		}
	}
	return nil
}

func defaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}
