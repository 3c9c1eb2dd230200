// Command dynajson formats, validates and inspects JSON documents.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/viant/dynajson"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

func main() {
	app, _ := newApp(os.Stdout, os.Stderr)
	if _, err := app.Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}

func exitWithErr(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, err)
	os.Exit(1)
}

// settings holds global flags shared by every command.
type settings struct {
	stdout   io.Writer
	stderr   io.Writer
	maxDepth int
	strict   bool
	encoding string
	logLevel string
	logger   log.Logger
}

func newApp(stdout, stderr io.Writer) (*kingpin.Application, *settings) {
	s := &settings{stdout: stdout, stderr: stderr, logger: log.NewNopLogger()}
	app := kingpin.New("dynajson", "Parse, format, validate and inspect JSON documents.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.Flag("max-depth", "Maximum nesting depth").Default("512").IntVar(&s.maxDepth)
	app.Flag("strict", "Reject trailing commas and leading zeros").BoolVar(&s.strict)
	app.Flag("encoding", "Input encoding").Default("utf-8").EnumVar(&s.encoding, "utf-8", "utf-16le", "utf-16be")
	app.Flag("log.level", "Log level").Default("info").EnumVar(&s.logLevel, "debug", "info", "warn", "error")
	app.PreAction(s.init)

	fmtCmd := &fmtCommand{settings: s}
	cmd := app.Command("fmt", "Parse files and print them as compact JSON.")
	fmtCmd.files = cmd.Arg("files", "JSON files").Required().ExistingFiles()
	cmd.Action(fmtCmd.run)

	validateCmd := &validateCommand{settings: s}
	cmd = app.Command("validate", "Report whether files are valid JSON.")
	validateCmd.files = cmd.Arg("files", "JSON files").Required().ExistingFiles()
	cmd.Action(validateCmd.run)

	statsCmd := &statsCommand{settings: s}
	cmd = app.Command("stats", "Print node counts, depth and size per file.")
	statsCmd.files = cmd.Arg("files", "JSON files").Required().ExistingFiles()
	cmd.Action(statsCmd.run)

	yamlCmd := &yamlCommand{settings: s}
	cmd = app.Command("yaml", "Print a JSON file as YAML.")
	yamlCmd.file = cmd.Arg("file", "JSON file").Required().ExistingFile()
	cmd.Action(yamlCmd.run)

	fromYAMLCmd := &fromYAMLCommand{settings: s}
	cmd = app.Command("from-yaml", "Print a YAML file as JSON.")
	fromYAMLCmd.file = cmd.Arg("file", "YAML file").Required().ExistingFile()
	cmd.Action(fromYAMLCmd.run)
	return app, s
}

func (s *settings) init(_ *kingpin.ParseContext) error {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(s.stderr))
	var allow level.Option
	switch s.logLevel {
	case "debug":
		allow = level.AllowDebug()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowInfo()
	}
	s.logger = level.NewFilter(log.With(logger, "ts", log.DefaultTimestampUTC), allow)
	return nil
}

func (s *settings) options() []dynajson.Option {
	opts := []dynajson.Option{dynajson.WithMaxDepth(s.maxDepth), dynajson.WithLogger(s.logger)}
	if s.strict {
		opts = append(opts, dynajson.WithMode(dynajson.ModeStrict))
	}
	if enc := s.inputEncoding(); enc != nil {
		opts = append(opts, dynajson.WithEncoding(enc))
	}
	return opts
}

func (s *settings) inputEncoding() encoding.Encoding {
	switch strings.ToLower(s.encoding) {
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	}
	return nil
}

// parseFile streams name through the parser and returns its tree and size.
func (s *settings) parseFile(name string) (dynajson.Value, int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return dynajson.Value{}, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	fi, err := f.Stat()
	if err != nil {
		return dynajson.Value{}, 0, fmt.Errorf("failed to read fileinfo: %w", err)
	}
	v, err := dynajson.ParseReader(f, s.options()...)
	if err != nil {
		return dynajson.Value{}, fi.Size(), err
	}
	level.Debug(s.logger).Log("msg", "parsed file", "file", name, "bytes", fi.Size())
	return v, fi.Size(), nil
}
