package dynajson

import (
	"time"

	"github.com/go-kit/log"
	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	ftime "github.com/viant/tagly/format/time"
	"golang.org/x/text/encoding"
)

// DefaultMaxDepth bounds nesting for parsing, serialization and conversion.
const DefaultMaxDepth = 512

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

// WithMaxDepth sets the nesting limit.
func WithMaxDepth(depth int) Option {
	return optionFn(func(o *Options) { o.MaxDepth = depth })
}

// WithMode sets parser leniency.
func WithMode(mode Mode) Option {
	return optionFn(func(o *Options) { o.Mode = mode })
}

// WithEncoding decodes reader and byte input from enc before parsing.
func WithEncoding(enc encoding.Encoding) Option {
	return optionFn(func(o *Options) { o.Encoding = enc })
}

func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return optionFn(func(o *Options) {
		o.CaseFormat = caseFormat
		o.setCaseFormat = true
	})
}

// WithFormatTag applies the time layout and case format of a tagly format tag.
func WithFormatTag(tag *format.Tag) Option {
	return optionFn(func(o *Options) { o.FormatTag = tag })
}

func WithTimeLayout(layout string) Option {
	return optionFn(func(o *Options) { o.TimeLayout = layout })
}

func WithOmitEmpty(enabled bool) Option {
	return optionFn(func(o *Options) { o.OmitEmpty = enabled })
}

func WithLogger(logger log.Logger) Option {
	return optionFn(func(o *Options) {
		o.Logger = logger
		o.setLogger = logger != nil
	})
}

func defaultOptions() Options {
	return Options{
		MaxDepth:   DefaultMaxDepth,
		Mode:       ModeLenient,
		CaseFormat: text.CaseFormatUndefined,
		TimeLayout: time.RFC3339,
		Logger:     log.NewNopLogger(),
	}
}

func resolveOptions(opts []Option) Options {
	result := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&result)
	}
	if result.MaxDepth <= 0 {
		result.MaxDepth = DefaultMaxDepth
	}
	if result.TimeLayout == "" {
		result.TimeLayout = time.RFC3339
	}
	if result.Logger == nil {
		result.Logger = log.NewNopLogger()
	}
	if result.FormatTag != nil {
		if result.FormatTag.TimeLayout != "" {
			result.TimeLayout = result.FormatTag.TimeLayout
		} else if result.FormatTag.DateFormat != "" {
			result.TimeLayout = ftime.DateFormatToTimeLayout(result.FormatTag.DateFormat)
		}
		if !result.setCaseFormat && result.CaseFormat == text.CaseFormatUndefined {
			cf := text.CaseFormat(result.FormatTag.CaseFormat)
			if cf != "" && cf != "-" {
				result.CaseFormat = cf
			}
		}
	}
	return result
}
