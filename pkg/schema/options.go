package schema

import "github.com/sirupsen/logrus"

// OutputFormat selects how Validate's result tree is collapsed (spec.md
// §4.3).
type OutputFormat int

const (
	OutputFlag OutputFormat = iota
	OutputBasic
	OutputDetailed
)

// DownloadFunc fetches the document at uri as raw JSON text. Returning an
// error makes Registry.Get return a ReferenceResolutionError, which the
// referring $ref reports as a failing Result (spec.md §6
// "download(uri) -> string?").
type DownloadFunc func(uri string) (string, error)

// Options is the engine-visible configuration of spec.md §6, threaded
// through every Validate call via Context.
type Options struct {
	DefaultDraft            Draft
	ValidateFormat          bool
	AllowUnknownFormats     bool
	OutputFormat            OutputFormat
	ValidateContent         bool
	ShouldReportChildErrors func(keyword string, ctx *Context) bool
	Download                DownloadFunc
	RefreshUserResolver     bool
	Registry                *Registry
	Logger                  logrus.FieldLogger
}

// Option configures an Options value via the functional-options idiom.
type Option func(*Options)

// DefaultOptions returns the engine defaults: 2019-09, format assertions
// on, unknown formats rejected, Detailed output, content validation off.
func DefaultOptions() *Options {
	return &Options{
		DefaultDraft:        DefaultDraft,
		ValidateFormat:      true,
		AllowUnknownFormats: false,
		OutputFormat:        OutputDetailed,
		ShouldReportChildErrors: func(string, *Context) bool { return true },
		Registry:            Global,
		Logger:              logrus.StandardLogger(),
	}
}

// NewOptions applies opts over DefaultOptions.
func NewOptions(opts ...Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithDraft(d Draft) Option { return func(o *Options) { o.DefaultDraft = d } }

func WithOutputFormat(f OutputFormat) Option { return func(o *Options) { o.OutputFormat = f } }

func WithValidateFormat(on bool) Option { return func(o *Options) { o.ValidateFormat = on } }

func WithAllowUnknownFormats(on bool) Option {
	return func(o *Options) { o.AllowUnknownFormats = on }
}

func WithValidateContent(on bool) Option { return func(o *Options) { o.ValidateContent = on } }

func WithDownloader(f DownloadFunc) Option { return func(o *Options) { o.Download = f } }

func WithRegistry(r *Registry) Option { return func(o *Options) { o.Registry = r } }

func WithLogger(l logrus.FieldLogger) Option { return func(o *Options) { o.Logger = l } }

func WithRefreshUserResolver(on bool) Option {
	return func(o *Options) { o.RefreshUserResolver = on }
}
