// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the largest CUE document ParseAndDecode accepts
// unless WithMaxFileSize says otherwise (1MB). Detection manifests and CLI
// configuration files are a few kilobytes.
const DefaultMaxFileSize int64 = 1 << 20

type (
	// Option configures parsing behavior.
	Option func(*parseOptions)

	parseOptions struct {
		filename    string
		maxFileSize int64
		concrete    bool
		suggest     Suggester
	}
)

func defaultOptions() parseOptions {
	return parseOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
	}
}

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *parseOptions) { o.filename = name }
}

// WithMaxFileSize sets the maximum accepted document size in bytes.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) { o.maxFileSize = size }
}

// WithConcrete sets whether every value must be concrete after unification.
// Configuration files leave optional fields unset and pass false.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) { o.concrete = concrete }
}

// WithSuggestions attaches fix hints to validation errors by CUE path.
func WithSuggestions(suggest Suggester) Option {
	return func(o *parseOptions) { o.suggest = suggest }
}
