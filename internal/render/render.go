// SPDX-License-Identifier: MPL-2.0

// Package render writes a capability snapshot in the formats clpconfig
// offers: a styled table, JSON, TOML, CUE and a regenerated C config.h.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/clp-go/clp/pkg/capability"
)

const (
	// FormatText is a human-readable table.
	FormatText Format = "text"
	// FormatJSON is a JSON document.
	FormatJSON Format = "json"
	// FormatTOML is a TOML document.
	FormatTOML Format = "toml"
	// FormatCUE is a CUE document.
	FormatCUE Format = "cue"
	// FormatHeader is a C config.h using the library's macro names.
	FormatHeader Format = "header"
)

// ErrInvalidFormat is returned when a Format value is not recognized.
var ErrInvalidFormat = errors.New("invalid output format")

type (
	// Format selects the output encoding of Render.
	Format string

	// Option configures Render.
	Option func(*options)

	options struct {
		category capability.Category
		absent   bool
		styled   bool
	}

	// Document is the encoded form of a snapshot. Flags maps each flag name
	// to true for a present boolean flag, to its value for a valued flag,
	// and to false for an absent flag.
	Document struct {
		Identity capability.Identity `json:"identity" toml:"identity"`
		Flags    map[string]any      `json:"flags" toml:"flags"`
	}
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatTOML, FormatCUE, FormatHeader}
}

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// IsValid returns whether the Format is one of the defined formats,
// and a list of validation errors if it is not.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatText, FormatJSON, FormatTOML, FormatCUE, FormatHeader:
		return true, nil
	default:
		names := make([]string, 0, len(Formats()))
		for _, v := range Formats() {
			names = append(names, v.String())
		}
		return false, []error{fmt.Errorf("%w: %q (valid: %s)", ErrInvalidFormat, f, strings.Join(names, ", "))}
	}
}

// WithCategory limits output to the flags of one category.
func WithCategory(c capability.Category) Option {
	return func(o *options) { o.category = c }
}

// WithAbsent includes absent flags in the text, JSON, TOML and CUE formats.
// The header format always lists absent flags as #undef.
func WithAbsent(include bool) Option {
	return func(o *options) { o.absent = include }
}

// WithStyles enables terminal colors in the text format.
func WithStyles(styled bool) Option {
	return func(o *options) { o.styled = styled }
}

// Render writes snap to w in the given format.
func Render(w io.Writer, snap *capability.Snapshot, format Format, opts ...Option) error {
	if valid, errs := format.IsValid(); !valid {
		return errs[0]
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.category != "" {
		if valid, errs := o.category.IsValid(); !valid {
			return errs[0]
		}
	}

	switch format {
	case FormatText:
		return renderText(w, snap, o)
	case FormatJSON:
		return renderJSON(w, newDocument(snap, o))
	case FormatTOML:
		return renderTOML(w, newDocument(snap, o))
	case FormatCUE:
		return renderCUE(w, newDocument(snap, o))
	default:
		return renderHeader(w, snap, o)
	}
}

// NewDocument builds the encoded form of a snapshot.
func NewDocument(snap *capability.Snapshot, opts ...Option) Document {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return newDocument(snap, o)
}

func newDocument(snap *capability.Snapshot, o options) Document {
	doc := Document{Identity: snap.Identity(), Flags: make(map[string]any)}
	for _, e := range entries(snap, o) {
		switch e.Kind {
		case capability.KindValued:
			doc.Flags[e.Flag.String()] = e.Value.Any()
		case capability.KindBoolean:
			doc.Flags[e.Flag.String()] = true
		default:
			doc.Flags[e.Flag.String()] = false
		}
	}
	return doc
}

// entries returns the snapshot entries selected by the options.
func entries(snap *capability.Snapshot, o options) []capability.Entry {
	var out []capability.Entry
	for _, e := range snap.Entries() {
		if o.category != "" && e.Flag.Category() != o.category {
			continue
		}
		if !o.absent && !e.Kind.IsPresent() {
			continue
		}
		out = append(out, e)
	}
	return out
}
