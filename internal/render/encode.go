// SPDX-License-Identifier: MPL-2.0

package render

import (
	"encoding/json"
	"fmt"
	"io"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	"github.com/pelletier/go-toml/v2"
)

func renderJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func renderTOML(w io.Writer, doc Document) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

func renderCUE(w io.Writer, doc Document) error {
	v := cuecontext.New().Encode(doc)
	if err := v.Err(); err != nil {
		return fmt.Errorf("encode cue: %w", err)
	}
	out, err := format.Node(v.Syntax(cue.Concrete(true)))
	if err != nil {
		return fmt.Errorf("format cue: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
