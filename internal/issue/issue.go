// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	SnapshotInvalidId Id = iota + 1
	UnknownFlagId
	UnknownCategoryId
	InvalidFormatId
	BackendUnavailableId
	UnknownBackendId
	ManifestNotFoundId
	ManifestInvalidId
	ConfigLoadFailedId
	ConfigExistsId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation for the issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal markdown with the given glamour
// style ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	snapshotInvalidIssue = &Issue{
		id: SnapshotInvalidId,
		mdMsg: `
# This build of Clp is malformed!

The capabilities recorded when the binary was linked are inconsistent, so
nothing can safely read them.

## Common causes:
- A debug level outside 0..9 passed with -ldflags
- An Aboca level outside 1..4
- A version component that is not a non-negative integer
- An empty package name or bug report address

## Things you can try:
- Inspect the linker flags of your build:
~~~
$ go version -m $(which clpconfig)
~~~

- Rebuild without custom -X flags for internal/buildcfg`,
		extLinks: []HttpLink{"https://github.com/coin-or/Clp"},
	}

	unknownFlagIssue = &Issue{
		id: UnknownFlagId,
		mdMsg: `
# Unknown capability flag!

The flag name you gave is not part of the capability set. Queries treat it
as absent.

## Things you can try:
- List every flag with its state:
~~~
$ clpconfig show --all
~~~

- Use lower-case names such as ` + "`has_mumps`" + ` or ` + "`debug_check_level`",
	}

	unknownCategoryIssue = &Issue{
		id: UnknownCategoryId,
		mdMsg: `
# Unknown flag category!

## Valid categories:
- provenance
- identity
- debug
- package
- fortran
- header`,
	}

	invalidFormatIssue = &Issue{
		id: InvalidFormatId,
		mdMsg: `
# Unknown output format!

## Valid formats:
- text (default)
- json
- toml
- cue
- header (a C config.h)

## Things you can try:
~~~
$ clpconfig show --format json
~~~`,
	}

	backendUnavailableIssue = &Issue{
		id: BackendUnavailableId,
		mdMsg: `
# Backend not available in this build!

The backend you asked for depends on a package that was not compiled in.

## Things you can try:
- See which backends this binary can use:
~~~
$ clpconfig backends
~~~

- Rebuild with the build tag of the package, for example:
~~~
$ go build -tags clp_mumps,clp_blas ./cmd/clpconfig
~~~

- Remove the preference from your config file (backends.prefer)`,
	}

	unknownBackendIssue = &Issue{
		id: UnknownBackendId,
		mdMsg: `
# Unknown backend!

## Backends by role:
- factorization: wsmp, mumps, cholmod, amd, dense
- model-reader: mps, gmpl, ampl
- dataset: sample, netlib
- line-editor: readline, plain

## Things you can try:
~~~
$ clpconfig backends --prefer factorization=cholmod
~~~`,
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# Detection manifest not found!

## Things you can try:
- Check the path you passed to ` + "`clpconfig verify`" + `
- Write a manifest describing your build:
~~~cue
name:       "Clp"
bug_report: "clp@list.coin-or.org"
version: {major: 1, minor: 16, release: 10}
packages: ["coinutils", "osi", "sample"]
headers: ["cmath", "stdint_h"]
~~~`,
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# Detection manifest is invalid!

The manifest failed schema validation, or describes an inconsistent build.

## Common issues:
- Unknown package or header names
- Debug levels outside 0..9
- Derived strings (package_string, version, ...) that disagree with name
  and version

## Things you can try:
- Check the CUE path in the error message above
- Validate the syntax with the cue command-line tool:
~~~
$ cue vet manifest.cue
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Show where the configuration is read from:
~~~
$ clpconfig config path
~~~

- Check the file for CUE syntax errors
- Regenerate a default configuration:
~~~
$ clpconfig config init --force
~~~

## Example configuration:
~~~cue
output: format: "text"
ui: {color_scheme: "auto", verbose: false}
backends: prefer: factorization: ["cholmod", "amd"]
~~~`,
	}

	configExistsIssue = &Issue{
		id: ConfigExistsId,
		mdMsg: `
# Configuration file already exists!

## Things you can try:
- Overwrite it:
~~~
$ clpconfig config init --force
~~~`,
	}

	issues = map[Id]*Issue{
		snapshotInvalidIssue.Id():    snapshotInvalidIssue,
		unknownFlagIssue.Id():        unknownFlagIssue,
		unknownCategoryIssue.Id():    unknownCategoryIssue,
		invalidFormatIssue.Id():      invalidFormatIssue,
		backendUnavailableIssue.Id(): backendUnavailableIssue,
		unknownBackendIssue.Id():     unknownBackendIssue,
		manifestNotFoundIssue.Id():   manifestNotFoundIssue,
		manifestInvalidIssue.Id():    manifestInvalidIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		configExistsIssue.Id():       configExistsIssue,
	}
)

// Values returns every registered issue ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
