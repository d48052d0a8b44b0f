// Package witload resolves a --world flag against a parsed WIT package,
// and resolves the optional @version suffix on interface-qualified import
// names (spec §3 "both the bare and versioned spellings must be
// resolvable"). WIT parsing and world resolution themselves are the
// external component A collaborator (go.bytecodealliance.org/wit); this
// package only picks among its already-resolved output.
package witload

import (
	"fmt"
	"strings"

	"github.com/coreos/go-semver/semver"
	"go.bytecodealliance.org/wit"
)

// Parser parses a WIT file or directory into a fully resolved package
// graph (spec §2 component A). Never implemented in this module — WIT
// parsing itself is an external collaborator per spec §1 — wired only as
// a test double in pkg/componentize/build_test.go. The CLI does not wire
// one: cmd/componentize/cmd's newDependencies returns an error instead.
type Parser interface {
	Parse(witPath string) (resolve *wit.Resolve, pkg *wit.Package, err error)
}

// ResolveWorld implements spec §9.1's supplemented fallback: when name is
// empty, use the package's sole world, erroring only when the package
// declares more than one and none is distinguished. go.bytecodealliance.org/wit's
// resolved representation carries no explicit "default world" marker, so
// "sole world in the package" is the operative definition of default here
// (see DESIGN.md).
func ResolveWorld(pkg *wit.Package, name string) (*wit.World, error) {
	if pkg == nil {
		return nil, fmt.Errorf("witload: nil package")
	}
	if name != "" {
		w, ok := pkg.Worlds[name]
		if !ok {
			return nil, fmt.Errorf("witload: package %s declares no world %q", pkg.Name.String(), name)
		}
		return w, nil
	}
	switch len(pkg.Worlds) {
	case 0:
		return nil, fmt.Errorf("witload: package %s declares no worlds", pkg.Name.String())
	case 1:
		for _, w := range pkg.Worlds {
			return w, nil
		}
	}
	return nil, fmt.Errorf("witload: package %s declares %d worlds; --world is required", pkg.Name.String(), len(pkg.Worlds))
}

// QualifiedName splits an interface-qualified import name such as
// "wasi:random/random@0.2.0" into its bare spelling ("wasi:random/random")
// and parsed version, so both the bare and versioned spellings can be
// bound as globals (spec §3's naming conventions).
func QualifiedName(qualified string) (bare string, version *semver.Version, err error) {
	name, ver, hasVer := strings.Cut(qualified, "@")
	if !hasVer {
		return name, nil, nil
	}
	v, err := semver.NewVersion(ver)
	if err != nil {
		return name, nil, fmt.Errorf("witload: invalid version suffix %q: %w", ver, err)
	}
	return name, v, nil
}
