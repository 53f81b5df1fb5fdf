package script

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/goplus/ixgo"
	"github.com/goplus/ixgo/xgobuild"

	"github.com/catapult-build/catapult/catapulterr"
	"github.com/catapult-build/catapult/graph"
	"github.com/catapult-build/catapult/target"
)

// ScriptFile is the fixed filename every project's build script must carry.
const ScriptFile = "build.catapult"

// Host drives one build.catapult evaluation through ixgo. It carries no
// state across calls: scripts never run concurrently with each other, and
// a fresh ixgo.Context is built for every evaluation.
type Host struct{}

// NewHost returns a ready-to-use Host.
func NewHost() *Host {
	return &Host{}
}

// Load evaluates the build.catapult file at path, registering every target
// it declares into g, and returns those targets in declaration order.
// global and deps supply the GLOBAL value and the per-name
// DependencyHandle bindings the script's generated preamble resolves.
func (h *Host) Load(path, projectDir string, g *graph.Graph, global target.Global, deps map[string]*target.DependencyHandle) (_ []*target.Target, err error) {
	raw, ioErr := os.ReadFile(path)
	if ioErr != nil {
		return nil, catapulterr.Wrap(catapulterr.IOError, ioErr, "read "+path)
	}

	source := preamble(deps) + string(raw)

	ctx := ixgo.NewContext(0)
	compiled, buildErr := xgobuild.BuildFile(ctx, path, []byte(source))
	if buildErr != nil {
		return nil, catapulterr.Wrap(catapulterr.ScriptSyntax, buildErr, path)
	}
	pkgs, loadErr := ctx.LoadFile("main.go", compiled)
	if loadErr != nil {
		return nil, catapulterr.Wrap(catapulterr.ScriptSyntax, loadErr, path)
	}
	interp, interpErr := ctx.NewInterp(pkgs)
	if interpErr != nil {
		return nil, catapulterr.Wrap(catapulterr.ScriptEval, interpErr, path)
	}

	typ, ok := interp.GetType("BuildScript")
	if !ok {
		return nil, catapulterr.Newf(catapulterr.ScriptEval, "%s: BuildScript class not found", path)
	}
	val := reflect.New(typ)
	elem := val.Elem()
	setValue(elem, "graph", g)
	setValue(elem, "projectDir", projectDir)

	unstage := stage(&bindings{global: global, deps: deps})
	defer unstage()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if f, ok := r.(fatal); ok {
			e := f.err
			e.File = path
			err = e
			return
		}
		panic(r)
	}()

	if initErr := interp.RunInit(); initErr != nil {
		return nil, catapulterr.Wrap(catapulterr.ScriptEval, initErr, path)
	}
	val.Interface().(interface{ Main() }).Main()

	targets, _ := valueOf(elem, "ownTargets").([]*target.Target)
	return targets, nil
}

// preamble synthesizes the var declarations binding GLOBAL and every
// declared dependency name into the script's package scope, ahead of the
// script's own top-level statements (which the classfile compiler turns
// into the BuildScript.MainEntry body). Dependency names are emitted in
// sorted order purely so the generated source is deterministic across
// runs; the bindings themselves are looked up by name, not position.
func preamble(deps map[string]*target.DependencyHandle) string {
	var b strings.Builder
	b.WriteString("import script \"github.com/catapult-build/catapult/script\"\n")
	b.WriteString("var GLOBAL = script.LookupGlobal()\n")

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "var %s = script.LookupDependency(%q)\n", name, name)
	}
	return b.String()
}
