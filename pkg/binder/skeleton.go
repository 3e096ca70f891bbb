package binder

import (
	"strings"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/env"
	"github.com/stackb/headerc/pkg/scope"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/tree"
)

// declInfo pairs a declared class's raw syntax with the bookkeeping the
// later stages need to rebuild its scope chain.
type declInfo struct {
	decl    *tree.TypeDecl
	cu      *tree.CompUnit
	owner   *symbol.ClassSymbol
	topSibs []symbol.ClassSymbol // other top-level types in the same compilation unit
}

// indexer performs the first pass: assigning every declared class a stable
// symbol, recording its syntax for later stages, and registering it in the
// qualified-name index and per-package scope tables used to build each
// class's seven-phase CompoundScope.
type indexer struct {
	b       *Binder
	classes *env.SourceEnv[*bound.TypeBoundClass]
	// lookup composes classes with the caller's classpath env, so a
	// supertype or nested-class chain rooted in a previously compiled
	// classpath class resolves the same way a source class does.
	lookup  env.Env[*bound.TypeBoundClass]
	decls   map[symbol.ClassSymbol]*declInfo
	index   *scope.ClassIndex
	byPkg   map[string]scope.SimpleClassScope
	order   []symbol.ClassSymbol

	// Raw source annotations, carried from the member stage to the
	// constant stage, which is the first stage with enough name
	// resolution (and declared-element) context to evaluate them.
	classAnnos  map[symbol.ClassSymbol][]tree.Anno
	fieldAnnos  map[*bound.Field][]tree.Anno
	methodAnnos map[*bound.Method][]tree.Anno
	paramAnnos  map[*bound.Method][][]tree.Anno
}

func newIndexer(b *Binder) *indexer {
	classIndex := b.ClasspathIndex
	if classIndex == nil {
		classIndex = scope.NewClassIndex()
	}
	classes := env.NewSourceEnv[*bound.TypeBoundClass]()
	var lookup env.Env[*bound.TypeBoundClass] = classes
	if b.Classpath != nil {
		lookup = env.NewCompoundEnv[*bound.TypeBoundClass](classes, b.Classpath)
	}
	return &indexer{
		b:           b,
		classes:     classes,
		lookup:      lookup,
		decls:       make(map[symbol.ClassSymbol]*declInfo),
		index:       classIndex,
		byPkg:       make(map[string]scope.SimpleClassScope),
		classAnnos:  make(map[symbol.ClassSymbol][]tree.Anno),
		fieldAnnos:  make(map[*bound.Field][]tree.Anno),
		methodAnnos: make(map[*bound.Method][]tree.Anno),
		paramAnnos:  make(map[*bound.Method][][]tree.Anno),
	}
}

func (idx *indexer) indexUnit(cu *tree.CompUnit) {
	var top []symbol.ClassSymbol
	for _, decl := range cu.Decls {
		top = append(top, symbol.NewClassSymbol(binaryNameOf(cu.Package, nil, decl.Name)))
	}
	for _, decl := range cu.Decls {
		idx.indexDecl(decl, cu.Package, nil, cu, top)
	}
}

func (idx *indexer) indexDecl(decl *tree.TypeDecl, pkg []string, owner *symbol.ClassSymbol, cu *tree.CompUnit, topSibs []symbol.ClassSymbol) symbol.ClassSymbol {
	binaryName := binaryNameOf(pkg, owner, decl.Name)
	sym := symbol.NewClassSymbol(binaryName)

	var nested []symbol.ClassSymbol
	for _, n := range decl.Nested {
		nested = append(nested, symbol.NewClassSymbol(binaryNameOf(pkg, &sym, n.Name)))
	}

	idx.classes.Bind(sym, &bound.TypeBoundClass{
		Sym:    sym,
		Kind:   classKindOf(decl.Kind),
		Flags:  classFlagsOf(decl.Mods, decl.Kind),
		Owner:  owner,
		Nested: nested,
	})
	idx.decls[sym] = &declInfo{decl: decl, cu: cu, owner: owner, topSibs: topSibs}
	idx.order = append(idx.order, sym)
	idx.registerName(pkg, sym)
	if len(decl.Annos) > 0 {
		idx.classAnnos[sym] = decl.Annos
	}

	for _, n := range decl.Nested {
		idx.indexDecl(n, pkg, &sym, cu, topSibs)
	}
	return sym
}

func (idx *indexer) registerName(pkg []string, sym symbol.ClassSymbol) {
	dotted := strings.NewReplacer("/", ".", "$", ".").Replace(sym.Binary)
	idx.index.Put(dotted, sym)

	if sym.IsNested() {
		return
	}
	pkgDotted := strings.Join(pkg, ".")
	scp, ok := idx.byPkg[pkgDotted]
	if !ok {
		scp = make(scope.SimpleClassScope)
		idx.byPkg[pkgDotted] = scp
	}
	scp[sym.SimpleName()] = scope.Result{Kind: scope.ResultClass, Sym: sym}
}

func binaryNameOf(pkg []string, owner *symbol.ClassSymbol, name string) string {
	if owner != nil {
		return owner.Binary + "$" + name
	}
	if len(pkg) == 0 {
		return name
	}
	return strings.Join(pkg, "/") + "/" + name
}
