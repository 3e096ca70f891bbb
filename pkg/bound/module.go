package bound

import "github.com/stackb/headerc/pkg/symbol"

// RequireInfo is one `requires` directive after binding.
type RequireInfo struct {
	ModuleName string
	Flags      ModuleFlag
	Version    *string
}

// ExportInfo is one `exports` directive; ToModules is empty for an
// unqualified export.
type ExportInfo struct {
	Package   string
	ToModules []string
}

// OpenInfo is one `opens` directive; ToModules is empty for an unqualified
// opens.
type OpenInfo struct {
	Package   string
	ToModules []string
}

// UseInfo is one `uses` directive.
type UseInfo struct {
	Service symbol.ClassSymbol
}

// ProvideInfo is one `provides ... with ...` directive.
type ProvideInfo struct {
	Service symbol.ClassSymbol
	Impls   []symbol.ClassSymbol
}

// ModuleInfo is the fully bound module-info unit. Invariant: exactly one
// Requires entry names java.base after binding.
type ModuleInfo struct {
	Name    string
	Version *string
	Flags   ModuleFlag
	Annos   []*AnnoInfo

	Requires []RequireInfo
	Exports  []ExportInfo
	Opens    []OpenInfo
	Uses     []UseInfo
	Provides []ProvideInfo
}
