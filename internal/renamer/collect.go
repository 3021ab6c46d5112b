package renamer

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/types"
)

// reservedWords blacklists every keyword this subset lexes specially
// (internal/lexer/token.go's keyword table), every basic type name
// (internal/types/types.go's interned singletons), the GLSL ES
// reserved-for-future-use identifiers spec.md §4.6's blacklist calls out
// in general terms ("must not collide with ... reserved words"), the
// gl_* built-in variables, and every built-in API function name.
var reservedWords = buildReservedWords()

func buildReservedWords() map[string]bool {
	words := map[string]bool{
		"if": true, "else": true, "for": true, "while": true, "do": true,
		"return": true, "discard": true, "continue": true, "break": true,
		"struct": true, "precision": true, "const": true, "uniform": true,
		"attribute": true, "varying": true, "in": true, "out": true, "inout": true,
		"highp": true, "mediump": true, "lowp": true, "true": true, "false": true,
		"export": true, "import": true,

		"void": true, "bool": true, "int": true, "float": true,
		"bvec2": true, "bvec3": true, "bvec4": true,
		"ivec2": true, "ivec3": true, "ivec4": true,
		"vec2": true, "vec3": true, "vec4": true,
		"mat2": true, "mat3": true, "mat4": true,
		"sampler2D": true, "samplerCube": true,

		// Reserved for future use by the GLSL ES spec; never valid
		// identifiers even though this subset doesn't implement them.
		"asm": true, "class": true, "union": true, "enum": true, "typedef": true,
		"template": true, "this": true, "packed": true, "resource": true,
		"goto": true, "inline": true, "noinline": true, "volatile": true,
		"public": true, "static": true, "extern": true, "external": true,
		"interface": true, "long": true, "short": true, "double": true,
		"half": true, "fixed": true, "unsigned": true, "superp": true,
		"input": true, "output": true, "hvec2": true, "hvec3": true, "hvec4": true,
		"dvec2": true, "dvec3": true, "dvec4": true, "fvec2": true, "fvec3": true,
		"fvec4": true, "sampler1D": true, "sampler3D": true,
		"sampler1DShadow": true, "sampler2DShadow": true, "samplerCubeShadow": true,
		"sampler2DRect": true, "sampler3DRect": true, "sampler2DRectShadow": true,
		"sizeof": true, "cast": true, "namespace": true, "using": true,
		"gl_FragColor": true, "gl_FragCoord": true, "gl_FrontFacing": true,
		"gl_PointCoord": true, "gl_Position": true, "gl_PointSize": true,
	}
	// Built-in API function names (internal/builtins).
	for _, name := range []string{
		"radians", "degrees", "sin", "cos", "tan", "asin", "acos", "atan",
		"pow", "exp", "log", "exp2", "log2", "sqrt", "inversesqrt",
		"abs", "sign", "floor", "ceil", "fract", "min", "max", "mod", "clamp",
		"mix", "step", "smoothstep", "length", "distance", "dot", "cross",
		"normalize", "faceforward", "reflect", "refract", "matrixCompMult",
		"transpose", "lessThan", "lessThanEqual", "greaterThan", "greaterThanEqual",
		"equal", "notEqual", "any", "all", "not", "dFdx", "dFdy", "fwidth",
		"texture2D", "texture2DProj", "textureCube",
	} {
		words[name] = true
	}
	return words
}

// isInterfaceSymbol reports whether sym is bound to a host-visible name a
// caller looks up by string (spec.md §4.6 Internal policy: these keep
// their declared spelling so the host doesn't need the rename map).
func isInterfaceSymbol(sym *types.Symbol) bool {
	return sym.Flags.Has(types.Uniform) || sym.Flags.Has(types.Attribute) || sym.Flags.Has(types.Varying) ||
		sym.Flags.Has(types.Exported) || sym.Flags.Has(types.Imported)
}

// collectCandidates walks every trimmed export clone and buckets every
// USED, non-NATIVE/IMPORTED symbol into one of three renaming namespaces:
// global (top-level functions/structs/variables, one shared sequence
// since they share the global scope), locals (one sequence per function,
// keyed by the function's own symbol, since parameters and locals from
// different functions are never visible at the same time), and fields
// (one sequence per struct type, since a DOT only ever resolves within
// its own struct's field set).
func collectCandidates(trimmed []*ast.Node, policy Policy, blacklist map[string]bool) (
	global []*types.Symbol, locals map[*types.Symbol][]*types.Symbol, fields map[*types.StructType][]*types.Symbol,
) {
	seenGlobal := map[*types.Symbol]bool{}
	seenLocal := map[*types.Symbol]bool{}
	seenField := map[*types.Symbol]bool{}
	locals = map[*types.Symbol][]*types.Symbol{}
	fields = map[*types.StructType][]*types.Symbol{}

	eligible := func(sym *types.Symbol) bool {
		if sym == nil || sym.IsNative() || sym.IsImported() {
			return false
		}
		if policy == Internal && isInterfaceSymbol(sym) {
			// Reserve its declared name so a generated short name never
			// collides with it, but leave it unrenamed.
			blacklist[sym.Name] = true
			return false
		}
		return true
	}

	for _, clone := range trimmed {
		for _, child := range clone.Children {
			switch child.Kind {
			case ast.Function:
				sym := symOf(child)
				if eligible(sym) && !seenGlobal[sym] {
					seenGlobal[sym] = true
					global = append(global, sym)
				}
				fn := sym
				walkLocals(child, fn, eligible, seenLocal, locals)
			case ast.Struct:
				sym := symOf(child)
				if eligible(sym) && !seenGlobal[sym] {
					seenGlobal[sym] = true
					global = append(global, sym)
				}
				if st, ok := sym.Type.(*types.StructType); ok {
					for _, field := range st.Fields {
						if eligible(field) && !seenField[field] {
							seenField[field] = true
							fields[st] = append(fields[st], field)
						}
					}
				}
			case ast.Variables:
				for _, decl := range child.Children {
					sym := symOf(decl)
					if eligible(sym) && !seenGlobal[sym] {
						seenGlobal[sym] = true
						global = append(global, sym)
					}
				}
			}
		}
	}
	return global, locals, fields
}

func symOf(n *ast.Node) *types.Symbol {
	if n == nil || n.ResolvedSymbol == nil {
		return nil
	}
	sym, _ := n.ResolvedSymbol.(*types.Symbol)
	return sym
}

// walkLocals collects every parameter/local symbol declared inside fn
// (its FUNCTION scope and every nested LOCAL/LOOP scope), bucketed under
// fn's own symbol as the namespace key.
func walkLocals(fn *ast.Node, fnSym *types.Symbol, eligible func(*types.Symbol) bool, seen map[*types.Symbol]bool, locals map[*types.Symbol][]*types.Symbol) {
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n == nil {
			return
		}
		if n.Kind == ast.Name && n != fn {
			if sym := symOf(n); sym != nil && sym.Kind == types.VariableSymbol && sym.Scope != nil &&
				sym.Scope.Kind != types.GlobalScope && sym.Scope.Kind != types.StructScope {
				if eligible(sym) && !seen[sym] {
					seen[sym] = true
					locals[fnSym] = append(locals[fnSym], sym)
				}
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, param := range fn.Children {
		if param.Kind == ast.Name {
			walk(param)
		}
	}
	if body, ok := isDefinition(fn); ok {
		walk(body)
	}
}

// isDefinition mirrors internal/printer's own helper: fn carries a BLOCK
// body as its last child iff it is a definition, not a bare prototype.
func isDefinition(fn *ast.Node) (*ast.Node, bool) {
	if n := len(fn.Children); n > 0 && fn.Children[n-1].Kind == ast.Block {
		return fn.Children[n-1], true
	}
	return nil, false
}
