// Package builtins synthesizes the GLSL ES built-in API: the function
// overloads and predefined variables spec.md §9's open question (b)
// calls "whatever is present in the special <api> synthesized source".
// There is no literal source text for these — they are installed
// directly into the parser's global scope, flagged NATIVE, so ordinary
// name resolution and overload resolution finds them exactly like a
// user declaration would, but the rewriter never trims them and the
// printer never emits them (spec.md §4.5, §4.7).
package builtins

import "github.com/cwbudde/glslx-go/internal/types"

// genFloat is the GLSL "genType" family used by nearly every built-in:
// the same operation over float, vec2, vec3, and vec4.
var genFloat = []types.Type{types.FloatType, types.Vec2Type, types.Vec3Type, types.Vec4Type}

var genInt = []types.Type{types.IntType}

var genBool = []types.Type{types.BVec2Type, types.BVec3Type, types.BVec4Type}

var allVec = []types.Type{types.Vec2Type, types.Vec3Type, types.Vec4Type}

var allMat = []types.Type{types.Mat2Type, types.Mat3Type, types.Mat4Type}

// Install defines every built-in function overload and predefined
// variable into scope, using data for symbol id allocation. Call once,
// before parsing any user source, so #version/#extension/declarations
// see a fully populated global scope (spec.md §3 CompilerData, §4.2).
func Install(scope *types.Scope, data *types.CompilerData) {
	installFunctions(scope, data)
	installVariables(scope, data)
}

func fn(ret types.Type, params ...types.Type) *types.FunctionType {
	ps := make([]types.Param, len(params))
	for i, t := range params {
		ps[i] = types.Param{Type: t, Qualifier: types.QualifierIn}
	}
	return &types.FunctionType{ReturnType: ret, Params: ps}
}

// defineNative installs one overload of a NATIVE function, chaining it
// onto any existing overloads of the same name the way the parser's
// defineOrOverload links a redeclared function (spec.md §3 "overload
// chain", §4.6 renamer blacklist via the NATIVE flag).
func defineNative(scope *types.Scope, data *types.CompilerData, name string, ft *types.FunctionType) {
	sym := &types.Symbol{
		ID: data.NextSymbolID(), Name: name, Kind: types.FunctionSymbolKind,
		Type: ft, Flags: types.Native,
	}
	if existing, ok := scope.FindLocal(name); ok && existing.Kind == types.FunctionSymbolKind {
		sym.Overloads = append(append([]*types.Symbol{}, existing.Overloads...), existing)
		existing.Overloads = append(existing.Overloads, sym)
		scope.Redefine(name, sym)
		return
	}
	scope.Define(sym)
}

// eachGen installs one overload of name per type in family, all sharing
// the same shape (ret == param == family[i]), e.g. `float sin(float)`
// and `vec3 sin(vec3)` for the same "sin".
func eachGen(scope *types.Scope, data *types.CompilerData, name string, family []types.Type) {
	for _, t := range family {
		defineNative(scope, data, name, fn(t, t))
	}
}

// eachGen2 is eachGen for two-argument component-wise functions (both
// arguments and the result share the family type, e.g. `min`/`max`/`pow`).
func eachGen2(scope *types.Scope, data *types.CompilerData, name string, family []types.Type) {
	for _, t := range family {
		defineNative(scope, data, name, fn(t, t, t))
	}
}

func eachGen3(scope *types.Scope, data *types.CompilerData, name string, family []types.Type) {
	for _, t := range family {
		defineNative(scope, data, name, fn(t, t, t, t))
	}
}

func installFunctions(scope *types.Scope, data *types.CompilerData) {
	// Angle and trigonometry.
	for _, name := range []string{"radians", "degrees", "sin", "cos", "tan", "asin", "acos"} {
		eachGen(scope, data, name, genFloat)
	}
	eachGen2(scope, data, "atan", genFloat)
	eachGen(scope, data, "atan", genFloat)

	// Exponential.
	for _, name := range []string{"sqrt", "inversesqrt", "exp", "log", "exp2", "log2"} {
		eachGen(scope, data, name, genFloat)
	}
	eachGen2(scope, data, "pow", genFloat)

	// Common.
	for _, name := range []string{"abs", "sign", "floor", "ceil", "fract"} {
		eachGen(scope, data, name, genFloat)
	}
	eachGen(scope, data, "abs", genInt)
	eachGen(scope, data, "sign", genInt)
	eachGen2(scope, data, "min", genInt)
	eachGen2(scope, data, "max", genInt)
	eachGen3(scope, data, "clamp", genInt)
	for _, t := range genFloat {
		// min/max/mod each take either a fully-vectorized second operand
		// or a scalar float broadcast over a vector first operand.
		defineNative(scope, data, "min", fn(t, t, t))
		defineNative(scope, data, "max", fn(t, t, t))
		defineNative(scope, data, "mod", fn(t, t, t))
		defineNative(scope, data, "clamp", fn(t, t, t, t))
		defineNative(scope, data, "mix", fn(t, t, t, t))
		defineNative(scope, data, "step", fn(t, t, t))
		defineNative(scope, data, "smoothstep", fn(t, t, t, t))
		if t != types.FloatType {
			defineNative(scope, data, "min", fn(t, t, types.FloatType))
			defineNative(scope, data, "max", fn(t, t, types.FloatType))
			defineNative(scope, data, "mod", fn(t, t, types.FloatType))
			defineNative(scope, data, "clamp", fn(t, t, types.FloatType, types.FloatType))
			defineNative(scope, data, "mix", fn(t, t, t, types.FloatType))
			defineNative(scope, data, "step", fn(t, types.FloatType, t))
			defineNative(scope, data, "smoothstep", fn(t, types.FloatType, types.FloatType, t))
		}
	}

	// Geometric.
	eachGen(scope, data, "length", genFloat)
	for _, t := range genFloat {
		defineNative(scope, data, "distance", fn(types.FloatType, t, t))
		defineNative(scope, data, "dot", fn(types.FloatType, t, t))
		defineNative(scope, data, "normalize", fn(t, t))
		defineNative(scope, data, "faceforward", fn(t, t, t, t))
		defineNative(scope, data, "reflect", fn(t, t, t))
		defineNative(scope, data, "refract", fn(t, t, t, types.FloatType))
	}
	defineNative(scope, data, "cross", fn(types.Vec3Type, types.Vec3Type, types.Vec3Type))

	// Matrix.
	for _, m := range allMat {
		defineNative(scope, data, "matrixCompMult", fn(m, m, m))
		defineNative(scope, data, "transpose", fn(m, m))
	}

	// Vector relational.
	for i, v := range allVec {
		b := genBool[i]
		for _, name := range []string{"lessThan", "lessThanEqual", "greaterThan", "greaterThanEqual", "equal", "notEqual"} {
			defineNative(scope, data, name, fn(b, v, v))
		}
	}
	for _, b := range genBool {
		defineNative(scope, data, "any", fn(types.BoolType, b))
		defineNative(scope, data, "all", fn(types.BoolType, b))
		defineNative(scope, data, "not", fn(b, b))
	}

	// Derivatives and fragment-stage helpers (legal everywhere here since
	// spec.md §4.3 notes stage info isn't tracked).
	for _, t := range genFloat {
		defineNative(scope, data, "dFdx", fn(t, t))
		defineNative(scope, data, "dFdy", fn(t, t))
		defineNative(scope, data, "fwidth", fn(t, t))
	}

	// Texture lookup.
	defineNative(scope, data, "texture2D", fn(types.Vec4Type, types.Sampler2DType, types.Vec2Type))
	defineNative(scope, data, "texture2D", fn(types.Vec4Type, types.Sampler2DType, types.Vec2Type, types.FloatType))
	defineNative(scope, data, "texture2DProj", fn(types.Vec4Type, types.Sampler2DType, types.Vec3Type))
	defineNative(scope, data, "texture2DProj", fn(types.Vec4Type, types.Sampler2DType, types.Vec4Type))
	defineNative(scope, data, "textureCube", fn(types.Vec4Type, types.SamplerCubeType, types.Vec3Type))
}

// variable installs a NATIVE predefined variable with the given storage
// qualifier flags.
func variable(scope *types.Scope, data *types.CompilerData, name string, t types.Type, flags types.Flag) {
	sym := &types.Symbol{
		ID: data.NextSymbolID(), Name: name, Kind: types.VariableSymbol,
		Type: t, Flags: types.Native | flags,
	}
	scope.Define(sym)
}

func installVariables(scope *types.Scope, data *types.CompilerData) {
	variable(scope, data, "gl_Position", types.Vec4Type, types.Out)
	variable(scope, data, "gl_PointSize", types.FloatType, types.Out)
	variable(scope, data, "gl_FragColor", types.Vec4Type, types.Out)
	variable(scope, data, "gl_FragCoord", types.Vec4Type, types.In)
	variable(scope, data, "gl_FrontFacing", types.BoolType, types.In)
	variable(scope, data, "gl_PointCoord", types.Vec2Type, types.In)
}
