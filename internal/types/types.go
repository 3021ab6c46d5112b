// Package types implements the shading language's small closed type
// system: scalars, vectors, matrices, opaque samplers, user structs, and
// function types; basic and struct types compare by identity, function
// and array types structurally (see Identical; spec.md §3).
package types

// Kind is the closed set of base type shapes.
type Kind int

const (
	Void Kind = iota
	Bool
	Int
	Float
	BVec2
	BVec3
	BVec4
	IVec2
	IVec3
	IVec4
	Vec2
	Vec3
	Vec4
	Mat2
	Mat3
	Mat4
	Sampler2D
	SamplerCube
	Error
	Struct
	Function
)

// Type is implemented by every type value. Basic (non-struct,
// non-function, non-array) types are interned singletons and may be
// compared with ==.
type Type interface {
	Kind() Kind
	String() string
	// ComponentType is the scalar type of a vector/matrix component, or
	// the type itself for scalars. Returns nil for non-numeric types.
	ComponentType() Type
	// ComponentCount is 1 for scalars, N for vecN, and rows*cols for matN.
	ComponentCount() int
}

type basic struct {
	kind Kind
	name string
	comp Kind // component kind for vectors/matrices; Void for scalars
	n    int  // component count
}

func (b *basic) Kind() Kind   { return b.kind }
func (b *basic) String() string { return b.name }
func (b *basic) ComponentCount() int { return b.n }
func (b *basic) ComponentType() Type {
	if b.n <= 1 {
		if b.kind == Bool || b.kind == Int || b.kind == Float {
			return b
		}
		return nil
	}
	return basicByKind[b.comp]
}

var basicByKind = map[Kind]*basic{}

var (
	VoidType  = intern(&basic{kind: Void, name: "void", n: 1})
	BoolType  = intern(&basic{kind: Bool, name: "bool", n: 1})
	IntType   = intern(&basic{kind: Int, name: "int", n: 1})
	FloatType = intern(&basic{kind: Float, name: "float", n: 1})
	ErrorType = intern(&basic{kind: Error, name: "<error>", n: 1})

	BVec2Type = intern(&basic{kind: BVec2, name: "bvec2", comp: Bool, n: 2})
	BVec3Type = intern(&basic{kind: BVec3, name: "bvec3", comp: Bool, n: 3})
	BVec4Type = intern(&basic{kind: BVec4, name: "bvec4", comp: Bool, n: 4})

	IVec2Type = intern(&basic{kind: IVec2, name: "ivec2", comp: Int, n: 2})
	IVec3Type = intern(&basic{kind: IVec3, name: "ivec3", comp: Int, n: 3})
	IVec4Type = intern(&basic{kind: IVec4, name: "ivec4", comp: Int, n: 4})

	Vec2Type = intern(&basic{kind: Vec2, name: "vec2", comp: Float, n: 2})
	Vec3Type = intern(&basic{kind: Vec3, name: "vec3", comp: Float, n: 3})
	Vec4Type = intern(&basic{kind: Vec4, name: "vec4", comp: Float, n: 4})

	Mat2Type = intern(&basic{kind: Mat2, name: "mat2", comp: Float, n: 4})
	Mat3Type = intern(&basic{kind: Mat3, name: "mat3", comp: Float, n: 9})
	Mat4Type = intern(&basic{kind: Mat4, name: "mat4", comp: Float, n: 16})

	Sampler2DType   = intern(&basic{kind: Sampler2D, name: "sampler2D", n: 1})
	SamplerCubeType = intern(&basic{kind: SamplerCube, name: "samplerCube", n: 1})
)

func intern(b *basic) *basic {
	basicByKind[b.kind] = b
	return b
}

// ByName looks up one of the fixed basic types (not struct/function) by
// its GLSL spelling, used by the parser when it sees a type-name token.
func ByName(name string) (Type, bool) {
	for _, b := range basicByKind {
		if b.name == name {
			return b, true
		}
	}
	return nil, false
}

// IsVector reports whether t is any bvec/ivec/vec type.
func IsVector(t Type) bool {
	switch t.Kind() {
	case BVec2, BVec3, BVec4, IVec2, IVec3, IVec4, Vec2, Vec3, Vec4:
		return true
	}
	return false
}

// IsMatrix reports whether t is mat2/mat3/mat4.
func IsMatrix(t Type) bool {
	switch t.Kind() {
	case Mat2, Mat3, Mat4:
		return true
	}
	return false
}

// IsScalar reports whether t is bool/int/float.
func IsScalar(t Type) bool {
	switch t.Kind() {
	case Bool, Int, Float:
		return true
	}
	return false
}

// MatrixRowsCols returns the rows and columns (always equal in this
// subset, matN is square) of a matrix type; zero for anything else.
func MatrixRowsCols(t Type) int {
	switch t.Kind() {
	case Mat2:
		return 2
	case Mat3:
		return 3
	case Mat4:
		return 4
	}
	return 0
}

// VectorOf returns the vecN/ivecN/bvecN type with the given component
// type and length, or nil if no such type exists in this subset.
func VectorOf(component Type, n int) Type {
	switch component.Kind() {
	case Bool:
		switch n {
		case 2:
			return BVec2Type
		case 3:
			return BVec3Type
		case 4:
			return BVec4Type
		}
	case Int:
		switch n {
		case 2:
			return IVec2Type
		case 3:
			return IVec3Type
		case 4:
			return IVec4Type
		}
	case Float:
		switch n {
		case 2:
			return Vec2Type
		case 3:
			return Vec3Type
		case 4:
			return Vec4Type
		}
	}
	return nil
}

// StructType is declared per struct declaration; compared by declaration
// identity (pointer equality), never structurally.
type StructType struct {
	Name   string
	Fields []*Symbol // field symbols, in declaration order
}

func (s *StructType) Kind() Kind          { return Struct }
func (s *StructType) String() string      { return s.Name }
func (s *StructType) ComponentType() Type { return nil }
func (s *StructType) ComponentCount() int { return len(s.Fields) }

// FieldNamed returns the field symbol with the given name, or nil.
func (s *StructType) FieldNamed(name string) *Symbol {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ArrayType is a supplement beyond spec.md §3's closed type list: the
// shading language accepts sized and unsized arrays (spec.md §6), which
// need some type representation. Size 0 means unsized ("[]").
type ArrayType struct {
	Element Type
	Size    int
}

func (a *ArrayType) Kind() Kind          { return a.Element.Kind() }
func (a *ArrayType) ComponentType() Type { return a.Element.ComponentType() }
func (a *ArrayType) ComponentCount() int { return a.Element.ComponentCount() }
func (a *ArrayType) String() string {
	if a.Size == 0 {
		return a.Element.String() + "[]"
	}
	return a.Element.String() + "[" + itoa(a.Size) + "]"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// ParamQualifier is a function parameter's direction qualifier.
type ParamQualifier int

const (
	QualifierIn ParamQualifier = iota
	QualifierOut
	QualifierInOut
)

// Param describes one function parameter's type and qualifier.
type Param struct {
	Type      Type
	Qualifier ParamQualifier
	Const     bool
}

// FunctionType is (return type, parameter list with qualifiers, const).
// Two function types are equal (for overload matching) iff every
// parameter type matches exactly; this is compared structurally via Equal.
type FunctionType struct {
	ReturnType Type
	Params     []Param
	Const      bool
}

func (f *FunctionType) Kind() Kind          { return Function }
func (f *FunctionType) ComponentType() Type { return nil }
func (f *FunctionType) ComponentCount() int { return 0 }

func (f *FunctionType) String() string {
	s := f.ReturnType.String() + "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Type.String()
	}
	return s + ")"
}

// Equal reports whether two function types have identical arity and
// per-position parameter types (spec.md §4.3 overload resolution: "each
// argument type equals the parameter type exactly").
func (f *FunctionType) Equal(other *FunctionType) bool {
	if len(f.Params) != len(other.Params) {
		return false
	}
	for i := range f.Params {
		if !Identical(f.Params[i].Type, other.Params[i].Type) {
			return false
		}
	}
	return true
}

// Identical reports whether two types are the same type: identity for
// every basic/struct type, structural for function and array types
// (two array types built at different declaration sites with the same
// element type and size are the same type).
func Identical(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if fa, ok := a.(*FunctionType); ok {
		fb, ok := b.(*FunctionType)
		return ok && fa.ReturnType == fb.ReturnType && fa.Equal(fb)
	}
	if aa, ok := a.(*ArrayType); ok {
		ab, ok := b.(*ArrayType)
		return ok && aa.Size == ab.Size && Identical(aa.Element, ab.Element)
	}
	return a == b
}

// String-format helper used by diagnostics that name a type list, e.g.
// overload-resolution "near miss" messages.
func JoinTypes(ts []Type) string {
	out := ""
	for i, t := range ts {
		if i > 0 {
			out += ", "
		}
		out += t.String()
	}
	return out
}
