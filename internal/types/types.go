// Package types implements Sindarin's type model: a tagged variant with
// structural equality, a fixed primitive-coercion lattice, and a fixed
// ABI size table. This is a plain nominal system — there is no
// unification, no substitution, no type variables. Every Type is fully
// concrete once constructed; the checker never needs to solve for one.
//
// The tagged-interface shape (one struct per kind, a narrow interface
// all of them satisfy) is stripped of anything Hindley-Milner-specific.
package types

// Kind identifies which variant of the tagged Type union a value is.
type Kind int

const (
	KindInt Kind = iota
	KindLong
	KindInt32
	KindUint
	KindUint32
	KindDouble
	KindFloat
	KindBool
	KindChar
	KindByte
	KindString
	KindVoid
	KindNil
	KindAny
	KindArray
	KindPointer
	KindFunction
	KindStruct
)

// Type is satisfied by every concrete type variant. Structural equality
// and coercion are defined in terms of it rather than per-kind methods
// so the rules live in one place (Equals and CoercibleTo below).
type Type interface {
	Kind() Kind
	String() string
	Size() int
}

// Primitive covers every scalar kind: int, long, int32, uint, uint32,
// double, float, bool, char, byte, string, void, nil, any. There is
// exactly one Primitive value per primitive kind; construct with the
// package-level vars below rather than composite-literal directly so
// identical primitives compare == as interface values.
type Primitive struct {
	kind Kind
}

func (p *Primitive) Kind() Kind { return p.kind }

func (p *Primitive) String() string {
	if s, ok := primitiveNames[p.kind]; ok {
		return s
	}
	return "<unknown-primitive>"
}

func (p *Primitive) Size() int {
	switch p.kind {
	case KindBool, KindChar, KindByte:
		return 1
	case KindVoid:
		return 0
	default:
		return 8
	}
}

var primitiveNames = map[Kind]string{
	KindInt: "int", KindLong: "long", KindInt32: "int32", KindUint: "uint",
	KindUint32: "uint32", KindDouble: "double", KindFloat: "float",
	KindBool: "bool", KindChar: "char", KindByte: "byte", KindString: "string",
	KindVoid: "void", KindNil: "nil", KindAny: "any",
}

// Interned primitive singletons. Every caller that needs e.g. "int"
// should use Int rather than &Primitive{kind: KindInt} so Equals can
// short-circuit on pointer identity when convenient and so there is
// exactly one Go value representing each primitive, since primitive
// types may be interned.
var (
	Int    = &Primitive{KindInt}
	Long   = &Primitive{KindLong}
	Int32  = &Primitive{KindInt32}
	Uint   = &Primitive{KindUint}
	Uint32 = &Primitive{KindUint32}
	Double = &Primitive{KindDouble}
	Float  = &Primitive{KindFloat}
	Bool   = &Primitive{KindBool}
	Char   = &Primitive{KindChar}
	Byte   = &Primitive{KindByte}
	String = &Primitive{KindString}
	Void   = &Primitive{KindVoid}
	Nil    = &Primitive{KindNil}
	Any    = &Primitive{KindAny}
)

// Array is `array(element)`. Arrays are reference-shaped at runtime;
// their own size on the ABI table is a fixed 8 (a handle), not the
// element size times length.
type Array struct {
	Element Type
}

func (a *Array) Kind() Kind     { return KindArray }
func (a *Array) String() string { return a.Element.String() + "[]" }
func (a *Array) Size() int      { return 8 }

// Pointer is `pointer(pointee)`. Only legal in native function bodies;
// the checker, not this package, enforces that.
type Pointer struct {
	Pointee Type
}

func (p *Pointer) Kind() Kind     { return KindPointer }
func (p *Pointer) String() string { return "*" + p.Pointee.String() }
func (p *Pointer) Size() int      { return 8 }

// MemoryQualifier augments a function parameter or a call-site return
// value with explicit pass/return semantics.
type MemoryQualifier int

const (
	QualDefault MemoryQualifier = iota
	QualAsRef
	QualAsVal
)

func (q MemoryQualifier) String() string {
	switch q {
	case QualAsRef:
		return "as_ref"
	case QualAsVal:
		return "as_val"
	default:
		return "default"
	}
}

// Function is `function(return, params, param_mem_quals)`.
type Function struct {
	Return     Type
	Params     []Type
	ParamQuals []MemoryQualifier
}

func (f *Function) Kind() Kind { return KindFunction }
func (f *Function) Size() int  { return 8 }

func (f *Function) String() string {
	s := "func("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") " + f.Return.String()
}

// StructField is one named, typed member of a struct declaration.
type StructField struct {
	Name string
	Type Type
}

// Struct is `struct(name, fields, is_native)`.
type Struct struct {
	Name     string
	Fields   []StructField
	IsNative bool
}

func (s *Struct) Kind() Kind     { return KindStruct }
func (s *Struct) String() string { return s.Name }
func (s *Struct) Size() int      { return 8 }

// FieldType returns the type of the named field and whether it exists.
func (s *Struct) FieldType(name string) (Type, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// Equals reports structural equality. It is reflexive, symmetric, and
// transitive, and
// `Equals(nil, x) == Equals(x, nil) == false` even when x is the Nil
// primitive type value — Go nil and the Nil Type are deliberately
// distinct concepts here.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Primitive:
		bv := b.(*Primitive)
		return av.kind == bv.kind
	case *Array:
		bv := b.(*Array)
		return Equals(av.Element, bv.Element)
	case *Pointer:
		bv := b.(*Pointer)
		return Equals(av.Pointee, bv.Pointee)
	case *Function:
		bv := b.(*Function)
		if !Equals(av.Return, bv.Return) || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !Equals(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return true
	case *Struct:
		bv := b.(*Struct)
		return av.Name == bv.Name
	default:
		return false
	}
}

// IsNumeric reports whether t is one of the numeric primitive kinds.
func IsNumeric(t Type) bool {
	p, ok := t.(*Primitive)
	if !ok {
		return false
	}
	switch p.kind {
	case KindInt, KindLong, KindInt32, KindUint, KindUint32, KindDouble, KindFloat, KindChar, KindByte:
		return true
	default:
		return false
	}
}

// IsIntegral reports whether t is an integer-compatible numeric kind,
// used for array-index and shift-like validation.
func IsIntegral(t Type) bool {
	p, ok := t.(*Primitive)
	if !ok {
		return false
	}
	switch p.kind {
	case KindInt, KindLong, KindInt32, KindUint, KindUint32, KindChar, KindByte:
		return true
	default:
		return false
	}
}

// IsFloating reports whether t is double or float.
func IsFloating(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && (p.kind == KindDouble || p.kind == KindFloat)
}

// CoercibleTo reports whether a value of type from may be used where
// to is expected, per the coercion lattice:
//
//	int ⊑ double, byte ⊑ int, char ⊑ int
//
// plus the structural rules for nil, any, array, and pointer that the
// checker relies on.
func CoercibleTo(from, to Type) bool {
	if from == nil || to == nil {
		return false
	}
	if Equals(from, to) {
		return true
	}
	// nil coerces to any pointer or array type.
	if isNilType(from) {
		switch to.(type) {
		case *Pointer, *Array:
			return true
		}
		return false
	}
	// any[] is the join type for heterogeneous array literals; it is
	// only accepted where the target itself is any[] or any.
	if toAny, ok := to.(*Primitive); ok && toAny.kind == KindAny {
		return true
	}
	// The only implicit primitive coercions: int ⊑ double, byte ⊑ int,
	// char ⊑ int. No reverse edges, nothing for int32/uint/uint32.
	if fp, ok := from.(*Primitive); ok {
		tp, ok := to.(*Primitive)
		if !ok {
			return false
		}
		switch fp.kind {
		case KindInt:
			return tp.kind == KindDouble
		case KindByte, KindChar:
			return tp.kind == KindInt
		default:
			return false
		}
	}
	if fa, ok := from.(*Array); ok {
		ta, ok := to.(*Array)
		if !ok {
			return false
		}
		if ap, ok := ta.Element.(*Primitive); ok && ap.kind == KindAny {
			return true
		}
		return Equals(fa.Element, ta.Element)
	}
	return false
}

func isNilType(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.kind == KindNil
}

// JoinArrayElement computes the element type of an array literal given
// the types of its elements: array literals with uniformly
// incompatible element types yield any[]; mixed
// int/double promotes to double, a single repeated type stays that
// type, anything else (string mixed with numeric, bool mixed in, etc.)
// falls back to any.
func JoinArrayElement(elems []Type) Type {
	if len(elems) == 0 {
		return Any
	}
	allSame := true
	first := elems[0]
	sawDouble, sawIntLike := false, false
	for _, e := range elems {
		if !Equals(e, first) {
			allSame = false
		}
		if p, ok := e.(*Primitive); ok {
			switch p.kind {
			case KindDouble, KindFloat:
				sawDouble = true
			case KindInt, KindLong, KindByte, KindChar, KindInt32:
				sawIntLike = true
			}
		} else {
			sawIntLike = false
			sawDouble = false
		}
	}
	if allSame {
		return first
	}
	if sawDouble && sawIntLike {
		allNumeric := true
		for _, e := range elems {
			if !IsNumeric(e) {
				allNumeric = false
				break
			}
		}
		if allNumeric {
			return Double
		}
	}
	return Any
}

// ResultOfArithmetic implements the binary-arithmetic result rule:
// double if either operand is double/float, else int/long — long
// only when either operand already is long, so narrower-width inputs
// stay narrow.
func ResultOfArithmetic(a, b Type) (Type, bool) {
	if !IsNumeric(a) || !IsNumeric(b) {
		return nil, false
	}
	if IsFloating(a) || IsFloating(b) {
		return Double, true
	}
	ap, _ := a.(*Primitive)
	bp, _ := b.(*Primitive)
	if ap.kind == KindLong || bp.kind == KindLong {
		return Long, true
	}
	return Int, true
}

// FormatSignature renders a human-readable signature for diagnostics,
// e.g. for an "arity mismatch" error message.
func FormatSignature(name string, params []Type) string {
	s := name + "("
	for i, p := range params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}
