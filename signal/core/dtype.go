package core

// DType identifies the element type of a Buffer.
type DType int

const (
	// F32 is a real 32-bit floating point element.
	F32 DType = iota

	// F64 is a real 64-bit floating point element.
	F64

	// C64 is a complex element with 32-bit components.
	C64

	// C128 is a complex element with 64-bit components.
	C128
)

// String returns the conventional short name of the type.
func (d DType) String() string {
	switch d {
	case F32:
		return "f32"
	case F64:
		return "f64"
	case C64:
		return "c64"
	case C128:
		return "c128"
	default:
		return "invalid"
	}
}

// Valid reports whether d is one of the supported element types.
func (d DType) Valid() bool {
	return d >= F32 && d <= C128
}

// IsComplex reports whether d is a complex element type.
func (d DType) IsComplex() bool {
	return d == C64 || d == C128
}

// IsReal reports whether d is a real element type.
func (d DType) IsReal() bool {
	return d == F32 || d == F64
}

// Complex returns the complex type with the same component precision.
// Complex types map to themselves.
func (d DType) Complex() DType {
	switch d {
	case F32:
		return C64
	case F64:
		return C128
	default:
		return d
	}
}

// Real returns the real type with the same component precision.
// Real types map to themselves.
func (d DType) Real() DType {
	switch d {
	case C64:
		return F32
	case C128:
		return F64
	default:
		return d
	}
}

// Size returns the element size in bytes.
func (d DType) Size() int {
	switch d {
	case F32:
		return 4
	case F64, C64:
		return 8
	case C128:
		return 16
	default:
		return 0
	}
}

// Promote returns the type resulting from combining elements of a and b:
// complex wins over real, 64-bit components win over 32-bit.
func Promote(a, b DType) DType {
	cplx := a.IsComplex() || b.IsComplex()
	wide := a == F64 || a == C128 || b == F64 || b == C128
	switch {
	case cplx && wide:
		return C128
	case cplx:
		return C64
	case wide:
		return F64
	default:
		return F32
	}
}
