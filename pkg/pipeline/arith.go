package pipeline

import (
	"reflect"

	"github.com/pkg/errors"
)

type numericKind int

const (
	notNumeric numericKind = iota
	signedKind
	unsignedKind
	floatKind
	complexKind
)

func numericKindOf(v reflect.Value) numericKind {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signedKind
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsignedKind
	case reflect.Float32, reflect.Float64:
		return floatKind
	case reflect.Complex64, reflect.Complex128:
		return complexKind
	default:
		return notNumeric
	}
}

func isNumeric(v any) bool {
	return numericKindOf(reflect.ValueOf(v)) != notNumeric
}

// add sums two numbers. Operands of the same type keep their type, mixed operands
// are promoted to int64, uint64, float64 or complex128.
func add(a, b any) (any, error) {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	ka, kb := numericKindOf(va), numericKindOf(vb)
	if ka == notNumeric || kb == notNumeric {
		return nil, errors.Wrapf(ErrTypeMismatch, "unsupported operand types %T and %T for sum", a, b)
	}

	if va.Type() == vb.Type() {
		out := reflect.New(va.Type()).Elem()
		switch ka {
		case signedKind:
			out.SetInt(va.Int() + vb.Int())
		case unsignedKind:
			out.SetUint(va.Uint() + vb.Uint())
		case floatKind:
			out.SetFloat(va.Float() + vb.Float())
		case complexKind:
			out.SetComplex(va.Complex() + vb.Complex())
		}

		return out.Interface(), nil
	}

	switch {
	case ka == complexKind || kb == complexKind:
		return asComplex(va) + asComplex(vb), nil
	case ka == floatKind || kb == floatKind:
		return asFloat(va) + asFloat(vb), nil
	case ka == unsignedKind && kb == unsignedKind:
		return va.Uint() + vb.Uint(), nil
	default:
		return asInt(va) + asInt(vb), nil
	}
}

func asInt(v reflect.Value) int64 {
	if numericKindOf(v) == unsignedKind {
		return int64(v.Uint())
	}

	return v.Int()
}

func asFloat(v reflect.Value) float64 {
	switch numericKindOf(v) {
	case signedKind:
		return float64(v.Int())
	case unsignedKind:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func asComplex(v reflect.Value) complex128 {
	if numericKindOf(v) == complexKind {
		return v.Complex()
	}

	return complex(asFloat(v), 0)
}
