package req

import (
	"fmt"
	"reflect"
)

// A TargetKind is how a Target's decoded body is validated.
type TargetKind int

const (
	// TargetAbsent expects no body.
	TargetAbsent TargetKind = iota

	// TargetSchema expects a body binding to a struct and passing its validation rules.
	TargetSchema

	// TargetPrimitive expects a body already of the target type.
	TargetPrimitive
)

func (k TargetKind) String() string {
	switch k {
	case TargetAbsent:
		return "absent"
	case TargetSchema:
		return "schema"
	case TargetPrimitive:
		return "primitive"
	default:
		return fmt.Sprintf("TargetKind(%d)", int(k))
	}
}

// None is the type to resolve a request expected to carry no body.
type None struct{}

// A Target describes the type a request body must resolve to.
// The zero value is an absent Target.
type Target struct {
	kind TargetKind
	typ  reflect.Type
}

// TargetOf classifies T.
func TargetOf[T any]() Target {
	return TargetFor(reflect.TypeOf((*T)(nil)).Elem())
}

// TargetFor classifies t:
//   - nil or [None] is absent;
//   - a struct or pointer to a struct is a schema;
//   - anything else is a primitive.
func TargetFor(t reflect.Type) Target {
	switch {
	case t == nil, t == reflect.TypeOf((*None)(nil)).Elem(), t == reflect.TypeOf((**None)(nil)).Elem():
		return Target{kind: TargetAbsent, typ: t}
	case t.Kind() == reflect.Struct:
		return Target{kind: TargetSchema, typ: t}
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return Target{kind: TargetSchema, typ: t}
	default:
		return Target{kind: TargetPrimitive, typ: t}
	}
}

// Kind reports how t validates a body.
func (t Target) Kind() TargetKind { return t.kind }

// Type is the type t resolves to; nil for the zero value Target.
func (t Target) Type() reflect.Type { return t.typ }

func (t Target) String() string {
	if t.typ == nil {
		return t.kind.String()
	}

	return fmt.Sprintf("%s %s", t.kind, t.typ)
}

// structType is the struct a schema Target binds to.
func (t Target) structType() reflect.Type {
	if t.typ.Kind() == reflect.Pointer {
		return t.typ.Elem()
	}

	return t.typ
}
