package req_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/typed/http/req"
)

func TestTargetFor(t *testing.T) {
	type schema struct{ A string }

	for _, tc := range []struct {
		name     string
		target   req.Target
		expected req.TargetKind
	}{
		{"Zero-Value", req.Target{}, req.TargetAbsent},
		{"Nil", req.TargetFor(nil), req.TargetAbsent},
		{"None", req.TargetOf[req.None](), req.TargetAbsent},
		{"None-Pointer", req.TargetOf[*req.None](), req.TargetAbsent},
		{"Struct", req.TargetOf[schema](), req.TargetSchema},
		{"Struct-Pointer", req.TargetOf[*schema](), req.TargetSchema},
		{"Bool", req.TargetOf[bool](), req.TargetPrimitive},
		{"Int", req.TargetOf[int](), req.TargetPrimitive},
		{"String", req.TargetOf[string](), req.TargetPrimitive},
		{"Map", req.TargetOf[map[string]any](), req.TargetPrimitive},
		{"Slice", req.TargetOf[[]any](), req.TargetPrimitive},
		{"Any", req.TargetOf[any](), req.TargetPrimitive},
		{"Int-Pointer", req.TargetOf[*int](), req.TargetPrimitive},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.target.Kind())
		})
	}
}

func TestTargetString(t *testing.T) {
	require.Equal(t, "absent", req.Target{}.String())
	require.Equal(t, "primitive int", req.TargetFor(reflect.TypeOf(0)).String())
	require.Equal(t, "absent req.None", req.TargetOf[req.None]().String())
	require.Equal(t, "TargetKind(9)", req.TargetKind(9).String())
}
