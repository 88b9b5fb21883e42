package typed_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/typed"
)

func TestMask(t *testing.T) {
	for _, tc := range []struct {
		name     string
		query    string
		key      string
		expected string
	}{
		{"Empty", "", "password", ""},
		{"Absent", "name=spinner", "password", "name=spinner"},
		{"Case-Sensitive", "Password=hunter2", "password", "Password=hunter2"},
		{"Only-Key", "name=spinner&password=hunter2", "password", "name=spinner&password=" + typed.LogMaskVal},
		{"Blank", "password=", "password", "password=" + typed.LogMaskVal},
		{"Squash", "password=hunter2&password=hunter3&kind=gizmo", "password", "kind=gizmo&password=" + typed.LogMaskVal},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			vals, err := url.ParseQuery(tc.query)
			require.Nil(t, err)

			// Act
			typed.Mask(vals, tc.key)

			// Assert
			require.Equal(t, tc.expected, vals.Encode())
		})
	}
}
