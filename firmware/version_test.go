package firmware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoardVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Version
		wantErr bool
	}{
		{
			name:  "mcu prefixed",
			input: "L476_BLUEMICROSYSTEM2_2.0.1",
			want:  &Version{Name: "BLUEMICROSYSTEM2", McuType: "L476", Major: 2, Minor: 0, Patch: 1},
		},
		{
			name:  "name and version",
			input: "BLUEMICROSYSTEM2 1.9.0",
			want:  &Version{Name: "BLUEMICROSYSTEM2", Major: 1, Minor: 9, Patch: 0},
		},
		{
			name:  "name slash mcu",
			input: "BLUEMICROSYSTEM2/F401 3.1.12",
			want:  &Version{Name: "BLUEMICROSYSTEM2", McuType: "F401", Major: 3, Minor: 1, Patch: 12},
		},
		{
			name:  "surrounding spaces",
			input: "  BLUEMICROSYSTEM2 2.0.1 ",
			want:  &Version{Name: "BLUEMICROSYSTEM2", Major: 2, Minor: 0, Patch: 1},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "no version", input: "BLUEMICROSYSTEM2", wantErr: true},
		{name: "two numbers", input: "BLUEMICROSYSTEM2 2.0", wantErr: true},
		{name: "letters in version", input: "BLUEMICROSYSTEM2 2.x.1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBoardVersion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidFormat))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBleVersion(t *testing.T) {
	v, err := ParseBleVersion("7.2.c")
	require.NoError(t, err)
	assert.Equal(t, &Version{Major: 7, Minor: 2, Patch: 2}, v)

	v, err = ParseBleVersion("1.5.10")
	require.NoError(t, err)
	assert.Equal(t, &Version{Major: 1, Minor: 5, Patch: 10}, v)

	_, err = ParseBleVersion("BLUEMICROSYSTEM2 2.0.1")
	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "ble", formatErr.Kind)
	assert.Contains(t, err.Error(), "invalid ble version format")
}

func TestVersionOrdering(t *testing.T) {
	older, err := ParseBoardVersion("BLUEMICROSYSTEM2 1.9.0")
	require.NoError(t, err)
	newer, err := ParseBoardVersion("BLUEMICROSYSTEM2 2.0.1")
	require.NoError(t, err)

	assert.True(t, older.Less(*newer))
	assert.False(t, newer.Less(*older))
	assert.Equal(t, -1, older.Compare(*newer))
	assert.Equal(t, 1, newer.Compare(*older))
	assert.Equal(t, 0, newer.Compare(Version{Name: "OTHER", Major: 2, Minor: 0, Patch: 1}))

	assert.True(t, Version{Major: 2, Minor: 1, Patch: 0}.Less(Version{Major: 2, Minor: 1, Patch: 3}))
	assert.True(t, Version{Major: 2, Minor: 0, Patch: 9}.Less(Version{Major: 2, Minor: 1, Patch: 0}))
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "L476_BLUEMICROSYSTEM2_2.0.1",
		Version{Name: "BLUEMICROSYSTEM2", McuType: "L476", Major: 2, Patch: 1}.String())
	assert.Equal(t, "BLUEMICROSYSTEM2 2.0.1",
		Version{Name: "BLUEMICROSYSTEM2", Major: 2, Patch: 1}.String())
	assert.Equal(t, "7.2.2", Version{Major: 7, Minor: 2, Patch: 2}.String())
}

func TestNewRequirement(t *testing.T) {
	v, err := NewRequirement("BLUEMICROSYSTEM2", "", "2.0.1")
	require.NoError(t, err)
	assert.Equal(t, Version{Name: "BLUEMICROSYSTEM2", Major: 2, Minor: 0, Patch: 1}, v)

	_, err = NewRequirement("", "", "2.0.1")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = NewRequirement("BLUEMICROSYSTEM2", "", "two")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
