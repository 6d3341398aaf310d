package seeds

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"unitrack_backend/internals/constants"
)

func TestMissingRoles(t *testing.T) {
	tests := []struct {
		name     string
		desired  []string
		existing []string
		want     []string
	}{
		{
			name:     "empty store seeds everything",
			desired:  constants.AllRoles,
			existing: nil,
			want:     constants.AllRoles,
		},
		{
			name:     "fully seeded store is a no-op",
			desired:  constants.AllRoles,
			existing: constants.AllRoles,
			want:     nil,
		},
		{
			name:     "partial store seeds only the gap",
			desired:  []string{"admin", "teacher", "student"},
			existing: []string{"teacher"},
			want:     []string{"admin", "student"},
		},
		{
			name:     "extra rows in store are left alone",
			desired:  []string{"admin"},
			existing: []string{"admin", "legacy_role"},
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MissingRoles(tt.desired, tt.existing))
		})
	}
}

func TestMissingRolesIdempotent(t *testing.T) {
	// applying the diff once leaves nothing to apply
	missing := MissingRoles(constants.AllRoles, nil)
	after := append([]string{}, missing...)
	assert.Nil(t, MissingRoles(constants.AllRoles, after))
}
