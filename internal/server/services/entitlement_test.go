package services

import (
	"testing"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func TestVisible(t *testing.T) {
	tests := []struct {
		premium bool
		role    models.Role
		want    bool
	}{
		{false, models.RoleUser, true},
		{false, models.RolePremium, true},
		{false, models.RoleAdmin, true},
		{true, models.RoleUser, false},
		{true, models.RolePremium, true},
		{true, models.RoleAdmin, true},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			v := &models.Video{IsPremium: tt.premium}
			assert.Equal(t, tt.want, Visible(v, tt.role))
			if tt.want {
				assert.NoError(t, CheckAccess(v, tt.role))
			} else {
				assert.ErrorIs(t, CheckAccess(v, tt.role), common.ErrorForbidden)
			}
		})
	}
}

func TestVisible_HiddenFlagIgnored(t *testing.T) {
	v := &models.Video{IsHidden: true}
	assert.True(t, Visible(v, models.RoleUser))
}

func TestFilterVisible_KeepsOrder(t *testing.T) {
	in := []*models.Video{
		{ID: 3},
		{ID: 2, IsPremium: true},
		{ID: 1},
	}
	got := FilterVisible(in, models.RoleUser)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)

	assert.Len(t, FilterVisible(in, models.RolePremium), 3)
	assert.Empty(t, FilterVisible(nil, models.RoleAdmin))
}
