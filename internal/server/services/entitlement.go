package services

import (
	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
)

// Visible reports whether role may see v. Only USER is kept away from
// premium videos; ADMIN and PREMIUM see everything. IsHidden plays no part.
func Visible(v *models.Video, role models.Role) bool {
	return !(v.IsPremium && role == models.RoleUser)
}

// FilterVisible drops the videos role may not see, preserving order.
func FilterVisible(videos []*models.Video, role models.Role) []*models.Video {
	out := make([]*models.Video, 0, len(videos))
	for _, v := range videos {
		if Visible(v, role) {
			out = append(out, v)
		}
	}
	return out
}

// CheckAccess is the direct-access form of Visible.
func CheckAccess(v *models.Video, role models.Role) error {
	if !Visible(v, role) {
		return common.ErrorForbidden
	}
	return nil
}
