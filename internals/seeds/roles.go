package seeds

import (
	"log"

	"gorm.io/gorm"

	"unitrack_backend/internals/constants"
	userModel "unitrack_backend/internals/features/users/user/model"
)

// MissingRoles diffs the desired role set against what exists. Pure so the
// reconciliation is testable; ordering follows desired.
func MissingRoles(desired, existing []string) []string {
	have := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		have[r] = struct{}{}
	}
	var missing []string
	for _, r := range desired {
		if _, ok := have[r]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

// ReconcileRoles inserts roles that are missing. Safe to run on every boot.
func ReconcileRoles(db *gorm.DB) error {
	var existing []string
	if err := db.Model(&userModel.RoleModel{}).Pluck("role_name", &existing).Error; err != nil {
		return err
	}

	missing := MissingRoles(constants.AllRoles, existing)
	if len(missing) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range missing {
			if err := tx.Create(&userModel.RoleModel{RoleName: name}).Error; err != nil {
				return err
			}
			log.Printf("[INFO] seeded role %q", name)
		}
		return nil
	})
}
