package seed

import (
	"context"
	"errors"
	"time"

	userdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/user/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const defaultAdminEmail = "admin@fieldpro.local"

var defaultExecutives = []userdomain.User{
	{EmpID: ptr("EMP001"), FirstName: "Asha", LastName: "Verma", Email: "asha.verma@fieldpro.local", Role: userdomain.RoleExecutive},
	{EmpID: ptr("EMP002"), FirstName: "Rohit", LastName: "Sharma", Email: "rohit.sharma@fieldpro.local", Role: userdomain.RoleExecutive},
}

// EnsureDefaultUsers seeds an admin plus sample executives so a fresh install
// can exercise upload and allocation immediately. Existing rows are left
// untouched.
func EnsureDefaultUsers(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin := userdomain.User{
			FirstName: "FieldPro",
			LastName:  "Admin",
			Email:     defaultAdminEmail,
			Role:      userdomain.RoleAdmin,
		}
		if err := ensureUser(ctx, tx, node, admin); err != nil {
			return err
		}
		for _, u := range defaultExecutives {
			if err := ensureUser(ctx, tx, node, u); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureUser(ctx context.Context, tx *gorm.DB, node *snowflake.Node, user userdomain.User) error {
	var existing userdomain.User
	err := tx.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	user.ID = node.Generate()
	user.CreatedAt = now
	user.UpdatedAt = now
	return tx.WithContext(ctx).Create(&user).Error
}

func ptr(s string) *string { return &s }
