package repository

import (
	"context"
	"strings"

	"github.com/C-P-WAZARIYO/Field-Pro/internal/user/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO users (id, emp_id, first_name, last_name, email, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.EmpID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, emp_id, first_name, last_name, email, role, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (r *repo) FindByEmpIDs(ctx context.Context, db *gorm.DB, empIDs []string) ([]*domain.User, error) {
	trimmed := make([]string, 0, len(empIDs))
	for _, id := range empIDs {
		if v := strings.TrimSpace(id); v != "" {
			trimmed = append(trimmed, v)
		}
	}
	if len(trimmed) == 0 {
		return nil, nil
	}

	var users []*domain.User
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("emp_id IN ?", trimmed).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*domain.User
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, role string) ([]*domain.User, error) {
	stmt := db.WithContext(ctx).Model(&domain.User{})
	if role = strings.TrimSpace(role); role != "" {
		stmt = stmt.Where("role = ?", role)
	}
	var users []*domain.User
	if err := stmt.Order("created_at desc, id desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
