package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	// FindByEmpIDs resolves a set of free-text employee identifiers in a single
	// query. Identifiers with no matching user are simply absent from the result.
	FindByEmpIDs(ctx context.Context, db *gorm.DB, empIDs []string) ([]*User, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]*User, error)
	List(ctx context.Context, db *gorm.DB, role string) ([]*User, error)
}

var (
	ErrNotFound     = errors.New("not_found")
	ErrInvalidEmpID = errors.New("invalid_emp_id")
)
