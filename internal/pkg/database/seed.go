package database

import (
	"Atlania/internal/api/config"
	"Atlania/internal/model"
	"Atlania/internal/pkg/consts"
	"Atlania/internal/pkg/security"
	"Atlania/internal/pkg/util"
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed 写入初始分类与管理员账号，可重复执行
func Seed(ctx context.Context, db *gorm.DB, cfg config.BootstrapConfig) error {
	if err := seedCategories(ctx, db, cfg.Categories); err != nil {
		return err
	}
	return seedAdmin(ctx, db, cfg)
}

func seedCategories(ctx context.Context, db *gorm.DB, names []string) error {
	for _, name := range names {
		category := model.Category{Name: name, Slug: util.Slugify(name)}
		if category.Slug == "" {
			continue
		}
		err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&category).Error
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, db *gorm.DB, cfg config.BootstrapConfig) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing model.User
	err := db.WithContext(ctx).Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		log.Info("admin account already present, skipping", "email", cfg.AdminEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed check admin: %w", err)
	}

	hash, err := security.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed hash admin password: %w", err)
	}

	admin := model.User{
		Email:        cfg.AdminEmail,
		PasswordHash: &hash,
		FullName:     util.PtrString(cfg.AdminName),
		Avatar:       consts.DefaultAvatarURL,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err = db.WithContext(ctx).Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("seed insert admin: %w", err)
	}

	log.Info("database seeded with default admin user", "email", cfg.AdminEmail)
	return nil
}
