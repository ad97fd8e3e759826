package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"securehome/server/internal/config"
	"securehome/server/internal/interfaces"
	"securehome/server/internal/models"
)

// ErrUserExists is returned when creating a user whose email is taken.
var ErrUserExists = errors.New("user already exists")

type MySQLStore struct {
	db *gorm.DB
}

func NewMySQLStore(cfg config.MySQLConfig) (*MySQLStore, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime.Std())

	if err := db.AutoMigrate(&models.Visitor{}, &models.User{}); err != nil {
		return nil, err
	}

	return &MySQLStore{db: db}, nil
}

func (s *MySQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *MySQLStore) GetDB() *gorm.DB {
	return s.db
}

// Transaction helper
func (s *MySQLStore) WithTx(fn func(*gorm.DB) error) error {
	return s.db.Transaction(fn)
}

// ---- visitor log ----

// GetLastVisitor returns the most recent record, or nil on an empty log.
func (s *MySQLStore) GetLastVisitor(ctx context.Context) (*interfaces.VisitorRecord, error) {
	var v models.Visitor
	err := s.db.WithContext(ctx).Order("timestamp DESC").First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last visitor: %w", err)
	}
	rec := toRecord(v)
	return &rec, nil
}

// GetAllVisitors returns every record, most recent first.
func (s *MySQLStore) GetAllVisitors(ctx context.Context) ([]interfaces.VisitorRecord, error) {
	var rows []models.Visitor
	if err := s.db.WithContext(ctx).Order("timestamp DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query visitors: %w", err)
	}

	records := make([]interfaces.VisitorRecord, 0, len(rows))
	for _, v := range rows {
		records = append(records, toRecord(v))
	}
	return records, nil
}

// LogVisitor appends one record stamped with the current time.
func (s *MySQLStore) LogVisitor(ctx context.Context, name, purpose string) (*interfaces.VisitorRecord, error) {
	v := models.Visitor{
		Name:      name,
		Purpose:   purpose,
		Timestamp: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&v).Error; err != nil {
		return nil, fmt.Errorf("failed to log visitor: %w", err)
	}
	rec := toRecord(v)
	return &rec, nil
}

// ClearVisitors deletes every row of the log.
func (s *MySQLStore) ClearVisitors(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Visitor{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear visitors: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func toRecord(v models.Visitor) interfaces.VisitorRecord {
	return interfaces.VisitorRecord{
		ID:        v.ID,
		Name:      v.Name,
		Purpose:   v.Purpose,
		Timestamp: v.Timestamp,
	}
}

// ---- users ----

// CreateUser inserts a new dashboard user. Duplicate emails are rejected
// with ErrUserExists.
func (s *MySQLStore) CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := models.User{Email: email, Password: password}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Authenticate checks email and password. Returns nil without error when the
// credentials do not match any user.
func (s *MySQLStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if user.Password != password {
		return nil, nil
	}
	return &user, nil
}
