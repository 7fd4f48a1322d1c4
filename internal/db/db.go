package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"productadmin/internal/config"
	"productadmin/internal/models"
)

// Dialector выбирает драйвер gorm по DB_DRIVER
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "", "postgres":
		return postgres.Open(cfg.DBDSN), nil
	case "mysql":
		// для mysql в DSN нужен parseTime=true, иначе не прочитаются created_at/updated_at
		return mysql.Open(cfg.DBDSN), nil
	default:
		return nil, errors.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}
}

// Open открывает соединение с БД по настройкам из .env
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zapWriter{zap.S()}, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}
	return db, nil
}

// Migrate создаёт/обновляет таблицы
func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(models.Tables...), "auto migrate")
}

// SeedCategories добавляет недостающие категории, существующие не трогает
func SeedCategories(ctx context.Context, db *gorm.DB, names []string) error {
	for _, name := range names {
		var c models.Category
		err := db.WithContext(ctx).Where("name = ?", name).First(&c).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.WithContext(ctx).Create(&models.Category{Name: name}).Error; err != nil {
				return errors.Wrapf(err, "seed category %q", name)
			}
			zap.L().Info("seeded category", zap.String("name", name))
		case err != nil:
			return errors.Wrapf(err, "query category %q", name)
		}
	}
	return nil
}

// zapWriter — адаптер, чтобы gorm писал свои сообщения в zap
type zapWriter struct {
	s *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...any) {
	w.s.Warnf(format, args...)
}
