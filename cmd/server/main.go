package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"productadmin/internal/config"
	mydb "productadmin/internal/db"
	"productadmin/internal/events"
	"productadmin/internal/files"
	"productadmin/internal/logger"
	"productadmin/internal/service"
	"productadmin/internal/storage"
	"productadmin/internal/storage/memstore"
	"productadmin/internal/web"
)

// stores — хранилища, выбранные по DB_DRIVER
type stores struct {
	products   service.ProductStore
	categories service.CategoryStore
	users      service.UserStore
	health     func(ctx context.Context) error
	close      func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	l, err := logger.Init(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := openStores(cfg)
	if err != nil {
		l.Fatal("storage init failed", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer func() { _ = st.close() }()

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		l.Info("publishing product events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}
	defer func() { _ = publisher.Close() }()

	images := files.NewStorage(cfg.WebRoot, cfg.ImageDir)
	products := service.NewProductService(st.products, images, publisher)
	categories := service.NewCategoryService(st.categories)
	accounts := service.NewAccountService(st.users)

	r, err := web.NewRouter(web.Deps{
		Products:      web.NewProductHandler(products, categories, cfg.PageSize, cfg.MaxImageKB),
		Accounts:      web.NewAccountHandler(accounts),
		SessionSecret: cfg.SessionSecret,
		ImageDir:      images.Dir(),
		ImageURL:      "/" + cfg.ImageDir,
		Health:        st.health,
		Logger:        l,
	})
	if err != nil {
		l.Fatal("router init failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Info("server listening", zap.String("addr", srv.Addr), zap.String("driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	l.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Error("shutdown failed", zap.Error(err))
	}
}

func openStores(cfg *config.Config) (*stores, error) {
	if cfg.DBDriver == "memory" {
		mem := memstore.New()
		for _, name := range cfg.SeedCategories {
			mem.AddCategory(name)
		}
		zap.L().Warn("using in-memory storage, data is lost on restart")
		return &stores{
			products:   mem,
			categories: mem,
			users:      mem.Users(),
			health:     func(context.Context) error { return nil },
			close:      func() error { return nil },
		}, nil
	}

	db, err := mydb.Open(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := mydb.Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := mydb.SeedCategories(context.Background(), db, cfg.SeedCategories); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &stores{
		products:   storage.NewProductStore(db),
		categories: storage.NewCategoryStore(db),
		users:      storage.NewUserStore(db),
		health:     sqlDB.PingContext,
		close:      sqlDB.Close,
	}, nil
}
