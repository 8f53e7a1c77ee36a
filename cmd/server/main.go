package main

import (
	"context"
	"encoding/gob"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/moviesite/internal/config"
	"github.com/user/moviesite/internal/dto"
	"github.com/user/moviesite/internal/handler"
	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/repository"
	"github.com/user/moviesite/internal/router"
	"github.com/user/moviesite/internal/service"
	"github.com/user/moviesite/internal/storage"
	"github.com/user/moviesite/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	seedAdmin := flag.Bool("seed-admin", false, "创建超级管理员后退出（读取 ADMIN_NAME / ADMIN_EMAIL / ADMIN_PASSWORD）")
	flag.Parse()

	// 注册 Session 模型
	gob.Register(model.SessionUser{})

	// 加载环境变量
	envErr := godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()
	if envErr != nil {
		logger.Info("未找到 .env 文件，使用系统环境变量")
	}

	if err := dto.RegisterValidators(); err != nil {
		logger.Fatal("注册校验规则失败", zap.Error(err))
	}

	// 初始化数据库
	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if err := repository.Migrate(db); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	repos := repository.NewRepositories(db)

	store, err := newStorage(cfg)
	if err != nil {
		logger.Fatal("初始化文件存储失败", zap.Error(err))
	}
	services := service.NewServices(repos, store)

	if *seedAdmin {
		if err := createSuperAdmin(repos, services); err != nil {
			logger.Fatal("创建超级管理员失败", zap.Error(err))
		}
		return
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handler.NewHandler(repos, services, cfg)
	r, err := router.New(h)
	if err != nil {
		logger.Fatal("初始化路由失败", zap.Error(err))
	}

	srv := newServer(cfg, r)

	go func() {
		logger.Info("服务器启动", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器强制关闭", zap.Error(err))
		return
	}
	logger.Info("服务器已退出")
}

// 上传视频文件需要较长时间，写超时从读完请求头开始计算，必须覆盖整个请求体的读取
const uploadTimeout = 5 * time.Minute

// newServer 创建 HTTP 服务
func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       uploadTimeout,
		WriteTimeout:      uploadTimeout + 30*time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

// newStorage 按 STORAGE_DRIVER 选择本地目录或 MinIO
func newStorage(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "minio":
		return storage.NewMinioStore(cfg.MinIO)
	case "local", "":
		return storage.NewLocalStore(cfg.UploadDir, "/uploads")
	default:
		return nil, fmt.Errorf("未知的存储驱动: %s", cfg.StorageDriver)
	}
}

// createSuperAdmin 创建超级管理员，邮箱已存在时跳过
func createSuperAdmin(repos *repository.Repositories, services *service.Services) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return errors.New("请设置 ADMIN_EMAIL 和 ADMIN_PASSWORD")
	}

	existing, err := repos.User.FindByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.Info("超级管理员已存在", zap.String("email", email))
		return nil
	}

	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "superadmin"
	}
	user, _, err := services.Auth.AddAdmin(context.Background(), service.Account{
		Name:     name,
		Email:    email,
		Password: password,
	}, model.RoleSuperAdmin, nil)
	if err != nil {
		return err
	}
	logger.Info("超级管理员创建成功", zap.Uint("id", user.ID), zap.String("email", email))
	return nil
}
