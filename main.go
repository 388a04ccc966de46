package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/mysql/v2"
	log "github.com/sirupsen/logrus"
	"github.com/sizzlei/confloader"

	"fastlm/internal/auth"
	"fastlm/internal/aws"
	"fastlm/internal/category"
	"fastlm/internal/dashboard"
	"fastlm/internal/middleware"
	"fastlm/internal/notice"
	"fastlm/internal/scheduler"
	"fastlm/internal/template"
	"fastlm/internal/workspace"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "conf", "/dba/service/infra/fastlm", "parameter store key")
	flag.Parse()

	// Configure File load
	config, err := confloader.AWSParamLoader("ap-northeast-2", configPath)
	if err != nil {
		log.Panic(err)
	}

	// Configure Setup
	repositoryConfig := config.Keyload("repository")

	// DB 연결
	dbo, err := aws.CreateConnection(aws.DBI{
		User:     repositoryConfig["User"].(string),
		Password: repositoryConfig["Password"].(string),
		Endpoint: repositoryConfig["Endpoint"].(string),
		Port:     repositoryConfig["Port"].(int),
		Database: repositoryConfig["Database"].(string),
	})
	if err != nil {
		log.Fatalf("Repository Connection failed. %v", err)
	}
	log.Info("Successfully connected to the database.")

	// Bearer 토큰 스토어 (MySQL 백엔드, TTL은 auth.Service가 관리)
	tokenStorage := mysql.New(mysql.Config{
		Db:         dbo.DB, // (*sqlx.DB에서 표준 *sql.DB 추출)
		Table:      "auth_tokens",
		GCInterval: 10 * time.Minute,
	})
	log.Info("MySQL 토큰 스토어가 설정되었습니다.")

	// 이미지 업로더 (버킷 미설정이면 로컬 static 디렉터리)
	uploader, err := aws.NewUploader(os.Getenv("QR_BUCKET"), "ap-northeast-2", "./static/uploads")
	if err != nil {
		log.Fatalf("Uploader 초기화 실패. %v", err)
	}

	// --- 의존성 조립 (Dependency Injection) ---

	// Auth
	authStore := auth.NewStore(dbo)
	authService := auth.NewService(authStore, tokenStorage)
	authHandler := auth.NewAuthHandler(authService)

	// Workspace
	workspaceStore := workspace.NewStore(dbo)
	workspaceService := workspace.NewService(workspaceStore)
	workspaceHandler := workspace.NewWorkspaceHandler(workspaceService, uploader)

	// Category
	categoryStore := category.NewStore(dbo)
	categoryHandler := category.NewCategoryHandler(categoryStore)

	// (기본 카테고리가 없으면 채웁니다)
	if err := categoryStore.SeedDefaults(); err != nil {
		log.Warnf("기본 카테고리 시드 실패: %v", err)
	}

	// Template
	templateStore := template.NewStore(dbo)
	templateService := template.NewService(templateStore)
	templateHandler := template.NewTemplateHandler(templateService)

	// Notice
	noticeStore := notice.NewStore(dbo)
	noticeService := notice.NewService(noticeStore, workspaceStore, templateStore)
	noticeHandler := notice.NewNoticeHandler(noticeService)

	// Dashboard
	dashboardService := dashboard.NewService(noticeStore, templateStore, workspaceStore)
	dashboardHandler := dashboard.NewDashboardHandler(dashboardService)

	// Scheduler
	jobStore := scheduler.NewJobStore(dbo)
	jobHandler := scheduler.NewJobHandler(jobStore)
	sched := scheduler.NewScheduler(noticeStore, noticeService, jobStore)

	app := fiber.New()

	// 정적 파일 (업로드된 QR 이미지)
	app.Static("/static", "./static")

	// --- 라우트(URL) 설정 ---
	log.Info("라우트를 설정합니다...")

	api := app.Group("/api")

	// 인증이 필요 *없는* 그룹
	authGroup := api.Group("/auth")
	{
		authGroup.Post("/login", authHandler.HandleLogin)
		authGroup.Get("/verify", authHandler.HandleVerify)
		authGroup.Post("/logout", authHandler.HandleLogout)
	}

	// 인증이 *필요한* 그룹 (로그인한 모든 사용자: ADMIN, USERS)
	appGroup := api.Group("/", middleware.AuthMiddleware(authService))
	{
		// [대시보드]
		appGroup.Get("/dashboard", dashboardHandler.HandleGetSummary)

		// [워크스페이스]
		appGroup.Get("/workspaces", workspaceHandler.HandleGetWorkspaces)
		appGroup.Get("/workspaces/:id", workspaceHandler.HandleGetWorkspace)
		appGroup.Get("/workspaces/:id/webhooks", workspaceHandler.HandleGetWebhooks)

		// [카테고리]
		appGroup.Get("/template-categories", categoryHandler.HandleGetCategories)
		appGroup.Post("/template-categories", categoryHandler.HandleCreateCategory)

		// [템플릿 관리]
		appGroup.Get("/notice-templates", templateHandler.HandleGetTemplates)
		appGroup.Post("/notice-templates", templateHandler.HandleCreateTemplate)
		appGroup.Put("/notice-templates/:id", templateHandler.HandleUpdateTemplate)
		appGroup.Delete("/notice-templates/:id", templateHandler.HandleDeleteTemplate)

		// [공지 스케줄 관리]
		// (':id' 와일드카드보다 구체적인 경로를 먼저 등록해야 합니다)
		appGroup.Get("/notices/calendar", dashboardHandler.HandleGetCalendar)
		appGroup.Post("/notices/batch", noticeHandler.HandleScheduleNotices)
		appGroup.Post("/notices/preview", noticeHandler.HandlePreviewNotice)
		appGroup.Delete("/notices/bulk-delete", noticeHandler.HandleBulkDeleteNotices)
		appGroup.Get("/notices", noticeHandler.HandleGetNotices)
		appGroup.Post("/notices", noticeHandler.HandleCreateNotice)
		appGroup.Put("/notices/:id", noticeHandler.HandleUpdateNotice)
		appGroup.Delete("/notices/:id", noticeHandler.HandleDeleteNotice)
		appGroup.Post("/notices/:id/send", noticeHandler.HandleSendNotice)
	}

	// 관리자 전용 그룹 (ADMIN만)
	adminGroup := api.Group("/admin",
		middleware.AuthMiddleware(authService),
		middleware.AdminOnlyMiddleware(),
	)
	{
		adminGroup.Post("/workspaces", workspaceHandler.HandleCreateWorkspace)
		adminGroup.Put("/workspaces/:id", workspaceHandler.HandleUpdateWorkspace)
		adminGroup.Delete("/workspaces/:id", workspaceHandler.HandleDeleteWorkspace)
		adminGroup.Post("/workspaces/:id/qr", workspaceHandler.HandleUploadQR)
		adminGroup.Post("/workspaces/:id/qr/generate", workspaceHandler.HandleGenerateQR)
		adminGroup.Get("/scheduler/jobs", jobHandler.HandleGetJobs)
	}

	// --- 서버 시작 (우아한 종료 로직) ---

	sched.Start()

	go func() {
		serverPort := os.Getenv("SERVER_PORT")
		if serverPort == "" {
			serverPort = "3000"
		}
		log.Infof("FastLM 서버(HTTP)가 [::]:%s 포트에서 시작됩니다.", serverPort)
		if err := app.Listen(fmt.Sprintf(":%s", serverPort)); err != nil {
			log.Panicf("HTTP 서버 Listen 실패: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("[INFO] FastLM 서버 종료 신호 수신...")

	sched.Stop()

	if err := app.Shutdown(); err != nil {
		log.Errorf("HTTP 서버 Shutdown 실패: %v", err)
	}

	log.Println("[INFO] FastLM 서버가 정상적으로 종료되었습니다.")
}
