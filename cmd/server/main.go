package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"skillsense-go/config"
	"skillsense-go/internal/cvparse"
	"skillsense-go/internal/fetcher"
	"skillsense-go/internal/handler"
	"skillsense-go/internal/service"
	"skillsense-go/internal/store"
)

func main() {
	// 加载 .env 文件（如果存在）
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// 创建外部客户端
	githubClient := fetcher.NewGitHubClient(cfg.GithubToken)
	firecrawl := fetcher.NewFirecrawlFetcher(cfg.FirecrawlKey)
	gateway := fetcher.NewGatewayClient(cfg.GatewayURL, cfg.GatewayKey, cfg.GatewayModel)

	// 验证必要的API keys
	if cfg.GatewayKey == "" {
		log.Println("Warning: AI_GATEWAY_API_KEY not configured, skill extraction will not work")
	}
	if !firecrawl.HasKey() {
		log.Println("Warning: FIRECRAWL_API_KEY not configured, LinkedIn scraping will not work")
	}
	if cfg.GithubToken == "" {
		log.Println("Warning: GITHUB_TOKEN not configured, GitHub requests will be rate limited")
	}

	// 创建存储（优先使用PostgreSQL，否则使用内存存储）
	var profileStore store.ProfileStore
	if cfg.DatabaseURL != "" {
		pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to PostgreSQL, using memory store: %v", err)
			profileStore = store.NewMemoryStore()
		} else {
			log.Println("Using PostgreSQL store")
			profileStore = pgStore
		}
	} else {
		log.Println("DATABASE_URL not configured, using memory store")
		profileStore = store.NewMemoryStore()
	}

	// 创建服务
	githubService := service.NewGitHubService(githubClient)
	linkedinService := service.NewLinkedInService(firecrawl)
	extractor := service.NewSkillExtractor(gateway)
	gapAnalyzer := service.NewGapAnalyzer(gateway)
	analyzer := service.NewAnalyzer(githubService, linkedinService, extractor, profileStore)

	// 创建处理器
	cvHandler := handler.NewCVHandler(cvparse.NewParser())
	sourcesHandler := handler.NewSourcesHandler(githubService, linkedinService)
	analyzeHandler := handler.NewAnalyzeHandler(analyzer)
	gapHandler := handler.NewGapHandler(gapAnalyzer, profileStore)
	profileHandler := handler.NewProfileHandler(profileStore)

	// 设置路由
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("POST /api/parse-cv", cvHandler.ParseCV)
	mux.HandleFunc("POST /api/fetch-github", sourcesHandler.FetchGitHub)
	mux.HandleFunc("POST /api/scrape-linkedin", sourcesHandler.ScrapeLinkedIn)
	mux.HandleFunc("POST /api/analyze/sse", analyzeHandler.AnalyzeSSE)
	mux.HandleFunc("POST /api/extract-skills", analyzeHandler.ExtractSkills)
	mux.HandleFunc("POST /api/analyze-gap", gapHandler.AnalyzeGap)
	mux.HandleFunc("POST /api/generate-timeline", profileHandler.GenerateTimeline)
	mux.HandleFunc("GET /api/timeline", profileHandler.GetTimeline)
	mux.HandleFunc("GET /api/profile", profileHandler.Get)
	mux.HandleFunc("DELETE /api/profile", profileHandler.Delete)
	mux.HandleFunc("POST /api/skills/validate", profileHandler.Validate)

	// CORS中间件
	corsHandler := corsMiddleware(mux)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		log.Fatal(err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
