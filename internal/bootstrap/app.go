package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/applications"
	googleauth "recruit-backend/internal/auth"
	"recruit-backend/internal/candidates"
	"recruit-backend/internal/companies"
	"recruit-backend/internal/joboffers"
	"recruit-backend/internal/llm"
	openai "recruit-backend/internal/llm/openai"
	"recruit-backend/internal/scoring"
	"recruit-backend/internal/shared/config"
	"recruit-backend/internal/shared/server"
	"recruit-backend/internal/shared/storage/db"
	"recruit-backend/internal/shared/storage/object"
	localstore "recruit-backend/internal/shared/storage/object/local"
	s3store "recruit-backend/internal/shared/storage/object/s3"
	"recruit-backend/internal/testgen"
	"recruit-backend/internal/tests"
	"recruit-backend/internal/users"
)

// App holds the wired dependencies for the API process.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	UsersRepo        users.Repo
	CompaniesRepo    companies.Repo
	JobOffersRepo    joboffers.Repo
	CVRepo           candidates.Repo
	ApplicationsRepo applications.Repo
	TestsRepo        tests.Repo

	UsersService        *users.Service
	CompaniesService    *companies.Service
	JobOffersService    *joboffers.Service
	CandidatesService   *candidates.Service
	ApplicationsService *applications.Service
	TestsService        *tests.Service
	GoogleAuth          *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router. With an empty
// DATABASE_URL in a dev-like environment, everything runs on in-memory
// repositories, which is also what the handler tests use.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		UsersHandler:        users.NewHandler(app.UsersService),
		CompaniesHandler:    companies.NewHandler(app.CompaniesService),
		JobOffersHandler:    joboffers.NewHandler(app.JobOffersService),
		CandidatesHandler:   candidates.NewHandler(app.CandidatesService),
		ApplicationsHandler: applications.NewHandler(app.ApplicationsService),
		TestsHandler:        tests.NewHandler(app.TestsService),
		GoogleAuth:          app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.CompaniesRepo = &companies.PGRepo{DB: app.DB}
		app.JobOffersRepo = &joboffers.PGRepo{DB: app.DB}
		app.CVRepo = &candidates.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
		app.TestsRepo = &tests.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.CompaniesRepo = companies.NewMemoryRepo()
		app.JobOffersRepo = joboffers.NewMemoryRepo()
		app.CVRepo = candidates.NewMemoryRepo()
		appsRepo := applications.NewMemoryRepo()
		app.ApplicationsRepo = appsRepo
		app.TestsRepo = tests.NewMemoryRepo(appsRepo)
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" {
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			return err
		}
		llmClient = openaiClient
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.CompaniesService = companies.NewService(app.CompaniesRepo)
	app.JobOffersService = joboffers.NewService(app.JobOffersRepo)
	app.CandidatesService = candidates.NewService(app.Store, app.CVRepo)
	app.TestsService = tests.NewService(app.TestsRepo, app.ApplicationsRepo, app.JobOffersRepo, app.CompaniesRepo)
	app.ApplicationsService = applications.NewService(
		app.ApplicationsRepo,
		app.JobOffersRepo,
		app.CVRepo,
		scoring.NewService(),
		testgen.NewGenerator(llmClient),
		app.TestsService,
	)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)

	return nil
}
