package api

import (
	"github.com/gin-gonic/gin"

	"github.com/C-Senanayake/CVision/internal/api/handler"
	"github.com/C-Senanayake/CVision/internal/api/middleware"
	"github.com/C-Senanayake/CVision/internal/config"
	"github.com/C-Senanayake/CVision/internal/github"
	"github.com/C-Senanayake/CVision/internal/logger"
	"github.com/C-Senanayake/CVision/internal/repository"
	"github.com/C-Senanayake/CVision/internal/service"
	"github.com/C-Senanayake/CVision/internal/storage"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	Documents    *repository.DocumentRepository
	Jobs         *repository.JobRepository
	Blobs        storage.BlobStore
	GitHubClient *github.Client
	Ingest       *service.IngestService
	Enrich       *service.EnrichService
	Score        *service.ScoreService
	Mail         *service.MailService
	Export       *service.ExportService
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(deps *Deps) *gin.Engine {
	switch deps.Config.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.Server.CORS))

	healthHandler := handler.NewHealthHandler()
	cvHandler := handler.NewCVHandler(deps.Documents, deps.Ingest, deps.Blobs)
	jobHandler := handler.NewJobHandler(deps.Jobs)
	githubHandler := handler.NewGitHubHandler(deps.Documents, deps.Enrich, deps.GitHubClient)
	mailingHandler := handler.NewMailingHandler(deps.Documents, deps.Mail)
	scoreHandler := handler.NewScoreHandler(deps.Documents, deps.Jobs, deps.Score)
	exportHandler := handler.NewExportHandler(deps.Export)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		// CV documents
		v1.POST("/upload_cv", cvHandler.Upload)
		v1.GET("/fetch_cvs", cvHandler.List)
		v1.GET("/cv/:id", cvHandler.Get)
		v1.PUT("/cv/:id", cvHandler.Update)
		v1.DELETE("/cv/:id", cvHandler.Delete)
		v1.GET("/cv/:id/download", cvHandler.Download)

		// Job postings
		v1.POST("/job", jobHandler.Create)
		v1.GET("/jobs", jobHandler.List)
		v1.GET("/job/:id", jobHandler.Get)
		v1.PUT("/job/:id", jobHandler.Update)
		v1.DELETE("/job/:id", jobHandler.Delete)

		// GitHub enrichment
		v1.POST("/github/enrich/:cv_id", githubHandler.Enrich)
		v1.POST("/github/validate_url", githubHandler.ValidateURL)
		v1.GET("/github/status/:cv_id", githubHandler.Status)
		v1.GET("/github/rate_limit", githubHandler.RateLimit)

		// Mailing
		v1.POST("/mailing/received", mailingHandler.SendReceived)
		v1.POST("/mailing/selected", mailingHandler.SendSelected)
		v1.POST("/mailing/rejected", mailingHandler.SendRejected)
		v1.POST("/mailing/interview", mailingHandler.ScheduleInterview)

		// Scoring
		v1.POST("/score/job/:job_id", scoreHandler.ScoreJob)
		v1.POST("/score/cv/:cv_id", scoreHandler.ScoreCV)

		// Export
		v1.GET("/export/job/:job_id", exportHandler.ExportJob)
	}

	return r
}
