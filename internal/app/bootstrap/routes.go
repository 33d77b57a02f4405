// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountsfeature "github.com/shreshthUnderscore/agile-ai/internal/app/features/accounts"
	boardfeature "github.com/shreshthUnderscore/agile-ai/internal/app/features/board"
	errorsfeature "github.com/shreshthUnderscore/agile-ai/internal/app/features/errors"
	healthfeature "github.com/shreshthUnderscore/agile-ai/internal/app/features/health"
	loginfeature "github.com/shreshthUnderscore/agile-ai/internal/app/features/login"
	logoutfeature "github.com/shreshthUnderscore/agile-ai/internal/app/features/logout"
	resumesfeature "github.com/shreshthUnderscore/agile-ai/internal/app/features/resumes"
	signupfeature "github.com/shreshthUnderscore/agile-ai/internal/app/features/signup"
	tasksfeature "github.com/shreshthUnderscore/agile-ai/internal/app/features/tasks"
	teamfeature "github.com/shreshthUnderscore/agile-ai/internal/app/features/team"
	resumestore "github.com/shreshthUnderscore/agile-ai/internal/app/store/resumes"
	taskstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/tasks"
	teamstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/teams"
	userstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/users"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. It creates the session manager,
// the stores, and the feature handlers, then mounts the feature routers
// under /api.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data
	// on each request. This ensures role changes (e.g., promotion to
	// lead when a team is created) take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Stores
	users := userstore.New(deps.MongoDatabase)
	teams := teamstore.New(deps.MongoDatabase)
	tasks := taskstore.New(deps.MongoDatabase)
	resumeBlobs, err := resumestore.New(deps.MongoDatabase)
	if err != nil {
		logger.Error("resume store init failed", zap.Error(err))
		return nil, err
	}

	// Error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	signupHandler := signupfeature.NewHandler(users, sessionMgr, errLog, logger)
	r.Mount("/api/signup", signupfeature.Routes(signupHandler))

	loginHandler := loginfeature.NewHandler(users, sessionMgr, errLog, logger)
	r.Mount("/api/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/api/logout", logoutfeature.Routes(logoutHandler))

	// Account management
	accountsHandler := accountsfeature.NewHandler(users, errLog, logger)
	r.Mount("/api/accounts", accountsfeature.Routes(accountsHandler, sessionMgr))

	// Team roster and resumes. The upload endpoint lives on the team
	// router because the roster owns it; downloads get their own mount.
	resumesHandler := resumesfeature.NewHandler(resumeBlobs, teams, appCfg.ResumeMaxUploadBytes, errLog, logger)

	teamHandler := teamfeature.NewHandler(teams, users, errLog, logger)
	r.Mount("/api/team", teamfeature.Routes(teamHandler, resumesHandler.Upload, sessionMgr))
	r.Mount("/api/resumes", resumesfeature.Routes(resumesHandler, sessionMgr))

	// Task board
	tasksHandler := tasksfeature.NewHandler(tasks, errLog, logger)
	r.Mount("/api/tasks", tasksfeature.Routes(tasksHandler, sessionMgr))

	boardHandler := boardfeature.NewHandler(deps.MongoDatabase, tasks, errLog, logger)
	r.Mount("/api/board", boardfeature.Routes(boardHandler, sessionMgr))

	return r, nil
}
