package router

import (
	app "github.com/drewhq/drew/internal/application"
	"github.com/drewhq/drew/internal/container"
	pginfra "github.com/drewhq/drew/internal/infrastructure/postgres"
	handlers "github.com/drewhq/drew/internal/interface/http"
	"github.com/drewhq/drew/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	orgs := pginfra.NewOrganizationRepository(pool)
	activities := pginfra.NewActivityRepository(pool)
	occasions := pginfra.NewOccasionRepository(pool)
	offerings := pginfra.NewOfferingRepository(pool)
	projects := pginfra.NewProjectRepository(pool)
	recs := pginfra.NewRecommendationRepository(pool)

	userSvc := app.NewUserService(users, orgs, container.GetJWT(), container.GetRedis(), container.GetRabbitPub(), logger, cfg.MagicLinkURL)
	orgSvc := app.NewOrganizationService(orgs, users, container.GetRedis(), logger)
	activitySvc := app.NewActivityService(activities, container.GetES(), cfg.ESActivitiesIndex, container.GetAI(), container.GetGCS(), cfg.GCSBucket, logger)
	catalogSvc := app.NewCatalogService(occasions, offerings)
	projectSvc := app.NewProjectService(projects, recs, occasions, logger)
	agent := app.NewRecommender(projects, activities, recs, container.GetAI(), logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger)))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, logger, cfg.GoogleOAuthClientID, cfg.GoogleOAuthRedirectURL)))
	r.Add(modules.NewOrganizationModule(handlers.NewOrganizationHandler(orgSvc, logger)))
	r.Add(modules.NewActivityModule(handlers.NewActivityHandler(activitySvc, logger)))
	r.Add(modules.NewCatalogModule(handlers.NewCatalogHandler(catalogSvc)))
	r.Add(modules.NewProjectModule(handlers.NewProjectHandler(projectSvc, agent, logger)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
