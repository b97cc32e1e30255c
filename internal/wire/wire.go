package wire

import (
	"Atelier/internal/api"
	"Atelier/internal/api/handler"
	"Atelier/internal/job"
	"Atelier/internal/pkg/cron"
	"Atelier/internal/pkg/minio"
	"Atelier/internal/repository"
	"Atelier/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	CronMgr *cron.Manager
}

func BuildApplication(db *mongo.Database) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	postRepo := repository.NewPostRepo(db)

	storage := minio.NewStorage()

	userService := service.NewUserService(userRepo)
	profileService := service.NewProfileService(profileRepo, postRepo, userRepo, storage)
	postService := service.NewPostService(postRepo, storage)
	postActionService := service.NewPostActionService(postRepo)
	adminService := service.NewAdminService(userRepo, profileRepo, postRepo, storage)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService),
		ProfileHandler:    handler.NewProfileHandler(profileService),
		PostHandler:       handler.NewPostHandler(postService),
		PostActionHandler: handler.NewPostActionHandler(postActionService),
		AdminHandler:      handler.NewAdminHandler(userService, adminService, postService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewMediaCleanupJob(storage))

	return &ApplicationContainer{
		Router:  router,
		CronMgr: cronMgr,
	}, nil
}
