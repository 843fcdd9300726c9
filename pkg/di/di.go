package di

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/Olori-Ebi/Eyi-media/configs"
	"github.com/Olori-Ebi/Eyi-media/internal/comment"
	"github.com/Olori-Ebi/Eyi-media/internal/follow"
	"github.com/Olori-Ebi/Eyi-media/internal/media"
	"github.com/Olori-Ebi/Eyi-media/internal/notification"
	"github.com/Olori-Ebi/Eyi-media/internal/post"
	"github.com/Olori-Ebi/Eyi-media/internal/profile"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/redisx"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/store"
	"github.com/Olori-Ebi/Eyi-media/internal/user"
	"github.com/Olori-Ebi/Eyi-media/pkg/kafka"
)

type Container struct {
	Store *store.Client
	Redis *redis.Client
	Media *media.Storage

	Dispatcher notification.Dispatcher

	UserService         user.Service
	PostService         post.Service
	CommentService      comment.Service
	FollowService       follow.Service
	ProfileService      profile.Service
	NotificationService notification.Service
}

func BuildContainer(ctx context.Context, cfg *configs.Config) *Container {
	st, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}

	rdb := redisx.Open(cfg)

	producer := kafka.NewProducer(cfg.KafkaBrokerURL, cfg.KafkaTopic)

	med, err := media.New(cfg)
	if err != nil {
		log.Fatalf("media storage: %v", err)
	}
	if err := med.EnsureBucket(ctx); err != nil {
		log.Printf("[Media] ensure bucket: %v", err)
	}

	userRepo := user.NewRepository(st)
	notifRepo := notification.NewRepository(st)
	postRepo := post.NewRepository(st)
	commentRepo := comment.NewRepository(st)
	followRepo := follow.NewRepository(st)
	profileRepo := profile.NewRepository(st)

	dispatcher := notification.NewDispatcher(notifRepo, userRepo, producer)

	userSvc := user.NewService(userRepo, followRepo, notifRepo, profileRepo)
	postSvc := post.NewService(postRepo, commentRepo, followRepo, userRepo, dispatcher, rdb)
	commentSvc := comment.NewService(commentRepo, postRepo, userRepo, dispatcher)
	followSvc := follow.NewService(followRepo, dispatcher)
	profileSvc := profile.NewService(profileRepo, userRepo, followRepo, dispatcher)
	notifSvc := notification.NewService(notifRepo, userRepo, userRepo, postRepo)

	return &Container{
		Store:               st,
		Redis:               rdb,
		Media:               med,
		Dispatcher:          dispatcher,
		UserService:         userSvc,
		PostService:         postSvc,
		CommentService:      commentSvc,
		FollowService:       followSvc,
		ProfileService:      profileSvc,
		NotificationService: notifSvc,
	}
}
