package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/Olori-Ebi/Eyi-media/configs"
	"github.com/Olori-Ebi/Eyi-media/internal/comment"
	"github.com/Olori-Ebi/Eyi-media/internal/follow"
	"github.com/Olori-Ebi/Eyi-media/internal/media"
	"github.com/Olori-Ebi/Eyi-media/internal/notification"
	"github.com/Olori-Ebi/Eyi-media/internal/post"
	"github.com/Olori-Ebi/Eyi-media/internal/profile"
	"github.com/Olori-Ebi/Eyi-media/internal/ratelimit"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/httpx"
	"github.com/Olori-Ebi/Eyi-media/internal/user"
	"github.com/Olori-Ebi/Eyi-media/pkg/di"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("eyi-media"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := initOTEL(ctx)
	defer func() {
		c, cc := context.WithTimeout(context.Background(), 5*time.Second)
		defer cc()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()
	c := di.BuildContainer(ctx, cfg)

	uh := user.NewHandler(c.UserService)
	ph := post.NewHandler(c.PostService, c.Media)
	ch := comment.NewHandler(c.CommentService)
	fh := follow.NewHandler(c.FollowService)
	prh := profile.NewHandler(c.ProfileService)
	nh := notification.NewHandler(c.NotificationService)
	mh := media.NewHandler(c.Media)

	limiter := ratelimit.New(c.Redis)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Public
	mux.Handle("POST /api/v1/signup", httpx.Wrap(uh.Signup))
	mux.Handle("POST /api/v1/signin", httpx.Wrap(uh.Signin))
	mux.Handle("POST /api/v1/onboarding/{token}", httpx.Wrap(uh.CompleteOnboard))
	mux.Handle("GET /api/v1/posts", httpx.Wrap(ph.List))
	mux.Handle("GET /api/v1/posts/{postId}", httpx.Wrap(ph.Get))
	mux.Handle("GET /api/v1/posts/{postId}/likes", httpx.Wrap(ph.Likers))
	mux.Handle("GET /api/v1/comments/{postId}", httpx.Wrap(ch.List))
	mux.Handle("GET /api/v1/media/{key}", httpx.Wrap(mh.Serve))

	// Protected reads
	protect := func(pattern string, h http.Handler) {
		mux.Handle(pattern, httpx.AuthMiddleware(h))
	}
	protect("GET /api/v1/me", httpx.Wrap(uh.Me))
	protect("GET /api/v1/posts/feed", httpx.Wrap(ph.FollowingFeed))
	protect("GET /api/v1/profile/saves", httpx.Wrap(ph.Saved))
	protect("GET /api/v1/profile", httpx.Wrap(prh.Own))
	protect("GET /api/v1/profile/{username}", httpx.Wrap(prh.ByUsername))
	protect("GET /api/v1/profile/{username}/followings", httpx.Wrap(prh.Followings))
	protect("GET /api/v1/users/{userId}/followers", httpx.Wrap(fh.Followers))
	protect("GET /api/v1/users/{userId}/following", httpx.Wrap(fh.Following))
	protect("GET /api/v1/notifications", httpx.Wrap(nh.List))

	// Protected mutations, rate limited per user
	mutate := func(pattern string, h http.Handler) {
		mux.Handle(pattern, httpx.AuthMiddleware(limiter.LimitHTTP(60, time.Minute, h)))
	}
	mutate("PUT /api/v1/me", httpx.Wrap(uh.UpdateInfo))
	mutate("PUT /api/v1/me/password", httpx.Wrap(uh.UpdatePassword))
	mutate("POST /api/v1/posts", httpx.Wrap(ph.Create))
	mutate("DELETE /api/v1/posts/{postId}", httpx.Wrap(ph.Delete))
	mutate("PUT /api/v1/like/{postId}", httpx.Wrap(ph.ToggleLike))
	mutate("PUT /api/v1/like/{postId}/{commentId}", httpx.Wrap(ch.ToggleCommentLike))
	mutate("PUT /api/v1/like/{postId}/{commentId}/{replyId}", httpx.Wrap(ch.ToggleReplyLike))
	mutate("PUT /api/v1/posts/save/{postId}", httpx.Wrap(ph.ToggleSave))
	mutate("POST /api/v1/comments/{postId}", httpx.Wrap(ch.Create))
	mutate("DELETE /api/v1/comments/{postId}/{commentId}", httpx.Wrap(ch.Delete))
	mutate("POST /api/v1/comments/{postId}/{commentId}", httpx.Wrap(ch.Reply))
	mutate("DELETE /api/v1/comments/{postId}/{commentId}/{replyId}", httpx.Wrap(ch.DeleteReply))
	mutate("PUT /api/v1/profile", httpx.Wrap(prh.Update))
	mutate("GET /api/v1/follow/{userId}", httpx.Wrap(fh.FollowOrUnfollow))
	mutate("POST /api/v1/profile/{username}/badges", httpx.Wrap(prh.AwardBadge))
	mutate("POST /api/v1/notifications", httpx.Wrap(nh.MarkRead))

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		log.Printf("eyi-media listening on %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Print("shutting down...")

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
	_ = c.Store.Close(shCtx)
	cancel()
}
