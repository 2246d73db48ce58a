package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"

	"github.com/amirhosseinghanipour/folio/internal/application/auth"
	"github.com/amirhosseinghanipour/folio/internal/application/content"
	"github.com/amirhosseinghanipour/folio/internal/application/forms"
	"github.com/amirhosseinghanipour/folio/internal/application/notice"
	"github.com/amirhosseinghanipour/folio/internal/application/store"
	infraauth "github.com/amirhosseinghanipour/folio/internal/infrastructure/auth"
	httprouter "github.com/amirhosseinghanipour/folio/internal/infrastructure/http"
	"github.com/amirhosseinghanipour/folio/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/folio/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/folio/internal/infrastructure/lockout"
	"github.com/amirhosseinghanipour/folio/internal/infrastructure/websession"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the public read API and the admin console backend.

The collection store is loaded from the content API in the background; requests
served before it finishes see an empty, loading state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts, port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *RootOptions, port string) error {
	log := opts.logger(cmd.ErrOrStderr())

	cfg, err := opts.load()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Operator token from `folio login`; only background work without a caller reads it.
	operator, redisClient, err := openTokens(ctx, cfg, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
		log.Warn().Msg("SESSION_SECRET not set; admin sessions will not survive a restart")
	}
	tokens := websession.New(
		websession.NewCookieStore(secret, cfg.Session.MaxAge, !cfg.Security.IsDevelopment),
		operator,
		log.With().Str("component", "websession").Logger(),
	)

	api := newAPIClient(cfg, tokens, log)
	public := api.Anonymous()

	st := store.New(api, api, log)
	unsubscribe := st.Subscribe(func(s store.State) {
		log.Debug().
			Int("projects", len(s.Projects)).
			Int("messages", len(s.Messages)).
			Bool("loading", s.Loading).
			Str("error", s.Error).
			Msg("store changed")
	})
	defer unsubscribe()
	go st.Init(ctx)

	validate := forms.New()
	notices := notice.NewBoard(nil)

	registerUC := auth.NewRegister(api, tokens, validate)
	loginUC := auth.NewLogin(api, tokens, validate, lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSeconds))
	currentSession := auth.NewCurrentSession(tokens, infraauth.NewClaimsDecoder())

	saveHomeUC := content.NewSaveHome(api, validate)
	aboutEditor := content.NewAboutEditor(api, validate)
	addSkillUC := content.NewAddSkill(api, validate)
	uploadCVUC := content.NewUploadCV(api)

	healthHandler := handlers.NewHealthHandler(redisClient, map[string]handlers.Check{
		"content_api": func(ctx context.Context) error {
			return public.Do(ctx, http.MethodGet, "/home", nil, "", nil)
		},
	})

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.PerIP)
	if err != nil {
		return err
	}
	ratingLimit, err := middleware.NewRatingLimiter(cfg.RateLimit.Rating)
	if err != nil {
		return err
	}

	router := httprouter.NewRouter(httprouter.RouterConfig{
		PublicHandler:   handlers.NewPublicHandler(st, public, validate, log),
		ProjectsHandler: handlers.NewProjectsHandler(st, notices, validate, log),
		MessagesHandler: handlers.NewMessagesHandler(st, notices, log),
		ContentHandler:  handlers.NewContentHandler(api, saveHomeUC, aboutEditor, addSkillUC, uploadCVUC, notices, log),
		AuthHandler:     handlers.NewAuthHandler(registerUC, loginUC, tokens, log),
		NoticesHandler:  handlers.NewNoticesHandler(notices),
		HealthHandler:   healthHandler,
		Sessions:        tokens.Middleware,
		RequireSession:  middleware.RequireSession(currentSession, log),
		Log:             log,
		Secure:          middleware.NewSecure(middleware.SecureOptions(cfg.Security.IsDevelopment)),
		CORS:            middleware.CORS(cfg.Security.AllowedOrigins, nil, nil),
		IPRateLimit:     ipLimit,
		RatingRateLimit: ratingLimit,
		Metrics:         cfg.Server.MetricsEnabled,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("api", cfg.API.BaseURL).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
