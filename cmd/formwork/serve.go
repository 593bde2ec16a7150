package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/formwork-dev/formwork/internal/config"
	"github.com/formwork-dev/formwork/pkg/control"
	"github.com/formwork-dev/formwork/pkg/form"
	"github.com/formwork-dev/formwork/pkg/live"
	"github.com/formwork-dev/formwork/pkg/upload"
	"github.com/formwork-dev/formwork/pkg/validate"
)

func serveCmd() *cobra.Command {
	var (
		port       int
		host       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo form server",
		Long: `Run a WebSocket form server with a demo registration form.

Clients connect to /form/live, send set/touch/submit events as JSON,
and receive a state snapshot after every event.

Examples:
  formwork serve
  formwork serve --port=8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, configPath)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from formwork.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from formwork.json)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to formwork.json")

	return cmd
}

func runServe(port int, host, configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg)

	store, err := uploadStore(cfg)
	if err != nil {
		return err
	}

	var metrics *live.Metrics
	if cfg.Metrics.Enabled {
		metrics = live.NewMetrics(live.WithNamespace(cfg.Metrics.Namespace))
	}

	srv, err := live.New(live.Config{
		NewForm:      demoForm,
		Logger:       logger,
		Uploads:      store,
		Metrics:      metrics,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		PingInterval: cfg.PingInterval(),
		CheckOrigin:  cfg.CheckOrigin(),
	})
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Mount("/form", srv.Router())

	httpSrv := &http.Server{
		Addr:    cfg.Address(),
		Handler: r,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		logger.Info("shutting down")
		srv.Shutdown()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpSrv.Shutdown(ctx)
	}()

	logger.Info("listening", "addr", cfg.Address())
	fmt.Printf("Form server running at http://%s/form/live\n", cfg.Address())

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func uploadStore(cfg *config.Config) (upload.Store, error) {
	if cfg.Uploads.S3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg)
		return upload.NewS3Store(client, cfg.Uploads.S3Bucket, cfg.Uploads.S3Prefix, cfg.Uploads.MaxSizeBytes), nil
	}
	if cfg.Uploads.Dir != "" {
		return upload.NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.MaxSizeBytes)
	}
	return nil, nil
}

// demoForm builds the registration form served to every session.
func demoForm() *form.Form {
	f := form.New()

	username := control.NewText("username")
	username.SetRequired(true)
	username.SetMinLength(3)
	username.SetMaxLength(32)
	username.SetValidator("alphanumeric", validate.Rule(username.RxValue(), validate.AlphaNumeric()))

	email := control.NewText("email")
	email.SetRequired(true)
	email.SetValidator("email", validate.Rule(email.RxValue(), validate.Email()))

	age := control.NewNumber("age")
	age.SetMin(13)
	age.SetMax(120)

	birthday := control.NewDateTime("birthday", "2006-01-02")

	bio := control.NewTextArea("bio")
	bio.SetMaxLength(500)

	country := control.NewSelect("country")
	country.SetOptions("us", "ca", "gb", "de", "fr", "jp")

	interests := control.NewMultiSelect("interests")
	interests.SetOptions("go", "web", "data", "infra", "mobile")
	interests.SetMaxSelected(3)

	// Two physical radio inputs sharing one logical "plan" control.
	plan := control.AttachRadio(f.Scope(), "plan-free", "plan")
	control.AttachRadio(f.Scope(), "plan-pro", "plan")
	plan.SetRequired(true)

	terms := control.NewCheckbox("terms")
	terms.SetRequired(true)

	avatar := control.NewFile("avatar")

	f.AddControl(username)
	f.AddControl(email)
	f.AddControl(age)
	f.AddControl(birthday)
	f.AddControl(bio)
	f.AddControl(country)
	f.AddControl(interests)
	f.AddControl(plan)
	f.AddControl(terms)
	f.AddControl(avatar)

	return f
}
