package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/portfolio-site/internal/config"
	"github.com/jonathan/portfolio-site/internal/contact"
	"github.com/jonathan/portfolio-site/internal/content"
	"github.com/jonathan/portfolio-site/internal/db"
	"github.com/jonathan/portfolio-site/internal/documents"
	"github.com/jonathan/portfolio-site/internal/notify"
	"github.com/jonathan/portfolio-site/internal/rendering"
	"github.com/jonathan/portfolio-site/internal/server"
	"github.com/jonathan/portfolio-site/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start an HTTP server that renders the site pages and accepts contact form submissions.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := newContentStore(cfg)
	if _, err := store.Load(ctx); err != nil {
		// Pages answer 503 until the document loads.
		log.Printf("[serve] warning: content not loaded yet: %v", err)
	}

	leads, err := db.Open(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open lead store: %w", err)
	}
	defer leads.Close()
	if cfg.Database.URL == "" {
		log.Println("[serve] warning: database.url not set; leads are kept in memory only")
	}

	limiter := ratelimit.NewLimiter(cfg.Limiter())
	defer limiter.Stop()

	telegram := notify.NewTelegramClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.APIBase)
	pipeline := contact.NewPipeline(limiter, leads, newNotifier(cfg, store, telegram),
		contact.WithNotifyTimeout(cfg.Notify.Timeout))

	cv, err := newCVSource(ctx, cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, server.Deps{
		Content:  store,
		Renderer: rendering.NewRenderer(),
		Contact:  pipeline,
		Limiter:  limiter,
		CV:       cv,
		Events:   telegram,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	if cfg.Content.Watch {
		watcher := content.NewWatcher(store, cfg.Content.Path, content.DefaultDebounce)
		g.Go(func() error {
			if err := watcher.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("content watcher: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func newContentStore(cfg *config.Config) *content.Store {
	location, isURL := cfg.ContentSource()
	var source content.Source = &content.FileSource{Path: location}
	if isURL {
		source = &content.HTTPSource{URL: location}
	}
	return content.NewStore(source, content.WithTTL(cfg.Content.TTL))
}

// newNotifier sends through Resend when an API key is configured and logs
// the emails otherwise. The owner address and site name fall back to the
// current content document.
func newNotifier(cfg *config.Config, store *content.Store, telegram *notify.TelegramClient) *notify.Notifier {
	var mailer notify.Mailer = notify.LogMailer{}
	if cfg.EmailEnabled() {
		mailer = notify.NewResendMailer(cfg.Email.ResendAPIKey, nil)
	} else {
		log.Println("[serve] warning: email.resend_api_key not set; notification emails are logged only")
	}

	var events notify.EventLogger
	if cfg.TelegramEnabled() {
		events = telegram
	}
	return notify.NewNotifier(mailer, events, notify.Config{
		From:      cfg.Email.From,
		Owner:     cfg.Email.OwnerAddress,
		SiteURL:   cfg.Site.URL,
		AutoReply: cfg.Email.AutoReply,
		Document:  store.Load,
	})
}

// newCVSource reads the CV from S3 when a bucket is configured, else from disk.
func newCVSource(ctx context.Context, cfg *config.Config) (documents.Source, error) {
	if cfg.CV.S3Bucket == "" {
		return documents.FileSource{Path: cfg.CV.Path}, nil
	}
	src, err := documents.NewS3Source(ctx, documents.S3Config{
		Bucket:    cfg.CV.S3Bucket,
		Key:       cfg.CV.S3Key,
		Region:    cfg.CV.S3Region,
		Endpoint:  cfg.CV.S3Endpoint,
		AccessKey: cfg.CV.S3AccessKey,
		SecretKey: cfg.CV.S3SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure CV storage: %w", err)
	}
	return src, nil
}
