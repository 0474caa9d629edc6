package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"belajar/internal/app"
	"belajar/internal/domain/config"
	"belajar/internal/index"
	"belajar/internal/serve"
)

const indexPath = ".belajar/index.db"

func main() {
	cfgPath := flag.String("config", "./site.yaml", "path to site config")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, log)

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "serve"
	}
	switch cmd {
	case "build":
		if err := runBuild(ctx, a); err != nil {
			log.WithError(err).Error("build failed")
			os.Exit(1)
		}
	case "serve":
		if err := runServe(ctx, a); err != nil {
			log.WithError(err).Error("serve failed")
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [-config site.yaml] build|serve\n", os.Args[0])
		os.Exit(2)
	}
}

func runBuild(ctx context.Context, a *app.App) error {
	posts, err := a.LoadAllPosts(ctx)
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}

	lps, err := a.PresRepo.FindAllWithLanguages(ctx)
	if err != nil {
		return fmt.Errorf("load presentations: %w", err)
	}

	st, err := index.Open(index.OpenOptions{Path: indexPath})
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer st.Close()

	if err := st.Rebuild(posts, index.RebuildOptions{
		IncludeDraft: a.Cfg.Content.IncludeDraft,
	}); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	a.Cache.Persist()
	stats := a.Cache.GetStats()
	a.Log.WithFields(logrus.Fields{
		"posts":         len(posts),
		"presentations": len(lps),
		"cache_size":    stats.Size,
		"cache_hits":    stats.Hits,
		"cache_misses":  stats.Misses,
		"hit_rate":      fmt.Sprintf("%.2f", stats.HitRate),
	}).Info("build complete")
	return nil
}

func runServe(ctx context.Context, a *app.App) error {
	s, err := serve.New(a, indexPath)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.ListenAndServe(ctx, a.Cfg.Serve.Addr)
}
