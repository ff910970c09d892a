package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/skilldash/internal/analytics"
	"github.com/abhisek/skilldash/internal/app"
	"github.com/abhisek/skilldash/internal/assessment"
	"github.com/abhisek/skilldash/internal/config"
	"github.com/abhisek/skilldash/internal/dashboard"
	"github.com/abhisek/skilldash/internal/identity"
	"github.com/abhisek/skilldash/internal/logging"
	"github.com/abhisek/skilldash/internal/profile"
	"github.com/abhisek/skilldash/internal/screens/home"
	"github.com/abhisek/skilldash/internal/settings"
	"github.com/abhisek/skilldash/internal/store"
	"github.com/abhisek/skilldash/internal/tracker"
)

// env is everything a command needs once the store is open.
type env struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     *store.Store
	userID    string
	catalog   *assessment.Catalog
	tracker   *tracker.Service
	profile   *profile.Service
	settings  *settings.Service
	dashboard *dashboard.Service
	analytics *analytics.Service
}

// openEnv loads config, opens the store and builds the services.
func openEnv(cmd *cobra.Command) (*env, error) {
	ctx := cmdContext(cmd)

	cfgPath, err := resolveConfigPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Path: cfg.Log.Path})
	if err != nil {
		return nil, err
	}

	cat := assessment.DefaultCatalog()
	extra, _ := cmd.Flags().GetString("assessments")
	if extra == "" {
		extra = cfg.Assessments.ExtraFile
	}
	if extra != "" {
		defs, err := assessment.LoadDefinitionsFile(extra)
		if err != nil {
			_ = logger.Sync()
			return nil, err
		}
		if cat, err = cat.Extend(defs); err != nil {
			_ = logger.Sync()
			return nil, err
		}
		logger.Info("loaded extra assessments", zap.String("file", extra), zap.Int("count", len(defs)))
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	userID, err := identity.EnsureUserID(ctx, st.SettingsRepo())
	if err != nil {
		_ = st.Close()
		_ = logger.Sync()
		return nil, err
	}
	logger = logger.With(zap.String("user_id", userID))

	e := &env{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		userID:    userID,
		catalog:   cat,
		tracker:   tracker.NewService(tracker.ReposFrom(st), userID, logger),
		profile:   profile.NewService(st.ProfileRepo(), st.SkillRepo(), st.ActivityRepo(), logger),
		settings:  settings.NewService(st.SettingsRepo(), logger),
		dashboard: dashboard.NewService(dashboard.ReposFrom(st), cat, userID, logger),
		analytics: analytics.NewService(analytics.ReposFrom(st), userID, logger),
	}

	if err := e.profile.Seed(ctx, userID, cfg.User.Email, cfg.User.Name); err != nil {
		logger.Warn("seed profile from config", zap.Error(err))
	}
	return e, nil
}

// Close releases the store and flushes the logger.
func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// runApp opens the store, builds dependencies, and launches the TUI.
// A non-empty assessmentID opens that assessment straight away.
func runApp(cmd *cobra.Command, assessmentID string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if assessmentID != "" {
		if _, err := e.catalog.Get(assessmentID); err != nil {
			return err
		}
	}

	e.logger.Info("starting tui", zap.String("assessment", assessmentID))
	return app.Run(app.Options{
		Deps: home.Deps{
			Dashboard:   e.dashboard,
			Assessments: e.catalog,
			Tracker:     e.tracker,
			Profile:     e.profile,
			Settings:    e.settings,
			Activity:    e.store.ActivityRepo(),
			Analytics:   e.analytics,
			Email:       e.cfg.User.Email,
			Logger:      e.logger,
		},
		InitialAssessment: assessmentID,
	})
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
