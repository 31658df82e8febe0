package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetdb/config"
	"assetdb/internal/auth"
	"assetdb/internal/db"
	"assetdb/internal/hardware"
	"assetdb/internal/health"
	"assetdb/internal/hwmodel"
	"assetdb/internal/location"
	"assetdb/internal/logs"
	"assetdb/internal/lookup"
	"assetdb/internal/metrics"
	"assetdb/internal/middleware"
	"assetdb/internal/models"
	"assetdb/internal/network"
	"assetdb/internal/project"
	"assetdb/internal/user"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

type counter interface {
	Count(ctx context.Context) (int64, error)
}

type App struct {
	cfg        *config.Config
	Router     *mux.Router
	Handler    http.Handler // Router, обёрнутый CORS
	httpServer *http.Server

	db       *gorm.DB
	counters map[string]counter
	ctx      context.Context
	cancel   context.CancelFunc
}

// New собирает приложение поверх уже открытой и мигрированной БД.
func New(cfg *config.Config, d *gorm.DB) *App {
	a := &App{cfg: cfg}
	a.Mount(d)
	return a
}

// Initialize: логи, подключение к БД (с одной повторной попыткой), миграции, роутер.
func (a *App) Initialize(cfg *config.Config) error {
	a.cfg = cfg

	logs.Init(logs.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if cfg.IsProduction() && cfg.JWT.Secret == config.DefaultJWTSecret {
		logs.Logger.Warn("JWT_SECRET is the built-in default; set a real secret in production")
	}

	d, err := db.Connect(context.Background(), cfg.Database.Driver, cfg.Database.DSN, db.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxOpenConns,
		LogLevel:     cfg.Logging.Level,
	})
	if err != nil {
		return err
	}
	logs.Logger.WithField("driver", cfg.Database.Driver).Info("database connected")

	if err := db.Migrate(d); err != nil {
		_ = db.Close(d)
		return fmt.Errorf("migrate: %w", err)
	}
	a.Mount(d)
	return nil
}

// Mount регистрирует все маршруты на новом роутере.
func (a *App) Mount(d *gorm.DB) {
	a.db = d
	a.counters = map[string]counter{}

	a.Router = mux.NewRouter()
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.Recoverer)
	a.Router.Use(middleware.LoggerMW)

	health.RegisterRoutesWithDB(a.Router, d)
	a.Router.Handle("/metrics", metrics.Handler(a.countAll)).Methods(http.MethodGet)

	tokens := auth.NewTokens(a.cfg.JWT.Secret, a.cfg.JWT.Expire)
	api := a.Router.PathPrefix("/api").Subrouter()

	// публичные маршруты регистрируются до защищённого саброутера
	users := user.NewRepo(d)
	userSvc := user.NewService(users)
	userHTTP := user.NewHTTP(userSvc, user.NewAuthenticator(users, tokens))
	userHTTP.RegisterPublicRoutes(api)

	secured := api.NewRoute().Subrouter()
	secured.Use(middleware.Auth(tokens))
	userHTTP.RegisterRoutes(secured)
	a.counters["users"] = userSvc

	// справочники
	vendors := lookup.NewService[models.Vendor](d, lookup.Vendors)
	sites := lookup.NewService[models.Site](d, lookup.Sites)
	types := lookup.NewService[models.HardwareType](d, lookup.HardwareTypes)
	statuses := lookup.NewService[models.HardwareStatus](d, lookup.HardwareStatuses)
	lookup.NewHTTP(vendors).RegisterRoutes(secured)
	lookup.NewHTTP(sites).RegisterRoutes(secured)
	lookup.NewHTTP(types).RegisterRoutes(secured)
	lookup.NewHTTP(statuses).RegisterRoutes(secured)
	a.counters["vendors"] = vendors
	a.counters["sites"] = sites
	a.counters["hardware_types"] = types
	a.counters["hardware_statuses"] = statuses

	hwModels := hwmodel.NewService(hwmodel.NewRepo(d))
	hwmodel.NewHTTP(hwModels).RegisterRoutes(secured)
	a.counters["hardware_models"] = hwModels

	locations := location.NewService(location.NewRepo(d))
	location.NewHTTP(locations).RegisterRoutes(secured)
	a.counters["locations"] = locations

	projects := project.NewService(project.NewRepo(d))
	clusters := project.NewClusterService(project.NewClusterRepo(d))
	project.NewHTTP(projects).RegisterRoutes(secured)
	project.NewClusterHTTP(clusters).RegisterRoutes(secured)
	a.counters["projects"] = projects
	a.counters["clusters"] = clusters

	switches := network.NewSwitchService(network.NewSwitchRepo(d))
	conns := network.NewConnectionService(network.NewConnectionRepo(d))
	ifaces := network.NewInterfaceService(network.NewInterfaceRepo(d))
	network.NewSwitchHTTP(switches).RegisterRoutes(secured)
	network.NewConnectionHTTP(conns).RegisterRoutes(secured)
	network.NewInterfaceHTTP(ifaces).RegisterRoutes(secured)
	a.counters["switches"] = switches
	a.counters["switch_connections"] = conns
	a.counters["network_interfaces"] = ifaces

	hw := hardware.NewService(hardware.NewRepo(d))
	hardware.NewHTTP(hw).RegisterRoutes(secured)
	a.counters["hardware"] = hw

	if a.cfg.Server.UIDir != "" {
		a.RegisterUI(a.cfg.Server.UIDir)
	}

	_ = a.Router.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := rt.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, _ := rt.GetMethods()
		logs.Logger.Debugf("route: %-6v %s", methods, path)
		return nil
	})

	a.Handler = middleware.CORS(a.cfg.Server.CORSOrigin)(a.Router)
}

func (a *App) countAll() (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out := make(map[string]int64, len(a.counters))
	for name, c := range a.counters {
		n, err := c.Count(ctx)
		if err != nil {
			return nil, err
		}
		out[name] = n
	}
	return out, nil
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return ErrNotInitialized
	}
	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	defer a.cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case s := <-sigs:
			logs.Logger.Infof("received %s, shutting down", s)
			a.cancel()
		case <-a.ctx.Done():
		}
	}()

	a.httpServer = &http.Server{
		Addr:         bind,
		Handler:      a.Handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logs.Logger.Infof("HTTP listening on %s (env=%s)", bind, a.cfg.Env)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-a.ctx.Done():
	case err, ok := <-errCh:
		if ok {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logs.Logger.Errorf("shutdown: %v", err)
	}
	if err := db.Close(a.db); err != nil {
		logs.Logger.Errorf("close db: %v", err)
	}
	logs.Logger.Info("server stopped")
	return runErr
}

// DB returns the connection Mount was called with.
func (a *App) DB() *gorm.DB { return a.db }

var ErrNotInitialized = &initError{"server not initialized (call Initialize(cfg) first)"}

type initError struct{ s string }

func (e *initError) Error() string { return e.s }
