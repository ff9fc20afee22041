package storage

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PluginAlias is the alias consumer modules receive the plugin under.
const PluginAlias = "db"

// PluginModule owns the single database connection shared by the
// auth and product modules. Plugins start first and stop last.
type PluginModule struct {
	container types.ServiceContainer
	cfg       Config
	db        *gorm.DB
	sqlLog    *logrus.Logger
	logger    types.Logger
}

// Compile-time interface checks.
var (
	_ mono.PluginModule          = (*PluginModule)(nil)
	_ mono.HealthCheckableModule = (*PluginModule)(nil)
)

// NewPluginModule creates a new storage plugin.
func NewPluginModule(cfg Config, logger types.Logger) *PluginModule {
	return &PluginModule{
		cfg:    cfg,
		sqlLog: NewSQLLogger(),
		logger: logger,
	}
}

// Name returns the module name.
func (m *PluginModule) Name() string {
	return "storage"
}

// Start opens the connection and creates the tables.
func (m *PluginModule) Start(_ context.Context) error {
	db, err := Open(m.cfg, m.sqlLog)
	if err != nil {
		return err
	}

	if err := Migrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return err
	}

	m.db = db
	m.logger.Info("Storage plugin started", "driver", m.cfg.Driver)
	return nil
}

// Stop closes the connection pool.
func (m *PluginModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.logger.Info("Storage plugin stopped")
	return nil
}

// SetContainer sets the service container for this plugin.
func (m *PluginModule) SetContainer(container types.ServiceContainer) {
	m.container = container
}

// Container returns the service container for this plugin.
func (m *PluginModule) Container() types.ServiceContainer {
	return m.container
}

// DB returns the shared connection. It is nil until Start has run.
func (m *PluginModule) DB() *gorm.DB {
	return m.db
}

// Health pings the database.
func (m *PluginModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": m.cfg.Driver,
		},
	}
}
