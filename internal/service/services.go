package service

import (
	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Code   *CodeService
	Report *ReportService
	Config *ConfigService
}

// NewServices creates a new Services instance with default paths
func NewServices() (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	dataPath, err := storage.GetDataPath(cfg.DataFile)
	if err != nil {
		return nil, err
	}

	return NewServicesWithPaths(dataPath, configPath, cfg), nil
}

// NewServicesWithPaths creates a new Services instance with custom paths (useful for testing)
func NewServicesWithPaths(dataPath, configPath string, cfg config.Config) *Services {
	codeService := NewCodeService(dataPath, cfg)
	reportService := NewReportService(codeService, cfg)
	configService := NewConfigService(configPath, cfg)

	return &Services{
		Code:   codeService,
		Report: reportService,
		Config: configService,
	}
}
