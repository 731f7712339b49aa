package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"docex/internal/config"
	"docex/internal/handler"
	"docex/internal/logger"
	"docex/internal/parser"
	"docex/internal/parser/gemini"
	"docex/internal/parser/openai"
	"docex/internal/port"
	"docex/internal/repository/xlsx"
	"docex/internal/router"
	"docex/internal/service"
	"docex/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Spreadsheet store and repositories
	store, err := xlsx.NewStore(&cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open spreadsheet store: %w", err)
	}
	orderRepo := xlsx.NewOrderRepo(store)
	refRepo := xlsx.NewReferenceRepo(store)
	statsRepo := xlsx.NewStatsRepo(store)

	// LLM parser chain
	parser.RegisterProvider("openai", func(c *config.ParserProviderConfig) (port.InvoiceParser, error) {
		return openai.NewParser(c), nil
	})
	parser.RegisterProvider("gemini", func(c *config.ParserProviderConfig) (port.InvoiceParser, error) {
		return gemini.NewParser(c), nil
	})

	chain, err := buildParserChain(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to build parser chain: %w", err)
	}

	// Services
	orderSvc := service.NewOrderService(orderRepo)
	refSvc := service.NewReferenceService(refRepo)
	statsSvc := service.NewStatsService(statsRepo)
	extractionSvc := service.NewExtractionService(chain, validator.NewRegistry(), orderSvc, cfg.Upload.MaxFileSizeMB)

	// Handlers
	invoiceH := handler.NewInvoiceHandler(extractionSvc, orderSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	refH := handler.NewReferenceHandler(refSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(&cfg.Parser, statsSvc, chain.Names())

	r := router.Setup(cfg.CORS.AllowedOrigins, invoiceH, orderH, refH, statsH, healthH)

	log.Info().
		Str("port", cfg.Server.Port).
		Strs("providers", chain.Names()).
		Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildParserChain assembles the primary parser plus the optional fallback
// into a single chain. A missing primary API key is allowed at startup; the
// provider fails at call time and the status endpoint reports it.
func buildParserChain(cfg *config.ParserConfig) (*parser.FallbackParser, error) {
	primary, err := parser.NewParser(&cfg.Primary)
	if err != nil {
		return nil, err
	}
	parsers := []port.InvoiceParser{primary}
	names := []string{cfg.Primary.Provider}

	if fb := cfg.FallbackConfig(); fb != nil {
		fallback, err := parser.NewParser(fb)
		if err != nil {
			return nil, err
		}
		parsers = append(parsers, fallback)
		names = append(names, fb.Provider)
	}

	return parser.NewFallbackParser(parsers, names), nil
}
