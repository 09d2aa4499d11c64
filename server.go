package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/models"
	"github.com/turboszerviz/turbo_backend/utils"
)

const defaultPort = "8080"

// notblank rejects strings that are only whitespace; "required" alone lets
// " " through.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// respondError maps model errors onto the API contract: wrapped
// record-not-found errors become 404, everything else is a business-rule
// failure and becomes 400.
func respondError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, utils.ErrorRecordNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

// customErrorLogger logs only requests that accumulated errors.
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
			logger.WithFields(logrus.Fields{
				"correlationId": cid,
				"path":          c.Request.URL.Path,
			}).Error(c.Errors.String())
		}
	}
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func registerRoutes(api *gin.RouterGroup) {
	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Turbó Szerviz Kezelő API"})
	})

	api.POST("/car-makes", createCarMakeHandler)
	api.GET("/car-makes", listCarMakesHandler)
	api.POST("/car-models", createCarModelHandler)
	api.GET("/car-models/:make_id", listCarModelsHandler)

	api.POST("/turbo-notes", createTurboNoteHandler)
	api.GET("/turbo-notes/:turbo_code", listTurboNotesHandler)
	api.POST("/car-notes", createCarNoteHandler)
	api.GET("/car-notes/:make/:model", listCarNotesHandler)

	api.POST("/work-processes", createWorkProcessHandler)
	api.GET("/work-processes", listWorkProcessesHandler)
	api.PUT("/work-processes/:id", updateWorkProcessHandler)
	api.DELETE("/work-processes/:id", deleteWorkProcessHandler)

	api.POST("/turbo-parts", createTurboPartHandler)
	api.GET("/turbo-parts", listTurboPartsHandler)
	api.PUT("/turbo-parts/:id", updateTurboPartHandler)
	api.DELETE("/turbo-parts/:id", deleteTurboPartHandler)

	api.POST("/clients", createClientHandler)
	api.GET("/clients", listClientsHandler)
	api.GET("/clients/:id", getClientHandler)
	api.PUT("/clients/:id", updateClientHandler)

	api.POST("/vehicles", createVehicleHandler)
	api.GET("/vehicles", listVehiclesHandler)

	api.POST("/work-orders", createWorkOrderHandler)
	api.GET("/work-orders", listWorkOrdersHandler)
	api.GET("/work-orders/:id", getWorkOrderHandler)
	api.PUT("/work-orders/:id", updateWorkOrderHandler)
	api.DELETE("/work-orders/:id", deleteWorkOrderHandler)
	api.POST("/work-orders/:id/finalize", finalizeWorkOrderHandler)
	api.POST("/work-orders/:id/unfinalize", unfinalizeWorkOrderHandler)
	api.GET("/work-orders/:id/pdf", workOrderPdfHandler)
	api.GET("/work-orders/:id/html", workOrderHtmlHandler)
	api.GET("/work-orders/:id/print-data", workOrderPrintDataHandler)

	api.POST("/worksheet-templates", createWorksheetTemplateHandler)
	api.GET("/worksheet-templates", listWorksheetTemplatesHandler)
	api.GET("/worksheet-templates/:id", getWorksheetTemplateHandler)
	api.PUT("/worksheet-templates/:id", updateWorksheetTemplateHandler)
	api.DELETE("/worksheet-templates/:id", deleteWorksheetTemplateHandler)
	api.POST("/worksheet-templates/:id/export", exportWorksheetTemplateHandler)
	api.POST("/worksheet-templates/import", importWorksheetTemplateHandler)

	api.POST("/inventory/items", createInventoryItemHandler)
	api.GET("/inventory/items", listInventoryItemsHandler)
	api.GET("/inventory/items/:id", getInventoryItemHandler)
	api.PUT("/inventory/items/:id", updateInventoryItemHandler)
	api.DELETE("/inventory/items/:id", deleteInventoryItemHandler)
	api.POST("/inventory/movements", createInventoryMovementHandler)
	api.GET("/inventory/movements", listInventoryMovementsHandler)
	api.GET("/inventory/dashboard", inventoryDashboardHandler)
	api.GET("/inventory/export", inventoryExportHandler)
	api.POST("/inventory/initialize-default-items", initializeDefaultInventoryHandler)

	api.POST("/part-types", createPartTypeHandler)
	api.GET("/part-types", listPartTypesHandler)
	api.PUT("/part-types/:id", updatePartTypeHandler)
	api.DELETE("/part-types/:id", deletePartTypeHandler)

	api.POST("/suppliers", createSupplierHandler)
	api.GET("/suppliers", listSuppliersHandler)
	api.PUT("/suppliers/:id", updateSupplierHandler)
	api.DELETE("/suppliers/:id", deleteSupplierHandler)

	api.POST("/parts", createPartHandler)
	api.GET("/parts", listPartsHandler)
	api.PUT("/parts/:id", updatePartHandler)
	api.DELETE("/parts/:id", deletePartHandler)

	api.POST("/stock-movements", createStockMovementHandler)
	api.GET("/stock-movements/:part_id", listStockMovementsHandler)

	api.POST("/initialize-data", initializeDataHandler)
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// SIGTERM handling for graceful drain on container shutdown.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	decimal.MarshalJSONWithoutQuotes = true
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("notblank", notBlank); err != nil {
			logger.WithFields(logrus.Fields{"field": "validator"}).Panic(err.Error())
		}
	}

	// Start the HTTP server ASAP so startup probes see an open port. Until
	// the DB is ready, app endpoints return 503.
	r := gin.New()
	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// In production, require an explicit allowlist; otherwise allow all for
	// developer convenience.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")

	r.Use(cors.New(corsConfig))
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	registerRoutes(r.Group("/api"))
	r.NoRoute(customNotFoundHandler)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedis()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow running migrations
	// as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port, "/api/")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}
