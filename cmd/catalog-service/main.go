package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/feirafacil/catalogo-service/internal/config"
	httpAPI "github.com/feirafacil/catalogo-service/internal/http"
	"github.com/feirafacil/catalogo-service/internal/http/controller"
	"github.com/feirafacil/catalogo-service/internal/logger"
	"github.com/feirafacil/catalogo-service/internal/metrics"
	"github.com/feirafacil/catalogo-service/internal/service"
	sqspkg "github.com/feirafacil/catalogo-service/internal/sqs"
	"github.com/feirafacil/catalogo-service/internal/store"
	"github.com/feirafacil/catalogo-service/internal/store/memory"
	storesql "github.com/feirafacil/catalogo-service/internal/store/sql"
)

func main() {
	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	logger.InitJSONLogger(conf.DebugMode)

	ctx := context.Background()

	var productStore store.Store
	switch conf.StoreBackend {
	case config.StoreBackendMemory:
		productStore = memory.New()
		slog.Info("using in-memory product store")
	default:
		db, err := storesql.StartDB(ctx, conf.Database)
		handleErr("starting database", err)
		productStore = storesql.NewProductStore(db)
	}

	// Change events are optional; without a queue URL the catalog runs standalone.
	var publisher *sqspkg.Publisher
	if conf.AWS.SQSQueueURL != "" {
		sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
		handleErr("creating SQS client", err)
		publisher = sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)
	}

	productService := service.NewProductService(productStore, publisher)

	ctr := controller.New(conf)
	productCtr := controller.NewProductController(productService)

	if !conf.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := gin.New()
	httpServer = httpAPI.InitRouter(conf, httpServer, ctr, productCtr)

	go func() {
		if err := httpServer.Run(":" + conf.HTTPServer.Port); err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
