package payments

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coursemaster/client-service/internal/utils"
)

// ReturnServer is a loopback HTTP listener for the payment gateway's return
// redirect. After checkout the gateway sends the browser back to
// http://<addr>/payments/return?tran_id=..., which this server confirms
// against the API before showing the outcome.
type ReturnServer struct {
	service *Service
	logger  utils.Logger
	addr    string
	server  *http.Server
}

func NewReturnServer(service *Service, logger utils.Logger, addr string) *ReturnServer {
	return &ReturnServer{
		service: service,
		logger:  logger,
		addr:    addr,
	}
}

func (rs *ReturnServer) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/payments/return", rs.handleReturn)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func (rs *ReturnServer) handleReturn(c *gin.Context) {
	transactionID := c.Query("tran_id")
	if transactionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "tran_id is required"})
		return
	}

	validation, err := rs.service.Confirm(c.Request.Context(), transactionID)
	if err != nil {
		rs.logger.LogError(err, "return redirect validation failed", "transaction_id", transactionID)
		c.JSON(http.StatusBadGateway, gin.H{"message": "payment could not be validated, please retry"})
		return
	}

	status := http.StatusOK
	if !validation.Success {
		status = http.StatusPaymentRequired
	}
	c.JSON(status, gin.H{
		"success": validation.Success,
		"order":   validation.Order,
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (rs *ReturnServer) Run(ctx context.Context) error {
	rs.server = &http.Server{
		Addr:    rs.addr,
		Handler: rs.routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		rs.logger.Info("payment return server listening", "addr", rs.addr)
		if err := rs.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return rs.server.Shutdown(shutdownCtx)
	}
}
