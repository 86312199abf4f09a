package serve

import (
	// 外部依赖
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	// 内部引用
	"github.com/scienceol/molcache/internal/config"
	coreCompound "github.com/scienceol/molcache/pkg/core/compound"
	impl "github.com/scienceol/molcache/pkg/core/compound/compound"
	"github.com/scienceol/molcache/pkg/middleware/logger"
	"github.com/scienceol/molcache/pkg/utils"
	"github.com/scienceol/molcache/pkg/web"
)

type handler struct {
	cService coreCompound.Service
}

func New() *cobra.Command {
	h := &handler{}
	return &cobra.Command{
		Use:          "serve",
		Long:         "Start the compound cache HTTP API",
		SilenceUsage: true,
		PreRunE:      h.init,
		RunE:         h.run,
		PostRunE:     h.close,
	}
}

func (h *handler) init(cmd *cobra.Command, _ []string) error {
	svc, err := impl.New(cmd.Context(), nil)
	if err != nil {
		return err
	}
	h.cService = svc
	return nil
}

func (h *handler) run(cmd *cobra.Command, _ []string) error {
	router := gin.Default()
	web.NewRouter(router, h.cService)

	port := config.Global().Server.Port
	httpServer := http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           router,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       30 * time.Second,
		TLSNextProto:      make(map[string]func(*http.Server, *tls.Conn, http.Handler)),
	}

	fmt.Printf("API server starting on http://0.0.0.0:%d\n", port)

	utils.SafelyGo(func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf(cmd.Context(), "start server err: %v\n", err)
		}
	}, func(err error) {
		logger.Errorf(cmd.Context(), "run http server err: %+v", err)
		os.Exit(1)
	})

	fmt.Printf("Server started. Press Ctrl+C to shutdown.\n")
	<-cmd.Context().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("shut down server err: %+v", err)
	}
	return nil
}

func (h *handler) close(cmd *cobra.Command, _ []string) error {
	return h.cService.Close(cmd.Context())
}
