package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wireworld/internal/api"
	"wireworld/internal/app"
	"wireworld/internal/printer"
	"wireworld/internal/store"
	"wireworld/internal/transport/websocket"

	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveStart bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live board over HTTP and WebSocket",
	Long: `Run a board and expose it over HTTP.

Endpoints:
  GET  /api/status               board size, generation, run state, census
  GET  /api/pattern              current generation as MCell text
  PUT  /api/pattern              load MCell text
  POST /api/step?n=N             advance N generations
  POST /api/start, /api/stop, /api/reset
  GET  /api/cells/{x}/{y}        read a cell
  PUT  /api/cells/{x}/{y}        write a cell, body {"state":"head"}
  GET  /api/patterns             list the pattern library
  POST /api/patterns             store the current board, body {"name":"..."}
  POST /api/patterns/{id}/load   load a stored pattern
  GET  /ws                       stream of board updates`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveStart, "run", false, "Start running immediately")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	grid, err := cfg.Board.NewGrid()
	if err != nil {
		return err
	}
	ctrl := app.NewController(grid, cfg.Run.Policy(), cfg.Run.TPS)
	if err := ctrl.LoadRef(cfg.Board.Pattern); err != nil {
		return printer.Error(
			"cannot load initial pattern",
			err.Error(),
			[]string{fmt.Sprintf("Check board.pattern and that the board is %dx%d", cfg.Board.Width, cfg.Board.Height)},
		)
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	session := api.NewSession(ctrl, hub)
	go session.Run(ctx)
	if serveStart {
		session.Do(func(c *app.Controller) error { c.Start(); return nil })
	}

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      api.NewServer(session, hub, st),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown: %v", err)
		}
	}()

	if strings.HasPrefix(addr, ":") || strings.HasPrefix(addr, "0.0.0.0:") {
		printer.Warning("Listening on all interfaces; the API has no authentication\n")
	}
	printer.Step("Serving %dx%d board on %s\n", grid.Width(), grid.Height(), addr)
	printer.Info("  REST API:  http://%s/api\n", addr)
	printer.Info("  WebSocket: ws://%s/ws\n", addr)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return printer.Error(
			"HTTP server failed",
			err.Error(),
			[]string{"Pick another address with --addr"},
		)
	}
	log.Println("Server stopped")
	return nil
}
