package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/locle27/Koyeb-Booking-sub000/internal/backlog"
	"github.com/locle27/Koyeb-Booking-sub000/internal/chat"
	"github.com/locle27/Koyeb-Booking-sub000/internal/handbook"
	"github.com/locle27/Koyeb-Booking-sub000/internal/logging"
	"github.com/locle27/Koyeb-Booking-sub000/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the concierge HTTP server",
	Long:  `Starts the concierge REST API, the websocket chat endpoint, the unanswered-question backlog and the printable guest handbook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := server.New(cfg.Server, a.api(), logging.For("server"))
		chat.RegisterRoutes(srv.Router(), chat.NewHandler(a.engine, logging.For("chat")))
		handbook.RegisterRoutes(srv.Router(), cfg.HotelName, a.core)
		backlog.RegisterRoutes(srv.Router(), a.backlog, a.core)

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "concierge %s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Hotel: %s\n", cfg.HotelName)
		fmt.Fprintf(os.Stderr, "  Engine: %s\n", a.engine.Name())
		fmt.Fprintf(os.Stderr, "  Knowledge entries: %d\n", len(a.core.Catalog()))

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}
