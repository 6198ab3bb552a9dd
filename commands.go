package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/atotto/clipboard"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/export"
	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/extraction"
	"github.com/FACorreiaa/go-routeplanner/internal/pkg/config"
	"github.com/FACorreiaa/go-routeplanner/internal/routes"
	"github.com/FACorreiaa/go-routeplanner/internal/server"
	"github.com/FACorreiaa/go-routeplanner/pkg/logger"
)

const serviceName = "routeplanner"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Turn travel schedule screenshots into an editable route plan",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newExportCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the itinerary editor HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newExportCmd() *cobra.Command {
	var (
		copyText bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "export <screenshot>...",
		Short: "Extract an itinerary from screenshots and print it as text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			app, err := routes.NewAppHandlers(cmd.Context(), cfg, logger.Log)
			if err != nil {
				return err
			}
			opts := exportOptions{JSON: asJSON}
			if copyText {
				opts.Copy = clipboard.WriteAll
			}
			return runExport(cmd.Context(), app.Extraction, args, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVarP(&copyText, "copy", "c", false, "also copy the text to the clipboard")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the itinerary JSON instead of text")
	return cmd
}

// bootstrap loads .env and configuration and initialises the logger.
func bootstrap() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Observability.LogLevel, zap.String("service", serviceName)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(ctx context.Context) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	l := logger.Log

	otelShutdown, err := server.InitObservability(serviceName, cfg.Observability.OTLPEndpoint, cfg.Observability.MetricsAddr, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			l.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	app, err := routes.NewAppHandlers(ctx, cfg, l)
	if err != nil {
		return err
	}

	srv := server.New(cfg, l)
	srv.SetRouter(server.SetupRouter(app, serviceName, l))

	server.StartPprofServer(cfg.Observability.PprofAddr, l)

	if err := server.Run(ctx, srv.HTTPServer(), l); err != nil {
		l.Error("Server error", zap.Error(err))
		return err
	}
	l.Info("Graceful shutdown complete")
	return nil
}

type exportOptions struct {
	JSON bool
	Copy func(string) error
}

// runExport reads the screenshots, runs one extraction and writes the result.
// A clipboard failure is only a warning.
func runExport(ctx context.Context, svc *extraction.Service, paths []string, opts exportOptions, out, errOut io.Writer) error {
	images := make([]extraction.Image, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		images = append(images, extraction.FromBytes(data))
	}

	st, err := svc.Extract(ctx, images)
	if err != nil {
		return err
	}

	var text string
	if opts.JSON {
		b, err := json.MarshalIndent(st.Itinerary, "", "  ")
		if err != nil {
			return err
		}
		text = string(b) + "\n"
	} else {
		text = export.Text(st.Itinerary)
	}
	if _, err := io.WriteString(out, text); err != nil {
		return err
	}

	if opts.Copy != nil {
		if err := opts.Copy(text); err != nil {
			fmt.Fprintf(errOut, "warning: could not copy to clipboard: %v\n", err)
		} else {
			fmt.Fprintln(errOut, "일정이 클립보드에 복사되었습니다!")
		}
	}
	return nil
}
