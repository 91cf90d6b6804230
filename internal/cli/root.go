package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/calebhart/seedpost/internal/contract"
	"github.com/calebhart/seedpost/internal/httpapi"
	"github.com/calebhart/seedpost/internal/service"
)

// App carries the wired services the commands need.
type App struct {
	Calendars service.CalendarService
}

// NewRootCmd builds the seedpost command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "seedpost",
		Short:         "Generate weekly synthetic Reddit content calendars",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(app))
	root.AddCommand(newGenerateCmd(app))
	root.AddCommand(newExampleCmd())

	return root
}

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := httpapi.NewServer(app.Calendars)

			errCh := make(chan error, 1)
			go func() {
				fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", addr)
				errCh <- srv.Listen(addr)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr(), "listen address")
	return cmd
}

func defaultAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8000"
}

func newGenerateCmd(app *App) *cobra.Command {
	var (
		inputPath string
		outPath   string
		session   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one week's calendar from a request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.SampleRequest()
			if inputPath != "" {
				data, err := os.ReadFile(inputPath)
				if err != nil {
					return fmt.Errorf("reading request file: %w", err)
				}
				req = &contract.GenerateRequest{}
				if err := json.Unmarshal(data, req); err != nil {
					return fmt.Errorf("parsing request file: %w", err)
				}
			}

			cal, err := app.Calendars.Generate(cmd.Context(), session, req.ToConfig())
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(cal, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding calendar: %w", err)
			}
			if err := os.WriteFile(outPath, out, 0o644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(cal, outPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "request JSON file (omit to use the built-in example)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "calendar.json", "output file")
	cmd.Flags().StringVar(&session, "session", "default", "session id for next-week continuation")
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example generation request",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := json.MarshalIndent(contract.SampleRequest(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
