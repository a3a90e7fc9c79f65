package commands

import (
	"github.com/spf13/cobra"

	"github.com/solguard-labs/solguard/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP server",
		Long: `Run a long-lived HTTP server exposing the engine:

  POST /api/v1/analyze   analyze sources supplied in the request body
  GET  /api/v1/rules     list the active rules
  GET  /healthz          liveness probe

The server keeps rules, plugins, and the cache warm between requests.`,
		Example: `  # Serve on the configured address
  solguard serve

  # Serve on a specific address
  solguard serve --addr 0.0.0.0:8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			eng, err := rt.NewEngine()
			if err != nil {
				return err
			}

			srv, err := server.New(server.Config{
				Engine:  eng,
				Catalog: rt.Catalog,
				Extra:   rt.Loader.AllRules(),
				Addr:    rt.Config.Server.Addr,
				Logger:  rt.Logger,
			})
			if err != nil {
				return err
			}
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides the config)")
	cmd.Flags().Int("parallel", 0, "Maximum number of files analyzed concurrently")
	cmd.Flags().Bool("no-cache", false, "Disable the analysis cache")
	cmd.Flags().String("cache-path", "", "Path to the analysis cache database")
	return cmd
}
