package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/paradigms/internal/server"
	"github.com/matzehuels/paradigms/pkg/buildinfo"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve paradigms over HTTP",
		Long: `Serve the paradigm API over HTTP until interrupted.

Endpoints:
  GET /api/paradigm?lemma=atim&wc=NA&size=full&mode=join&format=json
  GET /api/analyses?lemma=atim&wc=NA
  GET /api/inflections?lemma=atim&wc=NA
  GET /api/layouts
  GET /healthz

Generator lookups and rendered responses share the configured cache, so a
Redis or MongoDB backend lets several servers share their work.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := c.newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			if !cmd.Flags().Changed("addr") {
				addr = rt.cfg.Server.Addr
			}
			if !cmd.Flags().Changed("cors-origin") {
				origins = rt.cfg.Server.CORSOrigins
			}

			srv, err := server.New(server.Options{
				Engine:      rt.engine,
				Cache:       rt.cache,
				Keyer:       rt.cfg.Keyer(),
				TTL:         rt.cfg.Cache.TTL.Duration,
				CORSOrigins: origins,
				Version:     buildinfo.Version,
				Logger:      c.Logger,
			})
			if err != nil {
				return err
			}
			printInfo("Serving %d layouts on %s", rt.engine.Layouts().Len(), addr)
			printKeyValue("generator", rt.cfg.Generator.Kind)
			printKeyValue("cache", rt.cfg.Cache.Backend)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origin (repeatable; default: any)")

	return cmd
}
