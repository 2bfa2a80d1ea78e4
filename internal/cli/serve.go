package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yildizm/sentiscope/internal/ai"
	"github.com/yildizm/sentiscope/internal/classifier"
	"github.com/yildizm/sentiscope/internal/client"
	"github.com/yildizm/sentiscope/internal/config"
	"github.com/yildizm/sentiscope/internal/emoji"
	"github.com/yildizm/sentiscope/internal/server"
)

// classifierCheckTimeout bounds the startup check of a remote classifier.
const classifierCheckTimeout = 10 * time.Second

var (
	serveAddr     string
	serveProvider string
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sentiment backend and web form",
		Long: `Start the HTTP backend.

Routes:
  POST /analyze   classify {"text": "..."}
  GET  /health    liveness probe
  GET  /          web form (JSON banner when Accept asks for JSON)
  GET  /metrics   Prometheus metrics

The classifier is picked by ai.provider: openai (Groq by default), ollama or
vader. Press Ctrl+C to stop; in-flight requests get server.shutdown_timeout
to finish.

Examples:
  sentiscope serve
  sentiscope serve --addr 127.0.0.1:9000 --provider vader`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.address)")
	cmd.Flags().StringVar(&serveProvider, "provider", "", "classifier provider (overrides ai.provider)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	serverCfg := cfg.Server
	if serveAddr != "" {
		serverCfg.Address = serveAddr
	}
	aiCfg := cfg.AI
	if serveProvider != "" {
		aiCfg.Provider = serveProvider
	}

	if !isVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := GetLogger("serve")

	c, closeClassifier, err := createClassifier(&aiCfg, log)
	if err != nil {
		return err
	}
	defer closeClassifier()

	var opts []server.Option
	if serverCfg.BackendURL != "" {
		formClient, err := client.New(client.Config{
			BaseURL: serverCfg.BackendURL,
			Timeout: cfg.Client.Timeout,
		})
		if err != nil {
			return fmt.Errorf("invalid server backend_url: %w", err)
		}
		opts = append(opts, server.WithFormRequester(formClient))
	}

	srv := server.New(serverCfg, c, log, opts...)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", serverCfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", serverCfg.Address, err)
	}

	checkClassifier(ctx, c, cmd.ErrOrStderr())

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Serving on http://%s (classifier: %s)\n",
		emoji.GetEmoji("server"), ln.Addr().String(), c.Name())
	fmt.Fprintf(cmd.ErrOrStderr(), "Press Ctrl+C to stop...\n")

	return srv.Serve(ctx, ln)
}

// checkClassifier warns when a remote classifier is not ready. The server
// still starts: the provider may come up later, and until then /analyze
// answers 500.
func checkClassifier(ctx context.Context, c classifier.Classifier, out io.Writer) bool {
	hc, ok := c.(classifier.HealthChecker)
	if !ok {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, classifierCheckTimeout)
	defer cancel()

	err := hc.HealthCheck(ctx)
	if err == nil {
		return true
	}

	fmt.Fprintf(out, "%s Classifier %s is not ready: %v\n", emoji.GetEmoji("warning"), c.Name(), err)
	switch ai.Reason(err) {
	case "network", "timeout":
		fmt.Fprintln(out, "   The provider did not answer; check ai.endpoint")
	case "authentication":
		fmt.Fprintf(out, "   The provider rejected the API key; check ai.api_key or %s\n", config.APIKeyEnv)
	}
	return false
}
