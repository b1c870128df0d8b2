package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/kernel/shorturl/internal/stub"
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local dwz.cn compatible shortening endpoint",
	Long: `Serve POST /create.php and GET /{code} from memory, answering exactly
like dwz.cn does. Point shorturl at it with
--endpoint http://<addr>/create.php to work offline.`,
	Example: `  shorturl stub --addr 127.0.0.1:8080
  SHORTURL_ENDPOINT=http://127.0.0.1:8080/create.php shorturl`,
	Args: cobra.NoArgs,
	RunE: runStub,
}

func init() {
	stubCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address")
	stubCmd.Flags().String("base-url", "", "Prefix for short links (default http://<addr>)")
}

type StubInput struct {
	Addr    string
	BaseURL string
}

// Serve runs the stub until ctx is cancelled.
func Serve(ctx context.Context, in StubInput) error {
	ln, err := net.Listen("tcp", in.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", in.Addr, err)
	}
	baseURL := in.BaseURL
	if baseURL == "" {
		baseURL = "http://" + ln.Addr().String()
	}
	return serveListener(ctx, ln, baseURL)
}

// serveListener serves the stub on ln. It returns once the server has stopped
// and its shutdown goroutine has exited.
func serveListener(ctx context.Context, ln net.Listener, baseURL string) error {
	handler, err := stub.New(baseURL)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("failed to start stub: %w", err)
	}
	server := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		pterm.Info.Println("Shutting down stub...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			pterm.Error.Printf("Shutdown failed: %v\n", err)
		}
	}()

	pterm.Success.Printf("Stub listening on %s\n", ln.Addr().String())
	pterm.Info.Printf("Endpoint: %s/create.php\n", baseURL)
	err = server.Serve(ln)
	cancel()
	<-stopped
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runStub(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	baseURL, _ := cmd.Flags().GetString("base-url")
	return Serve(cmd.Context(), StubInput{Addr: addr, BaseURL: baseURL})
}
