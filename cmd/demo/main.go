// Command demo runs an interactive login against an identity provider
// using a loopback HTTP listener as the authorization launcher. Intended
// for trying the SDK outside a mobile host.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	authclient "github.com/jrsteele09/go-auth-client"
	"github.com/jrsteele09/go-auth-client/flow"
	"github.com/jrsteele09/go-auth-client/store/storefakes"
	"github.com/rs/zerolog"
)

const callbackAddr = "127.0.0.1:8971"

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running demo: %s\n", err)
	}
	log.Printf("Demo stopped\n")
}

func run() error {
	domain := flag.String("domain", "", "identity provider domain")
	clientID := flag.String("client-id", "", "OAuth client id")
	audience := flag.String("audience", "", "optional audience")
	flag.Parse()

	displayAppname("auth client")

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	launcher := &loopbackLauncher{log: logger}
	listener := &consoleListener{log: logger}

	sdk, err := authclient.New(authclient.Settings{
		Domain:         *domain,
		ClientID:       *clientID,
		Audience:       *audience,
		RedirectScheme: "http://" + callbackAddr,
		LoginRedirect:  fmt.Sprintf("http://%s/callback", callbackAddr),
		LogoutRedirect: fmt.Sprintf("http://%s/logged_out", callbackAddr),
	}, storefakes.NewFakeStore(), launcher, listener, authclient.WithLogger(logger))
	if err != nil {
		return err
	}

	server := &http.Server{Addr: callbackAddr, Handler: callbackHandler(sdk)}
	go listenAndServe(server, logger)

	sdk.Login(flow.GrantPKCE, flow.LoginOptions{})

	waitForStopSignal()
	return shutdown(server)
}

func callbackHandler(sdk *authclient.SDK) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if errCode := query.Get("error"); errCode != "" {
			sdk.Flow.HandleAuthorizationResult(flow.AuthorizationResult{
				Kind:             flow.ResultError,
				ErrorCode:        errCode,
				ErrorDescription: query.Get("error_description"),
			})
			fmt.Fprintln(w, "Login failed, check the console.")
			return
		}
		sdk.Flow.HandleAuthorizationResult(flow.AuthorizationResult{
			Kind:  flow.ResultSuccess,
			Code:  query.Get("code"),
			State: query.Get("state"),
		})
		fmt.Fprintln(w, "Login complete, you can close this window.")
	})
	mux.HandleFunc("/logged_out", func(w http.ResponseWriter, r *http.Request) {
		sdk.Flow.HandleEndSessionResult(flow.EndSessionResult{Kind: flow.ResultSuccess})
		fmt.Fprintln(w, "Logged out.")
	})
	return mux
}

func listenAndServe(server *http.Server, logger zerolog.Logger) {
	logger.Info().Str("addr", server.Addr).Msg("callback listener started")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("callback listener failed")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

// loopbackLauncher prints the authorization URL for the user to open in
// a browser; the loopback listener captures the redirect.
type loopbackLauncher struct {
	log zerolog.Logger
}

func (l *loopbackLauncher) Launch(req flow.AuthorizationRequest) {
	l.log.Info().Msg("open the following URL in a browser to sign in:")
	fmt.Println(req.URL)
}

func (l *loopbackLauncher) LaunchEndSession(req flow.EndSessionRequest) {
	l.log.Info().Msg("open the following URL in a browser to sign out:")
	fmt.Println(req.URL)
}

// consoleListener logs every SDK callback.
type consoleListener struct {
	log zerolog.Logger
}

func (c *consoleListener) OnNewToken(accessToken string) {
	c.log.Info().Int("token_length", len(accessToken)).Msg("received new access token")
}

func (c *consoleListener) OnLogout() {
	c.log.Info().Msg("logged out")
}

func (c *consoleListener) OnException(err error) {
	c.log.Error().Err(err).Msg("sdk error")
}
