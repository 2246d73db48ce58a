package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amirhosseinghanipour/folio/internal/application/auth"
	"github.com/amirhosseinghanipour/folio/internal/application/forms"
	"github.com/amirhosseinghanipour/folio/internal/domain"
	domerrors "github.com/amirhosseinghanipour/folio/internal/domain/errors"
	infraauth "github.com/amirhosseinghanipour/folio/internal/infrastructure/auth"
)

type loginOptions struct {
	username      string
	password      string
	passwordStdin bool
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the content API and store the admin token",
		Long: `Exchange admin credentials for a token and write it to the configured token
store, where a running server picks it up on its next request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "admin username")
	cmd.Flags().StringVar(&opts.password, "password", "", "admin password")
	cmd.Flags().BoolVar(&opts.passwordStdin, "password-stdin", false, "read the password from stdin")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func runLogin(cmd *cobra.Command, rootOpts *RootOptions, opts *loginOptions) error {
	log := rootOpts.logger(cmd.ErrOrStderr())
	cfg, err := rootOpts.load()
	if err != nil {
		return err
	}
	password := opts.password
	if opts.passwordStdin {
		if password, err = readLine(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	tokens, redisClient, err := openTokens(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	login := auth.NewLogin(newAPIClient(cfg, tokens, log), tokens, forms.New(), nil)
	if err := login.Execute(cmd.Context(), domain.Credentials{Username: opts.username, Password: password}); err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), rootOpts.Format, "logged in as "+strings.TrimSpace(opts.username), map[string]string{"status": "logged_in"})
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored admin token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := rootOpts.logger(cmd.ErrOrStderr())
			cfg, err := rootOpts.load()
			if err != nil {
				return err
			}
			tokens, redisClient, err := openTokens(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			if redisClient != nil {
				defer redisClient.Close()
			}
			if err := auth.Logout(cmd.Context(), tokens); err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), rootOpts.Format, "logged out", map[string]string{"status": "logged_out"})
		},
	}
}

// NewSessionCommand creates the session command.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the stored admin session",
		Long: `Decode the stored token without verifying it and print who it belongs to
and when it expires. Exits non-zero when there is no usable session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := rootOpts.logger(cmd.ErrOrStderr())
			cfg, err := rootOpts.load()
			if err != nil {
				return err
			}
			tokens, redisClient, err := openTokens(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			if redisClient != nil {
				defer redisClient.Close()
			}
			s, err := auth.NewCurrentSession(tokens, infraauth.NewClaimsDecoder()).Execute(cmd.Context())
			switch {
			case errors.Is(err, domerrors.ErrNoSession):
				_ = printResult(cmd.OutOrStdout(), rootOpts.Format, "not logged in", map[string]string{"status": "none"})
				return err
			case errors.Is(err, domerrors.ErrSessionExpired):
				_ = printResult(cmd.OutOrStdout(), rootOpts.Format, "session expired", map[string]string{"status": "expired"})
				return err
			case err != nil:
				return err
			}
			return printResult(cmd.OutOrStdout(), rootOpts.Format, describeSession(s), s)
		},
	}
}

func describeSession(s *domain.Session) string {
	who := s.Username
	if who == "" {
		who = s.Subject
	}
	if who == "" {
		who = "(opaque token)"
	}
	if s.ExpiresAt == nil {
		return "logged in as " + who
	}
	return fmt.Sprintf("logged in as %s until %s", who, s.ExpiresAt.Format(time.RFC3339))
}

func printResult(w io.Writer, format, text string, v any) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
