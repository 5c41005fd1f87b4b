package credtool

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/rpc"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const remoteTimeout = 30 * time.Second

// dial is a test seam for connecting to the server.
var dial = func(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

type remoteOptions struct {
	addr *string
}

// call connects, runs fn with a bounded context and turns gRPC statuses
// into plain errors for display.
func (o *remoteOptions) call(cmd *cobra.Command, fn func(ctx context.Context, c rpc.AccountServiceClient) error) error {
	conn, err := dial(*o.addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", *o.addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), remoteTimeout)
	defer cancel()

	if err := fn(ctx, rpc.NewAccountServiceClient(conn)); err != nil {
		if st, ok := status.FromError(err); ok {
			return fmt.Errorf("%s: %s", st.Code(), st.Message())
		}
		return err
	}
	return nil
}

func userPasswordFlags(cmd *cobra.Command, username, pw *string) {
	cmd.Flags().StringVarP(username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(pw, "password", "p", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
}

func signupCmd(o *remoteOptions) *cobra.Command {
	var username, pw string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and print its API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := secretOrPrompt(cmd.ErrOrStderr(), pw, "Password")
			if err != nil {
				return err
			}
			return o.call(cmd, func(ctx context.Context, c rpc.AccountServiceClient) error {
				resp, err := c.Signup(ctx, &rpc.SignupRequest{Username: username, Password: pw})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "name:    %s\napi_key: %s\n", resp.Name, resp.APIKey)
				return nil
			})
		},
	}
	userPasswordFlags(cmd, &username, &pw)
	return cmd
}

func getKeyCmd(o *remoteOptions) *cobra.Command {
	var username, pw string
	cmd := &cobra.Command{
		Use:   "getkey",
		Short: "Print the current API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := secretOrPrompt(cmd.ErrOrStderr(), pw, "Password")
			if err != nil {
				return err
			}
			return o.call(cmd, func(ctx context.Context, c rpc.AccountServiceClient) error {
				resp, err := c.GetKey(ctx, &rpc.KeyRequest{Username: username, Password: pw})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.APIKey)
				return nil
			})
		},
	}
	userPasswordFlags(cmd, &username, &pw)
	return cmd
}

func newKeyCmd(o *remoteOptions) *cobra.Command {
	var username, pw string
	cmd := &cobra.Command{
		Use:   "newkey",
		Short: "Rotate the API key and print the new one",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := secretOrPrompt(cmd.ErrOrStderr(), pw, "Password")
			if err != nil {
				return err
			}
			return o.call(cmd, func(ctx context.Context, c rpc.AccountServiceClient) error {
				resp, err := c.NewKey(ctx, &rpc.KeyRequest{Username: username, Password: pw})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.APIKey)
				return nil
			})
		},
	}
	userPasswordFlags(cmd, &username, &pw)
	return cmd
}

func passwdCmd(o *remoteOptions) *cobra.Command {
	var username, pw, newPw string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password, keeping the API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := secretOrPrompt(cmd.ErrOrStderr(), pw, "Password")
			if err != nil {
				return err
			}
			newPw, err := secretOrPrompt(cmd.ErrOrStderr(), newPw, "New password")
			if err != nil {
				return err
			}
			return o.call(cmd, func(ctx context.Context, c rpc.AccountServiceClient) error {
				resp, err := c.ChangePassword(ctx, &rpc.ChangePasswordRequest{Username: username, Password: pw, NewPassword: newPw})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "password changed for %s\n", resp.Name)
				return nil
			})
		},
	}
	userPasswordFlags(cmd, &username, &pw)
	cmd.Flags().StringVarP(&newPw, "new-password", "n", "", "new password (prompted when omitted)")
	return cmd
}

func authCmd(o *remoteOptions) *cobra.Command {
	var username, apiKey string
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Exchange an API key for an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey, err := secretOrPrompt(cmd.ErrOrStderr(), apiKey, "API key")
			if err != nil {
				return err
			}
			return o.call(cmd, func(ctx context.Context, c rpc.AccountServiceClient) error {
				resp, err := c.Authenticate(ctx, &rpc.AuthenticateRequest{Username: username, APIKey: apiKey})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "access_token: %s\nexpires_at:   %s\n",
					resp.AccessToken, resp.ExpiresAt.Format(time.RFC3339))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&apiKey, "key", "k", "", "API key (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func whoAmICmd(o *remoteOptions) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the account an access token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(cmd, func(ctx context.Context, c rpc.AccountServiceClient) error {
				ctx = metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, token)
				resp, err := c.WhoAmI(ctx, &rpc.WhoAmIRequest{})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "account_id: %s\nname:       %s\n", resp.AccountID, resp.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&token, "token", "t", "", "access token")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
