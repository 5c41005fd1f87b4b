package credtool

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/credvault/internal/apitoken"
	"github.com/dmitrijs2005/credvault/internal/password"
	"github.com/dmitrijs2005/credvault/internal/suites"
	"github.com/spf13/cobra"
)

var (
	errMismatch     = errors.New("does not match")
	errNotAuthentic = errors.New("envelope does not open with this secret")
)

func suitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suites",
		Short: "List registered password and token suites",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(tw, "KIND\tID\tKDF\tHASH\tCIPHER\tROUNDS\tDEFAULT")
			for _, id := range suites.PasswordIDs() {
				s, _ := suites.LookupPassword(id)
				fmt.Fprintf(tw, "password\t%s\t%s\t%s\t-\t%d\t%s\n",
					s.ID, s.KDFName, dash(s.HashName), s.Rounds, mark(s.ID == suites.DefaultPassword().ID))
			}
			for _, id := range suites.TokenIDs() {
				s, _ := suites.LookupToken(id)
				fmt.Fprintf(tw, "token\t%s\tpbkdf2-%s\t%s\t%s\t%d\t%s\n",
					s.ID, s.KDFHash, s.HashName, s.CipherName, s.Rounds, mark(s.ID == suites.DefaultToken().ID))
			}
			return tw.Flush()
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func mark(b bool) string {
	if b {
		return "*"
	}
	return ""
}

func hashCmd() *cobra.Command {
	var (
		suite  string
		rounds int
		pw     string
	)
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Create a password record",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := password.NewHasher(suite, rounds)
			if err != nil {
				return err
			}
			pw, err := secretOrPrompt(cmd.ErrOrStderr(), pw, "Password")
			if err != nil {
				return err
			}
			record, err := h.HashContext(cmd.Context(), pw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), record)
			return nil
		},
	}
	cmd.Flags().StringVar(&suite, "suite", "", "password suite (default: registry default)")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "rounds (default: suite default)")
	cmd.Flags().StringVarP(&pw, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func verifyCmd() *cobra.Command {
	var (
		record string
		pw     string
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a password against a record",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := secretOrPrompt(cmd.ErrOrStderr(), pw, "Password")
			if err != nil {
				return err
			}
			ok, err := password.Default().VerifyContext(cmd.Context(), pw, record)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("password %w", errMismatch)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
	cmd.Flags().StringVar(&record, "record", "", "password record")
	cmd.Flags().StringVarP(&pw, "password", "p", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("record")
	return cmd
}

func newSealer(suite string) (*apitoken.Sealer, error) {
	if suite == "" {
		return apitoken.Default(), nil
	}
	return apitoken.NewSealer(suite)
}

func generateCmd() *cobra.Command {
	var (
		suite  string
		secret string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Mint a raw API token and its sealed envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSealer(suite)
			if err != nil {
				return err
			}
			secret, err := secretOrPrompt(cmd.ErrOrStderr(), secret, "Secret")
			if err != nil {
				return err
			}
			raw, envelope, err := s.Generate(secret)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token:    %s\nenvelope: %s\n", raw, envelope)
			return nil
		},
	}
	cmd.Flags().StringVar(&suite, "suite", "", "token suite (default: registry default)")
	cmd.Flags().StringVarP(&secret, "secret", "p", "", "secret (prompted when omitted)")
	return cmd
}

func sealCmd() *cobra.Command {
	var (
		suite  string
		token  string
		secret string
	)
	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Seal an existing raw token under a secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSealer(suite)
			if err != nil {
				return err
			}
			secret, err := secretOrPrompt(cmd.ErrOrStderr(), secret, "Secret")
			if err != nil {
				return err
			}
			envelope, err := s.Encrypt(token, secret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), envelope)
			return nil
		},
	}
	cmd.Flags().StringVar(&suite, "suite", "", "token suite (default: registry default)")
	cmd.Flags().StringVar(&token, "token", "", "raw token")
	cmd.Flags().StringVarP(&secret, "secret", "p", "", "secret (prompted when omitted)")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func openCmd() *cobra.Command {
	var (
		envelope string
		secret   string
	)
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Recover the raw token from an envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := secretOrPrompt(cmd.ErrOrStderr(), secret, "Secret")
			if err != nil {
				return err
			}
			raw, ok, err := apitoken.Default().Decrypt(envelope, secret)
			if err != nil {
				return err
			}
			if !ok {
				return errNotAuthentic
			}
			fmt.Fprintln(cmd.OutOrStdout(), raw)
			return nil
		},
	}
	cmd.Flags().StringVar(&envelope, "envelope", "", "sealed token envelope")
	cmd.Flags().StringVarP(&secret, "secret", "p", "", "secret (prompted when omitted)")
	_ = cmd.MarkFlagRequired("envelope")
	return cmd
}

func checkCmd() *cobra.Command {
	var (
		envelope string
		token    string
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a raw token against an envelope without the secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := apitoken.Verify(envelope, token)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("token %w", errMismatch)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
	cmd.Flags().StringVar(&envelope, "envelope", "", "sealed token envelope")
	cmd.Flags().StringVar(&token, "token", "", "raw token")
	_ = cmd.MarkFlagRequired("envelope")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
