package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/session"
)

func newLoginCmd(g *globalOptions) *cobra.Command {
	var creds session.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.run(cmd, func(ctx context.Context, c *httpclient.Client) error {
				token, err := session.Login(ctx, c, session.NewStore(), creds)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "Account name")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newCheckCmd(g *globalOptions) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a session token is still accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := session.NewStore()
			store.Set(token)
			return g.run(cmd, func(ctx context.Context, c *httpclient.Client) error {
				ok, err := session.Check(ctx, c, store)
				if err != nil {
					return err
				}
				if !ok {
					return httpclient.NewHTTPStatusError(401, "token rejected")
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "token accepted")
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&token, "token", "t", "", "Session token")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
