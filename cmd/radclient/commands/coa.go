package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrewz1/radius"
	"github.com/andrewz1/radius/transport"
)

func coaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coa",
		Short: "Send a CoA-Request and report the result",
		RunE: func(_ *cobra.Command, _ []string) error {
			dict, err := loadDictionary(cfg)
			if err != nil {
				return err
			}
			addr, err := resolveAddr(cfg.Server.Addr)
			if err != nil {
				return err
			}

			req := radius.NewCoARequest()
			resp, err := transport.Exchange(context.Background(), addr, req, []byte(cfg.Server.Secret), exchangeOptions(cfg, dict), nil, logger)
			if err != nil {
				return fmt.Errorf("send coa-request: %w", err)
			}
			fmt.Println(resp.Code)
			return nil
		},
	}
	return cmd
}

func disconnectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Send a Disconnect-Request and report the result",
		RunE: func(_ *cobra.Command, _ []string) error {
			dict, err := loadDictionary(cfg)
			if err != nil {
				return err
			}
			addr, err := resolveAddr(cfg.Server.Addr)
			if err != nil {
				return err
			}

			req := radius.NewDisconnectRequest()
			resp, err := transport.Exchange(context.Background(), addr, req, []byte(cfg.Server.Secret), exchangeOptions(cfg, dict), nil, logger)
			if err != nil {
				return fmt.Errorf("send disconnect-request: %w", err)
			}
			fmt.Println(resp.Code)
			return nil
		},
	}
	return cmd
}
