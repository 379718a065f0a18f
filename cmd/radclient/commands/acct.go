package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrewz1/radius"
	"github.com/andrewz1/radius/transport"
)

func acctCmd() *cobra.Command {
	var username string
	var statusType uint32

	cmd := &cobra.Command{
		Use:   "acct",
		Short: "Send an Accounting-Request and report the result",
		RunE: func(_ *cobra.Command, _ []string) error {
			dict, err := loadDictionary(cfg)
			if err != nil {
				return err
			}
			addr, err := resolveAddr(cfg.Server.Addr)
			if err != nil {
				return err
			}

			req := radius.NewAccountingRequest(username, statusType)
			resp, err := transport.Exchange(context.Background(), addr, req, []byte(cfg.Server.Secret), exchangeOptions(cfg, dict), nil, logger)
			if err != nil {
				return fmt.Errorf("send accounting-request: %w", err)
			}
			fmt.Println(resp.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "User-Name")
	cmd.Flags().Uint32Var(&statusType, "status-type", 1, "Acct-Status-Type (1=Start, 2=Stop, 3=Interim-Update, ...)")
	return cmd
}
