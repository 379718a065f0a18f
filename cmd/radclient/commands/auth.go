package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrewz1/radius"
	"github.com/andrewz1/radius/transport"
)

func authCmd() *cobra.Command {
	var username, password string
	var useCHAP bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Send an Access-Request and report the result",
		RunE: func(_ *cobra.Command, _ []string) error {
			dict, err := loadDictionary(cfg)
			if err != nil {
				return err
			}
			addr, err := resolveAddr(cfg.Server.Addr)
			if err != nil {
				return err
			}

			protocol := radius.AuthPAP
			if useCHAP {
				protocol = radius.AuthCHAP
			}
			req := radius.NewAccessRequest(username, password, protocol)

			resp, err := transport.Authenticate(context.Background(), addr, req, []byte(cfg.Server.Secret), exchangeOptions(cfg, dict), nil, logger)
			if err != nil {
				return fmt.Errorf("authenticate: %w", err)
			}

			switch resp.Code {
			case radius.CodeAccessAccept:
				fmt.Println("Access-Accept")
			case radius.CodeAccessReject:
				fmt.Println("Access-Reject")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "User-Name")
	cmd.Flags().StringVar(&password, "password", "", "cleartext password")
	cmd.Flags().BoolVar(&useCHAP, "chap", false, "use CHAP instead of PAP")
	return cmd
}
