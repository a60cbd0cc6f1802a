package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"qkart/internal/config"
)

var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Show or change the auth service endpoint",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cfg.API.Endpoint)
		return nil
	},
}

var endpointSetCmd = &cobra.Command{
	Use:   "set <url>",
	Short: "Save the auth service endpoint to the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPathInUse()
		if err := config.SaveEndpoint(path, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "endpoint saved to %s\n", path)
		return nil
	},
}

// configPathInUse is the file viper loaded, or the project-local default.
func configPathInUse() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	return localConfigPath
}

func init() {
	endpointCmd.AddCommand(endpointSetCmd)
	rootCmd.AddCommand(endpointCmd)
}
