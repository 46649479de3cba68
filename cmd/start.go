/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/run"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start node",
	Long:  "Is used to start a claim verification node",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		run.Start(s)
		return nil
	},
}

func loadSettings() (*common.Settings, error) {
	s := &common.Settings{}
	if err := viper.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("can't read settings: %v", err)
	}
	return s, nil
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.PersistentFlags().StringP("rpc.address", "r", "", "Serves the query API on this address, disabled when empty")
	startCmd.PersistentFlags().StringP("oracle.type", "o", "static", "Reputation oracle, 'static' and 'decay' are supported now")
	startCmd.PersistentFlags().IntP("keeper.interval", "k", 60, "Seconds between settlement sweeps")

	bind(startCmd, "Rpc.Address", "rpc.address", "CN_RPC_ADDRESS")
	bind(startCmd, "Oracle.Type", "oracle.type", "CN_ORACLE")
	bind(startCmd, "Keeper.Interval", "keeper.interval", "CN_KEEPER_INTERVAL")
}
