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
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "claimnet",
	Short: "Claimnet settles stake weighted claim verification",
	Long:  `Run a claim verification node: stake, vote on claims, settle, slash and pay out`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to settings.yaml file(default is $HOME/settings.yaml)")
	rootCmd.PersistentFlags().StringP("log.level", "l", "INFO", "Log level")
	rootCmd.PersistentFlags().StringP("storage.dir", "d", "", "Storage directory, state is kept in memory when empty")
	rootCmd.PersistentFlags().StringP("seed.path", "s", "", "Seed file applied to an empty store")

	bind(rootCmd, "Log.Level", "log.level", "CN_LOG_LEVEL")
	bind(rootCmd, "Storage.Dir", "storage.dir", "CN_STORAGE_DIR")
	bind(rootCmd, "Seed.Path", "seed.path", "CN_SEED")

	viper.SetDefault("Oracle.Type", "static")
	viper.SetDefault("Oracle.DefaultActive", true)
	viper.SetDefault("Keeper.Interval", 60)
	viper.SetDefault("Rpc.RequestsPerSecond", 20)
	viper.SetDefault("Rpc.Burst", 40)
}

func bind(cmd *cobra.Command, key string, flag string, env string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		println(err.Error())
	}
	if err := viper.BindEnv(key, env); err != nil {
		println(err.Error())
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	envCfg, envFound := os.LookupEnv("CN_SETTINGS")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envFound {
		viper.SetConfigFile(envCfg)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName("settings")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	} else {
		fmt.Println(err)
	}
}
