// Package env loads the binaries' configuration into viper
package env

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/log"
)

const (
	FlagConfig  = "config"
	FlagSandbox = "sandbox"

	DefaultConfigPath = "infra/configs/config.yaml"
)

// EnvName example: k8ssta
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: indexer
func AppName() string {
	return os.Getenv("APP_NAME")
}

// Load parses the command line and reads the yaml named by --config into viper.
// Environment variables override file keys, MONGO_URI overrides mongo.uri.
// --sandbox forces house.ledger to sandbox.
func Load(name string, args []string) error {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String(FlagConfig, DefaultConfigPath, "path of the yaml config")
	fs.Bool(FlagSandbox, false, "run the house on the in-process ledger")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, _ := fs.GetString(FlagConfig)
	viper.SetConfigType("yaml")
	viper.SetConfigFile(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		return xerrors.Errorf("read config %s: %w", path, err)
	}

	if sandbox, _ := fs.GetBool(FlagSandbox); sandbox {
		viper.Set("house.ledger", "sandbox")
	}
	if v := EnvName(); v != "" {
		viper.Set("env_name", v)
	}
	if v := AppName(); v != "" {
		viper.Set("app_name", v)
	} else if viper.GetString("app_name") == "" {
		viper.Set("app_name", name)
	}

	if lvl := viper.GetString("log.level"); lvl != "" {
		log.SetLevel(lvl)
	}
	return nil
}
