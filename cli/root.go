package cli

import (
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var rootCmd = &cobra.Command{
	Use:   "logsync",
	Short: "logsync keeps a local cache of open-action posts in sync with the chain",
	Long: "logsync pulls LensHub PostCreated and IPAssetMinted logs in bounded block windows, " +
		"joins them by transaction hash and keeps the result with a resumable block cursor",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		return errors.New("unable to run root command")
	}
	return nil
}

var envKeyReplacer = strings.NewReplacer(".", "_")

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("config", "", "path to the configuration file")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	rootCmd.PersistentFlags().StringSlice("node.rpc", nil, "json-rpc endpoint urls")
	_ = viper.BindPFlag("node.rpc", rootCmd.PersistentFlags().Lookup("node.rpc"))
	rootCmd.PersistentFlags().String("chain.network", "", "network name, polygon or mumbai")
	_ = viper.BindPFlag("chain.network", rootCmd.PersistentFlags().Lookup("chain.network"))
	rootCmd.PersistentFlags().String("store.path", "", "sync state location")
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("store.path"))
}

func initConfig() {
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LOGSYNC")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Failed to read config file: %v", err)
	}
	initLogging()
}

func setDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("chain.network", "mumbai")
	viper.SetDefault("node.timeout", "30s")
	viper.SetDefault("sync.chunkSize", 20000)
	viper.SetDefault("sync.interval", "1m")
	viper.SetDefault("store.driver", "file")
	viper.SetDefault("store.path", "logsync-state.json")
}

func initLogging() {
	logLevel := viper.GetString("logging.level")
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	default:
		level = slog.LevelInfo
	}
	var out io.Writer = os.Stdout
	if file := viper.GetString("logging.file"); file != "" {
		out = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
	slog.SetDefault(slog.New(handler))
	slog.Info("Setting log level", "level", logLevel)
}
