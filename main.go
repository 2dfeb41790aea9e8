package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mohitkumar/onboarding/agent"
	"github.com/mohitkumar/onboarding/analytics"
	"github.com/mohitkumar/onboarding/config"
	"github.com/mohitkumar/onboarding/logger"
)

type cfg struct {
	config.Config
}
type cli struct {
	cfg cfg
}

func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().String("config-file", "", "Path to config file.")
	cmd.Flags().String("env-file", ".env", "Path to a .env file, ignored when missing.")
	cmd.Flags().Int("http-port", 8080, "http port for rest endpoints")
	cmd.Flags().String("storage-impl", "memory", "storage for open flows and question sets: memory or redis")
	cmd.Flags().String("redis-addr", "localhost:6379", "comma separated list of redis host:port")
	cmd.Flags().String("redis-password", "", "redis password")
	cmd.Flags().Int("redis-pool-size", 0, "redis connection pool size, 0 for the client default")
	cmd.Flags().Duration("redis-connect-retry", 30*time.Second, "how long to retry the first redis connection")
	cmd.Flags().String("namespace", "onboarding", "namespace used in storage")
	cmd.Flags().String("submission-store", "memory", "storage for completed answers: memory, sqlite or postgres")
	cmd.Flags().String("database-url", "", "sqlite file or postgres url for the submission store")
	cmd.Flags().String("question-set-dir", "", "directory with yaml or json question sets")
	cmd.Flags().Duration("flow-ttl", time.Hour, "how long an untouched flow is kept, 0 keeps it forever")
	cmd.Flags().String("analytics-file", "", "file receiving flow analytics events, empty disables analytics")
	cmd.Flags().String("log-level", "info", "log level")
	cmd.Flags().Int("worker-capacity", 512, "submission worker queue capacity")
	return viper.BindPFlags(cmd.Flags())
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	var err error

	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return err
	}
	if err = godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	viper.SetEnvPrefix("onboarding")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	configFile := viper.GetString("config-file")
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err = viper.ReadInConfig(); err != nil {
			// it's ok if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
	}

	c.cfg.HttpPort = viper.GetInt("http-port")
	c.cfg.StorageType = config.StorageType(viper.GetString("storage-impl"))
	c.cfg.RedisConfig.Addrs = strings.Split(viper.GetString("redis-addr"), ",")
	c.cfg.RedisConfig.Password = viper.GetString("redis-password")
	c.cfg.RedisConfig.PoolSize = viper.GetInt("redis-pool-size")
	c.cfg.RedisConfig.ConnectRetry = viper.GetDuration("redis-connect-retry")
	c.cfg.RedisConfig.Namespace = viper.GetString("namespace")
	c.cfg.SubmissionStoreType = config.SubmissionStoreType(viper.GetString("submission-store"))
	c.cfg.DatabaseURL = viper.GetString("database-url")
	c.cfg.QuestionSetDir = viper.GetString("question-set-dir")
	c.cfg.FlowTTL = viper.GetDuration("flow-ttl")
	c.cfg.LogLevel = viper.GetString("log-level")
	c.cfg.WorkerCapacity = viper.GetInt("worker-capacity")
	if analyticsFile := viper.GetString("analytics-file"); analyticsFile != "" {
		c.cfg.AnalyticsConfig = analytics.DataCollectorConfig{
			FileName:      analyticsFile,
			CollectorType: analytics.LOG_FILE_DATA_COLLECTOR,
		}
	}
	if err = logger.Init(c.cfg.LogLevel); err != nil {
		return err
	}
	return c.cfg.Validate()
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	defer logger.Sync()
	agent, err := agent.New(c.cfg.Config)
	if err != nil {
		return err
	}
	if err = agent.Start(); err != nil {
		return err
	}
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
	case <-agent.Done():
	}
	return agent.Shutdown()
}

func newCommand() (*cobra.Command, error) {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:           "onboarding",
		Short:         "Serves onboarding questionnaires over http",
		PreRunE:       cli.setupConfig,
		RunE:          cli.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if err := setupFlags(cmd); err != nil {
		return nil, err
	}
	cmd.AddCommand(newWalkCommand())
	return cmd, nil
}

func main() {
	cmd, err := newCommand()
	if err != nil {
		log.Fatal(err)
	}
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
