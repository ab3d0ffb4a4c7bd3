package cmd

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/pkg/config"
	"github.com/mailsift/mailsift/pkg/logging"
	"github.com/mailsift/mailsift/pkg/record"
	"github.com/mailsift/mailsift/pkg/refdata"
	"github.com/mailsift/mailsift/pkg/validator"
)

var bootstrapPath string

var rootCmd = &cobra.Command{
	Use:   "mailsift",
	Short: "MailSift - inline email address risk scoring",
	Long: `MailSift scores email addresses at signup time: format, entropy,
domain reputation, pattern families and Markov models combine into an
allow/warn/block decision in a few milliseconds.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("MailSift email risk scoring")
		fmt.Println("Use 'mailsift --help' for usage information")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&bootstrapPath, "config", "", "Path to bootstrap yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(milterCmd)
}

// app bundles the wired components shared by the commands
type app struct {
	boot      *config.Bootstrap
	log       *logging.Logger
	rdb       *redis.Client
	cfgStore  *config.Store
	ref       *refdata.Store
	validator *validator.Validator
}

// buildApp wires the stack from the bootstrap file. A missing or
// unreachable KV store degrades to compiled-in fallbacks instead of
// failing: the validator must keep answering through outages.
func buildApp() (*app, error) {
	boot, err := config.LoadBootstrap(bootstrapPath)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.ParseLevel(boot.LogLevel))

	var rdb *redis.Client
	if boot.Redis.URL != "" {
		opts, err := redis.ParseURL(boot.Redis.URL)
		if err != nil {
			logger.Warnf("cmd: bad redis url, continuing without KV store: %v", err)
		} else {
			rdb = redis.NewClient(opts)
		}
	}

	cfgStore := config.NewStore(rdb, boot.Redis.KeyPrefix, 0)

	refCfg := refdata.DefaultConfig()
	refCfg.KeyPrefix = boot.Redis.KeyPrefix + ":ref"
	refCfg.CacheTTL = boot.CacheTTL()
	refCfg.RefreshInterval = boot.RefreshInterval()
	refCfg.Sources = boot.RefData.Sources
	ref := refdata.New(refCfg, rdb)
	ref.SetLogger(logger.Warnf)

	recorder := record.NewRecorder(buildSink(boot, rdb, logger))
	recorder.SetLoggers(logger.Debugf, logger.Warnf)

	forwarder := record.NewForwarder()
	forwarder.SetLogger(logger.Warnf)

	v := validator.New(cfgStore, ref,
		validator.WithRecorder(recorder),
		validator.WithForwarder(forwarder),
		validator.WithLoggers(logger.Infof, logger.Warnf),
	)

	return &app{
		boot:      boot,
		log:       logger,
		rdb:       rdb,
		cfgStore:  cfgStore,
		ref:       ref,
		validator: v,
	}, nil
}

func buildSink(boot *config.Bootstrap, rdb *redis.Client, logger *logging.Logger) record.Sink {
	switch boot.Record.Sink {
	case "redis":
		if rdb != nil {
			return record.NewStreamSink(rdb, boot.Record.Stream)
		}
		logger.Warnf("cmd: redis sink requested without KV store, falling back to log sink")
		return record.NewLogSink(logger.Infof)
	case "none":
		return nil
	}
	return record.NewLogSink(logger.Infof)
}
