package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/arloliu/registrar"
	"github.com/arloliu/registrar/mail"
	"github.com/arloliu/registrar/manager"
	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/types"
)

var rootCmd = &cobra.Command{
	Use:           "registrar-admin",
	Short:         "Operations CLI for the registrar backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringSlice("hosts", []string{"127.0.0.1"}, "store contact points")
	flags.Int("port", 9042, "CQL native protocol port")
	flags.String("keyspace", "registrar", "keyspace name")
	flags.String("consistency", "quorum", "default consistency level (one, quorum, local-quorum, all)")
	flags.String("jwt-secret", "", "HMAC secret for token issuance")
	flags.String("nats-url", "", "NATS URL for outbound mail (empty disables)")
	flags.Bool("verbose", false, "enable debug logging")

	for _, name := range []string{"hosts", "port", "keyspace", "consistency", "jwt-secret", "nats-url", "verbose"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("REGISTRAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("registrar")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/registrar")
	// A missing config file is fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}

func newLogger() (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if viper.GetBool("verbose") {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}

func parseConsistency(name string) (types.Consistency, error) {
	switch name {
	case "any":
		return types.Any, nil
	case "one":
		return types.One, nil
	case "two":
		return types.Two, nil
	case "three":
		return types.Three, nil
	case "quorum":
		return types.Quorum, nil
	case "all":
		return types.All, nil
	case "local-quorum":
		return types.LocalQuorum, nil
	case "each-quorum":
		return types.EachQuorum, nil
	case "local-one":
		return types.LocalOne, nil
	default:
		return 0, fmt.Errorf("unknown consistency level %q", name)
	}
}

// newApp connects to the store and wires the application graph.
func newApp(createSchema bool) (*registrar.App, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}

	cfg := store.DefaultConfig()
	cfg.Hosts = viper.GetStringSlice("hosts")
	cfg.Port = viper.GetInt("port")
	level, err := parseConsistency(viper.GetString("consistency"))
	if err != nil {
		return nil, err
	}
	cfg.Consistency = level

	conn, res := store.Connect(cfg, store.WithLogger(logger))
	if !res.IsOK() {
		return nil, fmt.Errorf("connect: %s", res.String())
	}

	opts := []registrar.Option{
		registrar.WithKeyspace(viper.GetString("keyspace")),
		registrar.WithLogger(logger),
	}
	if url := viper.GetString("nats-url"); url != "" {
		nc, err := nats.Connect(url)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("nats connect: %w", err)
		}
		opts = append(opts, registrar.WithMailer(mail.NewNATSSender(nc)))
	}

	app, err := registrar.New(conn, opts...)
	if err != nil {
		conn.Close()
		return nil, err
	}

	ctx := rootCmd.Context()
	if res := app.Configure(ctx, createSchema); !res.IsOK() {
		app.Close()
		return nil, fmt.Errorf("configure: %s", res.String())
	}

	return app, nil
}

// printResponse renders a manager response; non-2xx becomes an error.
func printResponse(resp manager.Response) error {
	if resp.Status >= 400 {
		if body, ok := resp.Body.(manager.ErrorBody); ok {
			return fmt.Errorf("status %d: %s", resp.Status, body.Error)
		}

		return fmt.Errorf("status %d", resp.Status)
	}

	if resp.Body == nil {
		fmt.Println("ok")

		return nil
	}

	out, err := json.MarshalIndent(resp.Body, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}
