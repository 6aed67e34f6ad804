package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/flairscribe/app"
	"github.com/kbukum/flairscribe/config"
	"github.com/kbukum/flairscribe/version"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "path to config.yml (default: search cmd/flairscribe, ./config, .)")
	envFile := pflag.String("env-file", "", "path to a .env file (default: search .env.flairscribe, .env)")
	showVersion := pflag.BoolP("version", "v", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		info := version.Get()
		fmt.Printf("%s %s (%s, built %s)\n", app.ServiceName, info.Version, info.GitCommit, info.BuildTime)
		return
	}

	if err := run(*configFile, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.ServiceName, err)
		os.Exit(1)
	}
}

func run(configFile, envFile string) error {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	cfg := &app.Config{}
	if err := config.LoadConfig(app.ServiceName, cfg, opts...); err != nil {
		return err
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	return svc.Run(context.Background())
}
