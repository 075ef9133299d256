/*
clickr plays cookie clicker in a chrome browser for a fixed amount of time.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jakopako/clickr/internal/bot"
	"github.com/jakopako/clickr/internal/browser"
	"github.com/jakopako/clickr/internal/config"
	"github.com/jakopako/clickr/internal/log"
	"github.com/jakopako/clickr/internal/output"
	"gopkg.in/yaml.v3"
)

var version = "dev"

type VersionFlag string

func (v VersionFlag) Decode(_ *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                       { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

type cli struct {
	Version VersionFlag `short:"v" long:"version" help:"Print the version and exit."`
	Debug   bool        `short:"d" long:"debug" help:"Set log level to 'debug' and store a screenshot of the game at the end of the run."`

	Run    RunCmd    `cmd:"" default:"withargs" help:"Play the game for the configured duration."`
	Config ConfigCmd `cmd:"" help:"Print the effective configuration."`
}

type RunCmd struct {
	Config string `short:"c" default:"./config.yaml" help:"The location of the configuration file. Defaults are used if it does not exist."`
	Stdout bool   `short:"o" help:"If set to true the run status will be written to stdout despite any other existing writer configuration."`
}

func (r *RunCmd) Run() error {
	cfg, err := config.NewConfig(r.Config)
	if err != nil {
		slog.Error(fmt.Sprintf("%v", err))
		return err
	}

	if r.Stdout {
		cfg.Writer.Type = output.STDOUT_WRITER_TYPE
	}
	writer, err := output.NewWriter(&cfg.Writer)
	if err != nil {
		slog.Error(err.Error())
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := browser.Open(ctx, &cfg.Browser)
	if err != nil {
		slog.Error(fmt.Sprintf("%v", err))
		return err
	}
	defer session.Close()

	b := bot.New(session, cfg)
	if err := b.Prepare(ctx); err != nil {
		slog.Error(fmt.Sprintf("%v", err))
		screenshot(session)
		return err
	}
	status := b.Run(ctx)
	screenshot(session)

	if err := writer.WriteStatus(status); err != nil {
		slog.Error(fmt.Sprintf("error while writing run status: %v", err))
		return err
	}
	return nil
}

// screenshot stores the current state of the game in debug mode.
func screenshot(s *browser.Session) {
	if !log.Debug {
		return
	}
	name := fmt.Sprintf("clickr-%s", time.Now().Format("20060102-150405"))
	if _, err := s.Screenshot(context.Background(), name); err != nil {
		slog.Warn(fmt.Sprintf("%v", err))
	}
}

type ConfigCmd struct {
	Config string `short:"c" default:"./config.yaml" help:"The location of the configuration file."`
}

func (c *ConfigCmd) Run() error {
	if err := writeConfig(os.Stdout, c.Config); err != nil {
		slog.Error(fmt.Sprintf("%v", err))
		return err
	}
	return nil
}

// writeConfig writes the effective configuration read from configPath as yaml to w.
func writeConfig(w io.Writer, configPath string) error {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return err
	}
	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error while marshalling. %v", err)
	}
	_, err = w.Write(yamlData)
	return err
}

func getVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if ok {
		if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
			return buildInfo.Main.Version
		}
	}
	return version
}

func main() {
	cli := cli{
		Version: VersionFlag(getVersion()),
	}

	ctx := kong.Parse(&cli,
		kong.Name("clickr"),
		kong.Description("A bot that plays cookie clicker."),
		kong.Vars{
			"version": string(cli.Version),
		})

	log.Debug = cli.Debug
	log.InitializeDefaultLogger()

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
