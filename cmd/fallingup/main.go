package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"fallingup/internal/config"
	"fallingup/internal/game"
	"fallingup/internal/hud"
	"fallingup/internal/telemetry"
	"fallingup/internal/world"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultScene = "playground"

var CLI struct {
	Debug  bool     `help:"Whether to enable debug logging."`
	Config []string `help:"YAML files overlaid on the default configuration, in order." type:"existingfile" short:"c"`

	Play struct {
		Scene string `arg:"" optional:"" help:"Scene file or built-in scene name."`
	} `cmd:"" default:"withargs" help:"Open a window and walk on every surface."`

	Simulate struct {
		Scene string `arg:"" optional:"" help:"Scene file or built-in scene name."`
		Ticks int    `help:"Ticks to run; defaults to simulation.ticks from the configuration." default:"-1"`
		Out   string `help:"Directory for telemetry.csv, config.yaml and summary.yaml." type:"path"`
	} `cmd:"" help:"Run a scene headless with its scripted input."`

	Scenes struct {
	} `cmd:"" help:"List built-in scenes."`

	Scene struct {
		Name string `arg:"" help:"Built-in scene name."`
	} `cmd:"" help:"Write a built-in scene to standard output."`

	ConfigCmd struct {
	} `cmd:"" name:"config" help:"Write the effective configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("fallingup"),
		kong.Description("walk on walls and ceilings: gravity follows the surface under your feet"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	cfg, err := config.Load(CLI.Config...)
	if err != nil {
		writeError(err)
	}

	switch ctx.Command() {
	case "play", "play <scene>":
		err = playCommand(cfg, CLI.Play.Scene)
	case "simulate", "simulate <scene>":
		err = simulateCommand(cfg, CLI.Simulate.Scene, CLI.Simulate.Ticks, CLI.Simulate.Out)
	case "scenes":
		fmt.Println(strings.Join(world.BuiltinScenes(), "\n"))
	case "scene <name>":
		err = sceneCommand(CLI.Scene.Name)
	case "config":
		var data []byte
		if data, err = cfg.Marshal(); err == nil {
			_, err = os.Stdout.Write(data)
		}
	}
	if err != nil {
		writeError(err)
	}
}

func loadScene(name string) (*world.SceneFile, error) {
	if name == "" {
		name = defaultScene
	}
	return world.Load(name)
}

func playCommand(cfg *config.Config, scene string) error {
	sf, err := loadScene(scene)
	if err != nil {
		return err
	}

	// Hook before building so component loggers inherit it.
	feed := hud.NewFeed()
	log.Logger = log.Logger.Hook(feed)

	g, err := game.New(cfg, sf)
	if err != nil {
		return err
	}
	g.Feed = feed
	g.Run()
	return nil
}

func simulateCommand(cfg *config.Config, scene string, ticks int, out string) error {
	sf, err := loadScene(scene)
	if err != nil {
		return err
	}
	if ticks < 0 {
		ticks = cfg.Simulation.Ticks
	}

	g, err := game.New(cfg, sf)
	if err != nil {
		return err
	}
	rec, err := telemetry.NewRecorder(sf.Name, out, cfg)
	if err != nil {
		return err
	}
	g.Recorder = rec

	if err := g.Simulate(ticks); err != nil {
		rec.Close()
		return err
	}
	summary, err := rec.Close()
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

func sceneCommand(name string) error {
	sf, err := world.Load(name)
	if err != nil {
		return err
	}
	data, err := sf.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
