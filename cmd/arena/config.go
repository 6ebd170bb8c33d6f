package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/snake-arena/internal/config"
)

var (
	flagConfigInit  bool
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or initialize the configuration",
	Long: `Prints the effective configuration as YAML: the file found on the
search path (--config, ~/.arena/configs/snake.yaml, ./configs/snake.yaml)
decoded over the defaults, with the --difficulty preset applied.

With --init the defaults are written to ~/.arena/configs/snake.yaml
(or the --config path) as a starting point for edits.

Examples:
  arena config
  arena config --difficulty hard
  arena config --init`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write the default config file")
	configCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file with --init")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigInit {
		path := flagConfig
		if path == "" {
			path = config.UserConfigPath("snake.yaml")
		}
		if path == "" {
			return fmt.Errorf("no home directory, pass --config")
		}
		if _, err := os.Stat(path); err == nil && !flagConfigForce {
			return fmt.Errorf("%s exists, use --force to overwrite", path)
		}
		if err := config.WriteSnake(path, config.DefaultSnakeConfig()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}
	preset, _ := config.ParsePreset(flagDifficulty)
	config.ApplySnakePreset(&cfg, preset)

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("# difficulty: %s\n", preset)
	_, err = os.Stdout.Write(out)
	return err
}
