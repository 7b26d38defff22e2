package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/markgate/markgate/internal/config"
)

const configHeader = `# markgate configuration.
# Values can be overridden with MARKGATE_* environment variables,
# e.g. MARKGATE_REGISTRY_TOKEN for the bearer token.
`

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default markgate.yaml",
	Long: `Init writes a markgate.yaml with default values to the current directory.
The bearer token is intentionally left empty; supply it via the
MARKGATE_REGISTRY_TOKEN environment variable or the --token flag.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing markgate.yaml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	const path = "markgate.yaml"

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	cfg := config.Config{}
	cfg.SetDefaults()

	body, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(configHeader), body...), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}
