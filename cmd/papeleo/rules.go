package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmerida/papeleo/internal/cli"
	"github.com/dmerida/papeleo/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and manage classification rules",
	}

	cmd.AddCommand(rulesShowCmd())
	cmd.AddCommand(rulesInitCmd())

	return cmd
}

func rulesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active ruleset as YAML",
		RunE: func(_ *cobra.Command, _ []string) error {
			rs, err := loadRules()
			if err != nil {
				return err
			}

			data, err := rs.Marshal()
			if err != nil {
				return err
			}

			fmt.Print(string(data))
			return nil
		},
	}
}

func rulesInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default ruleset to the override file",
		Long: `Write the compiled-in defaults to the rules override file so they can be
edited. Existing files are not overwritten unless --force is given.`,
		RunE: runRulesInit,
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing rules file")

	return cmd
}

func runRulesInit(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := rulesPath()

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("rules file already exists at %s (use --force to overwrite)", path)
	}

	data, err := rules.Default().Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create rules directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Reglas guardadas en " + path))
	return nil
}
