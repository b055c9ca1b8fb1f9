package slimpack

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kvant-lab/slimpack/internal/baseimage"
	"github.com/kvant-lab/slimpack/internal/logs"
	"github.com/kvant-lab/slimpack/internal/recipe"
	"github.com/kvant-lab/slimpack/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type variantOption string

func (v variantOption) OptionLabel() string {
	if string(v) == baseimage.DefaultVariant {
		return string(v) + " (recommended)"
	}
	return string(v)
}

func (v variantOption) OptionID() string { return string(v) }

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write a default " + recipe.FileName,
		Long: `Create a ` + recipe.FileName + ` in PATH with the default recipe,
prompting for the base image variant. If PATH is omitted, the current
working directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathArg, err := pathFromArgs(args)
			if err != nil {
				return err
			}

			target := filepath.Join(pathArg, recipe.FileName)
			if _, err := os.Stat(target); err == nil {
				ok, err := logs.PromptConfirm(fmt.Sprintf("%s already exists. Overwrite?", target))
				if err != nil {
					return err
				}
				if !ok {
					logs.Infof("keeping existing %s", target)
					return nil
				}
			}

			options := make([]ui.SelectOption, 0, len(baseimage.Variants()))
			for _, v := range baseimage.Variants() {
				options = append(options, variantOption(v))
			}

			chosen, err := logs.PromptSelectOne("Base image variant:", options)
			if err != nil {
				return err
			}

			rec := recipe.Default()
			rec.Runtime.Variant = chosen.OptionID()

			data, err := yaml.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshal recipe: %w", err)
			}

			if err := os.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}

			fmt.Printf("Wrote %s\n", target)
			return nil
		},
	}

	return cmd
}
