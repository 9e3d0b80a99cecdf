package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/store"
)

func addSettings(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "inspect and change editor settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addSettingsGet(cmd)
	addSettingsSet(cmd)
	topLevel.AddCommand(cmd)
}

func addSettingsGet(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "print the current settings",
		Example: `
daybook settings get
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			b, err := json.MarshalIndent(svc.Settings(), "", "  ")
			if err != nil {
				return output.HandleError(err)
			}
			_, _ = fmt.Fprintln(color.Output, string(b))
			return nil
		},
	}
	parent.AddCommand(cmd)
}

var settingKeys = []string{"darkMode", "editorFont", "editorFontSize", "editorColor", "sidebarOpen"}

func addSettingsSet(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "change one setting",
		Example: `
daybook settings set darkMode true
daybook settings set editorFont mono
daybook settings set editorFontSize 18
daybook settings set editorColor "#222222"
`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: settingKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			cfg := svc.Settings()
			if err := applySetting(&cfg, args[0], args[1]); err != nil {
				return output.HandleError(err)
			}
			return output.HandleError(svc.SaveSettings(cfg))
		},
	}
	parent.AddCommand(cmd)
}

func applySetting(cfg *store.Settings, key, value string) error {
	switch key {
	case "darkMode":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("darkMode wants true or false: %w", err)
		}
		cfg.DarkMode = v
	case "editorFont":
		cfg.EditorFont = store.Font(value)
	case "editorFontSize":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("editorFontSize wants a number: %w", err)
		}
		cfg.EditorFontSize = v
	case "editorColor":
		cfg.EditorColor = value
	case "sidebarOpen":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("sidebarOpen wants true or false: %w", err)
		}
		cfg.SidebarOpen = v
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
