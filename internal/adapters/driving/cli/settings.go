package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mplemon/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the defaults used by the scaffolding commands.

Command line flags always win over settings, and settings win over the
built-in defaults.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a setting. Lists such as jwt.roles are comma-separated.

Example:
  mplemon settings set jwt.roles ADMIN,USER,AUDITOR`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsUnset,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		cmd.Println(settingsService.Path())
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	settings, err := currentSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	st := stylesFor(cmd.OutOrStdout())
	values := settingValues(settings)
	d := settingsService.GetDefaults()
	defaults := settingValues(&d)

	cmd.Println(st.Title.Render("Current Settings"))
	cmd.Println(st.Muted.Render(settingsService.Path()))
	cmd.Println()

	group := ""
	for _, key := range settingsService.Keys() {
		prefix, _, _ := strings.Cut(key, ".")
		if prefix != group {
			if group != "" {
				cmd.Println()
			}
			cmd.Printf("[%s]\n", prefix)
			group = prefix
		}
		line := fmt.Sprintf("  %s = %s", key, values[key])
		if values[key] == defaults[key] {
			line += st.Muted.Render(" (default)")
		}
		cmd.Println(line)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	cmd.Printf("Unset %s\n", args[0])
	return nil
}

// settingValues renders settings keyed by their dotted names.
func settingValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		"jwt.realm":                     s.JWT.Realm,
		"jwt.issuer":                    s.JWT.Issuer,
		"jwt.header_key":                s.JWT.HeaderKey,
		"jwt.package":                   s.JWT.Package,
		"jwt.token_valid":               strconv.Itoa(s.JWT.TokenValid),
		"jwt.roles":                     strings.Join(s.JWT.Roles, ","),
		"payara.version":                s.Payara.Version,
		"payara.context_root":           s.Payara.ContextRoot,
		"payara.plugin_version":         s.Payara.PluginVersion,
		"payara.realm_group_name":       s.Payara.RealmGroupName,
		"payara.realm_group_table":      s.Payara.RealmGroupTable,
		"payara.realm_password_column":  s.Payara.RealmPasswordColumn,
		"payara.realm_user_name_column": s.Payara.RealmUserNameColumn,
		"payara.realm_user_table":       s.Payara.RealmUserTable,
		"format.indent":                 strconv.Itoa(s.Format.Indent),
	}
}
