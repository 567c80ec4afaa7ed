package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage stored settings",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored settings",
		RunE:  runSettingsList,
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting",
		Args:  cobra.ExactArgs(2),
		RunE:  runSettingsSet,
	}

	unsetCmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a setting",
		Args:  cobra.ExactArgs(1),
		RunE:  runSettingsUnset,
	}

	settingsCmd.AddCommand(listCmd)
	settingsCmd.AddCommand(setCmd)
	settingsCmd.AddCommand(unsetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	var values map[string]string
	if err := client.get("/api/v1/settings", &values); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd, values)
	}

	if len(values) == 0 {
		fmt.Println("No settings stored.")
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := values[k]
		// Tokens stay out of terminal scrollback.
		if strings.Contains(k, "token") {
			v = "********"
		}
		fmt.Printf("  %-24s %s\n", k, v)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	body := struct {
		Value string `json:"value"`
	}{Value: args[1]}

	if err := client.put("/api/v1/settings/"+args[0], body); err != nil {
		return err
	}
	fmt.Printf("Set %s.\n", args[0])
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.delete("/api/v1/settings/" + args[0]); err != nil {
		return err
	}
	fmt.Printf("Removed %s.\n", args[0])
	return nil
}
