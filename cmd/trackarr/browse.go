package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	librariesCmd := &cobra.Command{
		Use:   "libraries",
		Short: "List media server libraries",
		RunE:  runLibraries,
	}

	itemsCmd := &cobra.Command{
		Use:   "items <library-key>",
		Short: "List items in a library",
		Args:  cobra.ExactArgs(1),
		RunE:  runItems,
	}
	itemsCmd.Flags().IntP("type", "t", 0, "Numeric item type filter (1=movie, 4=episode)")
	itemsCmd.Flags().StringP("query", "q", "", "Fuzzy title search")
	itemsCmd.Flags().IntP("limit", "l", 0, "Maximum number of items to return")

	childrenCmd := &cobra.Command{
		Use:   "children <rating-key>",
		Short: "List a show's seasons or a season's episodes",
		Args:  cobra.ExactArgs(1),
		RunE:  runChildren,
	}

	tracksCmd := &cobra.Command{
		Use:   "tracks <rating-key>",
		Short: "Show an item's audio and subtitle tracks",
		Args:  cobra.ExactArgs(1),
		RunE:  runTracks,
	}

	rootCmd.AddCommand(librariesCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(childrenCmd)
	rootCmd.AddCommand(tracksCmd)
}

func runLibraries(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	libs, err := client.Libraries()
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd, libs)
	}

	if len(libs) == 0 {
		fmt.Println("No libraries found.")
		return nil
	}

	fmt.Printf("Libraries (%d):\n\n", len(libs))
	fmt.Printf("  %-6s %-8s %s\n", "KEY", "TYPE", "TITLE")
	fmt.Println("  " + strings.Repeat("-", 50))
	for _, lib := range libs {
		fmt.Printf("  %-6s %-8s %s\n", lib.Key, lib.Type, lib.Title)
	}
	return nil
}

func runItems(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	itemType, _ := cmd.Flags().GetInt("type")
	query, _ := cmd.Flags().GetString("query")
	limit, _ := cmd.Flags().GetInt("limit")

	params := url.Values{}
	if itemType != 0 {
		params.Set("type", fmt.Sprintf("%d", itemType))
	}
	if query != "" {
		params.Set("q", query)
	}
	if limit != 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	path := "/api/v1/libraries/" + args[0] + "/items"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var items []MediaItemResponse
	if err := client.get(path, &items); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd, items)
	}
	printItemList(items)
	return nil
}

func runChildren(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	var items []MediaItemResponse
	if err := client.get("/api/v1/items/"+args[0]+"/children", &items); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd, items)
	}
	printItemList(items)
	return nil
}

func printItemList(items []MediaItemResponse) {
	if len(items) == 0 {
		fmt.Println("No items found.")
		return
	}

	fmt.Printf("Items (%d):\n\n", len(items))
	fmt.Printf("  %-10s %-8s %s\n", "KEY", "TYPE", "TITLE")
	fmt.Println("  " + strings.Repeat("-", 60))
	for i := range items {
		item := &items[i]
		title := item.Title
		if item.Type == "episode" && item.ParentIndex > 0 {
			title = fmt.Sprintf("S%02dE%02d %s", item.ParentIndex, item.Index, title)
		}
		if len(title) > 48 {
			title = title[:45] + "..."
		}
		fmt.Printf("  %-10s %-8s %s\n", item.RatingKey, item.Type, title)
	}
}

func runTracks(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	item, err := client.Item(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd, item)
	}

	fmt.Printf("%s [%s]\n", item.Title, item.RatingKey)
	if len(item.Media) == 0 || len(item.Media[0].Parts) == 0 {
		fmt.Println("  No media parts.")
		return nil
	}

	part := item.Media[0].Parts[0]
	printStreams("Audio", part.Streams, 2)
	printStreams("Subtitles", part.Streams, 3)
	return nil
}

func printStreams(label string, streams []StreamResponse, streamType int) {
	fmt.Printf("\n%s:\n", label)
	found := false
	for _, s := range streams {
		if s.StreamType != streamType {
			continue
		}
		found = true
		marker := " "
		if s.Selected {
			marker = "*"
		}
		name := s.DisplayTitle
		if name == "" {
			name = s.Title
		}
		if name == "" {
			name = "Unknown"
		}
		fmt.Printf("  %s [%d] %s", marker, s.ID, name)
		if s.Language != "" {
			fmt.Printf(" (%s)", s.Language)
		}
		if s.Codec != "" {
			fmt.Printf(" %s", s.Codec)
		}
		fmt.Println()
	}
	if !found {
		fmt.Println("  (none)")
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
