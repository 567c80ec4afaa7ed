package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a track selection across a scope",
		Long: `Apply an audio or subtitle track selection to an item, a season,
a show, or a whole library.

The reference track comes from --from/--stream (a stream on an item
you already configured) or from explicit --title/--language/--codec
flags. Season, show and library runs are asynchronous; follow them
with 'trackarr progress --watch'.

Examples:
  trackarr apply item 4321 --track audio --from 1234 --stream 12
  trackarr apply season 500 --track subtitle --from 1234 --stream 45 --keyword forced
  trackarr apply show 100 --track subtitle --none
  trackarr apply library 2 --library-type show --track audio --from 1234 --stream 12`,
	}

	scopes := []struct {
		use   string
		short string
		run   func(*cobra.Command, []string) error
	}{
		{"item <rating-key>", "Update a single movie or episode", runApplyItem},
		{"season <rating-key>", "Update every episode in a season", runApplyScope("season")},
		{"show <rating-key>", "Update every episode in a show", runApplyScope("show")},
		{"library <library-key>", "Update every item in a library", runApplyLibrary},
	}

	for _, sc := range scopes {
		c := &cobra.Command{
			Use:   sc.use,
			Short: sc.short,
			Args:  cobra.ExactArgs(1),
			RunE:  sc.run,
		}
		c.Flags().String("track", "", "Track type: audio or subtitle (required)")
		c.Flags().String("from", "", "Rating key of the reference item")
		c.Flags().Int64("stream", 0, "Stream ID on the reference item")
		c.Flags().String("title", "", "Reference track title")
		c.Flags().String("display-title", "", "Reference track display title")
		c.Flags().String("language", "", "Reference track language")
		c.Flags().String("language-code", "", "Reference track language code")
		c.Flags().String("codec", "", "Reference track codec")
		c.Flags().String("keyword", "", "Keyword filter (e.g. forced, commentary)")
		c.Flags().Bool("exact", false, "Match by stream ID only (single item)")
		c.Flags().Bool("none", false, "Deselect subtitles instead of selecting a track")
		_ = c.MarkFlagRequired("track")
		if sc.use == "library <library-key>" {
			c.Flags().String("library-type", "", "Library type: movie or show (required)")
			_ = c.MarkFlagRequired("library-type")
		}
		applyCmd.AddCommand(c)
	}

	rootCmd.AddCommand(applyCmd)
}

// buildRequest assembles the update request body from flags. The
// target is either looked up on a reference item (--from/--stream),
// described field by field, or nil for subtitle deselection.
func buildRequest(cmd *cobra.Command, client *Client) (*updateRequest, error) {
	track, _ := cmd.Flags().GetString("track")
	if track != "audio" && track != "subtitle" {
		return nil, fmt.Errorf("--track must be 'audio' or 'subtitle', got: %s", track)
	}

	keyword, _ := cmd.Flags().GetString("keyword")
	exact, _ := cmd.Flags().GetBool("exact")
	none, _ := cmd.Flags().GetBool("none")

	req := &updateRequest{
		TrackType:  track,
		Keyword:    keyword,
		ExactMatch: exact,
	}

	if none {
		if track != "subtitle" {
			return nil, errors.New("--none only applies to subtitle tracks")
		}
		return req, nil
	}

	from, _ := cmd.Flags().GetString("from")
	streamID, _ := cmd.Flags().GetInt64("stream")
	if from != "" {
		if streamID == 0 {
			return nil, errors.New("--from requires --stream")
		}
		target, err := lookupStream(client, from, streamID)
		if err != nil {
			return nil, err
		}
		req.Target = target
		return req, nil
	}

	title, _ := cmd.Flags().GetString("title")
	displayTitle, _ := cmd.Flags().GetString("display-title")
	language, _ := cmd.Flags().GetString("language")
	languageCode, _ := cmd.Flags().GetString("language-code")
	codec, _ := cmd.Flags().GetString("codec")

	if title == "" && displayTitle == "" && language == "" && languageCode == "" && codec == "" {
		return nil, errors.New("a reference track is required: use --from/--stream, descriptive flags, or --none")
	}

	streamType := 2
	if track == "subtitle" {
		streamType = 3
	}
	req.Target = &StreamResponse{
		StreamType:   streamType,
		Title:        title,
		DisplayTitle: displayTitle,
		Language:     language,
		LanguageCode: languageCode,
		Codec:        codec,
	}
	return req, nil
}

func lookupStream(client *Client, ratingKey string, streamID int64) (*StreamResponse, error) {
	item, err := client.Item(ratingKey)
	if err != nil {
		return nil, fmt.Errorf("fetch reference item: %w", err)
	}
	for _, m := range item.Media {
		for _, p := range m.Parts {
			for i := range p.Streams {
				if p.Streams[i].ID == streamID {
					return &p.Streams[i], nil
				}
			}
		}
	}
	return nil, fmt.Errorf("stream %d not found on item %s", streamID, ratingKey)
}

func runApplyItem(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	req, err := buildRequest(cmd, client)
	if err != nil {
		return err
	}
	req.RatingKey = args[0]

	var result ItemResultResponse
	if err := client.post("/api/v1/update/item", req, &result); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd, result)
	}
	printItemResult(&result)
	return nil
}

func runApplyScope(scope string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client := NewClient(serverURL)
		req, err := buildRequest(cmd, client)
		if err != nil {
			return err
		}
		req.RatingKey = args[0]

		var accepted AcceptedResponse
		if err := client.post("/api/v1/update/"+scope, req, &accepted); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd, accepted)
		}
		fmt.Printf("Started %s update. Follow with 'trackarr progress --watch'.\n", accepted.Scope)
		return nil
	}
}

func runApplyLibrary(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	req, err := buildRequest(cmd, client)
	if err != nil {
		return err
	}
	req.LibraryKey = args[0]
	req.LibraryType, _ = cmd.Flags().GetString("library-type")

	var accepted AcceptedResponse
	if err := client.post("/api/v1/update/library", req, &accepted); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd, accepted)
	}
	fmt.Printf("Started %s update. Follow with 'trackarr progress --watch'.\n", accepted.Scope)
	return nil
}

func printItemResult(res *ItemResultResponse) {
	if res.Success {
		fmt.Printf("Updated: %s", res.Title)
		if res.StreamName != "" {
			fmt.Printf(" -> %s", res.StreamName)
		}
		if res.MatchReason != "" {
			fmt.Printf(" (%s)", res.MatchReason)
		}
		fmt.Println()
		return
	}

	fmt.Printf("Skipped: %s [%s]", res.Title, res.SkipReason)
	if res.ErrorMessage != "" {
		fmt.Printf(" %s", res.ErrorMessage)
	}
	fmt.Println()
}
