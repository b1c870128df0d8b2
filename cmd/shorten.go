package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/kernel/shorturl/internal/popup"
	"github.com/kernel/shorturl/pkg/util"
)

var shortenCmd = &cobra.Command{
	Use:   "shorten <url>",
	Short: "Shorten a URL without reading a browser tab",
	Example: `  shorturl shorten https://example.com/some/long/path
  shorturl shorten https://example.com --title "Example Domain" --copy
  shorturl shorten https://example.com -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runShorten,
}

func init() {
	shortenCmd.Flags().String("title", "", "Prefix the copied text with this title in 《》")
	shortenCmd.Flags().Bool("copy", false, "Copy the result to the clipboard")
	shortenCmd.Flags().StringP("output", "o", "", "Output format: json for raw response")
}

// ShortenCmd shortens a single URL independent of cobra.
type ShortenCmd struct {
	shortener popup.Shortener
	copyFn    popup.CopyFunc
}

type ShortenInput struct {
	URL    string
	Title  string
	Copy   bool
	Output string
}

// ShortenOutput is the JSON form of a shorten result.
type ShortenOutput struct {
	LongURL  string `json:"longurl"`
	ShortURL string `json:"tinyurl,omitempty"`
	Error    string `json:"err_msg,omitempty"`
}

func (s ShortenCmd) Shorten(ctx context.Context, in ShortenInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}
	in.URL = strings.TrimSpace(in.URL)

	if in.Output != "json" {
		pterm.Info.Printf("Shortening %s...\n", in.URL)
	}

	short, err := s.shortener.Shorten(ctx, in.URL)
	if in.Output == "json" {
		out := ShortenOutput{LongURL: in.URL, ShortURL: short}
		if err != nil {
			out.Error = err.Error()
		}
		if printErr := util.PrintPrettyJSON(out); printErr != nil {
			return printErr
		}
		return err
	}
	if err != nil {
		pterm.Error.Printf("Get short URL error: %s\n", err.Error())
		return err
	}

	text := short
	if in.Title != "" {
		text = popup.FormatField(in.Title, short)
	}
	pterm.Success.Println(short)

	if in.Copy && s.copyFn != nil {
		if err := s.copyFn(text); err != nil {
			pterm.Warning.Printf("Copy to clipboard failed: %v\n", err)
			return nil
		}
		pterm.Info.Println("Copied!")
	}
	return nil
}

func runShorten(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	copyResult, _ := cmd.Flags().GetBool("copy")
	output, _ := cmd.Flags().GetString("output")

	s := ShortenCmd{shortener: newShortener(cfg), copyFn: clipboard.WriteAll}
	return s.Shorten(cmd.Context(), ShortenInput{
		URL:    args[0],
		Title:  title,
		Copy:   copyResult,
		Output: output,
	})
}
