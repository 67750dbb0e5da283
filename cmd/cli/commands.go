package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	reportCmd.Flags().Bool("draw", false, "The match was a draw")
	reportCmd.Flags().Bool("bye", false, "The player received a bye (the loser id may be omitted)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(pairingsCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(deleteMatchesCmd)
	rootCmd.AddCommand(deletePlayersCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(postCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register [name]",
	Short: "Register a player in the current tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/players", map[string]string{"name": args[0]})
	},
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count the players of a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, withTag("/players/count"), nil)
	},
}

var playerCmd = &cobra.Command{
	Use:   "player [id]",
	Short: "Show a single player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
			return fmt.Errorf("invalid player id %q: %w", args[0], err)
		}
		return performRequest(http.MethodGet, "/players/"+args[0], nil)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [winner-id] [loser-id]",
	Short: "Report the result of a match",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		draw, _ := cmd.Flags().GetBool("draw")
		bye, _ := cmd.Flags().GetBool("bye")

		winner, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid winner id %q: %w", args[0], err)
		}
		loser := winner
		if len(args) == 2 {
			loser, err = strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid loser id %q: %w", args[1], err)
			}
		} else if !bye {
			return fmt.Errorf("a loser id is required unless --bye is set")
		}

		return performRequest(http.MethodPost, "/matches", map[string]any{
			"winner_id": winner,
			"loser_id":  loser,
			"draw":      draw,
			"bye":       bye,
		})
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the standings of a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, withTag("/standings"), nil)
	},
}

var pairingsCmd = &cobra.Command{
	Use:   "pairings",
	Short: "Generate the pairings for the next round",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, withTag("/pairings"), nil)
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete [tag]",
	Short: "Archive the current tournament under tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/tournaments/"+url.PathEscape(args[0])+"/complete", nil)
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments [tag]",
	Short: "List archived tournaments or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performRequest(http.MethodGet, "/tournaments/"+url.PathEscape(args[0]), nil)
		}
		return performRequest(http.MethodGet, "/tournaments", nil)
	},
}

var deleteMatchesCmd = &cobra.Command{
	Use:   "delete-matches",
	Short: "Delete matches (all of them unless --tournament is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, withTag("/matches"), nil)
	},
}

var deletePlayersCmd = &cobra.Command{
	Use:   "delete-players",
	Short: "Delete players and their matches (all of them unless --tournament is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, withTag("/players"), nil)
	},
}

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List forum posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/posts", nil)
	},
}

var postCmd = &cobra.Command{
	Use:   "post [content]",
	Short: "Add a forum post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/posts", map[string]string{"content": args[0]})
	},
}

// withTag appends the common query parameters to endpoint.
func withTag(endpoint string) string {
	q := url.Values{}
	if tag != "" {
		q.Set("tournament", tag)
	}
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}

func performRequest(method, endpoint string, body any) error {
	u, err := url.Parse(host + endpoint)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if dryRun {
		q := u.Query()
		q.Set("dry_run", "true")
		u.RawQuery = q.Encode()
	}
	fmt.Printf("Making %s request to %s\n", method, u)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
