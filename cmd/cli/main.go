package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zapsplit-cli",
		Short: "ZapSplit CLI tool",
		Long:  `A command line interface for interacting with the ZapSplit API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ZapSplit API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(splitCmd(), balanceCmd(), feeQuoteCmd(), payCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a split with participants and payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/splits/" + args[0])
		},
	})

	cmd.AddCommand(createSplitCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "payments <id>",
		Short: "List the payment audit trail for a split",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/splits/" + args[0] + "/payments")
		},
	})

	return cmd
}

func createSplitCmd() *cobra.Command {
	var (
		creatorID    string
		title        string
		description  string
		amountCents  int64
		currency     string
		strategy     string
		participants []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an equal split across participants",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(map[string]any{
				"creator_id":      creatorID,
				"title":           title,
				"description":     description,
				"amount_cents":    amountCents,
				"currency":        currency,
				"strategy":        strategy,
				"participant_ids": participants,
			})
			if err != nil {
				return err
			}
			return postJSON("/api/v1/splits/", body)
		},
	}

	cmd.Flags().StringVar(&creatorID, "creator", "", "Creating user's ID (must be a participant)")
	cmd.Flags().StringVar(&title, "title", "", "Split title")
	cmd.Flags().StringVar(&description, "description", "", "Split description")
	cmd.Flags().Int64Var(&amountCents, "amount-cents", 0, "Total amount in minor units")
	cmd.Flags().StringVar(&currency, "currency", "USD", "Currency code")
	cmd.Flags().StringVar(&strategy, "strategy", "equal", "Allocation strategy (custom and percentage splits need the HTTP API)")
	cmd.Flags().StringSliceVar(&participants, "participants", nil, "Participant user IDs")

	return cmd
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <user-id>",
		Short: "Show a user's per-currency balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/users/" + args[0] + "/balance")
		},
	}
}

func feeQuoteCmd() *cobra.Command {
	var (
		amountCents  int64
		currency     string
		participants int
	)

	cmd := &cobra.Command{
		Use:   "fee",
		Short: "Quote the fee for settling a share",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON(fmt.Sprintf("/api/v1/fees/quote?amount_cents=%d&currency=%s&participants=%d",
				amountCents, currency, participants))
		},
	}

	cmd.Flags().Int64Var(&amountCents, "amount-cents", 0, "Share amount in minor units")
	cmd.Flags().StringVar(&currency, "currency", "USD", "Currency code")
	cmd.Flags().IntVar(&participants, "participants", 2, "Number of participants in the split")

	return cmd
}

func payCmd() *cobra.Command {
	var (
		userID         string
		payerIdentity  string
		amountCents    int64
		currency       string
		idempotencyKey string
	)

	cmd := &cobra.Command{
		Use:   "pay <split-id>",
		Short: "Record a payment against a split",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(map[string]any{
				"user_id":         userID,
				"payer_identity":  payerIdentity,
				"amount_cents":    amountCents,
				"currency":        currency,
				"idempotency_key": idempotencyKey,
			})
			if err != nil {
				return err
			}
			return postJSON("/api/v1/splits/"+args[0]+"/payments", body)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Paying participant's user ID")
	cmd.Flags().StringVar(&payerIdentity, "payer", "", "Anonymous payer identity for web payments")
	cmd.Flags().Int64Var(&amountCents, "amount-cents", 0, "Amount in minor units")
	cmd.Flags().StringVar(&currency, "currency", "USD", "Currency code")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key from the payment collaborator")

	return cmd
}

func getJSON(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func postJSON(path string, body []byte) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		fmt.Println(string(body))
		return nil
	}

	printJSON(decoded)
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
