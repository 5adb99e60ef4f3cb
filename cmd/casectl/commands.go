package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"casebrief/internal/casemeta"
	"casebrief/internal/rag"
	"casebrief/internal/service"
)

// --- case ---

var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Manage cases",
}

var caseCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		c, err := application.CaseService.CreateCase(cmd.Context(), service.CreateCaseRequest{
			Name:        args[0],
			Description: description,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", c.ID, c.CaseNo, c.Name)
		return nil
	},
}

var caseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cases, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		cases, err := application.CaseService.ListCases(cmd.Context(), 0, limit)
		if err != nil {
			return err
		}
		for _, c := range cases {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", c.ID, c.CaseNo, c.Name)
		}
		return nil
	},
}

// --- index ---

var indexCmd = &cobra.Command{
	Use:   "index CASE_ID PATH",
	Short: "Register a plain-text document for a case and index it",
	Long: `Register a plain-text document for a case and index it.

Examples:
  casectl index 3 ./complaint.txt
  cat ruling.txt | casectl index 3 - --name ruling.txt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, err := parseID("case id", args[0])
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")

		var data []byte
		if args[1] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
			if name == "" {
				name = "stdin.txt"
			}
		} else {
			data, err = os.ReadFile(args[1])
			if name == "" {
				name = filepath.Base(args[1])
			}
		}
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}

		resp, err := application.CaseService.AddFile(cmd.Context(), service.AddFileRequest{
			CaseID:      caseID,
			Filename:    name,
			ContentType: "text/plain",
			Text:        string(data),
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask CASE_ID QUESTION",
	Short: "Answer a question from the case's documents",
	Long: `Answer a question from the case's documents.

Without --session the question is answered statelessly. With --session the
turn is stored in that chat session and earlier turns are used as history.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, err := parseID("case id", args[0])
		if err != nil {
			return err
		}
		question := strings.Join(args[1:], " ")
		sessionID, _ := cmd.Flags().GetInt64("session")
		asJSON, _ := cmd.Flags().GetBool("json")

		var resp rag.AnswerResponse
		if sessionID > 0 {
			resp, err = application.ChatService.SendMessage(cmd.Context(), service.SendMessageRequest{
				CaseID:    caseID,
				SessionID: sessionID,
				Message:   question,
			})
		} else {
			resp, err = application.CaseService.Ask(cmd.Context(), service.AskRequest{CaseID: caseID, Question: question})
		}
		if err != nil {
			return err
		}

		if asJSON {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Answer)
		if len(resp.SourceChunkIDs) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\nsources: %s\n", strings.Join(resp.SourceChunkIDs, ", "))
		}
		return nil
	},
}

// --- session ---

var sessionCmd = &cobra.Command{
	Use:   "session CASE_ID",
	Short: "Open the case's chat session and print its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, err := parseID("case id", args[0])
		if err != nil {
			return err
		}
		view, err := application.ChatService.OpenSession(cmd.Context(), caseID)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "session %d\n", view.Session.ID)
		for _, m := range view.Messages {
			fmt.Fprintf(out, "[%s] %s\n", m.Role, m.Content)
		}
		return nil
	},
}

// --- extract ---

var extractCmd = &cobra.Command{
	Use:   "extract CASE_ID FILE_ID",
	Short: "Extract metadata from an indexed file and merge it into the case record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, err := parseID("case id", args[0])
		if err != nil {
			return err
		}
		fileID, err := parseID("file id", args[1])
		if err != nil {
			return err
		}
		record, err := application.CaseService.ProcessFile(cmd.Context(), caseID, fileID)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), record)
	},
}

// --- merge ---

var mergeCmd = &cobra.Command{
	Use:   "merge CASE_ID PAYLOAD",
	Short: "Merge a JSON metadata payload into the case record",
	Long: `Merge a JSON metadata payload into the case record.

Examples:
  casectl merge 3 '{"judge":"Judge Smith","parties":["Alice","Bob"]}'
  casectl merge 3 - < payload.json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, err := parseID("case id", args[0])
		if err != nil {
			return err
		}
		raw := []byte(args[1])
		if args[1] == "-" {
			if raw, err = io.ReadAll(cmd.InOrStdin()); err != nil {
				return fmt.Errorf("reading payload: %w", err)
			}
		}

		var payload casemeta.Payload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("payload must be a JSON object: %w", err)
		}

		record, err := application.CaseService.MergeMetadata(cmd.Context(), caseID, payload)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), record)
	},
}

func init() {
	caseCreateCmd.Flags().String("description", "", "case description")
	caseListCmd.Flags().Int("limit", 20, "maximum number of cases")
	caseCmd.AddCommand(caseCreateCmd, caseListCmd)

	indexCmd.Flags().String("name", "", "filename to record (defaults to the file's base name)")
	askCmd.Flags().Int64("session", 0, "chat session id; omit for a stateless answer")
	askCmd.Flags().Bool("json", false, "print the full answer as JSON")

	rootCmd.AddCommand(caseCmd, indexCmd, askCmd, sessionCmd, extractCmd, mergeCmd)
}
