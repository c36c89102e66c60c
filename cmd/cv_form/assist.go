package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/assist"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/schemas"
)

var (
	assistBaseURL string

	summaryJobTitle string
	summaryYears    string
	summarySkills   string

	skillsJobTitle  string
	skillsTechnical string
	skillsSoft      string

	assistText     string
	assistTextFile string
	toneName       string

	submitInput string
)

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Call the writing assistant of a running server",
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Draft a professional summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := newAssistClient().GenerateSummary(cmd.Context(), summaryJobTitle, summaryYears, summarySkills)
		if err != nil {
			return assistFailure(err)
		}
		summary, err := res.Get()
		if err != nil {
			return assistFailure(err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), summary)
		return nil
	},
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Suggest skills for a job title and merge them into existing lists",
	RunE: func(cmd *cobra.Command, _ []string) error {
		technical := assist.NewField("technical_skills", skillsTechnical)
		soft := assist.NewField("soft_skills", skillsSoft)
		if err := newAssistClient().SuggestSkillsInto(cmd.Context(), skillsJobTitle, technical, soft); err != nil {
			return assistFailure(err)
		}
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "technical: %s\n", technical.Value())
		_, _ = fmt.Fprintf(out, "soft: %s\n", soft.Value())
		return nil
	},
}

var improveCmd = &cobra.Command{
	Use:   "improve",
	Short: "Improve each line of a bullet list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		text, err := assistInput()
		if err != nil {
			return err
		}
		field := assist.NewField("responsibilities", text)
		batch, err := newAssistClient().ImproveBulletsField(cmd.Context(), field)
		if err != nil {
			return assistFailure(err)
		}
		if verbose {
			observability.NewPrinter(cmd.ErrOrStderr()).PrintBatch(batch)
		}
		if n := batch.Failed(); n > 0 {
			logger.Warn().Int("failed", n).Int("lines", len(batch.Lines)).Msg("some lines were kept unchanged")
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), field.Value())
		return nil
	},
}

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Check and correct grammar",
	RunE: func(cmd *cobra.Command, _ []string) error {
		text, err := assistInput()
		if err != nil {
			return err
		}
		field := assist.NewField("text", text)
		notice, err := newAssistClient().CheckGrammarField(cmd.Context(), field)
		if err != nil {
			return assistFailure(err)
		}
		if notice != "" {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), notice)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), field.Value())
		return nil
	},
}

var toneCmd = &cobra.Command{
	Use:   "tone",
	Short: "Rewrite text in another tone",
	RunE: func(cmd *cobra.Command, _ []string) error {
		text, err := assistInput()
		if err != nil {
			return err
		}
		field := assist.NewField("text", text)
		if err := newAssistClient().RewriteField(cmd.Context(), field, toneName); err != nil {
			return assistFailure(err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), field.Value())
		return nil
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a CV document to the server's preview",
	RunE: func(cmd *cobra.Command, _ []string) error {
		doc, err := schemas.ValidateFile(submitInput)
		if err != nil {
			return err
		}
		client := newAssistClient()
		sub, err := client.SubmitPreview(cmd.Context(), doc)
		if err != nil {
			return assistFailure(err)
		}
		stored, err := client.FetchPreview(cmd.Context(), sub)
		if err != nil {
			return assistFailure(err)
		}
		logger.Info().Str("name", stored.PersonalInfo.Name).Msg("preview stored")
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), sub.Location)
		return nil
	},
}

func init() {
	assistCmd.PersistentFlags().StringVar(&assistBaseURL, "base-url", "", "Server base URL (overrides ASSIST_BASE_URL)")

	summaryCmd.Flags().StringVar(&summaryJobTitle, "job-title", "", "Job title")
	summaryCmd.Flags().StringVar(&summaryYears, "years", "", "Years of experience")
	summaryCmd.Flags().StringVar(&summarySkills, "skills", "", "Key skills")

	skillsCmd.Flags().StringVar(&skillsJobTitle, "job-title", "", "Job title")
	skillsCmd.Flags().StringVar(&skillsTechnical, "technical", "", "Existing comma-separated technical skills")
	skillsCmd.Flags().StringVar(&skillsSoft, "soft", "", "Existing comma-separated soft skills")

	for _, c := range []*cobra.Command{improveCmd, grammarCmd, toneCmd} {
		c.Flags().StringVarP(&assistText, "text", "t", "", "Text to send")
		c.Flags().StringVarP(&assistTextFile, "in", "i", "", "Read the text from a file")
	}
	toneCmd.Flags().StringVar(&toneName, "tone", "professional", "Target tone")

	submitCmd.Flags().StringVarP(&submitInput, "in", "i", "", "Path to CV document JSON (required)")
	if err := submitCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	assistCmd.AddCommand(summaryCmd, skillsCmd, improveCmd, grammarCmd, toneCmd, submitCmd)
	rootCmd.AddCommand(assistCmd)
}

func newAssistClient() *assist.Client {
	baseURL := appConfig.AssistBaseURL
	if assistBaseURL != "" {
		baseURL = assistBaseURL
	}
	return assist.NewClient(baseURL, &assist.Options{
		BatchConcurrency: appConfig.BatchConcurrency,
		Logger:           &logger,
	})
}

// assistInput returns --text, or the contents of --in.
func assistInput() (string, error) {
	if assistTextFile == "" {
		return assistText, nil
	}
	data, err := os.ReadFile(assistTextFile)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// assistFailure turns err into the notice text the form would show.
func assistFailure(err error) error {
	return errors.New(assist.Notice(err))
}
