package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/photo"
)

var (
	photoInput   string
	photoDataURI bool
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Check and encode a profile photo",
	Long:  "Validates a JPG or PNG photo (5 MB limit), decodes it, and prints its preview as JSON.",
	RunE:  runPhoto,
}

func init() {
	photoCmd.Flags().StringVarP(&photoInput, "in", "i", "", "Path to photo (required)")
	photoCmd.Flags().BoolVar(&photoDataURI, "data-uri", false, "Include the base64 data URI in the output")

	if err := photoCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(photoCmd)
}

func runPhoto(cmd *cobra.Command, _ []string) error {
	p, err := loadPhoto(cmd.Context(), photoInput)
	if err != nil {
		return err
	}

	out := photo.Preview{HasPhoto: true, Filename: p.Filename, Size: p.SizeLabel()}
	if photoDataURI {
		out.DataURI = p.DataURI
	}
	return writeJSON(cmd.OutOrStdout(), "", out)
}
