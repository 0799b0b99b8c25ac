package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blkdmnd/visual-thesis/internal/contact"
	"github.com/blkdmnd/visual-thesis/internal/content"
	"github.com/blkdmnd/visual-thesis/internal/types"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Compose a recruiter inquiry mailto link",
	Long:  "Validate a recruiter inquiry and print the mailto URI that opens it in a mail client. Nothing is sent.",
	RunE:  runContact,
}

var (
	contactEmail   string
	contactMessage string
)

func init() {
	contactCmd.Flags().StringVarP(&contactEmail, "email", "e", "", "Your email address (required)")
	contactCmd.Flags().StringVarP(&contactMessage, "message", "m", "", "Message body (required)")
	rootCmd.AddCommand(contactCmd)
}

func runContact(cmd *cobra.Command, _ []string) error {
	store, err := content.Default()
	if err != nil {
		return err
	}
	identity := store.Identity()

	mailto, err := contact.ComposeMailto(
		contact.Recipient{Owner: identity.Name, Email: identity.Contact.Email},
		types.ContactRequest{Email: contactEmail, Message: contactMessage},
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), mailto)
	return nil
}
