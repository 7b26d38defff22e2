package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markgate/markgate/pkg/registry"
)

var encodeCmd = &cobra.Command{
	Use:   "encode DOCUMENT.json",
	Short: "Print the Base64 document text used for signing",
	Long: `Encode serializes the document to JSON and prints its Base64 encoding —
the exact product_document value markgate will transmit. Compute the
detached signature over this text, byte for byte, before submitting.

Example:
  markgate encode doc.json > doc.b64
  # sign doc.b64 with your CAdES tool, save the Base64 signature to doc.sig
  markgate submit doc.json --signature-file doc.sig`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	encoded, err := registry.EncodeDocument(doc)
	if err != nil {
		return err
	}
	fmt.Println(encoded)
	return nil
}
