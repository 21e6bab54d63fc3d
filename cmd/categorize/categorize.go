// Package categorize handles the ad-hoc categorization command
package categorize

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsolano/mail-ledger/cmd/root"
	"jsolano/mail-ledger/internal/categorizer"
	"jsolano/mail-ledger/internal/models"
	"jsolano/mail-ledger/internal/store"
)

var (
	merchant    string
	description string
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a merchant name from the command line",
	Long: `Categorize a single merchant against the keyword table. Useful for
checking where a transaction will land before tuning the category keywords.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&merchant, "merchant", "m", "", "Merchant name to categorize")
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Additional transaction text (optional)")
	_ = Cmd.MarkFlagRequired("merchant")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	root.Log.Info("Categorize command called")

	tables, err := store.NewTableStore(root.Cfg.Tables.BanksFile, root.Cfg.Tables.CategoriesFile, root.Log).Load()
	if err != nil {
		return err
	}

	cat := categorizer.New(tables.Categories(), root.Log)
	result := cat.Categorize(models.TransactionRecord{
		Merchant: merchant,
		RawText:  description,
	})

	fmt.Printf("%s %s\n", result.CategoryEmoji, result.Category)
	return nil
}
