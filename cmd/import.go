package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/storefront-kit/facetq/internal/logging"
	"github.com/storefront-kit/facetq/internal/storage"
)

const importCommandLong = `Load catalog files into the SQLite catalog.

The SQLite catalog is replaced as a whole. Items are stored in file
order, files in argument order. Items without an id get a generated one.

USAGE:
    facetq import <file>... [OPTIONS]

OPTIONS:
    --dry-run              Validate and report without writing
    -h, --help             Show this help`

// catalogStore is where import writes the combined catalog.
type catalogStore interface {
	storage.Writer
	Name() string
	Close() error
}

// storeOpener opens the import destination.
type storeOpener func() (catalogStore, error)

func openCatalogStore() (catalogStore, error) {
	db, err := storage.OpenCatalogDB()
	if err != nil {
		return nil, err
	}
	return db, nil
}

// newItemID generates ids for items that have none. Replaced in tests.
var newItemID = uuid.NewString

// NewImportCmd creates the import command with explicit dependencies.
func NewImportCmd(open storeOpener) *cobra.Command {
	if open == nil {
		panic("NewImportCmd: store opener cannot be nil")
	}

	var dryRun bool
	importCmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Load catalog files into the SQLite catalog",
		Long:  importCommandLong,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, generated, err := readImportFiles(args)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%d items ready to import (%d ids generated)\n", len(items), generated)
				return nil
			}

			store, err := open()
			if err != nil {
				return fmt.Errorf("open catalog store: %w", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					colors.Debug(fmt.Sprintf("failed to close %s: %v", store.Name(), err))
				}
			}()

			if err := store.Save(cmd.Context(), items); err != nil {
				return fmt.Errorf("import into %s: %w", store.Name(), err)
			}
			logging.Info("catalog imported", "store", store.Name(), "items", len(items), "generated_ids", generated)
			colors.Success(fmt.Sprintf("imported %d items into %s", len(items), store.Name()))
			return nil
		},
	}

	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and report without writing")

	return importCmd
}

// readImportFiles decodes every file, assigns missing ids and validates
// the combined catalog.
func readImportFiles(paths []string) ([]domain.Item, int, error) {
	var items []domain.Item
	for _, path := range paths {
		part, err := storage.ReadFile(strings.TrimSpace(path))
		if err != nil {
			return nil, 0, err
		}
		items = append(items, part...)
	}

	generated := 0
	seen := make(map[string]bool, len(items))
	for i := range items {
		if strings.TrimSpace(items[i].ID) == "" {
			items[i].ID = newItemID()
			generated++
		}
		if err := items[i].Validate(); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", storage.ErrInvalidItem, err)
		}
		if seen[items[i].ID] {
			return nil, 0, fmt.Errorf("%w: %s", storage.ErrDuplicateItemID, items[i].ID)
		}
		seen[items[i].ID] = true
	}
	return items, generated, nil
}

// importCmd represents the import command
var importCmd = NewImportCmd(openCatalogStore)

func init() {
	rootCmd.AddCommand(importCmd)
}
