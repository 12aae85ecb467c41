package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/branislavfamily/familysite/pkg/errors"
	"github.com/branislavfamily/familysite/pkg/family"
	"github.com/branislavfamily/familysite/pkg/store"
)

// pushCommand creates the push command, which uploads a tree file to MongoDB
// so that a server configured with source = "mongo" picks it up.
func (c *CLI) pushCommand() *cobra.Command {
	var familyID string

	cmd := &cobra.Command{
		Use:   "push FILE",
		Short: "Store a family tree file in MongoDB",
		Example: `  FAMILYSITE_MONGO_URI=mongodb://localhost:27017 familysite push family.yaml
  familysite push family.toml --family branislav`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if familyID == "" {
				familyID = c.cfg.Tree.Family
			}
			if err := errors.ValidateID(familyID); err != nil {
				return err
			}

			root, err := family.ReadFile(args[0])
			if err != nil {
				return err
			}
			logger.Debugf("Read %d people from %s", root.Count(), args[0])

			m, err := store.Connect(ctx, c.cfg.Tree.MongoURI, c.cfg.Tree.Database)
			if err != nil {
				return err
			}
			defer m.Close(ctx)

			spinner := newSpinnerWithContext(ctx, "Storing family tree...")
			spinner.Start()
			if err := m.Save(ctx, familyID, root); err != nil {
				spinner.StopWithError("Store failed")
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Stored %d people as %s", root.Count(), m.Source(familyID).Ref()))
			return nil
		},
	}

	cmd.Flags().StringVar(&familyID, "family", "", "family id (default from config)")

	return cmd
}
