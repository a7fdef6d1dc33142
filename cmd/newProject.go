package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/OxfordCMS/ocmstoolkit/project"
)

// newProjectCmd represents the new-project command
var newProjectCmd = &cobra.Command{
	Use:     "new-project",
	Aliases: []string{"new_project"},
	Short:   "Scaffold the standard OCMS project layout",
	Long: `Creates the group project directories (projects/<name>, data, pipelines,
archive) and the per-user work and devel trees with a code symlink between
them. Fails if any directory already exists so an existing project is never
touched.`,
	Run: func(cmd *cobra.Command, args []string) {
		name, err := cmd.Flags().GetString("project")
		if err != nil {
			log.Fatalf("Error getting project flag: %v", err)
		}
		level, err := cmd.Flags().GetString("level")
		if err != nil {
			log.Fatalf("Error getting level flag: %v", err)
		}
		base, err := cmd.Flags().GetString("base")
		if err != nil {
			log.Fatalf("Error getting base flag: %v", err)
		}

		username, group, err := project.CurrentUserGroup()
		if err != nil {
			log.Fatalf("new-project failed: %v", err)
		}

		layout := project.NewLayout(base, group, username, name)
		if err := layout.Create(project.Level(level)); err != nil {
			log.Fatalf("new-project failed: %v", err)
		}
		fmt.Printf("Set up project %s for %s (%s) at level %s\n", name, username, group, level)
	},
}

func init() {
	rootCmd.AddCommand(newProjectCmd)

	newProjectCmd.Flags().StringP("project", "p", "", "name of project")
	newProjectCmd.Flags().StringP("level", "l", string(project.LevelBoth), "level at which to set up project: group, user or both")
	newProjectCmd.Flags().String("base", project.DefaultBase, "cluster filesystem root")

	_ = newProjectCmd.MarkFlagRequired("project")
}
