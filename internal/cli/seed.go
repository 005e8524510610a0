package cli

import (
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"desaweb/internal/seed"
)

func newSeedCmd() *cobra.Command {
	var (
		file    string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users, the village profile and content from a YAML file",
		Long: "seed creates the users, profile and content listed in a YAML file. " +
			"Existing users are skipped; content entries are always created, so seed an empty database.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.Load(file)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(a)

			if migrate {
				if err := a.Migrate(); err != nil {
					return err
				}
			}

			s := seed.New(seed.Services{
				Users:   a.Users,
				Profile: a.Profile,
				News:    a.News,
				Events:  a.Events,
				Gallery: a.Gallery,
				Tourism: a.Tourism,
				UMKM:    a.UMKM,
			}, a.Log)

			res, err := s.Run(cmd.Context(), f)
			if err != nil {
				return err
			}

			a.Log.Info("seed complete", zap.String("file", file), zap.Int("users", res.Users))
			out := cmd.OutOrStdout()
			printf(out, "Users created: %d (skipped %d)\n", res.Users, res.Skipped)
			if res.Profile {
				printf(out, "Profile updated\n")
			}
			kinds := make([]string, 0, len(res.Contents))
			for k := range res.Contents {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)
			for _, k := range kinds {
				printf(out, "%-8s %d\n", k+":", res.Contents[k])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "Seed file")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Migrate the schema before seeding")
	return cmd
}
