package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/cli/config"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
	"github.com/osint-lab/argus/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdCase() *cli.Command {
	commands := []*cli.Command{cmdCaseCreate(), cmdCaseSelect()}
	for _, action := range usecase.AllStageActions() {
		commands = append(commands, cmdCaseStage(action))
	}

	return &cli.Command{
		Name:     "case",
		Usage:    "Create cases and drive the investigation pipeline",
		Commands: commands,
	}
}

func cmdCaseCreate() *cli.Command {
	var backendCfg config.Backend
	var profileCfg config.Profile
	var title string
	var query string
	var platforms []string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Case title",
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "query",
			Usage:       "Collection query",
			Destination: &query,
		},
		&cli.StringSliceFlag{
			Name:        "platform",
			Usage:       "Platform to collect from (repeatable)",
			Destination: &platforms,
		},
	}
	flags = append(flags, backendCfg.Flags()...)
	flags = append(flags, profileCfg.Flags()...)

	return &cli.Command{
		Name:  "create",
		Usage: "Create a new investigation case",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			backend, err := backendCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize backend")
			}

			profile, err := profileCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load workbench profile")
			}

			input := caseInput(title, query, platforms, profile)
			if err := input.Validate(); err != nil {
				return err
			}

			wb := usecase.New(backend)
			if _, err := wb.CreateCase(ctx, input); err != nil {
				return err
			}

			renderCase(os.Stdout, wb.Snapshot())
			return nil
		},
	}
}

// caseInput merges explicit flags with the profile's case template; flags win
func caseInput(title, query string, platforms []string, profile *config.WorkbenchProfile) model.CreateCaseInput {
	input := model.CreateCaseInput{
		Title: title,
		Query: query,
	}
	if input.Title == "" {
		input.Title = profile.Case.Title
	}
	if input.Query == "" {
		input.Query = profile.Case.Query
	}

	names := platforms
	if len(names) == 0 {
		names = profile.Case.Platforms
	}
	for _, name := range names {
		input.Platforms = append(input.Platforms, types.Platform(name))
	}
	if len(input.Platforms) == 0 {
		input.Platforms = types.AllPlatforms()
	}
	return input
}

func cmdCaseSelect() *cli.Command {
	var backendCfg config.Backend

	return &cli.Command{
		Name:      "select",
		Usage:     "Select a case and print its artifacts",
		ArgsUsage: "<case-id>",
		Flags:     backendCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one case ID is required")
			}
			id := types.CaseID(c.Args().First())
			if err := id.Validate(); err != nil {
				return err
			}

			backend, err := backendCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize backend")
			}

			wb := usecase.New(backend)
			if err := wb.Refresh(ctx); err != nil {
				return goerr.Wrap(err, "failed to refresh registry")
			}
			wb.SelectCase(ctx, id)

			renderView(os.Stdout, wb.Snapshot())
			return nil
		},
	}
}

func cmdCaseStage(action usecase.StageAction) *cli.Command {
	var backendCfg config.Backend

	return &cli.Command{
		Name:      action.String(),
		Usage:     "Run the " + action.String() + " stage on a case",
		ArgsUsage: "<case-id>",
		Flags:     backendCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one case ID is required")
			}
			id := types.CaseID(c.Args().First())

			backend, err := backendCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize backend")
			}

			wb := usecase.New(backend)
			if err := wb.RunAction(ctx, id, action); err != nil {
				return err
			}

			renderCase(os.Stdout, wb.Snapshot())
			return nil
		},
	}
}
