package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/alefba/internal/app"
	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/llm"
	"github.com/abhisek/alefba/internal/narration"
	"github.com/abhisek/alefba/internal/screen"
	sessionscreen "github.com/abhisek/alefba/internal/screens/session"
	"github.com/abhisek/alefba/internal/session"
	"github.com/abhisek/alefba/internal/spacedrep"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the island map (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Jump straight into a review session",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("category")
		c, err := content.ParseCategory(name)
		if err != nil {
			return err
		}
		return runApp(cmd, true, func(svc *screen.Services) screen.Screen {
			return sessionscreen.New(svc, c, true)
		})
	},
}

func init() {
	playCmd.Flags().Bool("no-welcome", false, "Skip the welcome animation")
	for _, c := range []*cobra.Command{rootCmd, playCmd, reviewCmd} {
		c.Flags().Bool("quiet", false, "Write narration to the log instead of showing captions")
	}
	reviewCmd.Flags().StringP("category", "c", string(content.CategoryAlphabet), "Category to review: alphabet or number")
}

// runApp opens the store, wires the engine and launches the TUI. open, if
// given, builds the first screen shown on top of home.
func runApp(cmd *cobra.Command, skipWelcome bool, open ...func(*screen.Services) screen.Screen) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if f := cmd.Flags().Lookup("no-welcome"); f != nil && f.Changed {
		skipWelcome = true
	}

	items := e.store.ItemRepo()
	events := e.store.EventRepo()

	// The app works without an LLM; stories fall back to canned lines.
	provider, err := llm.NewProvider(ctx, e.cfg.LLM, events, e.log)
	if err != nil {
		e.log.WithError(err).Warn("LLM provider unavailable, stories disabled")
		provider = nil
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	speaker, effects, captions := narrationOutputs(quiet, e.log)
	nopts := narration.DefaultOptions()
	nopts.Speaker = speaker
	nopts.Effects = effects
	nopts.Stories = narration.NewStoryteller(provider, e.cfg.LLM.Timeout, e.log)
	nopts.Logger = e.log
	narrator := narration.New(nopts)
	defer narrator.Wait()
	defer narrator.Stop()

	engine := session.New(session.Options{
		Config:   e.cfg.Session,
		Recorder: spacedrep.NewScheduler(items, events, e.log),
		Feedback: narrator,
		Sessions: events,
		Logger:   e.log,
	})

	svc := &screen.Services{
		Items:    items,
		Events:   events,
		Planner:  session.NewPlanner(items),
		Engine:   engine,
		Captions: captions,
		Log:      e.log,
	}
	opts := app.Options{Services: svc, SkipWelcome: skipWelcome}
	if len(open) > 0 {
		opts.Open = open[0]
	}

	e.log.WithField("db", e.cfg.Database.Path).Info("starting ui")
	if err := app.Run(ctx, opts); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

// narrationOutputs picks where the narrator's voice goes. Quiet runs log
// speech and effects instead of captioning them, so captions is nil.
func narrationOutputs(quiet bool, log logrus.FieldLogger) (narration.Speaker, narration.EffectPlayer, *narration.Captions) {
	if quiet {
		sp := narration.LogSpeaker{Log: log.WithField("component", "narration")}
		return sp, sp, nil
	}
	c := narration.NewCaptions()
	return c, c, c
}
