package cmd

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/famlab/dynasty/sim"
	"github.com/famlab/dynasty/simulation"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation scenario and record its snapshot series.",
	Long: `run advances the partnership population over the configured ` +
		`horizon and records one snapshot per year into an SQLite file. ` +
		`Every parameter is available as a flag; defaults can also be set ` +
		`through DYNASTY_* variables in a .env file. With --monitor the ` +
		`process keeps serving the dashboard after the run completes.`,
	RunE: runScenario,
}

func init() {
	registerRunFlags(runCmd.Flags())
	rootCmd.AddCommand(runCmd)
}

func registerRunFlags(f *pflag.FlagSet) {
	cfg := sim.DefaultConfig()

	f.Int("start-year", cfg.StartYear, "first simulated year")
	f.Int("horizon-years", cfg.HorizonYears, "number of years to simulate")
	f.Int64("seed", cfg.Seed, "seed of the pseudo-random stream")

	f.Float64("fertility-mean", cfg.FertilityMean,
		"mean of the yearly Poisson birth-count draw")
	f.Int("fertility-age-start", cfg.FertilityAgeStart,
		"lowest fertile age, inclusive")
	f.Int("fertility-age-end", cfg.FertilityAgeEnd,
		"highest fertile age, inclusive")

	f.Float64("invite-prob", cfg.InviteProb,
		"probability that an eligible 26-year-old is invited")
	f.Float64("promotion-prob", cfg.PromotionProb,
		"probability that a trainee is promoted after probation")
	f.Int("probation-min", cfg.ProbationMin,
		"shortest possible probation, years")
	f.Int("probation-max", cfg.ProbationMax,
		"longest possible probation, years")

	f.Int("age-partner-to-emeritus", cfg.AgePartnerToEmeritus,
		"age at which an active partner retires to emeritus")
	f.Int("age-econ-rights-end", cfg.AgeEconRightsEnd,
		"age at which an emeritus partner's economic rights expire")

	f.StringSlice("eligible-parent-status",
		[]string{"Partner", "Emeritus"},
		"parent statuses that qualify a candidate for invitation")

	f.Int("initial-active-partners", cfg.InitialActivePartners,
		"active partners in the year-zero population")
	f.Int("initial-emeritus-partners", cfg.InitialEmeritusPartners,
		"emeritus partners in the year-zero population")
	f.Int("initial-trainees", cfg.InitialTrainees,
		"trainees in the year-zero population")

	f.String("output", "", "output file name, without the .sqlite3 suffix")
	f.Bool("log-transitions", false, "log every status transition")
	f.Bool("monitor", false, "serve the monitoring dashboard")
	f.Int("monitor-port", 0, "port of the monitoring server")
	f.Bool("open", false, "open the dashboard in the default browser")
}

func runScenario(cmd *cobra.Command, _ []string) error {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}

	builder := simulation.MakeBuilder().WithConfig(cfg)

	output, _ := cmd.Flags().GetString("output")
	if output != "" {
		builder = builder.WithOutputFileName(output)
	}

	monitorOn, _ := cmd.Flags().GetBool("monitor")
	if monitorOn {
		if port, _ := cmd.Flags().GetInt("monitor-port"); port > 0 {
			builder = builder.WithMonitorPort(port)
		}
		if open, _ := cmd.Flags().GetBool("open"); open {
			builder = builder.WithBrowserLaunch()
		}
	} else {
		builder = builder.WithoutMonitoring()
	}

	s, err := builder.Build()
	if err != nil {
		return err
	}

	if logTransitions, _ := cmd.Flags().GetBool("log-transitions"); logTransitions {
		s.Engine().AcceptHook(sim.NewTransitionLogger(
			log.New(os.Stderr, "transition ", 0)))
	}

	start := time.Now()

	series, err := s.Run()
	if err != nil {
		return err
	}

	final := series[len(series)-1]
	logger.Info("run complete",
		"years", len(series),
		"elapsed", time.Since(start),
		"trainees", final.Trainees,
		"partners", final.Partners,
		"emeriti", final.Emeriti,
		"departed", final.Departed,
	)

	s.Terminate()

	if monitorOn {
		logger.Info("monitor keeps serving, interrupt to exit")
		select {}
	}

	return nil
}

// resolveConfig layers the three parameter sources: built-in defaults, then
// DYNASTY_* environment variables, then explicitly set flags.
func resolveConfig(f *pflag.FlagSet) (sim.Config, error) {
	cfg := sim.DefaultConfig()

	applyEnv(&cfg)

	intFlag := func(name string, dst *int) {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}
	floatFlag := func(name string, dst *float64) {
		if f.Changed(name) {
			*dst, _ = f.GetFloat64(name)
		}
	}

	intFlag("start-year", &cfg.StartYear)
	intFlag("horizon-years", &cfg.HorizonYears)
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetInt64("seed")
	}

	floatFlag("fertility-mean", &cfg.FertilityMean)
	intFlag("fertility-age-start", &cfg.FertilityAgeStart)
	intFlag("fertility-age-end", &cfg.FertilityAgeEnd)

	floatFlag("invite-prob", &cfg.InviteProb)
	floatFlag("promotion-prob", &cfg.PromotionProb)
	intFlag("probation-min", &cfg.ProbationMin)
	intFlag("probation-max", &cfg.ProbationMax)

	intFlag("age-partner-to-emeritus", &cfg.AgePartnerToEmeritus)
	intFlag("age-econ-rights-end", &cfg.AgeEconRightsEnd)

	intFlag("initial-active-partners", &cfg.InitialActivePartners)
	intFlag("initial-emeritus-partners", &cfg.InitialEmeritusPartners)
	intFlag("initial-trainees", &cfg.InitialTrainees)

	if f.Changed("eligible-parent-status") {
		names, _ := f.GetStringSlice("eligible-parent-status")
		statuses, err := parseStatuses(names)
		if err != nil {
			return cfg, err
		}
		cfg.EligibleParentStatus = statuses
	}

	return cfg, nil
}

func applyEnv(cfg *sim.Config) {
	cfg.StartYear = envOrInt("DYNASTY_START_YEAR", cfg.StartYear)
	cfg.HorizonYears = envOrInt("DYNASTY_HORIZON_YEARS", cfg.HorizonYears)
	cfg.Seed = envOrInt64("DYNASTY_SEED", cfg.Seed)

	cfg.FertilityMean = envOrFloat("DYNASTY_FERTILITY_MEAN",
		cfg.FertilityMean)
	cfg.FertilityAgeStart = envOrInt("DYNASTY_FERTILITY_AGE_START",
		cfg.FertilityAgeStart)
	cfg.FertilityAgeEnd = envOrInt("DYNASTY_FERTILITY_AGE_END",
		cfg.FertilityAgeEnd)

	cfg.InviteProb = envOrFloat("DYNASTY_INVITE_PROB", cfg.InviteProb)
	cfg.PromotionProb = envOrFloat("DYNASTY_PROMOTION_PROB",
		cfg.PromotionProb)
	cfg.ProbationMin = envOrInt("DYNASTY_PROBATION_MIN", cfg.ProbationMin)
	cfg.ProbationMax = envOrInt("DYNASTY_PROBATION_MAX", cfg.ProbationMax)

	cfg.AgePartnerToEmeritus = envOrInt("DYNASTY_AGE_PARTNER_TO_EMERITUS",
		cfg.AgePartnerToEmeritus)
	cfg.AgeEconRightsEnd = envOrInt("DYNASTY_AGE_ECON_RIGHTS_END",
		cfg.AgeEconRightsEnd)

	cfg.InitialActivePartners = envOrInt("DYNASTY_INITIAL_ACTIVE_PARTNERS",
		cfg.InitialActivePartners)
	cfg.InitialEmeritusPartners = envOrInt(
		"DYNASTY_INITIAL_EMERITUS_PARTNERS", cfg.InitialEmeritusPartners)
	cfg.InitialTrainees = envOrInt("DYNASTY_INITIAL_TRAINEES",
		cfg.InitialTrainees)
}

func parseStatuses(names []string) ([]sim.Status, error) {
	statuses := make([]sim.Status, 0, len(names))

	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "trainee":
			statuses = append(statuses, sim.StatusTrainee)
		case "partner":
			statuses = append(statuses, sim.StatusPartner)
		case "emeritus":
			statuses = append(statuses, sim.StatusEmeritus)
		default:
			return nil, fmt.Errorf("unknown parent status %q", name)
		}
	}

	return statuses, nil
}
