package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"davefit/internal/domain"
	"davefit/internal/service"
)

const dateLayout = "2006-01-02"

// newCLIApp arma la CLI de planificacion. Lee perfiles, catalogo e historial desde JSON, sin base de datos.
func newCLIApp(out io.Writer) *cli.App {
	app := &cli.App{
		Name:    "plan_cli",
		Usage:   "Offline nutrition and routine planning",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "today", Usage: "Evaluate as of this date (YYYY-MM-DD)"},
			&cli.BoolFlag{Name: "verbose", Usage: "Log loaded inputs"},
		},
		Commands: []*cli.Command{
			nutritionCmd(out),
			recommendCmd(out),
			tokenCmd(out),
		},
	}
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// nutritionCmd calcula BMR, TDEE, objetivo calorico e IMC de un perfil.
func nutritionCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "nutrition",
		Usage: "Calculate calorie target for a profile JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "profile", Aliases: []string{"p"}, Required: true, Usage: "Profile JSON file (birth_date as YYYY-MM-DD or RFC3339)"},
		},
		Action: func(c *cli.Context) error {
			clock, err := clockFrom(c)
			if err != nil {
				return outputError(err)
			}

			profile, err := readProfileFile(c.String("profile"))
			if err != nil {
				return outputError(err)
			}

			calc := service.MetabolicCalculator{Now: clock}
			summary := calc.Summary(profile)
			loggerFrom(c).Info("nutrition calculated",
				zap.Bool("computable", summary.Target.Computable()),
				zap.String("category", summary.Target.Category),
			)
			return outputJSON(out, summary)
		},
	}
}

// recommendCmd recomienda rutinas para un perfil a partir de catalogo e historial.
func recommendCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Recommend routines from a catalog and workout history",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "profile", Aliases: []string{"p"}, Required: true, Usage: "Profile JSON file (birth_date as YYYY-MM-DD or RFC3339)"},
			&cli.StringFlag{Name: "catalog", Aliases: []string{"c"}, Required: true, Usage: "Routine catalog JSON file"},
			&cli.StringFlag{Name: "history", Usage: "Workout history JSON file, most recent first"},
		},
		Action: func(c *cli.Context) error {
			clock, err := clockFrom(c)
			if err != nil {
				return outputError(err)
			}

			var (
				catalog []domain.RoutineCandidate
				history []domain.WorkoutLogEntry
			)
			profile, err := readProfileFile(c.String("profile"))
			if err != nil {
				return outputError(err)
			}
			if err := readJSONFile(c.String("catalog"), &catalog); err != nil {
				return outputError(err)
			}
			if path := c.String("history"); path != "" {
				if err := readJSONFile(path, &history); err != nil {
					return outputError(err)
				}
			}

			recommender := service.NewRoutineRecommender(service.FatigueDetector{Now: clock})
			recs := recommender.Recommend(profile, catalog, history)
			loggerFrom(c).Info("recommendations built",
				zap.Int("catalog", len(catalog)),
				zap.Int("history", len(history)),
				zap.Int("recommended", len(recs)),
			)
			return outputJSON(out, recs)
		},
	}
}

// tokenCmd emite un access token de desarrollo para probar la API local.
func tokenCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Issue a development access token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user-id", Aliases: []string{"u"}, Required: true, Usage: "Subject user id"},
			&cli.StringFlag{Name: "email", Usage: "Email claim"},
			&cli.StringFlag{Name: "secret", EnvVars: []string{"JWT_SECRET"}, Required: true, Usage: "HS256 signing secret"},
			&cli.StringFlag{Name: "issuer", EnvVars: []string{"JWT_ISSUER"}, Usage: "Issuer claim"},
			&cli.DurationFlag{Name: "ttl", Value: time.Hour, Usage: "Token lifetime"},
		},
		Action: func(c *cli.Context) error {
			jwtSvc := service.NewJWTService(c.String("secret"), c.Duration("ttl"), c.String("issuer"))
			token, err := jwtSvc.GenerateAccessToken(domain.Identity{
				ID:    c.String("user-id"),
				Email: c.String("email"),
				Role:  domain.RoleUser,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out, map[string]string{"access_token": token})
		},
	}
}

func clockFrom(c *cli.Context) (func() time.Time, error) {
	raw := c.String("today")
	if raw == "" {
		return time.Now, nil
	}
	today, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --today %q: use YYYY-MM-DD", raw)
	}
	return func() time.Time { return today }, nil
}

func loggerFrom(c *cli.Context) *zap.Logger {
	if c.Bool("verbose") {
		return zap.NewExample()
	}
	return zap.NewNop()
}

// profileFile acepta birth_date con fecha sola, como la API.
type profileFile struct {
	domain.Profile
	BirthDate *string `json:"birth_date"`
}

func readProfileFile(path string) (domain.Profile, error) {
	var raw profileFile
	if err := readJSONFile(path, &raw); err != nil {
		return domain.Profile{}, err
	}
	profile := raw.Profile
	if raw.BirthDate != nil && *raw.BirthDate != "" {
		birth, err := parseBirthDate(*raw.BirthDate)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("parse %s: birth_date %q: use YYYY-MM-DD or RFC3339", path, *raw.BirthDate)
		}
		profile.BirthDate = &birth
	}
	return profile, nil
}

func parseBirthDate(value string) (time.Time, error) {
	if birth, err := time.Parse(dateLayout, value); err == nil {
		return birth, nil
	}
	return time.Parse(time.RFC3339, value)
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// outputJSON writes v as indented JSON.
func outputJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	return cli.Exit(err.Error(), 1)
}
