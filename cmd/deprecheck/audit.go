package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"deprecheck/internal/audit"
	"deprecheck/internal/bundle"
	"deprecheck/internal/report"
	"deprecheck/internal/reportfmt"
	"deprecheck/internal/source"
	"deprecheck/internal/version"
)

const cacheAppName = "deprecheck"

var errNothingToAudit = errors.New("nothing to audit")

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [flags]",
		Short: "Report deprecated API usage from collected artifacts",
		Long: `Reads the structured issues and console artifacts collected from a page,
resolves each deprecation to its original source through the bundle artifact
and prints the scored result. Structured issues win over console entries.`,
		Args: cobra.NoArgs,
		RunE: runAudit,
	}
	cmd.Flags().String("issues", "", "structured issues artifact (JSON, \"-\" for stdin)")
	cmd.Flags().String("console", "", "console entries artifact (JSON, \"-\" for stdin)")
	cmd.Flags().String("bundles", "", "script bundles artifact (.json or .mp/.msgpack)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json|short|sarif)")
	cmd.Flags().String("urls", "auto", "url display in pretty/short output (auto|full|path|basename)")
	cmd.Flags().Int("max", 0, "maximum number of findings to print (0=all)")
	cmd.Flags().Bool("disk-cache", false, "cache decoded JSON bundles on disk")
	cmd.Flags().Bool("fail-on-findings", false, "exit with status 1 when deprecations are found")
	cmd.Flags().String("ui", "auto", "interactive findings browser (auto|on|off)")
	cmd.Flags().String("config", "", "config file (default: nearest "+configFileName+")")
	return cmd
}

// auditFlags are the raw values of the audit flags.
type auditFlags struct {
	issues, console, bundles string
	format, urls             string
	max                      int
}

// auditSettings are the effective settings after config and flags merge.
type auditSettings struct {
	issues, console, bundles string
	format                   outputFormat
	urls                     source.URLMode
	max                      int
}

// mergeSettings layers flags over the config: a flag wins only when the user
// set it explicitly, otherwise a non-empty config value is used.
func mergeSettings(flags auditFlags, changed func(name string) bool, cfg *auditConfig) (auditSettings, error) {
	pick := func(name, flagVal, cfgVal string) string {
		if changed(name) || cfgVal == "" {
			return flagVal
		}
		return cfgVal
	}
	var c auditConfig
	if cfg != nil {
		c = *cfg
	}

	s := auditSettings{
		issues:  pick("issues", flags.issues, c.Artifacts.Issues),
		console: pick("console", flags.console, c.Artifacts.Console),
		bundles: pick("bundles", flags.bundles, c.Artifacts.Bundles),
		max:     flags.max,
	}
	if !changed("max") && c.Output.Max > 0 {
		s.max = c.Output.Max
	}
	if s.max < 0 {
		return auditSettings{}, fmt.Errorf("--max must not be negative")
	}

	formatStr := pick("format", flags.format, c.Output.Format)
	format, ok := parseOutputFormat(formatStr)
	if !ok {
		return auditSettings{}, fmt.Errorf("unknown format %q (expected pretty|json|short|sarif)", formatStr)
	}
	s.format = format

	urlsStr := pick("urls", flags.urls, c.Output.URLs)
	urls, ok := source.ParseURLMode(urlsStr)
	if !ok {
		return auditSettings{}, fmt.Errorf("unknown --urls value %q (expected auto|full|path|basename)", urlsStr)
	}
	s.urls = urls

	if s.issues == "-" && s.console == "-" {
		return auditSettings{}, fmt.Errorf("only one of --issues and --console may read stdin")
	}
	return s, nil
}

// runAudit executes the "audit" command: it merges config and flags, runs
// the check, renders the artifact in the chosen format and, with
// --fail-on-findings, fails when anything was found.
func runAudit(cmd *cobra.Command, args []string) error {
	var (
		raw auditFlags
		err error
	)
	if raw.issues, err = cmd.Flags().GetString("issues"); err != nil {
		return fmt.Errorf("failed to get issues flag: %w", err)
	}
	if raw.console, err = cmd.Flags().GetString("console"); err != nil {
		return fmt.Errorf("failed to get console flag: %w", err)
	}
	if raw.bundles, err = cmd.Flags().GetString("bundles"); err != nil {
		return fmt.Errorf("failed to get bundles flag: %w", err)
	}
	if raw.format, err = cmd.Flags().GetString("format"); err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if raw.urls, err = cmd.Flags().GetString("urls"); err != nil {
		return fmt.Errorf("failed to get urls flag: %w", err)
	}
	if raw.max, err = cmd.Flags().GetInt("max"); err != nil {
		return fmt.Errorf("failed to get max flag: %w", err)
	}

	enableDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	failOnFindings, err := cmd.Flags().GetBool("fail-on-findings")
	if err != nil {
		return fmt.Errorf("failed to get fail-on-findings flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	manifest, err := loadManifest(configPath, ".")
	if err != nil {
		return err
	}
	var cfg *auditConfig
	var traceCfg traceConfig
	if manifest != nil {
		cfg = &manifest.Config
		traceCfg = manifest.Config.Trace
	}
	settings, err := mergeSettings(raw, cmd.Flags().Changed, cfg)
	if err != nil {
		return err
	}
	if settings.issues == "" && settings.console == "" {
		return fmt.Errorf("%w: set --issues and/or --console (or [artifacts] in %s); pass an empty \"[]\" artifact for a clean pass", errNothingToAudit, configFileName)
	}

	tracer, cleanup, err := setupTracing(cmd, traceCfg)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := audit.Options{
		IssuesPath:    settings.issues,
		ConsolePath:   settings.console,
		EnableTimings: showTimings,
	}
	if settings.bundles != "" {
		provider := &bundle.FileProvider{Path: settings.bundles}
		if enableDiskCache {
			cache, cacheErr := bundle.OpenDiskCache(cacheAppName)
			if cacheErr != nil {
				if !quiet {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", cacheErr)
				}
			} else {
				provider.Cache = cache
			}
		}
		opts.Bundles = provider
	}

	ctx := cmd.Context()
	var res *audit.Result
	if useBrowser(mode, settings.format) {
		res, err = runAuditWithUI(ctx, opts, settings.urls)
	} else {
		res, err = audit.Run(ctx, opts)
	}
	if err != nil {
		dumpTrace(cmd.ErrOrStderr(), tracer)
		return err
	}

	// браузер уже показал находки
	if !useBrowser(mode, settings.format) {
		colorOn, colorErr := useColor(cmd)
		if colorErr != nil {
			return colorErr
		}
		if err := render(cmd.OutOrStdout(), res.Artifact, settings, colorOn); err != nil {
			return err
		}
	}

	if showTimings && res.Timing != nil && !quiet {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timing.Summary())
	}
	if failOnFindings && !res.Artifact.Passed() {
		return fmt.Errorf("%s: %s", report.ID, res.Artifact.DisplayValue)
	}
	return nil
}

func render(out io.Writer, a report.Artifact, s auditSettings, colorOn bool) error {
	switch s.format {
	case formatJSON:
		return reportfmt.JSON(out, a, reportfmt.JSONOpts{Indent: true, Max: s.max})
	case formatShort:
		return reportfmt.Short(out, a, reportfmt.ShortOpts{URLMode: s.urls, Max: s.max})
	case formatSarif:
		return reportfmt.Sarif(out, a, reportfmt.SarifRunMeta{
			ToolName:    cacheAppName,
			ToolVersion: version.Version,
			Max:         s.max,
		})
	default:
		width := 0
		if f, ok := out.(*os.File); ok && isTerminal(f) {
			width = terminalWidth(f)
		}
		return reportfmt.Pretty(out, a, reportfmt.PrettyOpts{
			Color:   colorOn,
			URLMode: s.urls,
			Width:   width,
			Max:     s.max,
		})
	}
}
