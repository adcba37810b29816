// Command waterfall renders a recorded capture session into a waterfall
// PNG: frequency across, time down, power as color.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/Ben-Santana/RF-Security/internal/render"
	"github.com/Ben-Santana/RF-Security/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var (
		dbPath    string
		sessionID int64
		outPath   string
		fontPath  string
		theme     string
		rowHeight int
	)
	flag.StringVar(&dbPath, "db", "", "Path to the session database")
	flag.Int64Var(&sessionID, "session", 0, "Session ID to render (0 = most recent)")
	flag.StringVar(&outPath, "o", "waterfall.png", "Output PNG path")
	flag.StringVar(&fontPath, "font", "", "TTF font for axis labels (optional)")
	flag.StringVar(&theme, "theme", string(render.ClassicTheme), "Color theme: classic, grayscale or thermal")
	flag.IntVar(&rowHeight, "row-height", 2, "Pixel rows per spectrum")
	flag.Parse()

	if dbPath == "" {
		logger.Error("no session database provided")
		os.Exit(1)
	}

	if err := run(dbPath, sessionID, outPath, fontPath, render.Theme(theme), rowHeight, logger); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(dbPath string, sessionID int64, outPath, fontPath string, theme render.Theme, rowHeight int, logger *slog.Logger) error {
	ctx := context.Background()

	store := storage.NewSqliteStore(dbPath)
	defer store.Close()

	if sessionID == 0 {
		sessions, err := store.Sessions(ctx)
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}
		if len(sessions) == 0 {
			return fmt.Errorf("no sessions in %s", dbPath)
		}

		latest := sessions[len(sessions)-1]
		sessionID = latest.ID
		logger.Info("rendering most recent session",
			slog.Int64("id", latest.ID),
			slog.String("token", latest.Token),
			slog.Time("startTime", latest.StartTime))
	}

	rows, err := store.SpectralRows(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("reading spectra: %w", err)
	}

	options := []func(*render.Waterfall){
		render.WithTheme(theme),
		render.WithRowHeight(rowHeight),
	}
	if fontPath != "" {
		fontBytes, err := os.ReadFile(fontPath)
		if err != nil {
			return fmt.Errorf("reading font: %w", err)
		}
		options = append(options, render.WithFont(fontBytes))
	}

	img, err := render.NewWaterfall(options...).Render(rows)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	if err = png.Encode(out, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}

	logger.Info("waterfall written", slog.String("path", outPath))
	return nil
}
