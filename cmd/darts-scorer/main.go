// Package main is the entry point for the darts-scorer application
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/myusername/darts-scorer/internal/config"
	"github.com/myusername/darts-scorer/internal/utils"
	"github.com/myusername/darts-scorer/pkg/chart"
	"github.com/myusername/darts-scorer/pkg/game"
	"github.com/myusername/darts-scorer/pkg/models"
	"github.com/myusername/darts-scorer/pkg/scraper"
	"github.com/myusername/darts-scorer/pkg/stats"
)

// Version is set during build using ldflags
var (
	version = "dev"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	configFlag := flag.String("config", "", "JSON match configuration file")
	playersFlag := flag.String("players", "", "Comma separated player names (overrides the config file)")
	startFlag := flag.Int("start", 0, "Starting score: 101, 201, 301, 401 or 501")
	statsFlag := flag.String("stats", "", "Player statistics file (default: "+config.DefaultStatsFile+")")
	csvFlag := flag.String("csv", "", "Write player statistics to this CSV file on exit")
	chartFlag := flag.String("chart", "", "Checkout chart file (.txt, .html or .pdf)")
	chartURLFlag := flag.String("chart-url", "", "Download a checkout chart page or PDF")
	outputFlag := flag.String("output", "", "Output directory for downloads and CSV files (default: current directory)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("darts-scorer version %s\n", version)
		return
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Darts scorer starting...")
	log.Printf("Version: %s", version)

	players := splitPlayers(*playersFlag)
	cfg := config.Default(players...)
	if *configFlag != "" {
		var err error
		cfg, err = config.Load(*configFlag, players...)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		log.Printf("Loaded config from %s", *configFlag)
	}
	if len(cfg.Match.Participants) == 0 {
		cfg.Match.Participants = []string{"Player 1", "Player 2"}
	}
	if *startFlag != 0 {
		cfg.Match.StartingScore = *startFlag
	}
	if *statsFlag != "" {
		cfg.StatsFile = *statsFlag
	}
	if *chartFlag != "" {
		cfg.Chart = *chartFlag
	}

	outputDir := "."
	if *outputFlag != "" {
		outputDir = *outputFlag
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
		log.Printf("Using output directory: %s", outputDir)
	}

	store, err := stats.OpenFileStore(cfg.StatsFile)
	if err != nil {
		log.Fatalf("Failed to open stats file: %v", err)
	}

	checkoutChart := chart.New("")
	if cfg.Chart != "" {
		if c, err := loadChartFile(cfg.Chart); err != nil {
			log.Printf("Error loading chart %s: %v", cfg.Chart, err)
		} else {
			checkoutChart.Merge(c)
		}
	}
	if *chartURLFlag != "" {
		checkoutChart.Merge(downloadChart(*chartURLFlag, outputDir))
	}
	log.Printf("Checkout chart has routes for %d scores", checkoutChart.Len())

	match, err := game.NewMatch(cfg.Match, game.Options{
		Recorder: store,
		Profiles: store.Profiles(),
		Chart:    checkoutChart,
	})
	if err != nil {
		log.Fatalf("Failed to start match: %v", err)
	}

	s := &session{
		match: match,
		profiles: func() []models.PlayerProfile {
			return stats.SortedProfiles(store.Profiles())
		},
		out:   os.Stdout,
		limit: 5,
	}
	fmt.Println("Type help for commands.")
	if err := s.run(os.Stdin); err != nil {
		log.Printf("Error reading input: %v", err)
	}

	if *csvFlag != "" {
		csvFilename := *csvFlag
		if !filepath.IsAbs(csvFilename) {
			csvFilename = filepath.Join(outputDir, csvFilename)
		}
		if err := utils.SaveProfilesToCSV(stats.SortedProfiles(store.Profiles()), csvFilename); err != nil {
			log.Printf("Error saving CSV file: %v", err)
		} else {
			log.Printf("Saved player stats to %s", csvFilename)
		}
	}

	log.Println("Darts scorer done")
}

func splitPlayers(list string) []string {
	var players []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			players = append(players, name)
		}
	}
	return players
}

// loadChartFile picks the chart reader from the file extension
func loadChartFile(path string) (*chart.Chart, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return chart.ReadPDFChart(path)
	case ".html", ".htm":
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading chart: %w", err)
		}
		return chart.ExtractChartFromHTML(string(content))
	default:
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading chart: %w", err)
		}
		return chart.ParseChartText(string(content))
	}
}

// downloadChart fetches a chart PDF, or a page holding a chart table or links to
// chart PDFs. Whatever can be read is merged; failures are logged.
func downloadChart(chartURL, outputDir string) *chart.Chart {
	merged := chart.New(chartURL)

	if strings.HasSuffix(strings.ToLower(chartURL), ".pdf") {
		if c, err := downloadPDFChart(chartURL, outputDir, 1); err != nil {
			log.Printf("Error reading chart PDF: %v", err)
		} else {
			merged.Merge(c)
		}
		return merged
	}

	htmlContent, err := scraper.FetchURL(chartURL)
	if err != nil {
		log.Printf("Error fetching chart page: %v", err)
		return merged
	}
	htmlPath := filepath.Join(outputDir, "chart.html")
	if err := scraper.SaveContentToFile(htmlPath, htmlContent); err != nil {
		log.Printf("Error saving chart HTML: %v", err)
	}

	if c, err := chart.ExtractChartFromHTML(htmlContent); err == nil {
		merged.Merge(c)
	} else {
		log.Printf("No chart table on %s: %v", chartURL, err)
	}

	for i, link := range scraper.ExtractChartLinks(htmlContent) {
		pdfURL := scraper.ResolveRelativeURL(chartURL, link)
		c, err := downloadPDFChart(pdfURL, outputDir, i+1)
		if err != nil {
			log.Printf("Error reading chart PDF %s: %v", pdfURL, err)
			continue
		}
		merged.Merge(c)
	}
	return merged
}

func downloadPDFChart(pdfURL, outputDir string, n int) (*chart.Chart, error) {
	localPath := filepath.Join(outputDir, fmt.Sprintf("chart_%d.pdf", n))
	if err := scraper.DownloadPDF(pdfURL, localPath); err != nil {
		return nil, err
	}
	return chart.ReadPDFChart(localPath)
}
