package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartbookmarker/smark/internal/api"
	"github.com/smartbookmarker/smark/internal/config"
	"github.com/smartbookmarker/smark/internal/exporter"
	"github.com/smartbookmarker/smark/internal/importer"
	"github.com/smartbookmarker/smark/internal/model"
	"github.com/smartbookmarker/smark/internal/picker"
	"github.com/smartbookmarker/smark/internal/search"
	"github.com/smartbookmarker/smark/internal/storage"
	"github.com/smartbookmarker/smark/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "add":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: smark add <url> [note]\n")
				os.Exit(1)
			}
			note := strings.Join(os.Args[3:], " ")
			runAdd(os.Args[2], note)
			return
		case "suggest":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: smark suggest <url>\n")
				os.Exit(1)
			}
			runSuggest(os.Args[2])
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: smark import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `smark - bookmark client for the Smart Bookmarker server

Usage:
  smark                   Open interactive TUI
  smark <query>           Quick search cached bookmarks, select, open
  smark add <url> [note]  Save a bookmark (server fills in metadata)
  smark suggest <url>     Preview the server's suggestion for a URL
  smark import <file>     Import bookmarks from Netscape HTML
  smark export [path]     Export cached bookmarks to Netscape HTML
  smark help              Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    l/Enter     Expand folder / open bookmark
    h           Collapse folder
    gg/G        Jump to top/bottom

  Actions:
    o           Open bookmark in browser
    Y           Copy URL to clipboard
    r           Reload from server

  Editing:
    a/A         Add bookmark/folder
    d           Delete

  Other:
    ?           Show help overlay
    q           Quit

Configuration:
  ~/.config/smark/config.json
  SMARK_API_URL, SMARK_TIMEOUT override the file
`
	fmt.Print(help)
}

// setup loads the config and builds the API client from it.
func setup() (*config.Config, *api.Client) {
	path, err := config.DefaultFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating config: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.CachePath == "" {
		cfg.CachePath, err = config.DefaultCachePath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error locating cache: %v\n", err)
			os.Exit(1)
		}
	}

	return cfg, api.NewClient(cfg.APIURL, cfg.Timeout())
}

// syncSnapshot pulls the full server state into a snapshot.
func syncSnapshot(cfg *config.Config, client *api.Client) (*model.Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	folders, err := client.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	bookmarks, err := client.ListBookmarks(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Snapshot{Folders: folders, Bookmarks: bookmarks}, nil
}

// saveCache persists the snapshot, reporting but not failing on errors.
func saveCache(cfg *config.Config, snap *model.Snapshot) {
	cache, err := storage.Open(cfg.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cache unavailable: %v\n", err)
		return
	}
	defer closeStorage(cache)

	if err := cache.Save(snap); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not update cache: %v\n", err)
	}
}

func closeStorage(s storage.Storage) {
	if closer, ok := s.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

// runTUI runs the full interactive TUI.
func runTUI() {
	cfg, client := setup()

	// log.Printf output would corrupt the TUI; route it to a file when
	// debugging, otherwise drop it.
	if os.Getenv("SMARK_DEBUG") != "" {
		f, err := tea.LogToFile("smark-debug.log", "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	// Seed the store from the cache for an instant start; the TUI
	// reconciles against the server on launch.
	cache, err := storage.Open(cfg.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
		os.Exit(1)
	}
	defer closeStorage(cache)

	snap, err := cache.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading cache: %v\n", err)
		os.Exit(1)
	}

	store := model.FromSnapshot(snap)
	app := tui.NewApp(tui.AppParams{Store: store, Service: client})

	p := tea.NewProgram(app, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}

	finalApp := finalModel.(tui.App)
	if err := cache.Save(finalApp.Store().Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not update cache: %v\n", err)
	}
}

// runQuickSearch fuzzy searches cached bookmarks and opens the selection.
func runQuickSearch(query string) {
	cfg, client := setup()

	cache, err := storage.Open(cfg.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
		os.Exit(1)
	}
	defer closeStorage(cache)

	snap, err := cache.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading cache: %v\n", err)
		os.Exit(1)
	}

	// Cold cache: pull from the server first.
	if len(snap.Bookmarks) == 0 {
		snap, err = syncSnapshot(cfg, client)
		if err != nil {
			fmt.Fprintln(os.Stderr, api.FriendlyMessage(err))
			os.Exit(1)
		}
		if err := cache.Save(snap); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not update cache: %v\n", err)
		}
	}

	results := search.Bookmarks(snap, query)
	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		return
	}

	folderNames := make(map[int64]string, len(snap.Folders))
	for _, f := range snap.Folders {
		folderNames[f.ID] = f.Name
	}

	var selected *model.Bookmark
	if len(results) == 1 {
		selected = results[0].Bookmark
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		p := picker.New(results, query, folderNames)
		finalModel, err := tea.NewProgram(p).Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return
		}
		selected = finalPicker.SelectedBookmark()
	}

	if selected != nil {
		openURL(selected.URL)
	}
}

// runAdd saves a bookmark without opening the TUI.
func runAdd(url, note string) {
	cfg, client := setup()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	bookmark, err := client.CreateBookmark(ctx, model.BookmarkCreate{
		URL:      url,
		UserNote: note,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, api.FriendlyMessage(err))
		os.Exit(1)
	}

	fmt.Printf("Saved: %s\n", bookmark.Title)

	if snap, err := syncSnapshot(cfg, client); err == nil {
		saveCache(cfg, snap)
	}
}

// runSuggest prints the server's suggestion for a URL without saving.
func runSuggest(url string) {
	cfg, client := setup()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	suggestion, err := client.Suggest(ctx, model.BookmarkCreate{URL: url})
	if err != nil {
		fmt.Fprintln(os.Stderr, api.FriendlyMessage(err))
		os.Exit(1)
	}

	fmt.Printf("Title:       %s\n", suggestion.Title)
	fmt.Printf("Description: %s\n", suggestion.Description)
	fmt.Printf("Folder:      %s\n", suggestion.FolderName)
}

// runImport pushes bookmarks from a Netscape HTML file to the server.
func runImport(filePath string) {
	cfg, client := setup()

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	entries, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("Nothing to import")
		return
	}

	created := 0
	failed := 0
	for _, entry := range entries {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
		_, err := client.CreateBookmark(ctx, model.BookmarkCreate{
			URL:        entry.URL,
			Title:      entry.Title,
			FolderName: entry.FolderName,
		})
		cancel()
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Skipped %s: %s\n", entry.URL, api.FriendlyMessage(err))
			continue
		}
		created++
	}

	fmt.Printf("Imported %d bookmarks into %d folders", created, len(importer.FolderNames(entries)))
	if failed > 0 {
		fmt.Printf(" (%d failed)", failed)
	}
	fmt.Println()

	if snap, err := syncSnapshot(cfg, client); err == nil {
		saveCache(cfg, snap)
	}
}

// runExport writes the cached bookmarks as Netscape HTML.
func runExport(outputPath string) {
	cfg, client := setup()

	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	// Export prefers fresh server state, falling back to the cache when
	// the server is unreachable.
	snap, err := syncSnapshot(cfg, client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server unavailable, exporting cached state\n")
		cache, cerr := storage.Open(cfg.CachePath)
		if cerr != nil {
			fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", cerr)
			os.Exit(1)
		}
		defer closeStorage(cache)
		snap, cerr = cache.Load()
		if cerr != nil {
			fmt.Fprintf(os.Stderr, "Error reading cache: %v\n", cerr)
			os.Exit(1)
		}
	} else {
		saveCache(cfg, snap)
	}

	html := exporter.ExportHTML(snap)
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d bookmarks, %d folders to %s\n",
		len(snap.Bookmarks), len(snap.Folders), outputPath)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
