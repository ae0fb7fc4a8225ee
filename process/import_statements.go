package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"spendwise/models"
)

// Global DB handle for helper funcs
var db *gorm.DB

// global flags (parsed in main)
var (
	verbose bool
	dryRun  bool
)

func mustInitDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatalf("DB_DSN must be set in environment to run this tool")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return gdb
}

// Main: scans a directory of CSV bank statements, inserts their rows as
// Transactions for one user, optional watch mode.
func main() {
	dirFlag := flag.String("dir", "statements", "directory to scan for CSV statements")
	userID := flag.Uint("user-id", 0, "User ID to assign imported transactions to")
	watch := flag.Bool("watch", false, "Watch directory for new files")
	workers := flag.Int("workers", 0, "Worker pool size (default NumCPU)")
	flag.BoolVar(&dryRun, "dry-run", false, "Parse and report without touching the DB")
	flag.BoolVar(&verbose, "verbose", false, "Verbose per-file logging")
	flag.Parse()

	_ = godotenv.Load()

	if *workers <= 0 {
		*workers = runtime.NumCPU()
	}

	if dryRun {
		log.Printf("Dry-run: scanning %s (no DB interaction)", *dirFlag)
		files := listStatementFiles(*dirFlag)
		log.Printf("Found %d candidate files", len(files))
		for _, f := range files {
			reportFile(filepath.Join(*dirFlag, f))
		}
		return
	}

	if *userID == 0 {
		log.Fatal("--user-id is required (unless --dry-run)")
	}
	db = mustInitDBFromEnv()
	var user models.User
	if err := db.First(&user, *userID).Error; err != nil {
		log.Fatalf("user %d not found: %v", *userID, err)
	}

	files := listStatementFiles(*dirFlag)
	log.Printf("Importing %d statement file(s) for user %d", len(files), user.ID)
	runWorkerPool(*dirFlag, user, files, *workers)

	if *watch {
		if err := watchDirectory(*dirFlag, user, *workers); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	}
}

func reportFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("%s: %v", path, err)
		return
	}
	defer f.Close()
	rows, errs := parseStatement(f)
	log.Printf("%s: %d rows parsed, %d rejected", path, len(rows), len(errs))
	if verbose {
		for _, e := range errs {
			log.Printf("  %v", e)
		}
	}
}

func listStatementFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".csv"
}

// processSingleFile parses one statement and inserts its rows, skipping any
// row whose (user, date, description, amount) already exists so reruns are
// idempotent.
func processSingleFile(dir, name string, user models.User) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		log.Printf("%s: open failed: %v", name, err)
		return
	}
	defer f.Close()

	rows, errs := parseStatement(f)
	for _, e := range errs {
		log.Printf("%s: %v", name, e)
	}
	var inserted, skipped int
	for _, row := range rows {
		var existing models.Transaction
		err := db.Where("user_id = ? AND date = ? AND description = ? AND amount = ?",
			user.ID, row.Date, row.Description, row.Amount).First(&existing).Error
		if err == nil {
			skipped++
			continue
		}
		tx := models.Transaction{
			UserID:      user.ID,
			Amount:      row.Amount,
			Category:    row.Category,
			Type:        row.Type,
			Description: row.Description,
			Date:        row.Date,
		}
		if err := db.Create(&tx).Error; err != nil {
			log.Printf("%s: insert failed: %v", name, err)
			continue
		}
		inserted++
	}
	if verbose || inserted > 0 {
		log.Printf("%s: inserted %d, skipped %d duplicates", name, inserted, skipped)
	}
}

// worker pool orchestrator
func runWorkerPool(dir string, user models.User, initial []string, workers int, extraCh ...<-chan string) {
	fileCh := make(chan string, 1024)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				processSingleFile(dir, name, user)
			}
		}()
	}
	for _, name := range initial {
		fileCh <- name
	}
	if len(extraCh) > 0 {
		for name := range extraCh[0] {
			fileCh <- name
		}
	}
	close(fileCh)
	wg.Wait()
}

func watchDirectory(dir string, user models.User, workers int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	fileCh := make(chan string, 256)
	go func() {
		// simple debounce map of pending files
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(fileCh)
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create {
					name := filepath.Base(ev.Name)
					if !isSupportedExt(name) {
						continue
					}
					pending[name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for name, t := range pending {
					if now.Sub(t) > 300*time.Millisecond { // stable
						fileCh <- name
						delete(pending, name)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(fileCh)
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	// reuse the worker pool for watch events
	go runWorkerPool(dir, user, nil, workers, fileCh)
	// block forever (Ctrl+C to exit)
	select {}
}
